package codec

import (
	"encoding/hex"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/tyler-smith/go-bip39"

	"github.com/weisyn/keyconv/pkg/types"
)

// DetectFormat 按结构特征判定输入最可能的格式
//
// 这是显式的、有文档的判定顺序，只供 CLI 的 --format auto 路径使用；
// 门面的 Import 永远要求显式格式，不做隐式猜测：
//
//  1. PEM 边界 → pkcs8
//  2. JSON 对象 → jwk
//  3. ≥12个且全部落在 BIP-39 词表内的单词 → bip39
//  4. 合法的偶数长度十六进制（允许 0x 前缀）→ hex
//  5. 可 Base58 解码且带校验和长度 → wif
//  6. 其余 → raw
//
// 十六进制优先于 Base58：纯十六进制字符串同时也是合法的 Base58 输入，
// 反之不成立，先验更强的解释优先。
func DetectFormat(input []byte) types.Format {
	s := strings.TrimSpace(string(input))

	if strings.HasPrefix(s, "-----BEGIN ") {
		return types.FormatPKCS8
	}
	if strings.HasPrefix(s, "{") {
		return types.FormatJWK
	}
	if looksLikeMnemonic(s) {
		return types.FormatBIP39
	}
	if looksLikeHex(s) {
		return types.FormatHex
	}
	if raw, err := base58.Decode(s); err == nil && len(raw) > 4 {
		return types.FormatWIF
	}
	return types.FormatRaw
}

// looksLikeMnemonic 至少12个单词且全部在 BIP-39 词表中
func looksLikeMnemonic(s string) bool {
	words := strings.Fields(s)
	if len(words) < 12 {
		return false
	}
	wordSet := make(map[string]struct{}, 2048)
	for _, w := range bip39.GetWordList() {
		wordSet[w] = struct{}{}
	}
	for _, w := range words {
		if _, ok := wordSet[strings.ToLower(w)]; !ok {
			return false
		}
	}
	return true
}

func looksLikeHex(s string) bool {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}
	if s == "" || len(s)%2 != 0 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
