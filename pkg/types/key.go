// Package types 提供密钥转换系统共享的基础类型定义
//
// 本文件定义曲线、外部格式和密钥种类的封闭枚举。
// 所有分发逻辑都基于这些类型常量进行，避免字符串分支带来的隐式错误。
package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownIdentifier 无法识别的标识符
var ErrUnknownIdentifier = errors.New("unknown identifier")

// CurveID 逻辑曲线标识（封闭枚举）
//
// 新增曲线需要在 internal/core/crypto/curve 注册其字节长度和编码规则。
type CurveID uint8

const (
	// CurveUnknown 未指定曲线（仅允许用于自描述格式的导入）
	CurveUnknown CurveID = iota
	// CurveSecp256k1 Bitcoin/Ethereum 使用的 Koblitz 曲线
	CurveSecp256k1
	// CurveP256 NIST P-256 (secp256r1)
	CurveP256
	// CurveEd25519 Edwards 曲线签名体系
	CurveEd25519
)

// String 返回曲线的规范名称
func (c CurveID) String() string {
	switch c {
	case CurveSecp256k1:
		return "secp256k1"
	case CurveP256:
		return "p-256"
	case CurveEd25519:
		return "ed25519"
	default:
		return "unknown"
	}
}

// ParseCurveID 解析曲线名称（大小写不敏感，接受常见别名）
func ParseCurveID(s string) (CurveID, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "secp256k1", "k-256", "k256":
		return CurveSecp256k1, nil
	case "p-256", "p256", "secp256r1", "prime256v1":
		return CurveP256, nil
	case "ed25519", "ed-25519":
		return CurveEd25519, nil
	default:
		return CurveUnknown, fmt.Errorf("%w: curve %q", ErrUnknownIdentifier, s)
	}
}

// Format 外部密钥序列化格式（封闭枚举）
type Format uint8

const (
	// FormatUnknown 未指定格式
	FormatUnknown Format = iota
	// FormatRaw 定长大端字节（标量或曲线点），不携带任何元数据
	FormatRaw
	// FormatHex 原始字节的十六进制字符串
	FormatHex
	// FormatWIF Wallet Import Format（Base58Check + 版本字节 + 压缩标志）
	FormatWIF
	// FormatBIP39 BIP-39 助记词短语（仅支持导入方向）
	FormatBIP39
	// FormatJWK RFC 7517 JSON Web Key
	FormatJWK
	// FormatPKCS8 PKCS#8 / SPKI 的 PEM 装甲形式
	FormatPKCS8
)

// String 返回格式的规范名称
func (f Format) String() string {
	switch f {
	case FormatRaw:
		return "raw"
	case FormatHex:
		return "hex"
	case FormatWIF:
		return "wif"
	case FormatBIP39:
		return "bip39"
	case FormatJWK:
		return "jwk"
	case FormatPKCS8:
		return "pkcs8"
	default:
		return "unknown"
	}
}

// ParseFormat 解析格式名称
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "raw":
		return FormatRaw, nil
	case "hex":
		return FormatHex, nil
	case "wif":
		return FormatWIF, nil
	case "bip39", "mnemonic":
		return FormatBIP39, nil
	case "jwk":
		return FormatJWK, nil
	case "pkcs8", "pem":
		return FormatPKCS8, nil
	default:
		return FormatUnknown, fmt.Errorf("%w: format %q", ErrUnknownIdentifier, s)
	}
}

// Formats 返回所有已注册格式（按枚举顺序）
func Formats() []Format {
	return []Format{FormatRaw, FormatHex, FormatWIF, FormatBIP39, FormatJWK, FormatPKCS8}
}

// KeyKind 导出/导入的密钥种类
type KeyKind uint8

const (
	// KindUnspecified 未指定（由解码器按长度推断）
	KindUnspecified KeyKind = iota
	// KindPrivate 私钥材料
	KindPrivate
	// KindPublic 公钥材料
	KindPublic
)

// String 返回种类名称
func (k KeyKind) String() string {
	switch k {
	case KindPrivate:
		return "private"
	case KindPublic:
		return "public"
	default:
		return "unspecified"
	}
}

// ParseKeyKind 解析密钥种类名称
func ParseKeyKind(s string) (KeyKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "private", "priv":
		return KindPrivate, nil
	case "public", "pub":
		return KindPublic, nil
	default:
		return KindUnspecified, fmt.Errorf("%w: key kind %q", ErrUnknownIdentifier, s)
	}
}
