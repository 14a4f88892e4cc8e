package codec

import (
	"crypto/elliptic"
	"crypto/sha256"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/hkdf"

	"github.com/weisyn/keyconv/internal/core/crypto/material"
	ifaces "github.com/weisyn/keyconv/pkg/interfaces/crypto"
	"github.com/weisyn/keyconv/pkg/types"
)

// bip39Codec BIP-39 助记词解码（单向：助记词 → 密钥）
//
// 短语经标准 PBKDF2 派生为64字节种子（空口令），再按曲线各自的
// 确定性路径收窄为私钥标量：
//   - secp256k1：seed[0:32] 做 mod-N 约减（Bitcoin 习惯的截断路径）
//   - P-256：HKDF-SHA256 扩展种子后拒绝采样，避免取模偏差
//   - Ed25519：seed[0:32] 直接作为签名种子
//
// 编码方向不支持：标量无法还原出原始熵，导出 BIP-39 一律失败。
type bip39Codec struct {
	provider ifaces.Provider
}

// p256HKDFInfo P-256 标量派生的域分隔串，固定后不可更改
const p256HKDFInfo = "weisyn/keyconv p-256 scalar v1"

func (c *bip39Codec) Descriptor() FormatDescriptor {
	return FormatDescriptor{
		Format:        types.FormatBIP39,
		RequiresCurve: true,
		Private:       true,
		Public:        false,
		Encodable:     false,
	}
}

func (c *bip39Codec) Decode(input []byte, expected types.CurveID, kind types.KeyKind) (*material.Material, error) {
	if kind == types.KindPublic {
		return nil, fmt.Errorf("%w: bip39 yields private material only", ErrUnsupportedKeyKind)
	}
	if expected == types.CurveUnknown {
		return nil, fmt.Errorf("%w: bip39", ErrCurveRequired)
	}

	phrase := strings.Join(strings.Fields(string(input)), " ")
	seed, err := bip39.NewSeedWithErrorChecking(phrase, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	scalar, err := scalarFromSeed(expected, seed)
	if err != nil {
		return nil, err
	}
	return privateMaterial(c.provider, expected, scalar)
}

func (c *bip39Codec) Encode(_ *material.Material, _ types.KeyKind) ([]byte, error) {
	return nil, fmt.Errorf("%w: bip39 export requires the original entropy, which is not retained", ErrUnsupportedKeyKind)
}

// scalarFromSeed 按曲线把64字节种子收窄为私钥标量
func scalarFromSeed(id types.CurveID, seed []byte) ([]byte, error) {
	switch id {
	case types.CurveSecp256k1:
		var s secp256k1.ModNScalar
		s.SetByteSlice(seed[:32])
		if s.IsZero() {
			// 约减结果为零的退化种子，改用整个种子的摘要
			digest := sha256.Sum256(seed)
			s.SetByteSlice(digest[:])
		}
		scalar := s.Bytes()
		return scalar[:], nil
	case types.CurveP256:
		// 拒绝采样：逐块读取 HKDF 输出直到落入 [1, N-1]
		n := elliptic.P256().Params().N
		expand := hkdf.New(sha256.New, seed, nil, []byte(p256HKDFInfo))
		for {
			candidate := make([]byte, 32)
			if _, err := io.ReadFull(expand, candidate); err != nil {
				return nil, fmt.Errorf("hkdf expand for p-256 scalar: %w", err)
			}
			k := new(big.Int).SetBytes(candidate)
			if k.Sign() != 0 && k.Cmp(n) < 0 {
				return candidate, nil
			}
		}
	case types.CurveEd25519:
		scalar := make([]byte, 32)
		copy(scalar, seed[:32])
		return scalar, nil
	default:
		return nil, fmt.Errorf("%w: bip39 derivation for %s", ErrMalformedInput, id)
	}
}
