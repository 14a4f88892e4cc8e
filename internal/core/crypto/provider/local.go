// Package provider 实现默认的软件密码学提供者
//
// Local 是 pkg/interfaces/crypto.Provider 的进程内实现：
// - secp256k1 委托 btcec（点运算、压缩/解压、ECDSA 签名）
// - P-256 委托标准库 crypto/ecdsa 与 crypto/elliptic
// - Ed25519 委托标准库 crypto/ed25519，点有效性校验委托 edwards25519
//
// 随机源在构造时注入，密钥生成不依赖任何环境隐式的随机对象。
package provider

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"math/big"

	"filippo.io/edwards25519"
	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/weisyn/keyconv/internal/core/crypto/curve"
	ifaces "github.com/weisyn/keyconv/pkg/interfaces/crypto"
	"github.com/weisyn/keyconv/pkg/types"
)

var (
	// ErrInvalidScalar 标量超出曲线允许范围
	ErrInvalidScalar = errors.New("invalid private scalar")
	// ErrInvalidPoint 公钥点结构无效或不在曲线上
	ErrInvalidPoint = errors.New("invalid public point")
	// ErrNoUncompressedForm 该曲线的点没有未压缩表示
	ErrNoUncompressedForm = errors.New("curve has no uncompressed point form")
)

// Local 软件实现的密码学提供者
type Local struct {
	rand io.Reader
}

// 确保 Local 实现了 Provider 接口
var _ ifaces.Provider = (*Local)(nil)

// New 创建提供者，randSource 为 nil 时使用 crypto/rand.Reader
func New(randSource io.Reader) *Local {
	if randSource == nil {
		randSource = rand.Reader
	}
	return &Local{rand: randSource}
}

// GenerateScalar 生成新的合法私钥标量
func (l *Local) GenerateScalar(id types.CurveID) ([]byte, error) {
	desc, err := curve.Describe(id)
	if err != nil {
		return nil, err
	}
	// 拒绝采样：读出的候选无效时重试，避免取模偏差
	for {
		scalar := make([]byte, desc.ScalarLen)
		if _, err := io.ReadFull(l.rand, scalar); err != nil {
			return nil, fmt.Errorf("read random source: %w", err)
		}
		if l.ValidateScalar(id, scalar) == nil {
			return scalar, nil
		}
	}
}

// ValidateScalar 验证私钥标量
func (l *Local) ValidateScalar(id types.CurveID, scalar []byte) error {
	desc, err := curve.Describe(id)
	if err != nil {
		return err
	}
	if len(scalar) != desc.ScalarLen {
		return fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidScalar, desc.ScalarLen, len(scalar))
	}
	switch id {
	case types.CurveSecp256k1:
		var s secp256k1.ModNScalar
		overflow := s.SetByteSlice(scalar)
		if overflow || s.IsZero() {
			return fmt.Errorf("%w: scalar out of secp256k1 group order", ErrInvalidScalar)
		}
		return nil
	case types.CurveP256:
		k := new(big.Int).SetBytes(scalar)
		if k.Sign() == 0 || k.Cmp(elliptic.P256().Params().N) >= 0 {
			return fmt.Errorf("%w: scalar out of P-256 group order", ErrInvalidScalar)
		}
		return nil
	case types.CurveEd25519:
		// 任意32字节都是合法的 Ed25519 种子
		return nil
	default:
		return fmt.Errorf("%w: %s", curve.ErrUnsupportedCurve, id)
	}
}

// DerivePublicKey 从私钥标量推导规范编码公钥
func (l *Local) DerivePublicKey(id types.CurveID, scalar []byte) ([]byte, error) {
	if err := l.ValidateScalar(id, scalar); err != nil {
		return nil, err
	}
	switch id {
	case types.CurveSecp256k1:
		priv, _ := btcec.PrivKeyFromBytes(scalar)
		return priv.PubKey().SerializeCompressed(), nil
	case types.CurveP256:
		x, y := elliptic.P256().ScalarBaseMult(scalar)
		return elliptic.MarshalCompressed(elliptic.P256(), x, y), nil
	case types.CurveEd25519:
		priv := ed25519.NewKeyFromSeed(scalar)
		pub := make([]byte, ed25519.PublicKeySize)
		copy(pub, priv[ed25519.SeedSize:])
		return pub, nil
	default:
		return nil, fmt.Errorf("%w: %s", curve.ErrUnsupportedCurve, id)
	}
}

// NormalizePoint 验证公钥点并返回规范编码
func (l *Local) NormalizePoint(id types.CurveID, point []byte) ([]byte, error) {
	switch id {
	case types.CurveSecp256k1:
		pub, err := btcec.ParsePubKey(point)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
		}
		return pub.SerializeCompressed(), nil
	case types.CurveP256:
		x, y, err := parseP256Point(point)
		if err != nil {
			return nil, err
		}
		return elliptic.MarshalCompressed(elliptic.P256(), x, y), nil
	case types.CurveEd25519:
		if len(point) != ed25519.PublicKeySize {
			return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPoint, ed25519.PublicKeySize, len(point))
		}
		if _, err := new(edwards25519.Point).SetBytes(point); err != nil {
			return nil, fmt.Errorf("%w: not a valid edwards25519 point", ErrInvalidPoint)
		}
		out := make([]byte, len(point))
		copy(out, point)
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s", curve.ErrUnsupportedCurve, id)
	}
}

// UncompressPoint 展开为 0x04 ‖ X ‖ Y 形式
func (l *Local) UncompressPoint(id types.CurveID, point []byte) ([]byte, error) {
	switch id {
	case types.CurveSecp256k1:
		pub, err := btcec.ParsePubKey(point)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
		}
		return pub.SerializeUncompressed(), nil
	case types.CurveP256:
		x, y, err := parseP256Point(point)
		if err != nil {
			return nil, err
		}
		return elliptic.Marshal(elliptic.P256(), x, y), nil
	case types.CurveEd25519:
		return nil, fmt.Errorf("%w: ed25519", ErrNoUncompressedForm)
	default:
		return nil, fmt.Errorf("%w: %s", curve.ErrUnsupportedCurve, id)
	}
}

// Sign 对消息签名
//
// ECDSA 曲线先做 SHA-256 摘要；secp256k1 与 P-256 均产出 ASN.1 DER 签名，
// Ed25519 产出64字节标准签名。
func (l *Local) Sign(id types.CurveID, scalar, message []byte) ([]byte, error) {
	if err := l.ValidateScalar(id, scalar); err != nil {
		return nil, err
	}
	switch id {
	case types.CurveSecp256k1:
		priv, _ := btcec.PrivKeyFromBytes(scalar)
		digest := sha256.Sum256(message)
		sig := btcecdsa.Sign(priv, digest[:])
		return sig.Serialize(), nil
	case types.CurveP256:
		priv, err := p256PrivateKey(scalar)
		if err != nil {
			return nil, err
		}
		digest := sha256.Sum256(message)
		return ecdsa.SignASN1(l.rand, priv, digest[:])
	case types.CurveEd25519:
		priv := ed25519.NewKeyFromSeed(scalar)
		return ed25519.Sign(priv, message), nil
	default:
		return nil, fmt.Errorf("%w: %s", curve.ErrUnsupportedCurve, id)
	}
}

// Verify 验证签名
func (l *Local) Verify(id types.CurveID, point, message, signature []byte) (bool, error) {
	switch id {
	case types.CurveSecp256k1:
		pub, err := btcec.ParsePubKey(point)
		if err != nil {
			return false, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
		}
		sig, err := btcecdsa.ParseDERSignature(signature)
		if err != nil {
			return false, nil
		}
		digest := sha256.Sum256(message)
		return sig.Verify(digest[:], pub), nil
	case types.CurveP256:
		x, y, err := parseP256Point(point)
		if err != nil {
			return false, err
		}
		pub := &ecdsa.PublicKey{Curve: elliptic.P256(), X: x, Y: y}
		digest := sha256.Sum256(message)
		return ecdsa.VerifyASN1(pub, digest[:], signature), nil
	case types.CurveEd25519:
		if len(point) != ed25519.PublicKeySize {
			return false, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPoint, ed25519.PublicKeySize, len(point))
		}
		return ed25519.Verify(ed25519.PublicKey(point), message, signature), nil
	default:
		return false, fmt.Errorf("%w: %s", curve.ErrUnsupportedCurve, id)
	}
}

// p256PrivateKey 从标量构造标准库私钥对象
func p256PrivateKey(scalar []byte) (*ecdsa.PrivateKey, error) {
	k := new(big.Int).SetBytes(scalar)
	priv := &ecdsa.PrivateKey{D: k}
	priv.Curve = elliptic.P256()
	priv.X, priv.Y = elliptic.P256().ScalarBaseMult(scalar)
	if priv.X == nil {
		return nil, fmt.Errorf("%w: P-256 scalar base mult failed", ErrInvalidScalar)
	}
	return priv, nil
}

// parseP256Point 解析压缩（33字节）或未压缩（65字节）的 P-256 点
func parseP256Point(point []byte) (*big.Int, *big.Int, error) {
	var x, y *big.Int
	switch len(point) {
	case 33:
		x, y = elliptic.UnmarshalCompressed(elliptic.P256(), point)
	case 65:
		x, y = elliptic.Unmarshal(elliptic.P256(), point)
	default:
		return nil, nil, fmt.Errorf("%w: expected 33 or 65 bytes, got %d", ErrInvalidPoint, len(point))
	}
	if x == nil {
		return nil, nil, fmt.Errorf("%w: not a valid P-256 point", ErrInvalidPoint)
	}
	return x, y, nil
}
