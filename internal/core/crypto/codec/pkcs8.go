package codec

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"encoding/pem"
	"fmt"
	"math/big"

	"github.com/weisyn/keyconv/internal/core/crypto/curve"
	"github.com/weisyn/keyconv/internal/core/crypto/material"
	ifaces "github.com/weisyn/keyconv/pkg/interfaces/crypto"
	"github.com/weisyn/keyconv/pkg/types"
)

// pkcs8Codec PKCS#8 / SPKI 的 PEM 装甲编解码
//
// P-256 和 Ed25519 直接走 crypto/x509 的 Marshal/Parse 原语；
// secp256k1 不在 crypto/x509 支持范围内，其 DER 按 RFC 5915 的
// ECPrivateKey 结构自行装配（命名曲线 OID 1.3.132.0.10 置于 PKCS#8
// 外层算法标识的参数中，与 OpenSSL 的输出一致）。
type pkcs8Codec struct {
	provider ifaces.Provider
}

const (
	pemTypePrivate = "PRIVATE KEY"
	pemTypePublic  = "PUBLIC KEY"
)

// pkcs8Info RFC 5208 PrivateKeyInfo 外层结构
type pkcs8Info struct {
	Version    int
	Algo       pkix.AlgorithmIdentifier
	PrivateKey []byte
}

// ecPrivateKey RFC 5915 ECPrivateKey（与 crypto/x509 内部结构同形）
type ecPrivateKey struct {
	Version       int
	PrivateKey    []byte
	NamedCurveOID asn1.ObjectIdentifier `asn1:"optional,explicit,tag:0"`
	PublicKey     asn1.BitString        `asn1:"optional,explicit,tag:1"`
}

// publicKeyInfo RFC 5280 SubjectPublicKeyInfo
type publicKeyInfo struct {
	Algo      pkix.AlgorithmIdentifier
	BitString asn1.BitString
}

func (c *pkcs8Codec) Descriptor() FormatDescriptor {
	return FormatDescriptor{
		Format:        types.FormatPKCS8,
		RequiresCurve: false, // 算法标识自描述
		Private:       true,
		Public:        true,
		Encodable:     true,
	}
}

func (c *pkcs8Codec) Decode(input []byte, expected types.CurveID, _ types.KeyKind) (*material.Material, error) {
	block, _ := pem.Decode(input)
	if block == nil {
		return nil, fmt.Errorf("%w: no pem block found", ErrMalformedInput)
	}
	switch block.Type {
	case pemTypePrivate:
		return c.decodePrivate(block.Bytes, expected)
	case pemTypePublic:
		return c.decodePublic(block.Bytes, expected)
	default:
		return nil, fmt.Errorf("%w: unexpected pem block type %q", ErrMalformedInput, block.Type)
	}
}

func (c *pkcs8Codec) decodePrivate(der []byte, expected types.CurveID) (*material.Material, error) {
	var info pkcs8Info
	if _, err := asn1.Unmarshal(der, &info); err != nil {
		return nil, fmt.Errorf("%w: pkcs8 structure: %v", ErrMalformedInput, err)
	}

	desc, err := c.curveFromAlgorithm(info.Algo)
	if err != nil {
		return nil, err
	}
	if expected != types.CurveUnknown && desc.ID != expected {
		return nil, fmt.Errorf("%w: pkcs8 algorithm identifies %s, expected %s",
			ErrCurveMismatch, desc.ID, expected)
	}

	var scalar []byte
	switch desc.ID {
	case types.CurveSecp256k1:
		var ec ecPrivateKey
		if _, err := asn1.Unmarshal(info.PrivateKey, &ec); err != nil {
			return nil, fmt.Errorf("%w: rfc5915 structure: %v", ErrMalformedInput, err)
		}
		if len(ec.PrivateKey) > desc.ScalarLen {
			return nil, fmt.Errorf("%w: ec private key is %d bytes, expected at most %d",
				ErrMalformedInput, len(ec.PrivateKey), desc.ScalarLen)
		}
		scalar = make([]byte, desc.ScalarLen)
		copy(scalar[desc.ScalarLen-len(ec.PrivateKey):], ec.PrivateKey)
	case types.CurveP256:
		parsed, err := x509.ParsePKCS8PrivateKey(der)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		priv, ok := parsed.(*ecdsa.PrivateKey)
		if !ok || priv.Curve != elliptic.P256() {
			return nil, fmt.Errorf("%w: pkcs8 did not yield a P-256 key", ErrMalformedInput)
		}
		scalar = make([]byte, desc.ScalarLen)
		priv.D.FillBytes(scalar)
	case types.CurveEd25519:
		parsed, err := x509.ParsePKCS8PrivateKey(der)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		priv, ok := parsed.(ed25519.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: pkcs8 did not yield an ed25519 key", ErrMalformedInput)
		}
		scalar = priv.Seed()
	}

	// 结构内嵌的公钥不采信，统一重新推导
	return privateMaterial(c.provider, desc.ID, scalar)
}

func (c *pkcs8Codec) decodePublic(der []byte, expected types.CurveID) (*material.Material, error) {
	var info publicKeyInfo
	if _, err := asn1.Unmarshal(der, &info); err != nil {
		return nil, fmt.Errorf("%w: spki structure: %v", ErrMalformedInput, err)
	}

	desc, err := c.curveFromAlgorithm(info.Algo)
	if err != nil {
		return nil, err
	}
	if expected != types.CurveUnknown && desc.ID != expected {
		return nil, fmt.Errorf("%w: spki algorithm identifies %s, expected %s",
			ErrCurveMismatch, desc.ID, expected)
	}

	point := info.BitString.RightAlign()
	return publicMaterial(c.provider, desc.ID, point)
}

// curveFromAlgorithm 从算法标识恢复曲线
//
// RSA、X25519 等已知但不支持的算法返回 UnsupportedCurve，
// 与结构损坏（MalformedInput）区分开。
func (c *pkcs8Codec) curveFromAlgorithm(algo pkix.AlgorithmIdentifier) (curve.Descriptor, error) {
	switch {
	case algo.Algorithm.Equal(curve.OIDEd25519):
		return curve.Describe(types.CurveEd25519)
	case algo.Algorithm.Equal(curve.OIDECPublicKey):
		var oid asn1.ObjectIdentifier
		if _, err := asn1.Unmarshal(algo.Parameters.FullBytes, &oid); err != nil {
			return curve.Descriptor{}, fmt.Errorf("%w: ec named curve parameters: %v", ErrMalformedInput, err)
		}
		return curve.ByOID(oid)
	default:
		return curve.Descriptor{}, fmt.Errorf("%w: algorithm %v", curve.ErrUnsupportedCurve, algo.Algorithm)
	}
}

func (c *pkcs8Codec) Encode(m *material.Material, kind types.KeyKind) ([]byte, error) {
	desc, err := curve.Describe(m.Curve())
	if err != nil {
		return nil, err
	}
	var (
		der     []byte
		pemType string
	)
	if kind == types.KindPrivate {
		scalar, err := m.PrivateScalar()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedKeyKind, err)
		}
		der, err = c.marshalPrivate(desc, scalar)
		if err != nil {
			return nil, err
		}
		pemType = pemTypePrivate
	} else {
		der, err = c.marshalPublic(desc, m.PublicPoint())
		if err != nil {
			return nil, err
		}
		pemType = pemTypePublic
	}
	return pem.EncodeToMemory(&pem.Block{Type: pemType, Bytes: der}), nil
}

func (c *pkcs8Codec) marshalPrivate(desc curve.Descriptor, scalar []byte) ([]byte, error) {
	switch desc.ID {
	case types.CurveSecp256k1:
		uncompressed, err := c.uncompressed(desc, scalar)
		if err != nil {
			return nil, err
		}
		inner, err := asn1.Marshal(ecPrivateKey{
			Version:    1,
			PrivateKey: scalar,
			PublicKey:  asn1.BitString{Bytes: uncompressed, BitLength: len(uncompressed) * 8},
		})
		if err != nil {
			return nil, fmt.Errorf("marshal rfc5915 structure: %w", err)
		}
		params, err := asn1.Marshal(desc.OID)
		if err != nil {
			return nil, fmt.Errorf("marshal named curve oid: %w", err)
		}
		return asn1.Marshal(pkcs8Info{
			Version: 0,
			Algo: pkix.AlgorithmIdentifier{
				Algorithm:  curve.OIDECPublicKey,
				Parameters: asn1.RawValue{FullBytes: params},
			},
			PrivateKey: inner,
		})
	case types.CurveP256:
		priv := &ecdsa.PrivateKey{D: new(big.Int).SetBytes(scalar)}
		priv.Curve = elliptic.P256()
		priv.X, priv.Y = elliptic.P256().ScalarBaseMult(scalar)
		return x509.MarshalPKCS8PrivateKey(priv)
	case types.CurveEd25519:
		return x509.MarshalPKCS8PrivateKey(ed25519.NewKeyFromSeed(scalar))
	default:
		return nil, fmt.Errorf("%w: %s", curve.ErrUnsupportedCurve, desc.ID)
	}
}

func (c *pkcs8Codec) marshalPublic(desc curve.Descriptor, point []byte) ([]byte, error) {
	switch desc.ID {
	case types.CurveSecp256k1:
		uncompressedPoint, err := c.provider.UncompressPoint(desc.ID, point)
		if err != nil {
			return nil, fmt.Errorf("uncompress point for spki: %w", err)
		}
		params, err := asn1.Marshal(desc.OID)
		if err != nil {
			return nil, fmt.Errorf("marshal named curve oid: %w", err)
		}
		return asn1.Marshal(publicKeyInfo{
			Algo: pkix.AlgorithmIdentifier{
				Algorithm:  curve.OIDECPublicKey,
				Parameters: asn1.RawValue{FullBytes: params},
			},
			BitString: asn1.BitString{Bytes: uncompressedPoint, BitLength: len(uncompressedPoint) * 8},
		})
	case types.CurveP256:
		x, y := elliptic.UnmarshalCompressed(elliptic.P256(), point)
		if x == nil {
			return nil, fmt.Errorf("%w: stored P-256 point failed to decompress", ErrMalformedInput)
		}
		return x509.MarshalPKIXPublicKey(&ecdsa.PublicKey{Curve: elliptic.P256(), X: x, Y: y})
	case types.CurveEd25519:
		return x509.MarshalPKIXPublicKey(ed25519.PublicKey(point))
	default:
		return nil, fmt.Errorf("%w: %s", curve.ErrUnsupportedCurve, desc.ID)
	}
}

// uncompressed 从标量直接推导未压缩点（用于 RFC 5915 内嵌公钥）
func (c *pkcs8Codec) uncompressed(desc curve.Descriptor, scalar []byte) ([]byte, error) {
	compressed, err := c.provider.DerivePublicKey(desc.ID, scalar)
	if err != nil {
		return nil, fmt.Errorf("derive public key: %w", err)
	}
	return c.provider.UncompressPoint(desc.ID, compressed)
}
