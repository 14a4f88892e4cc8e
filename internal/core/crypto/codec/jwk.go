package codec

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/weisyn/keyconv/internal/core/crypto/curve"
	"github.com/weisyn/keyconv/internal/core/crypto/material"
	ifaces "github.com/weisyn/keyconv/pkg/interfaces/crypto"
	"github.com/weisyn/keyconv/pkg/types"
)

// JWK RFC 7517 JSON Web Key 结构
//
// EC 曲线：{kty:"EC", crv, x, y, d?}；Ed25519：{kty:"OKP", crv:"Ed25519", x, d?}。
// 坐标成员统一为无填充的 base64url。
type JWK struct {
	KeyType string `json:"kty"`
	Curve   string `json:"crv"`
	X       string `json:"x,omitempty"`
	Y       string `json:"y,omitempty"`
	D       string `json:"d,omitempty"`
}

// jwkCodec JSON Web Key 编解码
type jwkCodec struct {
	provider ifaces.Provider
}

func (c *jwkCodec) Descriptor() FormatDescriptor {
	return FormatDescriptor{
		Format:        types.FormatJWK,
		RequiresCurve: false, // crv 成员自描述
		Private:       true,
		Public:        true,
		Encodable:     true,
	}
}

func (c *jwkCodec) Decode(input []byte, expected types.CurveID, _ types.KeyKind) (*material.Material, error) {
	var jwk JWK
	if err := json.Unmarshal(input, &jwk); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if jwk.Curve == "" {
		return nil, fmt.Errorf("%w: jwk missing crv member", ErrMalformedInput)
	}

	desc, err := curve.ByJWKCurve(jwk.Curve)
	if err != nil {
		return nil, err
	}
	if expected != types.CurveUnknown && desc.ID != expected {
		return nil, fmt.Errorf("%w: jwk declares %s, expected %s", ErrCurveMismatch, desc.ID, expected)
	}
	if jwk.KeyType != desc.JWKKeyType {
		return nil, fmt.Errorf("%w: jwk kty %q does not match curve %s (want %q)",
			ErrMalformedInput, jwk.KeyType, desc.ID, desc.JWKKeyType)
	}

	// d 成员存在即按私钥处理；携带的 x/y 不被采信，公钥重新推导
	if jwk.D != "" {
		scalar, err := b64Field("d", jwk.D, desc.ScalarLen)
		if err != nil {
			return nil, err
		}
		return privateMaterial(c.provider, desc.ID, scalar)
	}

	point, err := c.assemblePoint(desc, jwk)
	if err != nil {
		return nil, err
	}
	return publicMaterial(c.provider, desc.ID, point)
}

// assemblePoint 由 JWK 坐标成员还原公钥点字节
func (c *jwkCodec) assemblePoint(desc curve.Descriptor, jwk JWK) ([]byte, error) {
	switch desc.JWKKeyType {
	case "EC":
		x, err := b64Field("x", jwk.X, desc.ScalarLen)
		if err != nil {
			return nil, err
		}
		y, err := b64Field("y", jwk.Y, desc.ScalarLen)
		if err != nil {
			return nil, err
		}
		point := make([]byte, 0, desc.UncompressedPointLen)
		point = append(point, 0x04)
		point = append(point, x...)
		point = append(point, y...)
		return point, nil
	default: // OKP
		return b64Field("x", jwk.X, desc.CompressedPointLen)
	}
}

func (c *jwkCodec) Encode(m *material.Material, kind types.KeyKind) ([]byte, error) {
	desc, err := curve.Describe(m.Curve())
	if err != nil {
		return nil, err
	}
	jwk := JWK{KeyType: desc.JWKKeyType, Curve: desc.JWKCurve}

	switch desc.JWKKeyType {
	case "EC":
		uncompressed, err := c.provider.UncompressPoint(desc.ID, m.PublicPoint())
		if err != nil {
			return nil, fmt.Errorf("uncompress point for jwk: %w", err)
		}
		jwk.X = b64Encode(uncompressed[1 : 1+desc.ScalarLen])
		jwk.Y = b64Encode(uncompressed[1+desc.ScalarLen:])
	default: // OKP
		jwk.X = b64Encode(m.PublicPoint())
	}

	if kind == types.KindPrivate {
		scalar, err := m.PrivateScalar()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedKeyKind, err)
		}
		jwk.D = b64Encode(scalar)
	}
	return json.Marshal(jwk)
}

// b64Field 解码一个必需的 base64url 成员并校验长度
func b64Field(name, value string, wantLen int) ([]byte, error) {
	if value == "" {
		return nil, fmt.Errorf("%w: jwk missing %s member", ErrMalformedInput, name)
	}
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: jwk %s member: %v", ErrMalformedInput, name, err)
	}
	if len(raw) != wantLen {
		return nil, fmt.Errorf("%w: jwk %s member is %d bytes, expected %d",
			ErrMalformedInput, name, len(raw), wantLen)
	}
	return raw, nil
}

func b64Encode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}
