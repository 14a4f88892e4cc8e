package codec

import (
	"fmt"

	"github.com/weisyn/keyconv/internal/core/crypto/curve"
	"github.com/weisyn/keyconv/internal/core/crypto/material"
	ifaces "github.com/weisyn/keyconv/pkg/interfaces/crypto"
	"github.com/weisyn/keyconv/pkg/types"
)

// rawCodec 定长大端字节编解码
//
// raw 字节不携带任何元数据，曲线必须由调用方提供。
// 密钥种类按长度推断；Ed25519 的标量和公钥同为32字节，
// 无法区分时默认按私钥处理，调用方可用 kind 显式指定。
type rawCodec struct {
	provider ifaces.Provider
}

func (c *rawCodec) Descriptor() FormatDescriptor {
	return FormatDescriptor{
		Format:        types.FormatRaw,
		RequiresCurve: true,
		Private:       true,
		Public:        true,
		Encodable:     true,
	}
}

func (c *rawCodec) Decode(input []byte, expected types.CurveID, kind types.KeyKind) (*material.Material, error) {
	if expected == types.CurveUnknown {
		return nil, fmt.Errorf("%w: raw", ErrCurveRequired)
	}
	desc, err := curve.Describe(expected)
	if err != nil {
		return nil, err
	}

	if kind == types.KindUnspecified {
		kind = c.inferKind(desc, len(input))
	}
	switch kind {
	case types.KindPrivate:
		if len(input) != desc.ScalarLen {
			return nil, fmt.Errorf("%w: raw private key for %s must be %d bytes, got %d",
				ErrMalformedInput, desc.ID, desc.ScalarLen, len(input))
		}
		return privateMaterial(c.provider, desc.ID, input)
	case types.KindPublic:
		return publicMaterial(c.provider, desc.ID, input)
	default:
		return nil, fmt.Errorf("%w: raw bytes of length %d not recognizable for %s",
			ErrMalformedInput, len(input), desc.ID)
	}
}

// inferKind 按长度推断密钥种类
func (c *rawCodec) inferKind(desc curve.Descriptor, n int) types.KeyKind {
	switch {
	case n == desc.ScalarLen:
		// Ed25519 标量与公钥长度相同，歧义时按私钥处理
		return types.KindPrivate
	case n == desc.CompressedPointLen || (desc.UncompressedPointLen > 0 && n == desc.UncompressedPointLen):
		return types.KindPublic
	default:
		return types.KindUnspecified
	}
}

func (c *rawCodec) Encode(m *material.Material, kind types.KeyKind) ([]byte, error) {
	switch kind {
	case types.KindPrivate:
		scalar, err := m.PrivateScalar()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedKeyKind, err)
		}
		return scalar, nil
	case types.KindPublic, types.KindUnspecified:
		return m.PublicPoint(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKeyKind, kind)
	}
}
