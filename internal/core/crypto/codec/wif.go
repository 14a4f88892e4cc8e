package codec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"

	"github.com/weisyn/keyconv/internal/core/crypto/curve"
	"github.com/weisyn/keyconv/internal/core/crypto/material"
	ifaces "github.com/weisyn/keyconv/pkg/interfaces/crypto"
	"github.com/weisyn/keyconv/pkg/types"
)

// wifCodec Wallet Import Format 编解码
//
// 载荷结构：版本字节 ‖ 32字节标量 ‖ 可选压缩标志(0x01) ‖ 4字节双SHA256校验和，
// 整体 Base58Check 编码。压缩标志按载荷长度推断（33 vs 32 字节）。
//
// WIF 本身只携带裸标量，框架对任何注册曲线都成立；版本字节按曲线标记
// （secp256k1 用 Bitcoin 主网的 0x80），使一条 WIF 无法被静默导入到
// 错误的曲线上。
type wifCodec struct {
	provider ifaces.Provider
}

func (c *wifCodec) Descriptor() FormatDescriptor {
	return FormatDescriptor{
		Format:        types.FormatWIF,
		RequiresCurve: false, // 版本字节即曲线标签
		Private:       true,
		Public:        false,
		Encodable:     true,
	}
}

func (c *wifCodec) Decode(input []byte, expected types.CurveID, kind types.KeyKind) (*material.Material, error) {
	if kind == types.KindPublic {
		return nil, fmt.Errorf("%w: wif carries private material only", ErrUnsupportedKeyKind)
	}
	payload, version, err := base58.CheckDecode(strings.TrimSpace(string(input)))
	if err != nil {
		if errors.Is(err, base58.ErrChecksum) {
			return nil, fmt.Errorf("%w: wif checksum verification failed", ErrMalformedInput)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	desc, err := curve.ByWIFVersion(version)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if expected != types.CurveUnknown && desc.ID != expected {
		return nil, fmt.Errorf("%w: wif version 0x%02x tags %s, expected %s",
			ErrCurveMismatch, version, desc.ID, expected)
	}

	// 压缩标志按长度推断
	switch len(payload) {
	case desc.ScalarLen:
		// 无压缩标志
	case desc.ScalarLen + 1:
		if payload[desc.ScalarLen] != 0x01 {
			return nil, fmt.Errorf("%w: wif compression flag must be 0x01, got 0x%02x",
				ErrMalformedInput, payload[desc.ScalarLen])
		}
		payload = payload[:desc.ScalarLen]
	default:
		return nil, fmt.Errorf("%w: wif payload length %d, expected %d or %d",
			ErrMalformedInput, len(payload), desc.ScalarLen, desc.ScalarLen+1)
	}

	return privateMaterial(c.provider, desc.ID, payload)
}

func (c *wifCodec) Encode(m *material.Material, kind types.KeyKind) ([]byte, error) {
	if kind == types.KindPublic {
		return nil, fmt.Errorf("%w: wif carries private material only", ErrUnsupportedKeyKind)
	}
	scalar, err := m.PrivateScalar()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedKeyKind, err)
	}
	desc, err := curve.Describe(m.Curve())
	if err != nil {
		return nil, err
	}

	payload := scalar
	if desc.Encoding == curve.PointCompressed {
		// 规范点编码为压缩形式的曲线带压缩标志，与 Bitcoin 压缩 WIF 对齐
		payload = append(payload, 0x01)
	}
	return []byte(base58.CheckEncode(payload, desc.WIFVersion)), nil
}
