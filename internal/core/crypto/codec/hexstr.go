package codec

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/weisyn/keyconv/internal/core/crypto/material"
	"github.com/weisyn/keyconv/pkg/types"
)

// hexCodec raw 字节的十六进制文本形式
//
// 解码大小写不敏感，接受可选的 0x 前缀；
// 奇数长度和非十六进制字符一律拒绝。
type hexCodec struct {
	raw rawCodec
}

func (c *hexCodec) Descriptor() FormatDescriptor {
	return FormatDescriptor{
		Format:        types.FormatHex,
		RequiresCurve: true,
		Private:       true,
		Public:        true,
		Encodable:     true,
	}
}

func (c *hexCodec) Decode(input []byte, expected types.CurveID, kind types.KeyKind) (*material.Material, error) {
	s := strings.TrimSpace(string(input))
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: odd-length hex string (%d chars)", ErrMalformedInput, len(s))
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return c.raw.Decode(raw, expected, kind)
}

func (c *hexCodec) Encode(m *material.Material, kind types.KeyKind) ([]byte, error) {
	raw, err := c.raw.Encode(m, kind)
	if err != nil {
		return nil, err
	}
	return []byte(hex.EncodeToString(raw)), nil
}
