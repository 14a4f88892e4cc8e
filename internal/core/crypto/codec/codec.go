// Package codec 实现外部密钥格式的编解码器
//
// 每种外部格式对应一个编解码器：decode 把外部表示规范化为曲线标记的
// 密钥材料，encode 把材料再序列化为外部表示。格式分发是 types.Format
// 上的封闭映射，构建注册表时一次装配完成。
//
// 所有解码路径共享同一条规则：私钥导入时公钥一律通过提供者重新推导，
// 外部结构里携带的公钥只用于交叉校验，从不直接采信。
package codec

import (
	"errors"
	"fmt"

	"github.com/weisyn/keyconv/internal/core/crypto/material"
	ifaces "github.com/weisyn/keyconv/pkg/interfaces/crypto"
	"github.com/weisyn/keyconv/pkg/types"
)

var (
	// ErrMalformedInput 结构解析失败（坏校验和、非法字符、截断的结构）
	ErrMalformedInput = errors.New("malformed input")
	// ErrCurveMismatch 解码出的曲线与调用方期望不一致
	ErrCurveMismatch = errors.New("curve mismatch")
	// ErrUnsupportedKeyKind 请求的密钥种类对该格式/材料不可用
	ErrUnsupportedKeyKind = errors.New("unsupported key kind")
	// ErrCurveRequired 格式不携带曲线标签，必须由调用方显式指定
	ErrCurveRequired = errors.New("format carries no curve tag, curve required")
	// ErrUnknownFormat 未注册的格式
	ErrUnknownFormat = errors.New("unknown format")
)

// FormatDescriptor 一种外部格式的静态声明
type FormatDescriptor struct {
	// Format 格式标识
	Format types.Format
	// RequiresCurve 解码是否需要外部提供曲线
	RequiresCurve bool
	// Private 是否能往返私钥材料
	Private bool
	// Public 是否能往返公钥材料
	Public bool
	// Encodable 是否支持编码方向（BIP-39 仅支持导入）
	Encodable bool
}

// Codec 单一格式的编解码器
type Codec interface {
	// Descriptor 返回格式声明
	Descriptor() FormatDescriptor

	// Decode 解码输入为密钥材料
	//
	// expected 为 CurveUnknown 时接受自描述格式声明的曲线；
	// kind 为 KindUnspecified 时由解码器按结构/长度推断。
	Decode(input []byte, expected types.CurveID, kind types.KeyKind) (*material.Material, error)

	// Encode 将材料序列化为该格式
	Encode(m *material.Material, kind types.KeyKind) ([]byte, error)
}

// Registry 格式编解码器注册表
//
// 构造后只读。所有编解码器共享同一个密码学提供者。
type Registry struct {
	codecs map[types.Format]Codec
}

// NewRegistry 用给定提供者装配全部编解码器
func NewRegistry(p ifaces.Provider) *Registry {
	return &Registry{
		codecs: map[types.Format]Codec{
			types.FormatRaw:   &rawCodec{provider: p},
			types.FormatHex:   &hexCodec{raw: rawCodec{provider: p}},
			types.FormatWIF:   &wifCodec{provider: p},
			types.FormatBIP39: &bip39Codec{provider: p},
			types.FormatJWK:   &jwkCodec{provider: p},
			types.FormatPKCS8: &pkcs8Codec{provider: p},
		},
	}
}

// Lookup 查找格式对应的编解码器
func (r *Registry) Lookup(f types.Format) (Codec, error) {
	c, ok := r.codecs[f]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
	return c, nil
}

// Describe 返回格式声明
func (r *Registry) Describe(f types.Format) (FormatDescriptor, error) {
	c, err := r.Lookup(f)
	if err != nil {
		return FormatDescriptor{}, err
	}
	return c.Descriptor(), nil
}

// privateMaterial 私钥导入的公共路径：验证标量、重新推导公钥、构造材料
func privateMaterial(p ifaces.Provider, id types.CurveID, scalar []byte) (*material.Material, error) {
	if err := p.ValidateScalar(id, scalar); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	point, err := p.DerivePublicKey(id, scalar)
	if err != nil {
		return nil, fmt.Errorf("derive public key: %w", err)
	}
	return material.FromPrivate(id, scalar, point)
}

// publicMaterial 公钥导入的公共路径：验证点并规范化编码
func publicMaterial(p ifaces.Provider, id types.CurveID, point []byte) (*material.Material, error) {
	canonical, err := p.NormalizePoint(id, point)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return material.FromPublic(id, canonical)
}
