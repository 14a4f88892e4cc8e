// Package converter 实现密钥格式转换门面
//
// Converter 是调用方唯一需要接触的对象：导入任意支持格式的密钥，
// 导出为任意其他格式，或派生网络专属标识。内部把格式编解码器、
// 派生引擎和密码学提供者装配在一起。
//
// 状态机：Empty → Loaded（首次成功导入）；Loaded → Loaded（再次导入
// 整体替换）。失败的导入不触碰已有材料——解码完全成功后才做指针交换。
//
// 单个实例不做内部同步：每个实例独占一份密钥材料，实例间零共享，
// 并发场景按实例隔离使用即可。
package converter

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/weisyn/keyconv/internal/core/crypto/codec"
	"github.com/weisyn/keyconv/internal/core/crypto/derive"
	"github.com/weisyn/keyconv/internal/core/crypto/material"
	ifaces "github.com/weisyn/keyconv/pkg/interfaces/crypto"
	"github.com/weisyn/keyconv/pkg/types"
)

var (
	// ErrNoKeyLoaded 尚未导入任何密钥
	ErrNoKeyLoaded = errors.New("no key loaded")
	// ErrImportFailed 导入失败（包装编解码器的具体错误）
	ErrImportFailed = errors.New("import failed")
	// ErrExportFailed 导出失败（包装编解码器的具体错误）
	ErrExportFailed = errors.New("export failed")
)

// Converter 密钥格式转换门面
type Converter struct {
	provider ifaces.Provider
	codecs   *codec.Registry
	engine   *derive.Engine
	logger   zerolog.Logger

	// 当前密钥材料；nil 表示 Empty 状态
	material *material.Material
}

// 确保 Converter 实现门面接口
var _ ifaces.Converter = (*Converter)(nil)

// Option 门面构造选项
type Option func(*Converter)

// WithLogger 注入日志记录器（默认禁用输出）
//
// 日志只记录格式与曲线等元信息，永远不输出密钥字节。
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// New 创建转换门面
//
// provider 是显式注入的密码学能力对象，门面不做任何进程级查找。
func New(provider ifaces.Provider, opts ...Option) *Converter {
	c := &Converter{
		provider: provider,
		codecs:   codec.NewRegistry(provider),
		engine:   derive.NewEngine(provider),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Import 按指定格式解码输入并原子替换当前密钥材料
func (c *Converter) Import(data []byte, format types.Format, curveID types.CurveID) error {
	return c.importKind(data, format, curveID, types.KindUnspecified)
}

// ImportKind 与 Import 相同，但显式指定密钥种类
//
// 用于长度有歧义的场景（Ed25519 的32字节 raw 输入既可能是标量也可能是公钥）。
func (c *Converter) ImportKind(data []byte, format types.Format, curveID types.CurveID, kind types.KeyKind) error {
	return c.importKind(data, format, curveID, kind)
}

func (c *Converter) importKind(data []byte, format types.Format, curveID types.CurveID, kind types.KeyKind) error {
	cd, err := c.codecs.Lookup(format)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrImportFailed, err)
	}
	m, err := cd.Decode(data, curveID, kind)
	if err != nil {
		c.logger.Debug().
			Str("format", format.String()).
			Str("curve", curveID.String()).
			Err(err).
			Msg("密钥导入失败，保留现有材料")
		return fmt.Errorf("%w: %w", ErrImportFailed, err)
	}

	// 原子交换：解码完全成功后才替换
	c.material = m
	c.logger.Debug().
		Str("format", format.String()).
		Str("curve", m.Curve().String()).
		Bool("private", m.HasPrivate()).
		Msg("密钥导入成功")
	return nil
}

// Generate 用注入的随机源生成新密钥并加载
func (c *Converter) Generate(curveID types.CurveID) error {
	scalar, err := c.provider.GenerateScalar(curveID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrImportFailed, err)
	}
	point, err := c.provider.DerivePublicKey(curveID, scalar)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrImportFailed, err)
	}
	m, err := material.FromPrivate(curveID, scalar, point)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrImportFailed, err)
	}
	c.material = m
	c.logger.Debug().Str("curve", curveID.String()).Msg("密钥生成成功")
	return nil
}

// Export 将当前密钥材料按指定格式序列化
func (c *Converter) Export(format types.Format, kind types.KeyKind) ([]byte, error) {
	if c.material == nil {
		return nil, ErrNoKeyLoaded
	}
	cd, err := c.codecs.Lookup(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	out, err := cd.Encode(c.material, kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return out, nil
}

// PrivateKeyHex 返回私钥标量的十六进制字符串
func (c *Converter) PrivateKeyHex() (string, error) {
	if c.material == nil {
		return "", ErrNoKeyLoaded
	}
	scalar, err := c.material.PrivateScalar()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return hex.EncodeToString(scalar), nil
}

// PublicKeyHex 返回规范编码公钥点的十六进制字符串
func (c *Converter) PublicKeyHex() (string, error) {
	if c.material == nil {
		return "", ErrNoKeyLoaded
	}
	return hex.EncodeToString(c.material.PublicPoint()), nil
}

// BitcoinAddress 派生 Bitcoin P2PKH 地址
func (c *Converter) BitcoinAddress() (string, error) {
	if c.material == nil {
		return "", ErrNoKeyLoaded
	}
	return c.engine.BitcoinAddress(c.material)
}

// EthereumAddress 派生 EIP-55 格式的 Ethereum 地址
func (c *Converter) EthereumAddress() (string, error) {
	if c.material == nil {
		return "", ErrNoKeyLoaded
	}
	return c.engine.EthereumAddress(c.material)
}

// IPFSPeerID 派生 CIDv1 文本形式的 libp2p Peer ID
func (c *Converter) IPFSPeerID() (string, error) {
	if c.material == nil {
		return "", ErrNoKeyLoaded
	}
	return c.engine.PeerID(c.material)
}

// LegacyPeerID 派生传统 base58btc 形式的 Peer ID
func (c *Converter) LegacyPeerID() (string, error) {
	if c.material == nil {
		return "", ErrNoKeyLoaded
	}
	return c.engine.LegacyPeerID(c.material)
}

// Sign 用当前私钥对消息签名
func (c *Converter) Sign(message []byte) ([]byte, error) {
	if c.material == nil {
		return nil, ErrNoKeyLoaded
	}
	scalar, err := c.material.PrivateScalar()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoKeyLoaded, err)
	}
	return c.provider.Sign(c.material.Curve(), scalar, message)
}

// Verify 用当前公钥验证签名
func (c *Converter) Verify(message, signature []byte) (bool, error) {
	if c.material == nil {
		return false, ErrNoKeyLoaded
	}
	return c.provider.Verify(c.material.Curve(), c.material.PublicPoint(), message, signature)
}

// Material 返回当前密钥材料的只读快照
//
// 供外部协作方（如证书/PKI 库）读取公钥；nil 表示 Empty 状态。
func (c *Converter) Material() *material.Material {
	return c.material
}

// Formats 返回格式声明（供 CLI 展示能力矩阵）
func (c *Converter) Formats() []codec.FormatDescriptor {
	out := make([]codec.FormatDescriptor, 0, len(types.Formats()))
	for _, f := range types.Formats() {
		if d, err := c.codecs.Describe(f); err == nil {
			out = append(out, d)
		}
	}
	return out
}
