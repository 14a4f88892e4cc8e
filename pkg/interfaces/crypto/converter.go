// Package crypto 提供密钥转换系统的能力接口定义
//
// 🔄 **密钥格式转换门面 (Key Format Conversion Facade)**
//
// 本文件定义统一的密钥格式转换接口，专注于：
// - 多格式导入：raw / hex / WIF / BIP-39 / JWK / PKCS#8 的统一入口
// - 多格式导出：同一密钥材料向任意支持格式的再序列化
// - 标识派生：Bitcoin 地址、Ethereum 地址、IPFS/libp2p Peer ID
// - 状态管理：Empty → Loaded 的原子状态切换
//
// 🎯 **核心保证**
// - 往返一致：经任意两种私钥格式转换后底层密钥不变
// - 原子导入：失败的导入不影响已加载的密钥材料
// - 公钥重算：导入时公钥始终由私钥重新推导，不信任外部格式携带的值
package crypto

import (
	"github.com/weisyn/keyconv/pkg/types"
)

// Converter 定义密钥格式转换门面接口
//
// 每个实例持有至多一份密钥材料。实例之间不共享任何可变状态，
// 多个实例可以在独立 goroutine 中并发使用而无需同步。
type Converter interface {
	// Import 按指定格式解码输入并替换当前密钥材料
	//
	// curve 对 raw/hex/wif/bip39 是必需的（这些格式不携带曲线标签）；
	// 对 jwk/pkcs8 可传 CurveUnknown 表示接受结构内声明的曲线，
	// 显式传入时与声明不一致将导致 CurveMismatch。
	//
	// 失败时当前材料保持不变（原子交换语义）。
	Import(data []byte, format types.Format, curve types.CurveID) error

	// Export 将当前密钥材料按指定格式序列化
	//
	// kind 为 KindPrivate 时要求材料包含私钥标量。
	Export(format types.Format, kind types.KeyKind) ([]byte, error)

	// PrivateKeyHex 返回私钥标量的十六进制字符串
	PrivateKeyHex() (string, error)

	// PublicKeyHex 返回规范编码公钥点的十六进制字符串
	PublicKeyHex() (string, error)

	// BitcoinAddress 派生 Bitcoin P2PKH 地址（hash160 + Base58Check）
	BitcoinAddress() (string, error)

	// EthereumAddress 派生 EIP-55 校验和格式的 Ethereum 地址
	EthereumAddress() (string, error)

	// IPFSPeerID 派生 CIDv1 文本形式的 libp2p Peer ID
	IPFSPeerID() (string, error)
}
