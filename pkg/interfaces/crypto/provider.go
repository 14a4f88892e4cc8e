// Package crypto 提供密钥转换系统的能力接口定义
//
// 🔑 **密码学能力抽象 (Cryptographic Capability Set)**
//
// 本文件定义格式转换核心所依赖的密码学提供者接口，专注于：
// - 公钥推导：从私钥标量计算曲线规范编码的公钥点
// - 标量/点验证：私钥范围检查和公钥点在曲线上的验证
// - 签名验证：委托给提供者的 sign/verify 原语
// - 密钥生成：基于注入随机源的标量生成
//
// 🏗️ **设计原则**
// - 能力注入：提供者在构造时显式传入，不存在进程级单例查找
// - 曲线无关：所有方法以 CurveID 显式标记曲线，杜绝隐式默认
// - 格式中立：提供者只处理原始字节，不感知 WIF/JWK/PEM 等外部格式
//
// 🔗 **组件关系**
// - Provider：被格式编解码器、派生引擎和转换门面使用
// - 格式转换核心永远不直接做椭圆曲线点运算
package crypto

import (
	"github.com/weisyn/keyconv/pkg/types"
)

// Provider 定义格式转换核心依赖的密码学能力集合
//
// 所有方法都是确定性的纯转换（GenerateScalar 除外，它消费注入的随机源）。
// 点的"规范编码"按曲线约定：
//   - secp256k1 / P-256：33字节压缩点
//   - Ed25519：32字节标准公钥编码
type Provider interface {
	// GenerateScalar 生成一个新的合法私钥标量
	//
	// 随机性来自提供者构造时注入的随机源。
	//
	// 返回：
	//   - []byte: 32字节私钥标量
	//   - error: 随机源失败或曲线未注册
	GenerateScalar(curve types.CurveID) ([]byte, error)

	// ValidateScalar 验证私钥标量的有效性
	//
	// 对 ECDSA 曲线检查 0 < scalar < N；对 Ed25519 仅检查长度
	// （任意32字节都是合法种子）。
	ValidateScalar(curve types.CurveID, scalar []byte) error

	// DerivePublicKey 从私钥标量推导规范编码的公钥点
	//
	// 参数：
	//   - curve: 曲线标识
	//   - scalar: 32字节私钥标量
	//
	// 返回：
	//   - []byte: 规范编码的公钥点（33或32字节）
	//   - error: 标量无效或曲线未注册
	DerivePublicKey(curve types.CurveID, scalar []byte) ([]byte, error)

	// NormalizePoint 验证公钥点并转换为规范编码
	//
	// 接受压缩（33字节）、未压缩（65字节）以及 Ed25519 的32字节编码，
	// 验证点确实在曲线上后返回规范形式。
	NormalizePoint(curve types.CurveID, point []byte) ([]byte, error)

	// UncompressPoint 将规范编码的点展开为未压缩形式（0x04 ‖ X ‖ Y，65字节）
	//
	// 仅对 ECDSA 曲线有定义；Ed25519 点没有未压缩表示。
	UncompressPoint(curve types.CurveID, point []byte) ([]byte, error)

	// Sign 使用私钥标量对消息签名
	//
	// ECDSA 曲线先按注册的哈希算法对消息做摘要；Ed25519 直接签名消息。
	Sign(curve types.CurveID, scalar, message []byte) ([]byte, error)

	// Verify 使用公钥点验证签名
	//
	// 返回：
	//   - bool: 签名是否有效
	//   - error: 输入结构错误（与签名无效区分开）
	Verify(curve types.CurveID, point, message, signature []byte) (bool, error)
}
