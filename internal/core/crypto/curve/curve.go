// Package curve 维护受支持椭圆曲线的静态注册表
//
// 注册表在进程启动时固定，之后只读，不需要任何锁。
// 每条记录描述一条曲线的字节长度、点编码规则和关联的哈希算法，
// 格式编解码器和派生引擎都以它为唯一事实来源。
package curve

import (
	"encoding/asn1"
	"errors"
	"fmt"

	"github.com/weisyn/keyconv/pkg/types"
)

// ErrUnsupportedCurve 未注册的曲线标识
var ErrUnsupportedCurve = errors.New("unsupported curve")

// HashAlgorithm 曲线签名使用的摘要算法
type HashAlgorithm uint8

const (
	// HashSHA256 ECDSA 曲线的消息摘要
	HashSHA256 HashAlgorithm = iota + 1
	// HashSHA512 Ed25519 内部使用的摘要（签名时不做预哈希）
	HashSHA512
)

// PointEncoding 公钥点的规范编码形式
type PointEncoding uint8

const (
	// PointCompressed SEC1 压缩编码（0x02/0x03 前缀 + X 坐标）
	PointCompressed PointEncoding = iota + 1
	// PointEdwards Ed25519 的32字节标准编码
	PointEdwards
)

// Descriptor 一条曲线的静态描述
type Descriptor struct {
	// ID 曲线标识
	ID types.CurveID
	// ScalarLen 私钥标量字节长度
	ScalarLen int
	// CompressedPointLen 规范编码公钥点的字节长度
	CompressedPointLen int
	// UncompressedPointLen 未压缩点（0x04 ‖ X ‖ Y）的字节长度，Ed25519 为 0
	UncompressedPointLen int
	// Hash 签名使用的摘要算法
	Hash HashAlgorithm
	// Encoding 公钥点的规范编码形式
	Encoding PointEncoding
	// JWKKeyType RFC 7517 的 kty 成员（"EC" 或 "OKP"）
	JWKKeyType string
	// JWKCurve RFC 7517 的 crv 成员
	JWKCurve string
	// WIFVersion WIF 载荷的曲线标记版本字节
	//
	// secp256k1 使用 Bitcoin 主网的 0x80；其余曲线使用本系统扩展的
	// 版本字节，使 WIF 无法被静默导入到错误的曲线上。
	WIFVersion byte
	// OID PKCS#8/SPKI 算法标识中的命名曲线 OID（Ed25519 直接作为算法 OID）
	OID asn1.ObjectIdentifier
}

// 命名曲线 / 算法 OID
var (
	// OIDECPublicKey id-ecPublicKey (1.2.840.10045.2.1)
	OIDECPublicKey = asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}
	// OIDSecp256k1 1.3.132.0.10
	OIDSecp256k1 = asn1.ObjectIdentifier{1, 3, 132, 0, 10}
	// OIDP256 prime256v1 (1.2.840.10045.3.1.7)
	OIDP256 = asn1.ObjectIdentifier{1, 2, 840, 10045, 3, 1, 7}
	// OIDEd25519 id-Ed25519 (1.3.101.112)
	OIDEd25519 = asn1.ObjectIdentifier{1, 3, 101, 112}
)

// registry 进程级只读注册表
var registry = map[types.CurveID]Descriptor{
	types.CurveSecp256k1: {
		ID:                   types.CurveSecp256k1,
		ScalarLen:            32,
		CompressedPointLen:   33,
		UncompressedPointLen: 65,
		Hash:                 HashSHA256,
		Encoding:             PointCompressed,
		JWKKeyType:           "EC",
		JWKCurve:             "secp256k1",
		WIFVersion:           0x80,
		OID:                  OIDSecp256k1,
	},
	types.CurveP256: {
		ID:                   types.CurveP256,
		ScalarLen:            32,
		CompressedPointLen:   33,
		UncompressedPointLen: 65,
		Hash:                 HashSHA256,
		Encoding:             PointCompressed,
		JWKKeyType:           "EC",
		JWKCurve:             "P-256",
		WIFVersion:           0x81,
		OID:                  OIDP256,
	},
	types.CurveEd25519: {
		ID:                   types.CurveEd25519,
		ScalarLen:            32,
		CompressedPointLen:   32,
		UncompressedPointLen: 0,
		Hash:                 HashSHA512,
		Encoding:             PointEdwards,
		JWKKeyType:           "OKP",
		JWKCurve:             "Ed25519",
		WIFVersion:           0x82,
		OID:                  OIDEd25519,
	},
}

// Describe 查询曲线描述
//
// 返回：
//   - Descriptor: 曲线的静态描述（值拷贝，调用方可安全持有）
//   - error: 曲线未注册时返回 ErrUnsupportedCurve
func Describe(id types.CurveID) (Descriptor, error) {
	d, ok := registry[id]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrUnsupportedCurve, id)
	}
	return d, nil
}

// ByJWKCurve 按 JWK 的 crv 成员反查曲线
func ByJWKCurve(crv string) (Descriptor, error) {
	for _, d := range registry {
		if d.JWKCurve == crv {
			return d, nil
		}
	}
	return Descriptor{}, fmt.Errorf("%w: jwk crv %q", ErrUnsupportedCurve, crv)
}

// ByWIFVersion 按 WIF 版本字节反查曲线
func ByWIFVersion(version byte) (Descriptor, error) {
	for _, d := range registry {
		if d.WIFVersion == version {
			return d, nil
		}
	}
	return Descriptor{}, fmt.Errorf("%w: wif version 0x%02x", ErrUnsupportedCurve, version)
}

// ByOID 按命名曲线 / 算法 OID 反查曲线
func ByOID(oid asn1.ObjectIdentifier) (Descriptor, error) {
	for _, d := range registry {
		if d.OID.Equal(oid) {
			return d, nil
		}
	}
	return Descriptor{}, fmt.Errorf("%w: oid %v", ErrUnsupportedCurve, oid)
}

// All 返回所有已注册曲线（确定性顺序）
func All() []Descriptor {
	ids := []types.CurveID{types.CurveSecp256k1, types.CurveP256, types.CurveEd25519}
	out := make([]Descriptor, 0, len(ids))
	for _, id := range ids {
		out = append(out, registry[id])
	}
	return out
}
