// Package material 定义曲线标记的内部密钥表示
//
// Material 是格式转换的中心实体：每次成功导入恰好创建一份，
// 构造后不可变；替换密钥时创建新实例而不是原地修改。
//
// 不变量：持有私钥标量时，公钥点必须是其正确的推导结果。
// 构造函数只做结构校验，推导本身由编解码器通过密码学提供者完成，
// 外部格式里携带的公钥永远不会被直接采信。
package material

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/weisyn/keyconv/internal/core/crypto/curve"
	"github.com/weisyn/keyconv/pkg/types"
)

var (
	// ErrInvalidScalarLength 私钥标量长度与曲线注册值不符
	ErrInvalidScalarLength = errors.New("invalid private scalar length")
	// ErrInvalidPointLength 公钥点长度与曲线规范编码不符
	ErrInvalidPointLength = errors.New("invalid public point length")
	// ErrNoPrivateScalar 材料不包含私钥
	ErrNoPrivateScalar = errors.New("material holds no private scalar")
)

// Material 曲线标记的密钥材料
//
// 字段全部私有，只能经构造函数创建；访问器返回防御性拷贝，
// 调用方无法通过返回的切片篡改内部状态。
type Material struct {
	curveID       types.CurveID
	privateScalar []byte // 可能为 nil（仅公钥材料）
	publicPoint   []byte // 规范编码，始终存在
}

// FromPrivate 用私钥标量和已推导的公钥点构造材料
//
// point 必须是调用方刚刚通过提供者从 scalar 推导出的规范编码点；
// 长度与曲线注册表校验不符时拒绝。
func FromPrivate(id types.CurveID, scalar, point []byte) (*Material, error) {
	desc, err := curve.Describe(id)
	if err != nil {
		return nil, err
	}
	if len(scalar) != desc.ScalarLen {
		return nil, fmt.Errorf("%w: curve %s wants %d bytes, got %d",
			ErrInvalidScalarLength, id, desc.ScalarLen, len(scalar))
	}
	if len(point) != desc.CompressedPointLen {
		return nil, fmt.Errorf("%w: curve %s wants %d bytes, got %d",
			ErrInvalidPointLength, id, desc.CompressedPointLen, len(point))
	}
	return &Material{
		curveID:       id,
		privateScalar: bytes.Clone(scalar),
		publicPoint:   bytes.Clone(point),
	}, nil
}

// FromPublic 构造仅包含公钥的材料
func FromPublic(id types.CurveID, point []byte) (*Material, error) {
	desc, err := curve.Describe(id)
	if err != nil {
		return nil, err
	}
	if len(point) != desc.CompressedPointLen {
		return nil, fmt.Errorf("%w: curve %s wants %d bytes, got %d",
			ErrInvalidPointLength, id, desc.CompressedPointLen, len(point))
	}
	return &Material{
		curveID:     id,
		publicPoint: bytes.Clone(point),
	}, nil
}

// Curve 返回曲线标识
func (m *Material) Curve() types.CurveID {
	return m.curveID
}

// HasPrivate 是否持有私钥标量
func (m *Material) HasPrivate() bool {
	return m.privateScalar != nil
}

// PrivateScalar 返回私钥标量的拷贝
func (m *Material) PrivateScalar() ([]byte, error) {
	if m.privateScalar == nil {
		return nil, ErrNoPrivateScalar
	}
	return bytes.Clone(m.privateScalar), nil
}

// PublicPoint 返回规范编码公钥点的拷贝
func (m *Material) PublicPoint() []byte {
	return bytes.Clone(m.publicPoint)
}

// Equal 比较两份材料的曲线和密钥字节是否一致
func (m *Material) Equal(other *Material) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.curveID == other.curveID &&
		bytes.Equal(m.privateScalar, other.privateScalar) &&
		bytes.Equal(m.publicPoint, other.publicPoint)
}
