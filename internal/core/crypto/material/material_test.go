package material

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/keyconv/pkg/types"
)

// 固定 secp256k1 测试密钥对
var (
	testScalar, _ = hex.DecodeString("77076d0a7318a57d3c16c17251b26645df4c2f87ebc0992ab177fba51db92c2a")
	testPoint, _  = hex.DecodeString("025b7032d9b3955e59dfdfc1d56860dc971495246ac027eab148699210e66607ac")
)

func TestFromPrivate(t *testing.T) {
	t.Run("合法标量与点", func(t *testing.T) {
		m, err := FromPrivate(types.CurveSecp256k1, testScalar, testPoint)
		require.NoError(t, err)
		assert.Equal(t, types.CurveSecp256k1, m.Curve())
		assert.True(t, m.HasPrivate())

		scalar, err := m.PrivateScalar()
		require.NoError(t, err)
		assert.Equal(t, testScalar, scalar)
		assert.Equal(t, testPoint, m.PublicPoint())
	})

	t.Run("标量长度错误", func(t *testing.T) {
		_, err := FromPrivate(types.CurveSecp256k1, testScalar[:31], testPoint)
		assert.ErrorIs(t, err, ErrInvalidScalarLength)
	})

	t.Run("点长度错误", func(t *testing.T) {
		_, err := FromPrivate(types.CurveSecp256k1, testScalar, testPoint[:32])
		assert.ErrorIs(t, err, ErrInvalidPointLength)
	})

	t.Run("未注册曲线", func(t *testing.T) {
		_, err := FromPrivate(types.CurveUnknown, testScalar, testPoint)
		assert.Error(t, err)
	})
}

func TestFromPublic(t *testing.T) {
	m, err := FromPublic(types.CurveSecp256k1, testPoint)
	require.NoError(t, err)
	assert.False(t, m.HasPrivate())

	_, err = m.PrivateScalar()
	assert.ErrorIs(t, err, ErrNoPrivateScalar)
}

// 访问器必须返回拷贝，篡改返回值不能影响内部状态
func TestMaterial_DefensiveCopies(t *testing.T) {
	m, err := FromPrivate(types.CurveSecp256k1, testScalar, testPoint)
	require.NoError(t, err)

	scalar, err := m.PrivateScalar()
	require.NoError(t, err)
	scalar[0] ^= 0xff

	again, err := m.PrivateScalar()
	require.NoError(t, err)
	assert.Equal(t, testScalar, again)

	point := m.PublicPoint()
	point[0] ^= 0xff
	assert.Equal(t, testPoint, m.PublicPoint())
}

// 构造入参在构造后被调用方修改也不能影响材料
func TestMaterial_InputIsolation(t *testing.T) {
	scalar := append([]byte(nil), testScalar...)
	point := append([]byte(nil), testPoint...)

	m, err := FromPrivate(types.CurveSecp256k1, scalar, point)
	require.NoError(t, err)

	scalar[0] ^= 0xff
	point[0] ^= 0xff

	got, err := m.PrivateScalar()
	require.NoError(t, err)
	assert.Equal(t, testScalar, got)
	assert.Equal(t, testPoint, m.PublicPoint())
}

func TestMaterial_Equal(t *testing.T) {
	a, err := FromPrivate(types.CurveSecp256k1, testScalar, testPoint)
	require.NoError(t, err)
	b, err := FromPrivate(types.CurveSecp256k1, testScalar, testPoint)
	require.NoError(t, err)
	pub, err := FromPublic(types.CurveSecp256k1, testPoint)
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(pub))
	assert.False(t, a.Equal(nil))
}
