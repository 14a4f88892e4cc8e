package curve

import (
	"encoding/asn1"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/keyconv/pkg/types"
)

func TestDescribe(t *testing.T) {
	t.Run("secp256k1 的注册参数", func(t *testing.T) {
		d, err := Describe(types.CurveSecp256k1)
		require.NoError(t, err)
		assert.Equal(t, 32, d.ScalarLen)
		assert.Equal(t, 33, d.CompressedPointLen)
		assert.Equal(t, 65, d.UncompressedPointLen)
		assert.Equal(t, PointCompressed, d.Encoding)
		assert.Equal(t, "EC", d.JWKKeyType)
		assert.Equal(t, "secp256k1", d.JWKCurve)
		assert.Equal(t, byte(0x80), d.WIFVersion)
		assert.True(t, d.OID.Equal(OIDSecp256k1))
	})

	t.Run("ed25519 没有未压缩形式", func(t *testing.T) {
		d, err := Describe(types.CurveEd25519)
		require.NoError(t, err)
		assert.Equal(t, 32, d.CompressedPointLen)
		assert.Equal(t, 0, d.UncompressedPointLen)
		assert.Equal(t, PointEdwards, d.Encoding)
		assert.Equal(t, "OKP", d.JWKKeyType)
	})

	t.Run("未注册曲线返回 ErrUnsupportedCurve", func(t *testing.T) {
		_, err := Describe(types.CurveUnknown)
		assert.ErrorIs(t, err, ErrUnsupportedCurve)
	})
}

func TestByJWKCurve(t *testing.T) {
	tests := []struct {
		crv  string
		want types.CurveID
	}{
		{"secp256k1", types.CurveSecp256k1},
		{"P-256", types.CurveP256},
		{"Ed25519", types.CurveEd25519},
	}
	for _, tt := range tests {
		d, err := ByJWKCurve(tt.crv)
		require.NoError(t, err)
		assert.Equal(t, tt.want, d.ID)
	}

	_, err := ByJWKCurve("X25519")
	assert.ErrorIs(t, err, ErrUnsupportedCurve)
}

func TestByWIFVersion(t *testing.T) {
	t.Run("版本字节与曲线一一对应", func(t *testing.T) {
		for _, d := range All() {
			found, err := ByWIFVersion(d.WIFVersion)
			require.NoError(t, err)
			assert.Equal(t, d.ID, found.ID)
		}
	})

	t.Run("未注册版本字节被拒绝", func(t *testing.T) {
		_, err := ByWIFVersion(0xef) // Bitcoin testnet，本系统不注册
		assert.ErrorIs(t, err, ErrUnsupportedCurve)
	})
}

func TestByOID(t *testing.T) {
	d, err := ByOID(asn1.ObjectIdentifier{1, 3, 132, 0, 10})
	require.NoError(t, err)
	assert.Equal(t, types.CurveSecp256k1, d.ID)

	d, err = ByOID(OIDEd25519)
	require.NoError(t, err)
	assert.Equal(t, types.CurveEd25519, d.ID)

	// RSA 算法 OID 不是任何注册曲线
	_, err = ByOID(asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 1})
	assert.ErrorIs(t, err, ErrUnsupportedCurve)
}

func TestAll(t *testing.T) {
	all := All()
	require.Len(t, all, 3)
	// 确定性顺序保证 CLI 输出稳定
	assert.Equal(t, types.CurveSecp256k1, all[0].ID)
	assert.Equal(t, types.CurveP256, all[1].ID)
	assert.Equal(t, types.CurveEd25519, all[2].ID)
}
