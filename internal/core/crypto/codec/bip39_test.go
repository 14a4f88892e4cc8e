package codec

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/keyconv/pkg/types"
)

// BIP-39 参考助记词（熵全零）及各曲线的确定性派生结果
const (
	testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

	// 种子前32字节，secp256k1 的 mod-N 约减在此处无溢出
	testMnemonicSecpHex = "5eb00bbddcf069084889a8ab9155568165f5c453ccb85e70811aaed6f6da5fc1"
	// Ed25519 直接取种子前32字节
	testMnemonicEdHex = "5eb00bbddcf069084889a8ab9155568165f5c453ccb85e70811aaed6f6da5fc1"
	// P-256 经 HKDF-SHA256 拒绝采样，首个候选即落入群阶
	testMnemonicP256Hex = "fe97ea9afbac152e7ccdd9d0e196a821a90a8f817c85ace77bdf55e56150bf5c"
)

func TestBIP39Codec_Decode(t *testing.T) {
	r := newTestRegistry(t)
	c := testCodec(t, r, types.FormatBIP39)

	t.Run("secp256k1 确定性派生", func(t *testing.T) {
		m, err := c.Decode([]byte(testMnemonic), types.CurveSecp256k1, types.KindUnspecified)
		require.NoError(t, err)
		scalar, err := m.PrivateScalar()
		require.NoError(t, err)
		assert.Equal(t, testMnemonicSecpHex, hex.EncodeToString(scalar))
	})

	t.Run("p-256 确定性派生", func(t *testing.T) {
		m, err := c.Decode([]byte(testMnemonic), types.CurveP256, types.KindUnspecified)
		require.NoError(t, err)
		scalar, err := m.PrivateScalar()
		require.NoError(t, err)
		assert.Equal(t, testMnemonicP256Hex, hex.EncodeToString(scalar))
	})

	t.Run("ed25519 确定性派生", func(t *testing.T) {
		m, err := c.Decode([]byte(testMnemonic), types.CurveEd25519, types.KindUnspecified)
		require.NoError(t, err)
		scalar, err := m.PrivateScalar()
		require.NoError(t, err)
		assert.Equal(t, testMnemonicEdHex, hex.EncodeToString(scalar))
	})

	t.Run("同一短语在不同曲线上产出独立密钥", func(t *testing.T) {
		secp, err := c.Decode([]byte(testMnemonic), types.CurveSecp256k1, types.KindUnspecified)
		require.NoError(t, err)
		p256, err := c.Decode([]byte(testMnemonic), types.CurveP256, types.KindUnspecified)
		require.NoError(t, err)

		a, _ := secp.PrivateScalar()
		b, _ := p256.PrivateScalar()
		assert.NotEqual(t, a, b)
	})

	t.Run("多余空白被规范化", func(t *testing.T) {
		sloppy := "  abandon   abandon abandon\tabandon abandon abandon abandon abandon abandon abandon abandon\nabout "
		m, err := c.Decode([]byte(sloppy), types.CurveSecp256k1, types.KindUnspecified)
		require.NoError(t, err)
		scalar, err := m.PrivateScalar()
		require.NoError(t, err)
		assert.Equal(t, testMnemonicSecpHex, hex.EncodeToString(scalar))
	})

	t.Run("校验和错误的短语返回 ErrMalformedInput", func(t *testing.T) {
		bad := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon"
		_, err := c.Decode([]byte(bad), types.CurveSecp256k1, types.KindUnspecified)
		assert.ErrorIs(t, err, ErrMalformedInput)
	})

	t.Run("词表外单词返回 ErrMalformedInput", func(t *testing.T) {
		bad := "zzz abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
		_, err := c.Decode([]byte(bad), types.CurveSecp256k1, types.KindUnspecified)
		assert.ErrorIs(t, err, ErrMalformedInput)
	})

	t.Run("缺失曲线返回 ErrCurveRequired", func(t *testing.T) {
		_, err := c.Decode([]byte(testMnemonic), types.CurveUnknown, types.KindUnspecified)
		assert.ErrorIs(t, err, ErrCurveRequired)
	})

	t.Run("请求公钥返回 ErrUnsupportedKeyKind", func(t *testing.T) {
		_, err := c.Decode([]byte(testMnemonic), types.CurveSecp256k1, types.KindPublic)
		assert.ErrorIs(t, err, ErrUnsupportedKeyKind)
	})
}

// 助记词导出需要原始熵，任何材料任何种类都不支持
func TestBIP39Codec_EncodeAlwaysFails(t *testing.T) {
	r := newTestRegistry(t)
	c := testCodec(t, r, types.FormatBIP39)
	m := testPrivateMaterial(t)

	for _, kind := range []types.KeyKind{types.KindUnspecified, types.KindPrivate, types.KindPublic} {
		_, err := c.Encode(m, kind)
		assert.ErrorIs(t, err, ErrUnsupportedKeyKind, kind.String())
	}

	assert.False(t, c.Descriptor().Encodable)
}
