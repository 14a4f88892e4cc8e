package codec

import (
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/keyconv/internal/core/crypto/provider"
	"github.com/weisyn/keyconv/pkg/types"
)

func TestWIFCodec_Decode(t *testing.T) {
	r := newTestRegistry(t)
	c := testCodec(t, r, types.FormatWIF)

	t.Run("固定向量解码", func(t *testing.T) {
		m, err := c.Decode([]byte(testWIF), types.CurveUnknown, types.KindUnspecified)
		require.NoError(t, err)
		assert.Equal(t, types.CurveSecp256k1, m.Curve())

		scalar, err := m.PrivateScalar()
		require.NoError(t, err)
		assert.Equal(t, testScalarHex, hex.EncodeToString(scalar))
		assert.Equal(t, testPointHex, hex.EncodeToString(m.PublicPoint()))
	})

	t.Run("前后空白被容忍", func(t *testing.T) {
		_, err := c.Decode([]byte("  "+testWIF+"\n"), types.CurveUnknown, types.KindUnspecified)
		assert.NoError(t, err)
	})

	t.Run("校验和损坏返回 ErrMalformedInput", func(t *testing.T) {
		corrupted := []byte(testWIF)
		// 翻转中段一个字符（避开前缀，保证仍是合法 base58 字母表）
		if corrupted[20] == 'x' {
			corrupted[20] = 'y'
		} else {
			corrupted[20] = 'x'
		}
		_, err := c.Decode(corrupted, types.CurveUnknown, types.KindUnspecified)
		assert.ErrorIs(t, err, ErrMalformedInput)
	})

	t.Run("非 base58 输入返回 ErrMalformedInput", func(t *testing.T) {
		_, err := c.Decode([]byte("0OIl not base58"), types.CurveUnknown, types.KindUnspecified)
		assert.ErrorIs(t, err, ErrMalformedInput)
	})

	t.Run("期望曲线不符返回 ErrCurveMismatch", func(t *testing.T) {
		_, err := c.Decode([]byte(testWIF), types.CurveP256, types.KindUnspecified)
		assert.ErrorIs(t, err, ErrCurveMismatch)
	})

	t.Run("未注册版本字节返回 ErrMalformedInput", func(t *testing.T) {
		// Bitcoin testnet 的 0xef 不在注册表中
		encoded := base58.CheckEncode(append(mustHex(t, testScalarHex), 0x01), 0xef)
		_, err := c.Decode([]byte(encoded), types.CurveUnknown, types.KindUnspecified)
		assert.ErrorIs(t, err, ErrMalformedInput)
	})

	t.Run("请求公钥返回 ErrUnsupportedKeyKind", func(t *testing.T) {
		_, err := c.Decode([]byte(testWIF), types.CurveUnknown, types.KindPublic)
		assert.ErrorIs(t, err, ErrUnsupportedKeyKind)
	})

	t.Run("无压缩标志的传统 WIF 也能解码", func(t *testing.T) {
		encoded := base58.CheckEncode(mustHex(t, testScalarHex), 0x80)
		m, err := c.Decode([]byte(encoded), types.CurveUnknown, types.KindUnspecified)
		require.NoError(t, err)
		scalar, err := m.PrivateScalar()
		require.NoError(t, err)
		assert.Equal(t, testScalarHex, hex.EncodeToString(scalar))
	})
}

func TestWIFCodec_Encode(t *testing.T) {
	r := newTestRegistry(t)
	c := testCodec(t, r, types.FormatWIF)

	t.Run("固定向量编码", func(t *testing.T) {
		out, err := c.Encode(testPrivateMaterial(t), types.KindPrivate)
		require.NoError(t, err)
		assert.Equal(t, testWIF, string(out))
	})

	t.Run("secp256k1 输出与 btcutil 压缩 WIF 一致", func(t *testing.T) {
		priv, _ := btcec.PrivKeyFromBytes(mustHex(t, testScalarHex))
		wif, err := btcutil.NewWIF(priv, &chaincfg.MainNetParams, true)
		require.NoError(t, err)

		out, err := c.Encode(testPrivateMaterial(t), types.KindPrivate)
		require.NoError(t, err)
		assert.Equal(t, wif.String(), string(out))
	})

	t.Run("仅公钥材料返回 ErrUnsupportedKeyKind", func(t *testing.T) {
		m, err := publicMaterial(provider.New(nil), types.CurveSecp256k1, mustHex(t, testPointHex))
		require.NoError(t, err)
		_, err = c.Encode(m, types.KindPrivate)
		assert.ErrorIs(t, err, ErrUnsupportedKeyKind)

		_, err = c.Encode(m, types.KindPublic)
		assert.ErrorIs(t, err, ErrUnsupportedKeyKind)
	})

	t.Run("三条曲线均可往返", func(t *testing.T) {
		p := provider.New(nil)
		for _, id := range []types.CurveID{types.CurveSecp256k1, types.CurveP256, types.CurveEd25519} {
			scalar, err := p.GenerateScalar(id)
			require.NoError(t, err)
			m, err := privateMaterial(p, id, scalar)
			require.NoError(t, err)

			encoded, err := c.Encode(m, types.KindPrivate)
			require.NoError(t, err, id.String())

			decoded, err := c.Decode(encoded, id, types.KindUnspecified)
			require.NoError(t, err, id.String())
			assert.True(t, m.Equal(decoded), id.String())
		}
	})
}
