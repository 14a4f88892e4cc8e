package derive

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/keyconv/internal/core/crypto/curve"
	"github.com/weisyn/keyconv/internal/core/crypto/material"
	"github.com/weisyn/keyconv/internal/core/crypto/provider"
	"github.com/weisyn/keyconv/pkg/types"
)

// 固定 secp256k1 密钥对及其全部派生标识
const (
	testScalarHex  = "77076d0a7318a57d3c16c17251b26645df4c2f87ebc0992ab177fba51db92c2a"
	testPointHex   = "025b7032d9b3955e59dfdfc1d56860dc971495246ac027eab148699210e66607ac"
	testBTCAddress = "17dGjSamNR9Pm2bBxofBER4SjWgBMr9Cyp"
	testETHAddress = "0xB4982D7f99174aEc0dc624866B6ba2Fa512E762b"
	testPeerID     = "bafzaajiiaijccas3oazntm4vlzm57x6b2vugbxexcsksi2wae7vlcsdjsiiomzqhvq"
	testLegacyPeer = "16Uiu2HAm1acJuYKidNJMSSiqjdm2n6pzJjF3jSTDhme4H6L2G34o"
)

func testMaterial(t *testing.T, id types.CurveID) *material.Material {
	t.Helper()
	p := provider.New(nil)
	scalar, err := hex.DecodeString(testScalarHex)
	require.NoError(t, err)
	point, err := p.DerivePublicKey(id, scalar)
	require.NoError(t, err)
	m, err := material.FromPrivate(id, scalar, point)
	require.NoError(t, err)
	return m
}

func TestEngine_BitcoinAddress(t *testing.T) {
	e := NewEngine(provider.New(nil))

	t.Run("secp256k1 固定向量", func(t *testing.T) {
		addr, err := e.BitcoinAddress(testMaterial(t, types.CurveSecp256k1))
		require.NoError(t, err)
		assert.Equal(t, testBTCAddress, addr)
	})

	t.Run("派生对全部曲线有定义", func(t *testing.T) {
		for _, id := range []types.CurveID{types.CurveSecp256k1, types.CurveP256, types.CurveEd25519} {
			addr, err := e.BitcoinAddress(testMaterial(t, id))
			require.NoError(t, err, id.String())
			assert.Equal(t, byte('1'), addr[0], id.String()) // 主网 P2PKH 前缀
		}
	})

	t.Run("仅公钥材料同样可派生", func(t *testing.T) {
		p := provider.New(nil)
		point, err := hex.DecodeString(testPointHex)
		require.NoError(t, err)
		canonical, err := p.NormalizePoint(types.CurveSecp256k1, point)
		require.NoError(t, err)
		m, err := material.FromPublic(types.CurveSecp256k1, canonical)
		require.NoError(t, err)

		addr, err := e.BitcoinAddress(m)
		require.NoError(t, err)
		assert.Equal(t, testBTCAddress, addr)
	})
}

func TestEngine_EthereumAddress(t *testing.T) {
	e := NewEngine(provider.New(nil))

	t.Run("secp256k1 固定向量（EIP-55 大小写）", func(t *testing.T) {
		addr, err := e.EthereumAddress(testMaterial(t, types.CurveSecp256k1))
		require.NoError(t, err)
		assert.Equal(t, testETHAddress, addr)
	})

	t.Run("p-256 可派生", func(t *testing.T) {
		addr, err := e.EthereumAddress(testMaterial(t, types.CurveP256))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(addr, "0x"))
		assert.Len(t, addr, 42)
	})

	t.Run("ed25519 不支持", func(t *testing.T) {
		_, err := e.EthereumAddress(testMaterial(t, types.CurveEd25519))
		assert.ErrorIs(t, err, curve.ErrUnsupportedCurve)
	})
}

func TestEngine_PeerID(t *testing.T) {
	e := NewEngine(provider.New(nil))

	t.Run("secp256k1 固定向量（CIDv1 base32）", func(t *testing.T) {
		id, err := e.PeerID(testMaterial(t, types.CurveSecp256k1))
		require.NoError(t, err)
		assert.Equal(t, testPeerID, id)
	})

	t.Run("secp256k1 传统 base58 形式", func(t *testing.T) {
		id, err := e.LegacyPeerID(testMaterial(t, types.CurveSecp256k1))
		require.NoError(t, err)
		assert.Equal(t, testLegacyPeer, id)
	})

	t.Run("全部曲线可派生", func(t *testing.T) {
		for _, id := range []types.CurveID{types.CurveSecp256k1, types.CurveP256, types.CurveEd25519} {
			peerID, err := e.PeerID(testMaterial(t, id))
			require.NoError(t, err, id.String())
			// multibase base32 前缀
			assert.Equal(t, byte('b'), peerID[0], id.String())
		}
	})

	t.Run("派生是确定性的", func(t *testing.T) {
		m := testMaterial(t, types.CurveEd25519)
		first, err := e.PeerID(m)
		require.NoError(t, err)
		second, err := e.PeerID(m)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}
