// Package derive 从公钥派生网络专属标识
//
// 三条派生管线都是公钥点的纯函数，互不共享中间状态：
//   - Bitcoin 地址：hash160（SHA-256 + RIPEMD-160）+ Base58Check
//   - Ethereum 地址：Keccak-256 截取末20字节 + EIP-55 混合大小写校验和
//   - IPFS/libp2p Peer ID：libp2p 公钥 protobuf → multihash → CIDv1 multibase
//
// Peer ID 管线串联了三层自描述编码（protobuf、multihash、multibase），
// 字节序和包裹顺序完全委托 go-libp2p / go-cid，避免手工拼接出错。
package derive

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	lcrypto "github.com/libp2p/go-libp2p/core/crypto"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/multiformats/go-multibase"
	"golang.org/x/crypto/ripemd160"

	"github.com/weisyn/keyconv/internal/core/crypto/curve"
	"github.com/weisyn/keyconv/internal/core/crypto/material"
	ifaces "github.com/weisyn/keyconv/pkg/interfaces/crypto"
	"github.com/weisyn/keyconv/pkg/types"
)

// Engine 标识派生引擎
//
// 只读依赖一个密码学提供者（点格式转换），自身无状态。
type Engine struct {
	provider ifaces.Provider
}

// NewEngine 创建派生引擎
func NewEngine(p ifaces.Provider) *Engine {
	return &Engine{provider: p}
}

// BitcoinAddress 派生 Bitcoin 主网 P2PKH 地址
//
// 管线：规范压缩公钥 → SHA-256 → RIPEMD-160 → 版本字节+Base58Check。
// 对所有注册曲线都有定义（hash160 作用在点的字节编码上）。
func (e *Engine) BitcoinAddress(m *material.Material) (string, error) {
	addr, err := btcutil.NewAddressPubKeyHash(hash160(m.PublicPoint()), &chaincfg.MainNetParams)
	if err != nil {
		return "", fmt.Errorf("encode p2pkh address: %w", err)
	}
	return addr.EncodeAddress(), nil
}

// EthereumAddress 派生 EIP-55 校验和格式的 Ethereum 地址
//
// 管线：未压缩公钥去掉 0x04 前缀（X‖Y，64字节）→ Keccak-256 → 末20字节。
// Ed25519 点没有未压缩坐标表示，不支持该派生。
func (e *Engine) EthereumAddress(m *material.Material) (string, error) {
	if m.Curve() == types.CurveEd25519 {
		return "", fmt.Errorf("%w: ethereum address derivation needs affine coordinates", curve.ErrUnsupportedCurve)
	}
	uncompressed, err := e.provider.UncompressPoint(m.Curve(), m.PublicPoint())
	if err != nil {
		return "", fmt.Errorf("uncompress point: %w", err)
	}
	digest := ethcrypto.Keccak256(uncompressed[1:])
	return common.BytesToAddress(digest[12:]).Hex(), nil
}

// PeerID 派生 CIDv1 文本形式的 libp2p Peer ID
//
// 公钥被包进 libp2p 的密钥描述 protobuf，multihash 后以
// libp2p-key 编解码器装配为 CIDv1，multibase base32 输出。
func (e *Engine) PeerID(m *material.Material) (string, error) {
	id, err := e.peerID(m)
	if err != nil {
		return "", err
	}
	return peer.ToCid(id).StringOfBase(multibase.Base32)
}

// LegacyPeerID 派生传统 base58btc 形式的 Peer ID（multihash 文本）
func (e *Engine) LegacyPeerID(m *material.Material) (string, error) {
	id, err := e.peerID(m)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (e *Engine) peerID(m *material.Material) (peer.ID, error) {
	pub, err := e.libp2pPublicKey(m)
	if err != nil {
		return "", err
	}
	id, err := peer.IDFromPublicKey(pub)
	if err != nil {
		return "", fmt.Errorf("derive peer id: %w", err)
	}
	return id, nil
}

// libp2pPublicKey 把规范编码的公钥点装配为 libp2p 公钥对象
func (e *Engine) libp2pPublicKey(m *material.Material) (lcrypto.PubKey, error) {
	point := m.PublicPoint()
	switch m.Curve() {
	case types.CurveSecp256k1:
		return lcrypto.UnmarshalSecp256k1PublicKey(point)
	case types.CurveP256:
		x, y := elliptic.UnmarshalCompressed(elliptic.P256(), point)
		if x == nil {
			return nil, fmt.Errorf("stored P-256 point failed to decompress")
		}
		return lcrypto.ECDSAPublicKeyFromPubKey(ecdsa.PublicKey{Curve: elliptic.P256(), X: x, Y: y})
	case types.CurveEd25519:
		return lcrypto.UnmarshalEd25519PublicKey(point)
	default:
		return nil, fmt.Errorf("%w: %s", curve.ErrUnsupportedCurve, m.Curve())
	}
}

// hash160 RIPEMD160(SHA256(data))
func hash160(data []byte) []byte {
	sha := sha256.Sum256(data)
	h := ripemd160.New()
	h.Write(sha[:])
	return h.Sum(nil)
}
