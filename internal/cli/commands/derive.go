package commands

import (
	"errors"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/weisyn/keyconv/internal/core/crypto/curve"
)

// newDeriveCommand derive 子命令：公钥 → 网络标识
func newDeriveCommand() *cobra.Command {
	var (
		fromFlag  string
		curveFlag string
	)
	cmd := &cobra.Command{
		Use:   "derive [input]",
		Short: "从密钥派生 Bitcoin/Ethereum 地址和 IPFS Peer ID",
		Example: `  keyconv derive --curve secp256k1 --from hex 025b7032d9...
  keyconv derive --from jwk --in key.jwk`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args)
			if err != nil {
				return err
			}
			curveID, err := parseCurveFlag(curveFlag)
			if err != nil {
				return err
			}
			from, err := resolveFormat(fromFlag, input)
			if err != nil {
				return err
			}

			conv := newConverter()
			if err := conv.Import(input, from, curveID); err != nil {
				return err
			}

			rows := pterm.TableData{{"标识", "值"}}
			if btc, err := conv.BitcoinAddress(); err == nil {
				rows = append(rows, []string{"Bitcoin", btc})
			}
			switch eth, err := conv.EthereumAddress(); {
			case err == nil:
				rows = append(rows, []string{"Ethereum", eth})
			case errors.Is(err, curve.ErrUnsupportedCurve):
				rows = append(rows, []string{"Ethereum", "（该曲线不支持）"})
			default:
				return err
			}
			if pid, err := conv.IPFSPeerID(); err == nil {
				rows = append(rows, []string{"Peer ID (CIDv1)", pid})
			}
			if legacy, err := conv.LegacyPeerID(); err == nil {
				rows = append(rows, []string{"Peer ID (legacy)", legacy})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
		},
	}
	cmd.Flags().StringVar(&fromFlag, "from", "auto", "输入格式 (raw|hex|wif|bip39|jwk|pkcs8|auto)")
	cmd.Flags().StringVar(&curveFlag, "curve", "", "曲线 (secp256k1|p-256|ed25519)，自描述格式可省略")
	return cmd
}
