package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/weisyn/keyconv/pkg/types"
)

// newGenerateCommand generate 子命令：生成新密钥
func newGenerateCommand() *cobra.Command {
	var (
		curveFlag string
		toFlag    string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "生成新密钥并按指定格式输出",
		Example: `  keyconv generate --curve secp256k1 --to wif
  keyconv generate --curve ed25519 --to pkcs8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			curveID, err := types.ParseCurveID(curveFlag)
			if err != nil {
				return err
			}
			to, err := types.ParseFormat(toFlag)
			if err != nil {
				return err
			}

			conv := newConverter()
			if err := conv.Generate(curveID); err != nil {
				return err
			}
			out, err := conv.Export(to, types.KindPrivate)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, string(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&curveFlag, "curve", "secp256k1", "曲线 (secp256k1|p-256|ed25519)")
	cmd.Flags().StringVar(&toFlag, "to", "hex", "输出格式 (raw|hex|wif|jwk|pkcs8)")
	return cmd
}
