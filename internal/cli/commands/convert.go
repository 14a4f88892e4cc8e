package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/weisyn/keyconv/internal/core/crypto/codec"
	"github.com/weisyn/keyconv/pkg/types"
)

// newConvertCommand convert 子命令：格式 A → 格式 B
func newConvertCommand() *cobra.Command {
	var (
		fromFlag  string
		toFlag    string
		curveFlag string
		kindFlag  string
	)
	cmd := &cobra.Command{
		Use:   "convert [input]",
		Short: "在两种密钥格式之间转换",
		Example: `  keyconv convert --from hex --to wif --curve secp256k1 77076d0a...
  keyconv convert --from auto --to jwk --curve ed25519 --in key.pem
  cat key.pem | keyconv convert --from pkcs8 --to hex --kind public`,
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
			to, err := types.ParseFormat(toFlag)
			if err != nil {
				return err
			}
			kind := types.KindPrivate
			if kindFlag != "" {
				if kind, err = types.ParseKeyKind(kindFlag); err != nil {
					return err
				}
			}

			conv := newConverter()
			if err := conv.Import(input, from, curveID); err != nil {
				return err
			}
			// 导入的是纯公钥材料时自动降级为公钥导出
			if kindFlag == "" && !conv.Material().HasPrivate() {
				kind = types.KindPublic
			}
			out, err := conv.Export(to, kind)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, string(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&fromFlag, "from", "auto", "输入格式 (raw|hex|wif|bip39|jwk|pkcs8|auto)")
	cmd.Flags().StringVar(&toFlag, "to", "", "输出格式 (raw|hex|wif|jwk|pkcs8)")
	cmd.Flags().StringVar(&curveFlag, "curve", "", "曲线 (secp256k1|p-256|ed25519)，自描述格式可省略")
	cmd.Flags().StringVar(&kindFlag, "kind", "", "导出种类 (private|public)，默认跟随材料")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

// resolveFormat 解析 --from，"auto" 走显式的结构判定
func resolveFormat(s string, input []byte) (types.Format, error) {
	if s == "" || s == "auto" {
		return codec.DetectFormat(input), nil
	}
	return types.ParseFormat(s)
}
