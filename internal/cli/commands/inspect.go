package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/weisyn/keyconv/internal/core/crypto/codec"
	"github.com/weisyn/keyconv/internal/core/crypto/curve"
	"github.com/weisyn/keyconv/pkg/types"
)

// newInspectCommand inspect 子命令：判定输入格式并尝试各曲线解码
func newInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [input]",
		Short: "判定输入的格式并列出可成功解码的曲线",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args)
			if err != nil {
				return err
			}
			format := codec.DetectFormat(input)
			pterm.Info.Printfln("检测格式: %s", format)

			rows := pterm.TableData{{"曲线", "解码", "材料"}}
			for _, desc := range curve.All() {
				conv := newConverter()
				if err := conv.Import(input, format, desc.ID); err != nil {
					rows = append(rows, []string{desc.ID.String(), "✗", ""})
					continue
				}
				kind := types.KindPublic.String()
				if conv.Material().HasPrivate() {
					kind = types.KindPrivate.String()
				}
				rows = append(rows, []string{desc.ID.String(), "✓", kind})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
		},
	}
	return cmd
}
