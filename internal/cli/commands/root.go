// Package commands 实现 keyconv 命令行的各个子命令
//
// 所有子命令共享同一套输入约定：密钥数据来自位置参数、--in 文件
// 或标准输入（按此优先级）。结果写标准输出，日志走标准错误，
// 二者互不污染，方便在管道中组合使用。
package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/weisyn/keyconv/internal/core/crypto/converter"
	"github.com/weisyn/keyconv/internal/core/crypto/provider"
	"github.com/weisyn/keyconv/pkg/types"
)

// rootFlags 全局选项
type rootFlags struct {
	verbose bool
	inFile  string
}

var flags rootFlags

// NewRootCommand 装配命令树
func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:           "keyconv",
		Short:         "椭圆曲线密钥格式转换工具",
		Long:          "keyconv 在 raw/hex/WIF/BIP-39/JWK/PKCS#8 之间转换密钥，并派生 Bitcoin、Ethereum 地址和 IPFS Peer ID。",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "输出调试日志到标准错误")
	root.PersistentFlags().StringVar(&flags.inFile, "in", "", "从文件读取密钥数据")

	root.AddCommand(newConvertCommand())
	root.AddCommand(newDeriveCommand())
	root.AddCommand(newGenerateCommand())
	root.AddCommand(newInspectCommand())
	return root
}

// newConverter 按全局选项装配门面
func newConverter() *converter.Converter {
	opts := []converter.Option{}
	if flags.verbose {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger().Level(zerolog.DebugLevel)
		opts = append(opts, converter.WithLogger(logger))
	}
	return converter.New(provider.New(nil), opts...)
}

// readInput 读取密钥数据：位置参数 > --in 文件 > 标准输入
func readInput(args []string) ([]byte, error) {
	if len(args) > 0 {
		return []byte(args[0]), nil
	}
	if flags.inFile != "" {
		data, err := os.ReadFile(flags.inFile)
		if err != nil {
			return nil, fmt.Errorf("读取输入文件失败: %w", err)
		}
		return data, nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("读取标准输入失败: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("未提供密钥数据（参数、--in 或标准输入）")
	}
	return data, nil
}

// parseCurveFlag 解析 --curve，空值返回 CurveUnknown
func parseCurveFlag(s string) (types.CurveID, error) {
	if strings.TrimSpace(s) == "" {
		return types.CurveUnknown, nil
	}
	return types.ParseCurveID(s)
}
