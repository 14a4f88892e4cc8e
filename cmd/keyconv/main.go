// keyconv 椭圆曲线密钥格式转换工具
//
// 用法示例：
//
//	keyconv convert --from hex --to wif --curve secp256k1 <hex>
//	keyconv derive --from auto --in key.pem
//	keyconv generate --curve ed25519 --to pkcs8
package main

import (
	"os"

	"github.com/pterm/pterm"

	"github.com/weisyn/keyconv/internal/cli/commands"
)

// version 构建时经 -ldflags 注入
var version = "dev"

func main() {
	root := commands.NewRootCommand(version)
	if err := root.Execute(); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}
