package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "treki",
	Short: "Treki 命令行客户端",
	Long: `Treki 是一个构建、发送、记录 HTTP API 请求的工具。

请求定义组织在本地集合树中，发送经由 Treki 服务端代理执行，
执行结果自动记入服务端历史。

Examples:
  treki login -u admin -p 123456
  treki collection add "My APIs"
  treki request add get-users --url https://api.example.com/users
  treki send
  treki history`,
}

// Execute 运行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "输出响应头")
}
