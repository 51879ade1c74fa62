package cli

import (
	"fmt"
	"os"

	"treki/internal/pipeline"

	"github.com/spf13/cobra"
)

func init() {
	sendCmd := &cobra.Command{
		Use:   "send [request-id]",
		Short: "经服务端代理执行请求，缺省执行激活请求",
		Args:  cobra.MaximumNArgs(1),
		Run:   runSend,
	}
	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, args []string) {
	store, err := openStore()
	if err != nil {
		printError(fmt.Sprintf("打开工作区失败: %v", err))
		os.Exit(1)
	}
	defer store.Close()

	id := store.ActiveRequestID()
	if len(args) == 1 {
		id = args[0]
	}
	if id == "" {
		printError("没有激活的请求，先执行 treki request use <id>")
		os.Exit(1)
	}

	req, _ := store.FindRequest(id)
	if req == nil {
		printError(fmt.Sprintf("请求不存在: %s", id))
		os.Exit(1)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")

	// 传输层失败也会落成 status=0 的占位结果，不中断输出
	envelope := pipeline.Execute(cmd.Context(), newClient(), req)
	printEnvelope(envelope, verbose)
}
