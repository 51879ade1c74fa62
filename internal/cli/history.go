package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "查看服务端调用历史",
		Run:   runHistoryList,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "删除单条历史",
		Args:  cobra.ExactArgs(1),
		Run:   runHistoryDelete,
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "清空全部历史",
		Run:   runHistoryClear,
	}

	historyCmd.AddCommand(deleteCmd, clearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) {
	entries, err := newClient().ListHistory(cmd.Context())
	if err != nil {
		printError(fmt.Sprintf("获取历史失败: %v", err))
		os.Exit(1)
	}
	printHistoryList(entries)
}

func runHistoryDelete(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		printError(fmt.Sprintf("无效的历史ID: %s", args[0]))
		os.Exit(1)
	}

	if err := newClient().DeleteHistory(cmd.Context(), uint(id)); err != nil {
		printError(fmt.Sprintf("删除失败: %v", err))
		os.Exit(1)
	}
	printSuccess("已删除")
}

func runHistoryClear(cmd *cobra.Command, args []string) {
	if err := newClient().ClearHistory(cmd.Context()); err != nil {
		printError(fmt.Sprintf("清空失败: %v", err))
		os.Exit(1)
	}
	printSuccess("历史已清空")
}
