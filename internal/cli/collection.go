package cli

import (
	"fmt"
	"os"

	"treki/internal/workspace"

	"github.com/spf13/cobra"
)

var collectionParent string

func init() {
	collectionCmd := &cobra.Command{
		Use:     "collection",
		Aliases: []string{"col"},
		Short:   "管理本地集合树",
	}

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "新建集合",
		Args:  cobra.ExactArgs(1),
		Run:   runCollectionAdd,
	}
	addCmd.Flags().StringVar(&collectionParent, "parent", "", "父集合ID")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "列出集合树",
		Run:   runCollectionList,
	}

	renameCmd := &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "重命名集合",
		Args:  cobra.ExactArgs(2),
		Run:   runCollectionRename,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "删除集合（子集合上移到父节点）",
		Args:  cobra.ExactArgs(1),
		Run:   runCollectionDelete,
	}

	moveCmd := &cobra.Command{
		Use:   "move <id> [parent-id]",
		Short: "改挂集合到其他父节点，省略父节点则上移到根",
		Args:  cobra.RangeArgs(1, 2),
		Run:   runCollectionMove,
	}

	useCmd := &cobra.Command{
		Use:   "use <id>",
		Short: "切换激活集合",
		Args:  cobra.ExactArgs(1),
		Run:   runCollectionUse,
	}

	collectionCmd.AddCommand(addCmd, listCmd, renameCmd, moveCmd, deleteCmd, useCmd)
	rootCmd.AddCommand(collectionCmd)
}

func runCollectionAdd(cmd *cobra.Command, args []string) {
	store, err := openStore()
	if err != nil {
		printError(fmt.Sprintf("打开工作区失败: %v", err))
		os.Exit(1)
	}
	defer store.Close()

	col, err := store.AddCollection(args[0], collectionParent)
	if err != nil {
		printError(fmt.Sprintf("创建集合失败: %v", err))
		os.Exit(1)
	}
	printSuccess(fmt.Sprintf("已创建集合 '%s' (%s)", col.Name, col.ID))
}

func runCollectionList(cmd *cobra.Command, args []string) {
	store, err := openStore()
	if err != nil {
		printError(fmt.Sprintf("打开工作区失败: %v", err))
		os.Exit(1)
	}
	defer store.Close()

	printCollectionTree(store.Collections(), store.ActiveRequestID())
}

func runCollectionRename(cmd *cobra.Command, args []string) {
	store, err := openStore()
	if err != nil {
		printError(fmt.Sprintf("打开工作区失败: %v", err))
		os.Exit(1)
	}
	defer store.Close()

	if err := store.UpdateCollection(args[0], &workspace.CollectionPatch{Name: &args[1]}); err != nil {
		printError(fmt.Sprintf("重命名失败: %v", err))
		os.Exit(1)
	}
	printSuccess("已重命名")
}

func runCollectionMove(cmd *cobra.Command, args []string) {
	store, err := openStore()
	if err != nil {
		printError(fmt.Sprintf("打开工作区失败: %v", err))
		os.Exit(1)
	}
	defer store.Close()

	parentID := ""
	if len(args) == 2 {
		parentID = args[1]
	}
	if err := store.UpdateCollection(args[0], &workspace.CollectionPatch{ParentID: &parentID}); err != nil {
		printError(fmt.Sprintf("移动失败: %v", err))
		os.Exit(1)
	}
	printSuccess("已移动集合")
}

func runCollectionDelete(cmd *cobra.Command, args []string) {
	store, err := openStore()
	if err != nil {
		printError(fmt.Sprintf("打开工作区失败: %v", err))
		os.Exit(1)
	}
	defer store.Close()

	if err := store.DeleteCollection(args[0]); err != nil {
		printError(fmt.Sprintf("删除失败: %v", err))
		os.Exit(1)
	}
	printSuccess("已删除集合")
}

func runCollectionUse(cmd *cobra.Command, args []string) {
	store, err := openStore()
	if err != nil {
		printError(fmt.Sprintf("打开工作区失败: %v", err))
		os.Exit(1)
	}
	defer store.Close()

	if err := store.SetActiveCollection(args[0]); err != nil {
		printError(fmt.Sprintf("切换失败: %v", err))
		os.Exit(1)
	}
	printSuccess("已切换激活集合")
}
