package cli

import (
	"fmt"
	"os"
	"strings"

	"treki/internal/types"
	"treki/internal/workspace"

	"github.com/spf13/cobra"
)

var (
	reqCollection string
	reqMethod     string
	reqURL        string
	reqName       string
	reqHeaders    []string
	reqParams     []string
	reqBody       string
	reqBodyType   string
	reqAuthType   string
	reqAuthUser   string
	reqAuthPass   string
	reqAuthToken  string
	reqAuthKey    string
	reqAuthValue  string
	reqAuthAddTo  string
	reqSuggest    []string
)

func init() {
	requestCmd := &cobra.Command{
		Use:     "request",
		Aliases: []string{"req"},
		Short:   "管理集合中的请求定义",
	}

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "在激活集合下新建请求",
		Args:  cobra.ExactArgs(1),
		Run:   runRequestAdd,
	}
	addCmd.Flags().StringVarP(&reqCollection, "collection", "c", "", "目标集合ID，默认为激活集合")
	addCmd.Flags().StringVarP(&reqMethod, "method", "m", "", "HTTP方法")
	addCmd.Flags().StringVar(&reqURL, "url", "", "请求URL")

	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "修改请求定义",
		Args:  cobra.ExactArgs(1),
		Run:   runRequestEdit,
	}
	addEditFlags(editCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "列出集合下的请求",
		Args:  cobra.NoArgs,
		Run:   runRequestList,
	}
	listCmd.Flags().StringVarP(&reqCollection, "collection", "c", "", "集合ID，默认为激活集合")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "删除请求定义",
		Args:  cobra.ExactArgs(1),
		Run:   runRequestDelete,
	}

	useCmd := &cobra.Command{
		Use:   "use <id>",
		Short: "切换激活请求",
		Args:  cobra.ExactArgs(1),
		Run:   runRequestUse,
	}

	suggestCmd := &cobra.Command{
		Use:   "suggest <id>",
		Short: "列出请求尚未使用的常用请求头",
		Args:  cobra.ExactArgs(1),
		Run:   runRequestSuggest,
	}

	requestCmd.AddCommand(addCmd, listCmd, editCmd, deleteCmd, useCmd, suggestCmd)
	rootCmd.AddCommand(requestCmd)
}

func addEditFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&reqName, "name", "", "请求名")
	cmd.Flags().StringVarP(&reqMethod, "method", "m", "", "HTTP方法")
	cmd.Flags().StringVar(&reqURL, "url", "", "请求URL")
	cmd.Flags().StringArrayVarP(&reqHeaders, "header", "H", nil, "请求头 'Key: Value'，可重复")
	cmd.Flags().StringArrayVarP(&reqParams, "param", "q", nil, "查询参数 'key=value'，可重复")
	cmd.Flags().StringVarP(&reqBody, "body", "d", "", "请求体内容")
	cmd.Flags().StringVar(&reqBodyType, "body-type", "", "请求体类型: none, json, form-data, x-www-form-urlencoded")
	cmd.Flags().StringVar(&reqAuthType, "auth", "", "认证类型: none, basic, bearer, apikey")
	cmd.Flags().StringVar(&reqAuthUser, "auth-user", "", "basic 用户名")
	cmd.Flags().StringVar(&reqAuthPass, "auth-pass", "", "basic 密码")
	cmd.Flags().StringVar(&reqAuthToken, "auth-token", "", "bearer 令牌")
	cmd.Flags().StringVar(&reqAuthKey, "auth-key", "", "apikey 键名")
	cmd.Flags().StringVar(&reqAuthValue, "auth-value", "", "apikey 键值")
	cmd.Flags().StringVar(&reqAuthAddTo, "auth-add-to", "header", "apikey 位置: header, query")
	cmd.Flags().StringArrayVar(&reqSuggest, "suggest", nil, "按键名套用常用请求头建议，可重复")
}

func runRequestAdd(cmd *cobra.Command, args []string) {
	store, err := openStore()
	if err != nil {
		printError(fmt.Sprintf("打开工作区失败: %v", err))
		os.Exit(1)
	}
	defer store.Close()

	collectionID := reqCollection
	if collectionID == "" {
		collectionID = store.ActiveCollectionID()
	}
	if collectionID == "" {
		printError("没有可用的集合，先执行 treki collection add")
		os.Exit(1)
	}

	req, err := store.AddRequest(collectionID, args[0])
	if err != nil {
		printError(fmt.Sprintf("创建请求失败: %v", err))
		os.Exit(1)
	}
	if req == nil {
		printError("集合不存在")
		os.Exit(1)
	}

	if reqMethod != "" || reqURL != "" {
		patch := &workspace.RequestPatch{}
		if reqMethod != "" {
			m := strings.ToUpper(reqMethod)
			patch.Method = &m
		}
		if reqURL != "" {
			patch.URL = &reqURL
		}
		if err := store.UpdateRequest(req.ID, patch); err != nil {
			printError(fmt.Sprintf("写入请求失败: %v", err))
			os.Exit(1)
		}
	}
	printSuccess(fmt.Sprintf("已创建请求 '%s' (%s)", req.Name, req.ID))
}

func runRequestEdit(cmd *cobra.Command, args []string) {
	store, err := openStore()
	if err != nil {
		printError(fmt.Sprintf("打开工作区失败: %v", err))
		os.Exit(1)
	}
	defer store.Close()

	editor := workspace.NewEditor(store, editorDelay())
	if err := editor.Open(args[0]); err != nil {
		printError(fmt.Sprintf("请求不存在: %s", args[0]))
		os.Exit(1)
	}

	if cmd.Flags().Changed("name") {
		editor.SetName(reqName)
	}
	if reqMethod != "" {
		editor.SetMethod(strings.ToUpper(reqMethod))
	}
	if reqURL != "" {
		editor.SetURL(reqURL)
	}
	applyRowFlags(editor)
	for _, name := range reqSuggest {
		if !editor.ApplyHeaderSuggestion(name) {
			printError(fmt.Sprintf("未套用建议头 %s（无此建议或已存在）", name))
		}
	}
	applyBodyFlags(cmd, editor)
	applyAuthFlags(editor)

	if err := editor.Commit(); err != nil {
		printError(fmt.Sprintf("保存失败: %v", err))
		os.Exit(1)
	}
	printSuccess("已保存")
}

// applyRowFlags 把 -H / -q 追加进编辑缓冲的尾部空白行
func applyRowFlags(editor *workspace.Editor) {
	for _, h := range reqHeaders {
		parts := strings.SplitN(h, ":", 2)
		if len(parts) != 2 {
			continue
		}
		row := types.KVRow{
			Key:     strings.TrimSpace(parts[0]),
			Value:   strings.TrimSpace(parts[1]),
			Enabled: true,
		}
		editor.SetHeader(len(editor.Buffer().Headers)-1, row)
	}
	for _, p := range reqParams {
		parts := strings.SplitN(p, "=", 2)
		if len(parts) != 2 {
			continue
		}
		row := types.KVRow{
			Key:     strings.TrimSpace(parts[0]),
			Value:   strings.TrimSpace(parts[1]),
			Enabled: true,
		}
		editor.SetParam(len(editor.Buffer().Params)-1, row)
	}
}

func applyBodyFlags(cmd *cobra.Command, editor *workspace.Editor) {
	if !cmd.Flags().Changed("body") && !cmd.Flags().Changed("body-type") {
		return
	}
	body := editor.Buffer().Body
	if cmd.Flags().Changed("body-type") {
		body.Type = reqBodyType
	}
	if cmd.Flags().Changed("body") {
		body.Content = reqBody
		if body.Type == "" || body.Type == types.BodyNone {
			body.Type = types.BodyJSON
		}
	}
	editor.SetBody(body)
}

func applyAuthFlags(editor *workspace.Editor) {
	if reqAuthType == "" {
		return
	}
	editor.SetAuth(types.AuthSpec{
		Type: reqAuthType,
		Params: types.AuthParams{
			Username: reqAuthUser,
			Password: reqAuthPass,
			Token:    reqAuthToken,
			Key:      reqAuthKey,
			Value:    reqAuthValue,
			AddTo:    reqAuthAddTo,
		},
	})
}

func runRequestList(cmd *cobra.Command, args []string) {
	store, err := openStore()
	if err != nil {
		printError(fmt.Sprintf("打开工作区失败: %v", err))
		os.Exit(1)
	}
	defer store.Close()

	collectionID := reqCollection
	if collectionID == "" {
		collectionID = store.ActiveCollectionID()
	}

	var target *workspace.Collection
	for _, col := range store.Collections() {
		if col.ID == collectionID {
			target = col
			break
		}
	}
	if target == nil {
		printError("集合不存在")
		os.Exit(1)
	}
	printRequestList(target, store.ActiveRequestID())
}

func runRequestDelete(cmd *cobra.Command, args []string) {
	store, err := openStore()
	if err != nil {
		printError(fmt.Sprintf("打开工作区失败: %v", err))
		os.Exit(1)
	}
	defer store.Close()

	if err := store.DeleteRequest(args[0]); err != nil {
		printError(fmt.Sprintf("删除失败: %v", err))
		os.Exit(1)
	}
	printSuccess("已删除请求")
}

func runRequestSuggest(cmd *cobra.Command, args []string) {
	store, err := openStore()
	if err != nil {
		printError(fmt.Sprintf("打开工作区失败: %v", err))
		os.Exit(1)
	}
	defer store.Close()

	req, _ := store.FindRequest(args[0])
	if req == nil {
		printError(fmt.Sprintf("请求不存在: %s", args[0]))
		os.Exit(1)
	}

	suggestions := workspace.SuggestHeaders(req.Headers)
	if len(suggestions) == 0 {
		dimColor.Println("No suggestions")
		return
	}
	for _, s := range suggestions {
		keyColor.Printf("  %s: ", s.Key)
		fmt.Println(s.Value)
	}
}

func runRequestUse(cmd *cobra.Command, args []string) {
	store, err := openStore()
	if err != nil {
		printError(fmt.Sprintf("打开工作区失败: %v", err))
		os.Exit(1)
	}
	defer store.Close()

	if err := store.SetActiveRequest(args[0]); err != nil {
		printError(fmt.Sprintf("切换失败: %v", err))
		os.Exit(1)
	}
	printSuccess("已切换激活请求")
}
