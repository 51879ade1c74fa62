package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"treki/internal/types"
	"treki/internal/workspace"

	"github.com/fatih/color"
)

var (
	successColor   = color.New(color.FgGreen, color.Bold)
	errColor       = color.New(color.FgRed, color.Bold)
	redirectColor  = color.New(color.FgYellow, color.Bold)
	serverErrColor = color.New(color.FgRed, color.Bold, color.BgWhite)
	methodColor    = color.New(color.FgMagenta, color.Bold)
	urlColor       = color.New(color.FgBlue)
	keyColor       = color.New(color.FgCyan)
	dimColor       = color.New(color.Faint)
)

// printSuccess 打印成功提示
func printSuccess(msg string) {
	successColor.Printf("✓ %s\n", msg)
}

// printError 打印错误提示
func printError(msg string) {
	errColor.Printf("✗ %s\n", msg)
}

// statusColor 按状态码选择颜色，status=0 表示传输层失败
func statusColor(code int) *color.Color {
	switch {
	case code >= 200 && code < 300:
		return successColor
	case code >= 300 && code < 400:
		return redirectColor
	case code >= 400 && code < 500:
		return errColor
	default:
		return serverErrColor
	}
}

// printEnvelope 打印标准化的执行结果
func printEnvelope(envelope *types.Envelope, showHeaders bool) {
	statusColor(envelope.Status).Printf("%d %s\n", envelope.Status, envelope.StatusText)
	dimColor.Printf("  Time: %s\n\n", envelope.Time)

	if showHeaders && len(envelope.Headers) > 0 {
		fmt.Println("Headers:")
		keys := make([]string, 0, len(envelope.Headers))
		for k := range envelope.Headers {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			keyColor.Printf("  %s: ", k)
			fmt.Println(envelope.Headers[k])
		}
		fmt.Println()
	}

	printJSONBody(envelope.Data)
}

// printJSONBody 尽量按JSON缩进打印响应体
func printJSONBody(data json.RawMessage) {
	if len(data) == 0 {
		dimColor.Println("(empty body)")
		return
	}

	// 纯字符串体先解开一层转义
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			dimColor.Println("(empty body)")
		} else {
			fmt.Println(s)
		}
		return
	}

	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		fmt.Println(string(data))
		return
	}
	fmt.Println(out.String())
}

// printCollectionTree 按层级打印集合树
func printCollectionTree(collections []*workspace.Collection, activeReq string) {
	if len(collections) == 0 {
		dimColor.Println("No collections")
		return
	}

	children := make(map[string][]*workspace.Collection)
	for _, col := range collections {
		children[col.ParentID] = append(children[col.ParentID], col)
	}

	var walk func(parentID string, depth int)
	walk = func(parentID string, depth int) {
		for _, col := range children[parentID] {
			indent := strings.Repeat("  ", depth)
			keyColor.Printf("%s%s ", indent, col.Name)
			dimColor.Printf("(%d requests)\n", len(col.Requests))
			for _, req := range col.Requests {
				marker := "  "
				if req.ID == activeReq {
					marker = "* "
				}
				fmt.Printf("%s  %s", indent, marker)
				methodColor.Printf("%-7s ", req.Method)
				if req.Name != "" {
					fmt.Printf("%s  ", req.Name)
				}
				urlColor.Println(req.URL)
			}
			walk(col.ID, depth+1)
		}
	}
	walk("", 0)
}

// printRequestList 打印单个集合下的请求，带 ID 方便 use/edit
func printRequestList(col *workspace.Collection, activeReq string) {
	keyColor.Printf("%s ", col.Name)
	dimColor.Printf("(%d requests)\n", len(col.Requests))
	if len(col.Requests) == 0 {
		dimColor.Println("  No requests")
		return
	}
	for _, req := range col.Requests {
		marker := "  "
		if req.ID == activeReq {
			marker = "* "
		}
		fmt.Printf("  %s", marker)
		methodColor.Printf("%-7s ", req.Method)
		if req.Name != "" {
			fmt.Printf("%s  ", req.Name)
		}
		urlColor.Printf("%s  ", req.URL)
		dimColor.Println(req.ID)
	}
}

// printHistoryList 打印历史列表
func printHistoryList(entries []types.HistoryInfo) {
	if len(entries) == 0 {
		dimColor.Println("No history")
		return
	}

	for _, e := range entries {
		dimColor.Printf("[%d] ", e.ID)
		methodColor.Printf("%-7s ", e.Request.Method)

		url := e.Request.URL
		if len(url) > 60 {
			url = url[:57] + "..."
		}
		urlColor.Printf("%-60s ", url)

		statusColor(e.Response.Status).Printf("%d", e.Response.Status)
		if e.Timestamp != nil {
			dimColor.Printf("  %s", e.Timestamp.String())
		}
		fmt.Println()
	}
}
