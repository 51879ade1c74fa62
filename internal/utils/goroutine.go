package utils

import (
	"fmt"
	"runtime/debug"

	"treki/internal/logger"
)

// SafeGo 安全地启动一个 goroutine，自动捕获 panic 并记录日志
// 使用方式: utils.SafeGo(func() { ... })
func SafeGo(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error(fmt.Sprintf("[SafeGo] goroutine panic recovered: %v", r))
				logger.Error(fmt.Sprintf("[SafeGo] stack trace:\n%s", debug.Stack()))
			}
		}()
		fn()
	}()
}
