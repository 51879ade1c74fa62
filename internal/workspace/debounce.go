package workspace

import (
	"sync"
	"time"
)

// 默认防抖窗口，连续编辑只在停顿后提交一次
const DefaultDebounce = 500 * time.Millisecond

// Debouncer 取消重启式防抖器
// 每次 Trigger 都会取消未触发的上一次，只有最后一次在窗口期满后执行
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// NewDebouncer 创建防抖器，delay<=0 时使用默认500ms
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

// Trigger 安排 fn 在窗口期满后执行，并取消之前未执行的安排
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Cancel 取消未执行的安排
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Flush 取消计时并立即执行 fn，用于关闭前的最后提交
func (d *Debouncer) Flush(fn func()) {
	d.Cancel()
	fn()
}
