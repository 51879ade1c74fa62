package workspace

import (
	"errors"
	"sync"
	"time"

	"treki/internal/types"

	"github.com/jinzhu/copier"
)

var ErrNoRequest = errors.New("没有正在编辑的请求")

// Editor 单个请求的编辑缓冲
// 编辑先落在缓冲里，经防抖窗口后合并回 Store；键值区始终保留一个尾部空白行
type Editor struct {
	mu        sync.Mutex
	store     *Store
	debouncer *Debouncer
	requestID string
	buf       Request
}

// NewEditor 创建编辑器，delay<=0 时使用默认防抖窗口
func NewEditor(store *Store, delay time.Duration) *Editor {
	return &Editor{
		store:     store,
		debouncer: NewDebouncer(delay),
	}
}

// Open 载入请求到编辑缓冲
// 缓冲是深拷贝，提交前的编辑不会影响 Store
func (e *Editor) Open(requestID string) error {
	req, _ := e.store.FindRequest(requestID)
	if req == nil {
		return ErrNoRequest
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var buf Request
	if err := copier.CopyWithOption(&buf, req, copier.Option{DeepCopy: true}); err != nil {
		return err
	}
	buf.Headers = padBlankRow(buf.Headers)
	buf.Params = padBlankRow(buf.Params)

	e.requestID = requestID
	e.buf = buf
	return nil
}

// Buffer 返回编辑缓冲快照
func (e *Editor) Buffer() Request {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf
}

// SetName 修改请求名
func (e *Editor) SetName(name string) {
	e.edit(func() { e.buf.Name = name })
}

// SetMethod 修改请求方法，非法方法忽略
func (e *Editor) SetMethod(method string) {
	if !types.IsValidMethod(method) {
		return
	}
	e.edit(func() { e.buf.Method = method })
}

// SetURL 修改请求URL
func (e *Editor) SetURL(url string) {
	e.edit(func() { e.buf.URL = url })
}

// SetBody 修改请求体
func (e *Editor) SetBody(body types.BodySpec) {
	e.edit(func() { e.buf.Body = body })
}

// SetAuth 修改认证配置
func (e *Editor) SetAuth(auth types.AuthSpec) {
	e.edit(func() { e.buf.Auth = auth })
}

// SetHeader 修改第 i 行请求头，写入尾部空白行时自动补一行新空白
func (e *Editor) SetHeader(i int, row types.KVRow) {
	e.edit(func() { e.buf.Headers = setRow(e.buf.Headers, i, row) })
}

// SetParam 修改第 i 行查询参数
func (e *Editor) SetParam(i int, row types.KVRow) {
	e.edit(func() { e.buf.Params = setRow(e.buf.Params, i, row) })
}

// RemoveHeader 删除第 i 行请求头
func (e *Editor) RemoveHeader(i int) {
	e.edit(func() { e.buf.Headers = removeRow(e.buf.Headers, i) })
}

// RemoveParam 删除第 i 行查询参数
func (e *Editor) RemoveParam(i int) {
	e.edit(func() { e.buf.Params = removeRow(e.buf.Params, i) })
}

// Commit 立即提交编辑缓冲，取消未触发的防抖提交
func (e *Editor) Commit() error {
	e.debouncer.Cancel()
	return e.commit()
}

// Close 提交未落盘的编辑并停止防抖
func (e *Editor) Close() error {
	e.debouncer.Cancel()
	e.mu.Lock()
	open := e.requestID != ""
	e.mu.Unlock()
	if !open {
		return nil
	}
	return e.commit()
}

// edit 应用一次缓冲修改并安排防抖提交
func (e *Editor) edit(fn func()) {
	e.mu.Lock()
	if e.requestID == "" {
		e.mu.Unlock()
		return
	}
	fn()
	e.mu.Unlock()

	e.debouncer.Trigger(func() { _ = e.commit() })
}

func (e *Editor) commit() error {
	e.mu.Lock()
	if e.requestID == "" {
		e.mu.Unlock()
		return ErrNoRequest
	}
	// 补丁只引用持锁期间拷出的局部值，提交期间的并发编辑不会撕裂本次快照
	id := e.requestID
	name := e.buf.Name
	method := e.buf.Method
	url := e.buf.URL
	body := e.buf.Body
	auth := e.buf.Auth
	headers := dropBlankRows(e.buf.Headers)
	params := dropBlankRows(e.buf.Params)
	e.mu.Unlock()

	patch := &RequestPatch{
		Name:    &name,
		Method:  &method,
		URL:     &url,
		Headers: &headers,
		Params:  &params,
		Body:    &body,
		Auth:    &auth,
	}

	return e.store.UpdateRequest(id, patch)
}

// padBlankRow 保证键值区末尾有且只有一个空白行
func padBlankRow(rows []types.KVRow) []types.KVRow {
	rows = dropBlankRows(rows)
	return append(rows, types.KVRow{Enabled: true})
}

// setRow 写入第 i 行，越界忽略；写入最后一行后自动追加空白行
func setRow(rows []types.KVRow, i int, row types.KVRow) []types.KVRow {
	if i < 0 || i >= len(rows) {
		return rows
	}
	rows[i] = row
	if i == len(rows)-1 && !row.IsBlank() {
		rows = append(rows, types.KVRow{Enabled: true})
	}
	return rows
}

// removeRow 删除第 i 行，保留尾部空白行
func removeRow(rows []types.KVRow, i int) []types.KVRow {
	if i < 0 || i >= len(rows) {
		return rows
	}
	rows = append(rows[:i], rows[i+1:]...)
	return padBlankRow(rows)
}

// dropBlankRows 过滤空白行，提交和落盘只保留有内容的行
func dropBlankRows(rows []types.KVRow) []types.KVRow {
	out := make([]types.KVRow, 0, len(rows))
	for _, r := range rows {
		if !r.IsBlank() {
			out = append(out, r)
		}
	}
	return out
}
