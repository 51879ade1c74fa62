package workspace

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"treki/internal/logger"
	"treki/internal/types"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// 集合树存储格式版本，结构变更时递增
const documentVersion = 1

// 新建请求的缺省值
const (
	DefaultRequestURL    = "https://api.example.com"
	DefaultRequestMethod = "GET"
	DefaultCollection    = "My Collection"
)

var ErrStoreClosed = errors.New("工作区已关闭")

// Request 工作区中的请求定义
type Request struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Method    string         `json:"method"`
	URL       string         `json:"url"`
	Headers   []types.KVRow  `json:"headers"`
	Params    []types.KVRow  `json:"params"`
	Body      types.BodySpec `json:"body"`
	Auth      types.AuthSpec `json:"auth"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// Collection 请求集合，parentId 形成树
type Collection struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	ParentID   string     `json:"parentId,omitempty"`
	Requests   []*Request `json:"requests"`
	IsExpanded bool       `json:"isExpanded"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// Document 集合树的持久化载体
// 激活态一并落盘，跨进程打开时恢复上次的选中位置
type Document struct {
	Version            int           `json:"version"`
	Collections        []*Collection `json:"collections"`
	ActiveCollectionID string        `json:"activeCollectionId,omitempty"`
	ActiveRequestID    string        `json:"activeRequestId,omitempty"`
}

// RequestPatch 请求的部分更新
// 指针字段表示"未提供则保留原值"
type RequestPatch struct {
	Name    *string         `json:"name"`
	Method  *string         `json:"method"`
	URL     *string         `json:"url"`
	Headers *[]types.KVRow  `json:"headers"`
	Params  *[]types.KVRow  `json:"params"`
	Body    *types.BodySpec `json:"body"`
	Auth    *types.AuthSpec `json:"auth"`
}

// CollectionPatch 集合的部分更新
// 指针字段表示"未提供则保留原值"
type CollectionPatch struct {
	Name       *string `json:"name"`
	ParentID   *string `json:"parentId"`
	IsExpanded *bool   `json:"isExpanded"`
}

// Store 集合树的内存权威副本，每次变更后全量落盘
type Store struct {
	mu     sync.Mutex
	path   string
	doc    *Document
	closed bool
}

// Open 打开工作区存储并载入集合树
// 文件不存在或内容损坏时回退为单个默认集合
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.doc = defaultDocument()
			return s.flushLocked()
		}
		return err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil || doc.Version != documentVersion {
		logger.Warn("工作区数据损坏，回退为默认集合",
			zap.String("path", s.path),
			zap.Error(err))
		s.doc = defaultDocument()
		return s.flushLocked()
	}

	s.doc = &doc
	// 上次的选中位置可能指向已删除的节点，失效则回退到第一个集合
	if s.findCollection(doc.ActiveCollectionID) == nil {
		s.doc.ActiveCollectionID = ""
		s.doc.ActiveRequestID = ""
		if first := s.firstCollection(); first != nil {
			s.activateCollection(first)
		}
	} else if req, _ := s.findRequest(doc.ActiveRequestID); req == nil {
		s.doc.ActiveRequestID = ""
	}
	return nil
}

func defaultDocument() *Document {
	now := time.Now()
	return &Document{
		Version: documentVersion,
		Collections: []*Collection{{
			ID:         uuid.NewString(),
			Name:       DefaultCollection,
			Requests:   []*Request{},
			IsExpanded: true,
			CreatedAt:  now,
			UpdatedAt:  now,
		}},
	}
}

// Flush 将集合树全量写盘
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	return s.flushLocked()
}

func (s *Store) flushLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Close 落盘并关闭，之后的变更操作都返回 ErrStoreClosed
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	err := s.flushLocked()
	s.closed = true
	return err
}

// Collections 返回当前集合树快照
func (s *Store) Collections() []*Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Collection, len(s.doc.Collections))
	copy(out, s.doc.Collections)
	return out
}

// ActiveCollectionID 当前激活集合ID，无则为空串
func (s *Store) ActiveCollectionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.ActiveCollectionID
}

// ActiveRequestID 当前激活请求ID，无则为空串
func (s *Store) ActiveRequestID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.ActiveRequestID
}

// AddCollection 新建集合并使其成为激活集合
// parentID 非空时必须指向已存在的集合
func (s *Store) AddCollection(name, parentID string) (*Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrStoreClosed
	}
	if parentID != "" && s.findCollection(parentID) == nil {
		return nil, errors.New("父集合不存在")
	}

	now := time.Now()
	col := &Collection{
		ID:         uuid.NewString(),
		Name:       name,
		ParentID:   parentID,
		Requests:   []*Request{},
		IsExpanded: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.doc.Collections = append(s.doc.Collections, col)
	s.activateCollection(col)
	return col, s.flushLocked()
}

// UpdateCollection 部分更新集合，id 不存在时静默忽略
// 改挂父节点时目标父节点必须存在，且不能挂到自身或自己的子孙下
func (s *Store) UpdateCollection(id string, patch *CollectionPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	col := s.findCollection(id)
	if col == nil || patch == nil {
		return nil
	}

	if patch.Name != nil {
		col.Name = *patch.Name
	}
	if patch.IsExpanded != nil {
		col.IsExpanded = *patch.IsExpanded
	}
	if patch.ParentID != nil {
		if err := s.validateParent(id, *patch.ParentID); err != nil {
			return err
		}
		col.ParentID = *patch.ParentID
	}

	col.UpdatedAt = time.Now()
	return s.flushLocked()
}

// validateParent 校验集合能否挂到 parentID 下，空串表示挂到根
func (s *Store) validateParent(id, parentID string) error {
	if parentID == "" {
		return nil
	}
	if parentID == id {
		return errors.New("集合不能挂到自身下")
	}
	parent := s.findCollection(parentID)
	if parent == nil {
		return errors.New("父集合不存在")
	}
	// 沿父链向上走，撞到自己说明目标是自己的子孙
	for cur := parent; cur != nil && cur.ParentID != ""; cur = s.findCollection(cur.ParentID) {
		if cur.ParentID == id {
			return errors.New("集合不能挂到自己的子集合下")
		}
	}
	return nil
}

// DeleteCollection 删除集合
// 子集合重新挂到被删节点的父节点下，被删集合自身的请求一并移除
func (s *Store) DeleteCollection(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	target := s.findCollection(id)
	if target == nil {
		return nil
	}

	kept := s.doc.Collections[:0]
	for _, col := range s.doc.Collections {
		if col.ID == id {
			continue
		}
		if col.ParentID == id {
			col.ParentID = target.ParentID
			col.UpdatedAt = time.Now()
		}
		kept = append(kept, col)
	}
	s.doc.Collections = kept

	if s.doc.ActiveCollectionID == id {
		s.doc.ActiveCollectionID = ""
		s.doc.ActiveRequestID = ""
		if first := s.firstCollection(); first != nil {
			s.activateCollection(first)
		}
	}
	return s.flushLocked()
}

// AddRequest 在指定集合下新建请求并使其成为激活请求
// collectionID 不存在时静默不创建
func (s *Store) AddRequest(collectionID, name string) (*Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrStoreClosed
	}
	col := s.findCollection(collectionID)
	if col == nil {
		return nil, nil
	}

	now := time.Now()
	req := &Request{
		ID:        uuid.NewString(),
		Name:      name,
		Method:    DefaultRequestMethod,
		URL:       DefaultRequestURL,
		Headers:   []types.KVRow{},
		Params:    []types.KVRow{},
		Body:      types.BodySpec{Type: types.BodyNone},
		Auth:      types.AuthSpec{Type: types.AuthNone},
		CreatedAt: now,
		UpdatedAt: now,
	}
	col.Requests = append(col.Requests, req)
	col.UpdatedAt = now

	s.doc.ActiveCollectionID = col.ID
	s.doc.ActiveRequestID = req.ID
	return req, s.flushLocked()
}

// UpdateRequest 跨集合按ID定位请求并合并部分字段
func (s *Store) UpdateRequest(id string, patch *RequestPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	req, _ := s.findRequest(id)
	if req == nil {
		return nil
	}

	if patch.Name != nil {
		req.Name = *patch.Name
	}
	if patch.Method != nil && types.IsValidMethod(*patch.Method) {
		req.Method = *patch.Method
	}
	if patch.URL != nil {
		req.URL = *patch.URL
	}
	if patch.Headers != nil {
		req.Headers = *patch.Headers
	}
	if patch.Params != nil {
		req.Params = *patch.Params
	}
	if patch.Body != nil {
		req.Body = *patch.Body
	}
	if patch.Auth != nil {
		req.Auth = *patch.Auth
	}
	req.UpdatedAt = time.Now()
	return s.flushLocked()
}

// DeleteRequest 删除请求
// 被删的是激活请求时，退回同集合的另一个请求，没有则清空激活请求
func (s *Store) DeleteRequest(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	req, col := s.findRequest(id)
	if req == nil {
		return nil
	}

	kept := col.Requests[:0]
	for _, r := range col.Requests {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	col.Requests = kept
	col.UpdatedAt = time.Now()

	if s.doc.ActiveRequestID == id {
		s.doc.ActiveRequestID = ""
		if len(col.Requests) > 0 {
			s.doc.ActiveRequestID = col.Requests[0].ID
		}
	}
	return s.flushLocked()
}

// SetActiveCollection 切换激活集合，自动选中其第一个请求
func (s *Store) SetActiveCollection(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	if id == "" {
		s.doc.ActiveCollectionID = ""
		s.doc.ActiveRequestID = ""
	} else if col := s.findCollection(id); col != nil {
		s.activateCollection(col)
	}
	return s.flushLocked()
}

// SetActiveRequest 切换激活请求，同步切换到其所属集合
func (s *Store) SetActiveRequest(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	if id == "" {
		s.doc.ActiveRequestID = ""
	} else if req, col := s.findRequest(id); req != nil {
		s.doc.ActiveCollectionID = col.ID
		s.doc.ActiveRequestID = req.ID
	}
	return s.flushLocked()
}

// ToggleCollectionExpand 翻转集合的展开状态
func (s *Store) ToggleCollectionExpand(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	col := s.findCollection(id)
	if col == nil {
		return nil
	}
	col.IsExpanded = !col.IsExpanded
	return s.flushLocked()
}

// FindRequest 按ID查找请求，返回请求及其所属集合
func (s *Store) FindRequest(id string) (*Request, *Collection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findRequest(id)
}

func (s *Store) findCollection(id string) *Collection {
	for _, col := range s.doc.Collections {
		if col.ID == id {
			return col
		}
	}
	return nil
}

func (s *Store) findRequest(id string) (*Request, *Collection) {
	for _, col := range s.doc.Collections {
		for _, req := range col.Requests {
			if req.ID == id {
				return req, col
			}
		}
	}
	return nil, nil
}

func (s *Store) firstCollection() *Collection {
	if len(s.doc.Collections) == 0 {
		return nil
	}
	return s.doc.Collections[0]
}

func (s *Store) activateCollection(col *Collection) {
	s.doc.ActiveCollectionID = col.ID
	s.doc.ActiveRequestID = ""
	if len(col.Requests) > 0 {
		s.doc.ActiveRequestID = col.Requests[0].ID
	}
}
