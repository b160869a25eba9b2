package store

import (
	"context"
	"sync"
	"time"
)

// MemoryStore 进程内实现，按插入顺序保存；读写均复制值，调用方拿不到内部行的引用。
// 用于 memory 驱动与测试。
type MemoryStore[T any, PT EntityPtr[T]] struct {
	mu    sync.RWMutex
	rows  map[uint64]T
	order []uint64
	next  uint64
	name  string
	now   func() time.Time
}

func NewMemory[T any, PT EntityPtr[T]]() *MemoryStore[T, PT] {
	return &MemoryStore[T, PT]{
		rows: make(map[uint64]T),
		name: entityName[T](),
		now:  time.Now,
	}
}

func (s *MemoryStore[T, PT]) GetAll(ctx context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.rows[id])
	}
	observe(s.name, "get_all", nil)
	return out, nil
}

func (s *MemoryStore[T, PT]) GetByID(ctx context.Context, id uint64) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	observe(s.name, "get", nil)
	row, ok := s.rows[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

// FindBy 的 value 需与 Field 返回值类型一致（如 owner_id 用 uint64）
func (s *MemoryStore[T, PT]) FindBy(ctx context.Context, column string, value any) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []T
	for _, id := range s.order {
		row := s.rows[id]
		if v, ok := PT(&row).Field(column); ok && v == value {
			out = append(out, row)
		}
	}
	observe(s.name, "find", nil)
	return out, nil
}

func (s *MemoryStore[T, PT]) Create(ctx context.Context, t *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	p := PT(t)
	p.SetID(s.next)
	p.Touch(s.now())
	s.rows[s.next] = *t
	s.order = append(s.order, s.next)
	observe(s.name, "create", nil)
	return nil
}

func (s *MemoryStore[T, PT]) Update(ctx context.Context, id uint64, apply func(*T)) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	observe(s.name, "update", nil)
	row, ok := s.rows[id]
	if !ok {
		return nil, nil
	}
	apply(&row)
	p := PT(&row)
	p.SetID(id)
	p.Touch(s.now())
	s.rows[id] = row
	out := row
	return &out, nil
}

func (s *MemoryStore[T, PT]) SoftDelete(ctx context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	observe(s.name, "soft_delete", nil)
	row, ok := s.rows[id]
	if !ok || PT(&row).IsDeleted() {
		return nil
	}
	PT(&row).MarkDeleted(s.now())
	s.rows[id] = row
	return nil
}
