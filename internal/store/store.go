// Package store 提供按实体类型参数化的通用持久化原语。
//
// 所有读取都不过滤软删行：按 id 查询和全量列表都会返回已软删的实体。
// 软删只设置 deleted_at，对不存在或已软删的行是幂等的空操作。
package store

import (
	"context"
	"fmt"
	"time"
)

// Entity 由存储的实体类型（指针接收者）实现
type Entity interface {
	GetID() uint64
	SetID(id uint64)
	IsDeleted() bool
	MarkDeleted(t time.Time)
	// Touch 维护 created/updated 时间戳（gorm 后端自行处理）
	Touch(t time.Time)
	// Field 按列名取值，供内存后端做等值扫描
	Field(column string) (any, bool)
}

// EntityPtr 约束 PT 为 *T 且实现 Entity
type EntityPtr[T any] interface {
	*T
	Entity
}

type Store[T any] interface {
	// GetAll 按 id 升序（即插入顺序）返回全部行，包括软删行
	GetAll(ctx context.Context) ([]T, error)
	// GetByID 不存在时返回 nil, nil
	GetByID(ctx context.Context, id uint64) (*T, error)
	// FindBy 等值扫描，不区分删除状态
	FindBy(ctx context.Context, column string, value any) ([]T, error)
	// Create 分配 id 并写入
	Create(ctx context.Context, t *T) error
	// Update 读取、合并、写回；不存在时返回 nil, nil。apply 无法改变 id
	Update(ctx context.Context, id uint64, apply func(*T)) (*T, error)
	SoftDelete(ctx context.Context, id uint64) error
}

type tabler interface{ TableName() string }

func entityName[T any]() string {
	if t, ok := any(new(T)).(tabler); ok {
		return t.TableName()
	}
	var zero T
	return fmt.Sprintf("%T", zero)
}
