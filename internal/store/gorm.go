package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore 基于 gorm 的实现。实体需使用 gorm.DeletedAt 作为软删字段
type GormStore[T any, PT EntityPtr[T]] struct {
	db   *gorm.DB
	name string
}

func NewGorm[T any, PT EntityPtr[T]](db *gorm.DB) *GormStore[T, PT] {
	return &GormStore[T, PT]{db: db, name: entityName[T]()}
}

// read 每次返回新的链，读取一律 Unscoped
func (s *GormStore[T, PT]) read(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Unscoped()
}

func (s *GormStore[T, PT]) GetAll(ctx context.Context) (out []T, err error) {
	defer func() { observe(s.name, "get_all", err) }()
	if err = s.read(ctx).Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("%s list: %w", s.name, err)
	}
	return out, nil
}

func (s *GormStore[T, PT]) GetByID(ctx context.Context, id uint64) (_ *T, err error) {
	defer func() { observe(s.name, "get", err) }()
	var t T
	err = s.read(ctx).First(&t, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s get %d: %w", s.name, id, err)
	}
	return &t, nil
}

func (s *GormStore[T, PT]) FindBy(ctx context.Context, column string, value any) (out []T, err error) {
	defer func() { observe(s.name, "find", err) }()
	err = s.read(ctx).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("%s find by %s: %w", s.name, column, err)
	}
	return out, nil
}

func (s *GormStore[T, PT]) Create(ctx context.Context, t *T) (err error) {
	defer func() { observe(s.name, "create", err) }()
	PT(t).SetID(0)
	if err = s.db.WithContext(ctx).Omit(clause.Associations).Create(t).Error; err != nil {
		return fmt.Errorf("%s create: %w", s.name, err)
	}
	return nil
}

func (s *GormStore[T, PT]) Update(ctx context.Context, id uint64, apply func(*T)) (_ *T, err error) {
	defer func() { observe(s.name, "update", err) }()
	var t T
	err = s.read(ctx).First(&t, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s load %d: %w", s.name, id, err)
	}
	apply(&t)
	PT(&t).SetID(id)
	// 已软删的行同样允许更新
	if err = s.read(ctx).Omit(clause.Associations).Save(&t).Error; err != nil {
		return nil, fmt.Errorf("%s update %d: %w", s.name, id, err)
	}
	return &t, nil
}

// SoftDelete 依赖 gorm.DeletedAt：只更新 deleted_at IS NULL 的行，天然幂等
func (s *GormStore[T, PT]) SoftDelete(ctx context.Context, id uint64) (err error) {
	defer func() { observe(s.name, "soft_delete", err) }()
	if err = s.db.WithContext(ctx).Delete(new(T), "id = ?", id).Error; err != nil {
		return fmt.Errorf("%s soft delete %d: %w", s.name, id, err)
	}
	return nil
}
