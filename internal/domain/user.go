package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// User 软删后仍保留全部字段，email 不会因软删释放
type User struct {
	ID        uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string         `gorm:"size:128;not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;size:191;not null" json:"email"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt"`
}

func (User) TableName() string { return "users" }

func (u *User) GetID() uint64           { return u.ID }
func (u *User) SetID(id uint64)         { u.ID = id }
func (u *User) IsDeleted() bool         { return u.DeletedAt.Valid }
func (u *User) MarkDeleted(t time.Time) { u.DeletedAt = gorm.DeletedAt{Time: t, Valid: true} }

func (u *User) Touch(t time.Time) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = t
	}
	u.UpdatedAt = t
}

func (u *User) Field(column string) (any, bool) {
	switch column {
	case "id":
		return u.ID, true
	case "name":
		return u.Name, true
	case "email":
		return u.Email, true
	}
	return nil, false
}

// UserPatch 局部更新：nil 字段保持不变
type UserPatch struct {
	Name  *string `json:"name"  binding:"omitempty,min=1,max=128"`
	Email *string `json:"email" binding:"omitempty,min=1,max=191"`
}

func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
}

type UserRepository interface {
	List(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id uint64) (*User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, id uint64, p UserPatch) (*User, error)
	SoftDelete(ctx context.Context, id uint64) error
}
