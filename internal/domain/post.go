package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Post 通过 OwnerID 反向引用 User；User 本身不持有 Post 列表
type Post struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Title   string `gorm:"size:255;not null" json:"title"`
	Content string `gorm:"type:text" json:"content"`
	OwnerID uint64 `gorm:"index;not null" json:"ownerId"`
	// 只读快照，由 service 填充，存储层写入时忽略
	Owner     *User          `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"user,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt"`
}

func (Post) TableName() string { return "posts" }

func (p *Post) GetID() uint64           { return p.ID }
func (p *Post) SetID(id uint64)         { p.ID = id }
func (p *Post) IsDeleted() bool         { return p.DeletedAt.Valid }
func (p *Post) MarkDeleted(t time.Time) { p.DeletedAt = gorm.DeletedAt{Time: t, Valid: true} }

func (p *Post) Touch(t time.Time) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = t
	}
	p.UpdatedAt = t
}

func (p *Post) Field(column string) (any, bool) {
	switch column {
	case "id":
		return p.ID, true
	case "title":
		return p.Title, true
	case "owner_id":
		return p.OwnerID, true
	}
	return nil, false
}

// PostPatch 没有 OwnerID：归属创建后不可变
type PostPatch struct {
	Title   *string `json:"title"   binding:"omitempty,min=1,max=255"`
	Content *string `json:"content"`
}

func (p PostPatch) Apply(post *Post) {
	if p.Title != nil {
		post.Title = *p.Title
	}
	if p.Content != nil {
		post.Content = *p.Content
	}
}

type PostRepository interface {
	List(ctx context.Context) ([]Post, error)
	FindByID(ctx context.Context, id uint64) (*Post, error)
	ListByOwner(ctx context.Context, ownerID uint64) ([]Post, error)
	Create(ctx context.Context, p *Post) error
	Update(ctx context.Context, id uint64, patch PostPatch) (*Post, error)
	SoftDelete(ctx context.Context, id uint64) error
}
