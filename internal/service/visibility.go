package service

import (
	"context"
	"fmt"

	"postboard/internal/domain"
)

// VisibilityPolicy 关系查询（某用户的帖子）按 owner 的删除状态过滤，
// 与 Post 自身是否软删无关。这是删除状态影响可见性的唯一位置。
type VisibilityPolicy struct {
	users domain.UserRepository
	posts domain.PostRepository
}

func NewVisibilityPolicy(users domain.UserRepository, posts domain.PostRepository) *VisibilityPolicy {
	return &VisibilityPolicy{users: users, posts: posts}
}

// ListVisiblePosts owner 不存在返回 NotFound；owner 已软删返回空列表
func (v *VisibilityPolicy) ListVisiblePosts(ctx context.Context, userID uint64) ([]domain.Post, error) {
	owner, err := v.activeOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return []domain.Post{}, nil
	}
	posts, err := v.posts.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("list posts of user %d: %w", userID, err)
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	return posts, nil
}

// GetVisiblePost owner 已软删、post 不存在或不属于该 owner 时返回 nil
func (v *VisibilityPolicy) GetVisiblePost(ctx context.Context, userID, postID uint64) (*domain.Post, error) {
	owner, err := v.activeOwner(ctx, userID)
	if err != nil || owner == nil {
		return nil, err
	}
	p, err := v.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("load post %d: %w", postID, err)
	}
	if p == nil || p.OwnerID != owner.ID {
		return nil, nil
	}
	return p, nil
}

// activeOwner 不存在 → NotFound；已软删 → nil, nil
func (v *VisibilityPolicy) activeOwner(ctx context.Context, userID uint64) (*domain.User, error) {
	u, err := v.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user %d: %w", userID, err)
	}
	if u == nil {
		return nil, domain.NotFound(fmt.Sprintf("user %d not found", userID), domain.ErrUserNotFound)
	}
	if u.IsDeleted() {
		return nil, nil
	}
	return u, nil
}
