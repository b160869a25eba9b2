package service

import (
	"context"
	"fmt"

	"postboard/internal/domain"
)

// OwnerChecker 创建 Post 前确认 owner 存在。只要该 id 曾创建过即可（含软删），
// 返回解析到的 User，调用方无需二次查询。
type OwnerChecker struct{ users domain.UserRepository }

func NewOwnerChecker(users domain.UserRepository) *OwnerChecker {
	return &OwnerChecker{users: users}
}

func (c *OwnerChecker) VerifyOwner(ctx context.Context, ownerID uint64) (*domain.User, error) {
	u, err := c.users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load owner %d: %w", ownerID, err)
	}
	if u == nil {
		return nil, domain.NotFound(fmt.Sprintf("user %d not found", ownerID), domain.ErrUserNotFound)
	}
	return u, nil
}
