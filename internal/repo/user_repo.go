package repo

import (
	"context"
	"fmt"

	"postboard/internal/domain"
	"postboard/internal/store"
)

// UserRepo 在通用存储之上维护 email 唯一性（覆盖软删行）
type UserRepo struct{ s store.Store[domain.User] }

func NewUserRepo(s store.Store[domain.User]) *UserRepo { return &UserRepo{s: s} }

var _ domain.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) { return r.s.GetAll(ctx) }

func (r *UserRepo) FindByID(ctx context.Context, id uint64) (*domain.User, error) {
	return r.s.GetByID(ctx, id)
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	if err := r.ensureEmailFree(ctx, u.Email, 0); err != nil {
		return err
	}
	if err := r.s.Create(ctx, u); err != nil {
		// 检查与写入之间被并发抢占时，由唯一索引兜底
		if isDupKey(err) {
			return emailTaken(u.Email)
		}
		return err
	}
	return nil
}

func (r *UserRepo) Update(ctx context.Context, id uint64, p domain.UserPatch) (*domain.User, error) {
	cur, err := r.s.GetByID(ctx, id)
	if err != nil || cur == nil {
		return nil, err
	}
	if p.Email != nil && *p.Email != cur.Email {
		if err := r.ensureEmailFree(ctx, *p.Email, id); err != nil {
			return nil, err
		}
	}
	u, err := r.s.Update(ctx, id, p.Apply)
	if err != nil && p.Email != nil && isDupKey(err) {
		return nil, emailTaken(*p.Email)
	}
	return u, err
}

func (r *UserRepo) SoftDelete(ctx context.Context, id uint64) error { return r.s.SoftDelete(ctx, id) }

// ensureEmailFree 除 self 以外任何行（含软删）占用该 email 即冲突
func (r *UserRepo) ensureEmailFree(ctx context.Context, email string, self uint64) error {
	holders, err := r.s.FindBy(ctx, "email", email)
	if err != nil {
		return err
	}
	for _, h := range holders {
		if h.ID != self {
			return emailTaken(email)
		}
	}
	return nil
}

func emailTaken(email string) error {
	return domain.Conflict(fmt.Sprintf("email %s already exists", email), domain.ErrEmailTaken)
}
