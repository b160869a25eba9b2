package repo

import (
	"context"

	"postboard/internal/domain"
	"postboard/internal/store"
)

// PostRepo 不校验 owner：跨实体校验在 service 层完成
type PostRepo struct{ s store.Store[domain.Post] }

func NewPostRepo(s store.Store[domain.Post]) *PostRepo { return &PostRepo{s: s} }

var _ domain.PostRepository = (*PostRepo)(nil)

func (r *PostRepo) List(ctx context.Context) ([]domain.Post, error) { return r.s.GetAll(ctx) }

func (r *PostRepo) FindByID(ctx context.Context, id uint64) (*domain.Post, error) {
	return r.s.GetByID(ctx, id)
}

func (r *PostRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]domain.Post, error) {
	return r.s.FindBy(ctx, "owner_id", ownerID)
}

func (r *PostRepo) Create(ctx context.Context, p *domain.Post) error { return r.s.Create(ctx, p) }

func (r *PostRepo) Update(ctx context.Context, id uint64, patch domain.PostPatch) (*domain.Post, error) {
	return r.s.Update(ctx, id, patch.Apply)
}

func (r *PostRepo) SoftDelete(ctx context.Context, id uint64) error { return r.s.SoftDelete(ctx, id) }
