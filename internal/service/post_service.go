package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"postboard/internal/domain"
)

// PostService 返回的 Post 都带 owner 快照（Owner 字段），软删的 owner 同样附带
type PostService struct {
	posts      domain.PostRepository
	users      domain.UserRepository
	owners     *OwnerChecker
	visibility *VisibilityPolicy
	log        *zap.Logger
}

func NewPostService(posts domain.PostRepository, users domain.UserRepository, log *zap.Logger) *PostService {
	if log == nil {
		log = zap.NewNop()
	}
	return &PostService{
		posts:      posts,
		users:      users,
		owners:     NewOwnerChecker(users),
		visibility: NewVisibilityPolicy(users, posts),
		log:        log.Named("post"),
	}
}

// ListPosts 不过滤任何删除状态
func (s *PostService) ListPosts(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	return posts, s.attachOwners(ctx, posts)
}

func (s *PostService) GetPost(ctx context.Context, id uint64) (*domain.Post, error) {
	p, err := s.posts.FindByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	return p, s.attachOwner(ctx, p)
}

// CreatePost owner 不存在时不写入任何行，并以内部错误上报（保留 ErrUserNotFound 可匹配）
func (s *PostService) CreatePost(ctx context.Context, title, content string, ownerID uint64) (*domain.Post, error) {
	owner, err := s.owners.VerifyOwner(ctx, ownerID)
	if err != nil {
		s.log.Warn("create post rejected", zap.Uint64("owner_id", ownerID), zap.Error(err))
		return nil, domain.Internal("create post failed", err)
	}
	p := &domain.Post{Title: title, Content: content, OwnerID: owner.ID}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, err
	}
	p.Owner = owner
	s.log.Debug("post created", zap.Uint64("id", p.ID), zap.Uint64("owner_id", owner.ID))
	return p, nil
}

// UpdatePost patch 不含 ownerId，归属不可变
func (s *PostService) UpdatePost(ctx context.Context, id uint64, patch domain.PostPatch) (*domain.Post, error) {
	p, err := s.posts.Update(ctx, id, patch)
	if err != nil || p == nil {
		return nil, err
	}
	return p, s.attachOwner(ctx, p)
}

func (s *PostService) DeletePost(ctx context.Context, id uint64) error {
	return s.posts.SoftDelete(ctx, id)
}

func (s *PostService) ListPostsOfUser(ctx context.Context, userID uint64) ([]domain.Post, error) {
	posts, err := s.visibility.ListVisiblePosts(ctx, userID)
	if err != nil {
		return nil, err
	}
	return posts, s.attachOwners(ctx, posts)
}

func (s *PostService) GetPostOfUser(ctx context.Context, userID, postID uint64) (*domain.Post, error) {
	p, err := s.visibility.GetVisiblePost(ctx, userID, postID)
	if err != nil || p == nil {
		return nil, err
	}
	return p, s.attachOwner(ctx, p)
}

func (s *PostService) attachOwner(ctx context.Context, p *domain.Post) error {
	u, err := s.users.FindByID(ctx, p.OwnerID)
	if err != nil {
		return fmt.Errorf("load owner %d: %w", p.OwnerID, err)
	}
	p.Owner = u
	return nil
}

// attachOwners 每个不同的 owner 只查一次
func (s *PostService) attachOwners(ctx context.Context, posts []domain.Post) error {
	seen := make(map[uint64]*domain.User)
	for i := range posts {
		id := posts[i].OwnerID
		u, ok := seen[id]
		if !ok {
			var err error
			if u, err = s.users.FindByID(ctx, id); err != nil {
				return fmt.Errorf("load owner %d: %w", id, err)
			}
			seen[id] = u
		}
		posts[i].Owner = u
	}
	return nil
}
