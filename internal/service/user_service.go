package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"postboard/internal/domain"
)

type UserService struct {
	repo domain.UserRepository
	log  *zap.Logger
}

func NewUserService(repo domain.UserRepository, log *zap.Logger) *UserService {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserService{repo: repo, log: log.Named("user")}
}

// ListUsers 包含软删用户
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.List(ctx)
	if users == nil && err == nil {
		users = []domain.User{}
	}
	return users, err
}

// GetUser 不存在返回 nil, nil；软删用户照常返回
func (s *UserService) GetUser(ctx context.Context, id uint64) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) CreateUser(ctx context.Context, name, email string) (*domain.User, error) {
	u := &domain.User{Name: name, Email: email}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			s.log.Info("email conflict", zap.String("email", email))
		}
		return nil, err
	}
	s.log.Debug("user created", zap.Uint64("id", u.ID))
	return u, nil
}

// UpdateUser 只合并 patch 中给出的字段；id 不存在返回 nil, nil
func (s *UserService) UpdateUser(ctx context.Context, id uint64, p domain.UserPatch) (*domain.User, error) {
	u, err := s.repo.Update(ctx, id, p)
	if err != nil && errors.Is(err, domain.ErrEmailTaken) {
		s.log.Info("email conflict", zap.Uint64("id", id), zap.String("email", *p.Email))
	}
	return u, err
}

// DeleteUser 软删，幂等；不级联到该用户的 Post
func (s *UserService) DeleteUser(ctx context.Context, id uint64) error {
	return s.repo.SoftDelete(ctx, id)
}
