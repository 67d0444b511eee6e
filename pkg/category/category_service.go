package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/fintrackr/fintrackr/pkg/user"
)

type CategoryService interface {
	GetAll(ctx context.Context) ([]Category, error)
	Get(ctx context.Context, id uuid.UUID) (Category, error)
	Create(ctx context.Context, category Category) (Category, error)
	Update(ctx context.Context, category Category) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type CategoryServiceImpl struct {
	repo CategoryRepo
}

func NewCategoryServiceImpl(repo CategoryRepo) *CategoryServiceImpl {
	return &CategoryServiceImpl{repo: repo}
}

func (s *CategoryServiceImpl) GetAll(ctx context.Context) ([]Category, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *CategoryServiceImpl) Get(ctx context.Context, id uuid.UUID) (Category, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Category{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetById(ctx, userId, id)
}

func (s *CategoryServiceImpl) Create(ctx context.Context, category Category) (Category, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Category{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := category.Validate(); err != nil {
		return Category{}, err
	}
	category.Id = uuid.New()
	if err := s.repo.Store(ctx, userId, category); err != nil {
		return Category{}, err
	}
	return category, nil
}

func (s *CategoryServiceImpl) Update(ctx context.Context, category Category) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := category.Validate(); err != nil {
		return false, err
	}

	updated, err := s.repo.Update(ctx, userId, category)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("category not updated, probably because it does not exist (%s) or the user (%d) is not the owner", category.Id, userId)
		return false, ErrCategoryNotFound
	}
	return true, nil
}

func (s *CategoryServiceImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}

	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("category not deleted, probably because it does not exist (%s) or the user (%d) is not the owner", id, userId)
		return false, ErrCategoryNotFound
	}
	return true, nil
}
