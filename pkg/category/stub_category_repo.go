package category

import (
	"context"

	"github.com/google/uuid"
)

type StubCategoryRepo struct {
	data map[uuid.UUID]Category
}

func NewStubCategoryRepo() *StubCategoryRepo {
	return &StubCategoryRepo{data: map[uuid.UUID]Category{}}
}

func (s *StubCategoryRepo) Store(ctx context.Context, userId int, category Category) error {
	s.data[category.Id] = category
	return nil
}

func (s *StubCategoryRepo) GetAll(ctx context.Context, userId int) ([]Category, error) {
	categories := make([]Category, 0, len(s.data))
	for _, category := range s.data {
		categories = append(categories, category)
	}
	return categories, nil
}

func (s *StubCategoryRepo) GetById(ctx context.Context, userId int, categoryId uuid.UUID) (Category, error) {
	category, ok := s.data[categoryId]
	if !ok {
		return Category{}, ErrCategoryNotFound
	}
	return category, nil
}

func (s *StubCategoryRepo) Update(ctx context.Context, userId int, category Category) (bool, error) {
	if _, ok := s.data[category.Id]; !ok {
		return false, nil
	}
	s.data[category.Id] = category
	return true, nil
}

func (s *StubCategoryRepo) Delete(ctx context.Context, userId int, categoryId uuid.UUID) (bool, error) {
	if _, ok := s.data[categoryId]; !ok {
		return false, nil
	}
	delete(s.data, categoryId)
	return true, nil
}

func (s *StubCategoryRepo) Cleanup() {
	s.data = map[uuid.UUID]Category{}
}
