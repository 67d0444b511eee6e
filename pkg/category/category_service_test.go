package category

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/fintrackr/fintrackr/pkg/user"
)

var categoryRepoStub = NewStubCategoryRepo()

func setupCategoryService(t *testing.T) (CategoryService, context.Context, func()) {
	service := NewCategoryServiceImpl(categoryRepoStub)
	ctx := user.WithUser(context.Background(), user.User{
		Id:       1,
		Uid:      uuid.NewString(),
		Username: "test-user-1",
	})
	return service, ctx, func() {
		t.Log("Teardown after test")
		categoryRepoStub.Cleanup()
	}
}

func TestCategoryServiceImpl_Create(t *testing.T) {
	service, ctx, teardown := setupCategoryService(t)
	defer teardown()

	// given
	category := Category{Name: "Groceries", Kind: KindExpense, Icon: "cart"}

	// when
	created, err := service.Create(ctx, category)

	// then
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.Id)

	stored, err := service.Get(ctx, created.Id)
	assert.NoError(t, err)
	assert.Equal(t, "Groceries", stored.Name)
	assert.Equal(t, KindExpense, stored.Kind)
}

func TestCategoryServiceImpl_Create_RejectsInvalidInput(t *testing.T) {
	service, ctx, teardown := setupCategoryService(t)
	defer teardown()

	// when / then
	_, err := service.Create(ctx, Category{Name: "", Kind: KindExpense})
	assert.ErrorIs(t, err, ErrEmptyName)
	_, err = service.Create(ctx, Category{Name: "Groceries", Kind: "savings"})
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestCategoryServiceImpl_Update(t *testing.T) {
	service, ctx, teardown := setupCategoryService(t)
	defer teardown()

	// given
	created, err := service.Create(ctx, Category{Name: "Groceries", Kind: KindExpense})
	assert.NoError(t, err)

	// when
	created.Name = "Food"
	ok, err := service.Update(ctx, created)

	// then
	assert.NoError(t, err)
	assert.True(t, ok)
	stored, err := service.Get(ctx, created.Id)
	assert.NoError(t, err)
	assert.Equal(t, "Food", stored.Name)
}

func TestCategoryServiceImpl_Delete_NotFound(t *testing.T) {
	service, ctx, teardown := setupCategoryService(t)
	defer teardown()

	// when
	ok, err := service.Delete(ctx, uuid.New())

	// then
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	assert.False(t, ok)
}
