package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type CategoryRepo interface {
	Store(ctx context.Context, userId int, category Category) error
	GetAll(ctx context.Context, userId int) ([]Category, error)
	GetById(ctx context.Context, userId int, categoryId uuid.UUID) (Category, error)
	Update(ctx context.Context, userId int, category Category) (bool, error)
	Delete(ctx context.Context, userId int, categoryId uuid.UUID) (bool, error)
}

type CategoryRepoImpl struct {
	db *sql.DB
}

func NewCategoryRepo(db *sql.DB) *CategoryRepoImpl {
	return &CategoryRepoImpl{db: db}
}

func (ci *CategoryRepoImpl) Store(ctx context.Context, userId int, category Category) error {
	query := `INSERT INTO category (id, name, kind, icon, user_id) VALUES ($1, $2, $3, $4, $5)`
	_, err := ci.db.ExecContext(ctx, query,
		category.Id,
		category.Name,
		category.Kind,
		category.Icon,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not store category: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (ci *CategoryRepoImpl) GetAll(ctx context.Context, userId int) ([]Category, error) {
	query := `SELECT id, name, kind, icon FROM category WHERE user_id = $1 ORDER BY name`
	rows, err := ci.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query categories: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var category Category
		if err := rows.Scan(&category.Id, &category.Name, &category.Kind, &category.Icon); err != nil {
			err := fmt.Errorf("could not scan category: %w", err)
			log.Error(err)
			return nil, err
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return categories, nil
}

func (ci *CategoryRepoImpl) GetById(ctx context.Context, userId int, categoryId uuid.UUID) (Category, error) {
	query := `SELECT id, name, kind, icon FROM category WHERE id = $1 AND user_id = $2`
	var category Category
	err := ci.db.QueryRowContext(ctx, query, categoryId, userId).
		Scan(&category.Id, &category.Name, &category.Kind, &category.Icon)
	if errors.Is(err, sql.ErrNoRows) {
		return Category{}, ErrCategoryNotFound
	} else if err != nil {
		err := fmt.Errorf("could not get category: %w", err)
		log.Error(err)
		return Category{}, err
	}
	return category, nil
}

func (ci *CategoryRepoImpl) Update(ctx context.Context, userId int, category Category) (bool, error) {
	query := `UPDATE category SET name = $1, kind = $2, icon = $3 WHERE id = $4 AND user_id = $5`
	result, err := ci.db.ExecContext(ctx, query,
		category.Name,
		category.Kind,
		category.Icon,
		category.Id,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update category: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (ci *CategoryRepoImpl) Delete(ctx context.Context, userId int, categoryId uuid.UUID) (bool, error) {
	result, err := ci.db.ExecContext(ctx, "DELETE FROM category WHERE id = $1 AND user_id = $2", categoryId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete category: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}
