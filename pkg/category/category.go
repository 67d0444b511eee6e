package category

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidKind      = errors.New("kind must be expense or income")
	ErrEmptyName        = errors.New("name must not be empty")
)

type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

func (k Kind) Valid() bool {
	return k == KindExpense || k == KindIncome
}

type Category struct {
	Id   uuid.UUID
	Name string
	Kind Kind
	// Icon is an identifier the frontend maps to a glyph; the backend treats
	// it as opaque.
	Icon string
}

func (c Category) Validate() error {
	if c.Name == "" {
		return ErrEmptyName
	}
	if !c.Kind.Valid() {
		return ErrInvalidKind
	}
	return nil
}
