package domain

import "errors"

// ErrEmptyCategoryName is returned when a category is created or updated
// without a name.
var ErrEmptyCategoryName = errors.New("category name cannot be empty")

// Category groups related tasks under a shared label.
// Names are intended to be unique; the store enforces this with a constraint.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewCategory creates a new Category with the given name and description.
// The ID is left zero; the store assigns it on Create.
func NewCategory(name, description string) (*Category, error) {
	category := &Category{
		Name:        name,
		Description: description,
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	return category, nil
}

// Validate checks if the Category has valid data.
func (c *Category) Validate() error {
	if c.Name == "" {
		return ErrEmptyCategoryName
	}
	return nil
}
