package domain

import "errors"

// Common validation errors for Priority
var (
	ErrEmptyPriorityName    = errors.New("priority name cannot be empty")
	ErrInvalidPriorityLevel = errors.New("priority level must be positive")
)

// Priority represents an urgency level tasks can be ranked by.
// Level is a numeric weight; higher means more urgent. Names are intended to
// be unique; the store enforces this with a constraint.
type Priority struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// NewPriority creates a new Priority with the given name and level.
// The ID is left zero; the store assigns it on Create.
func NewPriority(name string, level int) (*Priority, error) {
	priority := &Priority{
		Name:  name,
		Level: level,
	}

	if err := priority.Validate(); err != nil {
		return nil, err
	}

	return priority, nil
}

// Validate checks if the Priority has valid data.
func (p *Priority) Validate() error {
	if p.Name == "" {
		return ErrEmptyPriorityName
	}

	if p.Level <= 0 {
		return ErrInvalidPriorityLevel
	}

	return nil
}
