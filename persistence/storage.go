package persistence

import (
	"errors"

	"gridcrawl/server/models"
)

// ErrLayoutNotFound is returned when no layout has the requested name.
var ErrLayoutNotFound = errors.New("layout not found")

// Storage defines the interface for layout persistence. Only loadfiles are
// stored; running games are never saved.
type Storage interface {
	SaveLayout(layout *models.Layout) error
	LoadLayout(name string) (*models.Layout, error)
	ListLayouts() ([]string, error)
	Close() error
}
