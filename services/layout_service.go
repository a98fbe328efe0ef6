package services

import (
	"fmt"
	"sync"

	"gridcrawl/server/config"
	"gridcrawl/server/models"
	"gridcrawl/server/persistence"
)

// LayoutService resolves named loadfiles through storage
type LayoutService struct {
	layouts map[string]*models.Layout
	db      persistence.Storage
	mutex   sync.RWMutex
}

// NewLayoutService creates a new layout service
func NewLayoutService(db persistence.Storage) *LayoutService {
	return &LayoutService{
		layouts: make(map[string]*models.Layout),
		db:      db,
	}
}

// SaveLayout checks that a layout loads and then stores it.
func (ls *LayoutService) SaveLayout(layout models.Layout) error {
	if _, err := LoadLayout(&layout, config.DefaultBalance()); err != nil {
		return err
	}

	ls.mutex.Lock()
	defer ls.mutex.Unlock()

	if err := ls.db.SaveLayout(&layout); err != nil {
		return fmt.Errorf("failed to save layout %s: %w", layout.Name, err)
	}
	ls.layouts[layout.Name] = &layout
	return nil
}

// Seed stores every layout from the config.
func (ls *LayoutService) Seed(layouts []models.Layout) error {
	for _, l := range layouts {
		if err := ls.SaveLayout(l); err != nil {
			return err
		}
	}
	return nil
}

// GetLayout returns a layout by name, from memory or from storage
func (ls *LayoutService) GetLayout(name string) (*models.Layout, error) {
	ls.mutex.RLock()
	layout, exists := ls.layouts[name]
	ls.mutex.RUnlock()
	if exists {
		return layout, nil
	}

	layout, err := ls.db.LoadLayout(name)
	if err != nil {
		return nil, err
	}

	ls.mutex.Lock()
	ls.layouts[name] = layout
	ls.mutex.Unlock()

	return layout, nil
}

func (ls *LayoutService) ListLayouts() ([]string, error) {
	return ls.db.ListLayouts()
}
