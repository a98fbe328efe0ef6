package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"gridcrawl/server/models"
)

// JSONStore keeps layouts in a local JSON file
type JSONStore struct {
	filePath string
	mutex    sync.RWMutex
	data     *JSONData
}

// JSONData is the on-disk shape of the store
type JSONData struct {
	Layouts map[string]*models.Layout `json:"layouts"`
}

// NewJSONStore opens the file at filePath, creating it if needed.
func NewJSONStore(filePath string) (*JSONStore, error) {
	store := &JSONStore{
		filePath: filePath,
		data: &JSONData{
			Layouts: make(map[string]*models.Layout),
		},
	}

	if _, err := os.Stat(filePath); err == nil {
		if err := store.loadFromFile(); err != nil {
			return nil, fmt.Errorf("failed to load JSON store: %w", err)
		}
	} else {
		store.mutex.Lock()
		err := store.saveToFile()
		store.mutex.Unlock()
		if err != nil {
			return nil, fmt.Errorf("failed to create JSON store file: %w", err)
		}
	}

	return store, nil
}

func (js *JSONStore) loadFromFile() error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	file, err := os.ReadFile(js.filePath)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(file, js.data); err != nil {
		return err
	}
	if js.data.Layouts == nil {
		js.data.Layouts = make(map[string]*models.Layout)
	}
	return nil
}

// saveToFile writes the store out. Callers hold the mutex.
func (js *JSONStore) saveToFile() error {
	data, err := json.MarshalIndent(js.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(js.filePath, data, 0644)
}

// SaveLayout stores or replaces a layout by name
func (js *JSONStore) SaveLayout(layout *models.Layout) error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	stored := *layout
	js.data.Layouts[layout.Name] = &stored
	return js.saveToFile()
}

// LoadLayout loads a layout by name
func (js *JSONStore) LoadLayout(name string) (*models.Layout, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	layout, exists := js.data.Layouts[name]
	if !exists {
		return nil, fmt.Errorf("%s: %w", name, ErrLayoutNotFound)
	}

	out := *layout
	return &out, nil
}

// ListLayouts returns the stored layout names, sorted
func (js *JSONStore) ListLayouts() ([]string, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	names := make([]string, 0, len(js.data.Layouts))
	for name := range js.data.Layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Close closes the store (no-op for JSON store)
func (js *JSONStore) Close() error {
	return nil
}
