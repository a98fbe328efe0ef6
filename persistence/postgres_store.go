package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"gridcrawl/server/models"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore keeps layouts in PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects and makes sure the schema exists
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (ps *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS layouts (
		name TEXT PRIMARY KEY,
		width INTEGER NOT NULL CHECK (width > 0),
		height INTEGER NOT NULL CHECK (height > 0),
		data TEXT NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`

	_, err := ps.db.Exec(schema)
	return err
}

// SaveLayout upserts a layout by name
func (ps *PostgresStore) SaveLayout(layout *models.Layout) error {
	query := `
	INSERT INTO layouts (name, width, height, data)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (name)
	DO UPDATE SET
		width = $2, height = $3, data = $4,
		updated_at = NOW()
	`

	_, err := ps.db.Exec(query, layout.Name, layout.Width, layout.Height, layout.Data)
	if err != nil {
		return fmt.Errorf("failed to save layout: %w", err)
	}
	return nil
}

// LoadLayout loads a layout by name
func (ps *PostgresStore) LoadLayout(name string) (*models.Layout, error) {
	query := `SELECT name, width, height, data FROM layouts WHERE name = $1`

	var layout models.Layout
	err := ps.db.QueryRow(query, name).Scan(&layout.Name, &layout.Width, &layout.Height, &layout.Data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", name, ErrLayoutNotFound)
		}
		return nil, fmt.Errorf("failed to load layout: %w", err)
	}

	return &layout, nil
}

// ListLayouts returns all layout names, sorted
func (ps *PostgresStore) ListLayouts() ([]string, error) {
	rows, err := ps.db.Query(`SELECT name FROM layouts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list layouts: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan layout name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Close closes the database connection
func (ps *PostgresStore) Close() error {
	log.Println("Closing database connection...")
	return ps.db.Close()
}
