// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/braiding-studio/auth"
)

// ServiceSeed is one entry of the services catalog file
type ServiceSeed struct {
	Name          string   `yaml:"name"`
	Description   string   `yaml:"description"`
	BasePrice     *float64 `yaml:"base_price"`
	DurationHours *int     `yaml:"duration_hours"`
}

type serviceCatalog struct {
	Services []ServiceSeed `yaml:"services"`
}

// LoadServiceCatalog reads a YAML services catalog
func LoadServiceCatalog(path string) ([]ServiceSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read services catalog: %w", err)
	}

	var catalog serviceCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse services catalog: %w", err)
	}

	for i, s := range catalog.Services {
		if s.Name == "" {
			return nil, fmt.Errorf("service %d in catalog has no name", i+1)
		}
	}

	return catalog.Services, nil
}

// SeedServices upserts the catalog at path by service name.
// Returns the number of services written.
func SeedServices(db *sql.DB, path string) (int, error) {
	services, err := LoadServiceCatalog(path)
	if err != nil {
		return 0, err
	}
	if len(services) == 0 {
		return 0, errors.New("services catalog is empty")
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	for _, s := range services {
		_, err := tx.Exec(`
			INSERT INTO hair_styles (id, name, description, base_price, duration_hours, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (name) DO UPDATE SET
				description = EXCLUDED.description,
				base_price = EXCLUDED.base_price,
				duration_hours = EXCLUDED.duration_hours
		`, auth.NewID(), s.Name, s.Description, s.BasePrice, s.DurationHours, now)
		if err != nil {
			return 0, fmt.Errorf("failed to seed service %q: %w", s.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit services catalog: %w", err)
	}

	return len(services), nil
}
