package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adamavenir/rpcdeck/internal/types"
)

// ErrEmptyName is returned when a profile name is blank.
var ErrEmptyName = errors.New("profile name is required")

// SaveProfile inserts or replaces a profile.
func SaveProfile(db DBTX, name string, config types.PresenceConfig) (*types.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	data, err := json.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("encode profile %s: %w", name, err)
	}

	now := time.Now().Unix()
	_, err = db.Exec(`
		INSERT INTO rpc_profiles (name, data, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, name, string(data), now, now)
	if err != nil {
		return nil, fmt.Errorf("save profile %s: %w", name, err)
	}
	return &types.Profile{Name: name, Config: config.Clone(), UpdatedAt: now}, nil
}

// GetProfile returns the named profile, or nil when it does not exist.
func GetProfile(db DBTX, name string) (*types.Profile, error) {
	row := db.QueryRow("SELECT name, data, updated_at FROM rpc_profiles WHERE name = ?", strings.TrimSpace(name))
	profile, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// ListProfiles returns every profile ordered by name.
func ListProfiles(db DBTX) ([]types.Profile, error) {
	rows, err := db.Query("SELECT name, data, updated_at FROM rpc_profiles ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []types.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return profiles, nil
}

// DeleteProfile removes a profile and reports whether it existed.
func DeleteProfile(db DBTX, name string) (bool, error) {
	result, err := db.Exec("DELETE FROM rpc_profiles WHERE name = ?", strings.TrimSpace(name))
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (*types.Profile, error) {
	var (
		profile types.Profile
		data    string
	)
	if err := row.Scan(&profile.Name, &data, &profile.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(data), &profile.Config); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", profile.Name, err)
	}
	return &profile, nil
}
