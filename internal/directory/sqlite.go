package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SQLiteSource loads devices from the devices table.
//
// Unlike the csv source it supports managing entries over the API (Put and
// Remove). Load still queries the table on every call - the no-caching
// contract is the same for both sources.
type SQLiteSource struct {
	db *sql.DB
}

// NewSQLiteSource creates a SQLite-backed directory source.
// The db parameter should be an open connection with migrations applied.
func NewSQLiteSource(db *sql.DB) *SQLiteSource {
	return &SQLiteSource{db: db}
}

// Load returns all devices ordered by position, then address.
func (s *SQLiteSource) Load(ctx context.Context) ([]Device, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT address, label FROM devices ORDER BY position, address")
	if err != nil {
		return nil, fmt.Errorf("%w: querying devices: %w", ErrSourceUnavailable, err)
	}
	defer rows.Close() //nolint:errcheck // Read-only cursor

	var devices []Device
	for rows.Next() {
		var d Device
		if err := rows.Scan(&d.Address, &d.Label); err != nil {
			return nil, fmt.Errorf("%w: scanning device row: %w", ErrSourceUnavailable, err)
		}
		if d.Label == "" {
			d.Label = d.Address
		}
		devices = append(devices, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading device rows: %w", ErrSourceUnavailable, err)
	}

	return devices, nil
}

// Put inserts or updates a device by address.
// New devices are appended to the end of the display order.
func (s *SQLiteSource) Put(ctx context.Context, device Device) error {
	address := strings.TrimSpace(device.Address)
	if address == "" {
		return ErrInvalidAddress
	}

	label := strings.TrimSpace(device.Label)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO devices (address, label, position)
		VALUES (?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM devices))
		ON CONFLICT(address) DO UPDATE SET label = excluded.label`,
		address, label)
	if err != nil {
		return fmt.Errorf("storing device %s: %w", address, err)
	}
	return nil
}

// Remove deletes a device by address.
func (s *SQLiteSource) Remove(ctx context.Context, address string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM devices WHERE address = ?", address)
	if err != nil {
		return fmt.Errorf("removing device %s: %w", address, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return ErrDeviceNotFound
	}
	return nil
}

// IsNotFound reports whether err is the device-not-found sentinel.
// Convenience for API handlers mapping errors to status codes.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrDeviceNotFound)
}
