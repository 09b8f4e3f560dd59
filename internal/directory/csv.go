package directory

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// CSVSource loads devices from a comma-delimited file.
//
// Each row is "address,label". The label column is optional and defaults to
// the address. Rows that are empty, or whose address is empty after
// trimming, are skipped - one malformed row must never take the rest of the
// fleet offline.
type CSVSource struct {
	path   string
	logger Logger
}

// Logger is the minimal logging interface the directory sources need.
// Compatible with logging.Logger.
type Logger interface {
	Warn(msg string, args ...any)
}

// NewCSVSource creates a CSV-backed directory source.
//
// Parameters:
//   - path: Path to the device list file
//   - logger: Optional logger for skipped-row warnings (may be nil)
func NewCSVSource(path string, logger Logger) *CSVSource {
	return &CSVSource{path: path, logger: logger}
}

// Load reads the device list from the CSV file.
//
// The file is re-read on every call; there is no caching.
//
// Returns:
//   - []Device: Devices in file order
//   - error: ErrSourceUnavailable (wrapped) if the file cannot be read
func (s *CSVSource) Load(_ context.Context) ([]Device, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", ErrSourceUnavailable, s.path, err)
	}
	defer f.Close() //nolint:errcheck // Read-only file

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // Rows may have one or two columns
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", ErrSourceUnavailable, s.path, err)
	}

	devices := make([]Device, 0, len(records))
	for i, row := range records {
		if len(row) == 0 {
			continue
		}

		// Optional header row
		if i == 0 && strings.EqualFold(strings.TrimSpace(row[0]), "address") {
			continue
		}

		address := strings.TrimSpace(row[0])
		if address == "" {
			// Skip, don't abort: the rest of the fleet stays operable.
			if s.logger != nil {
				s.logger.Warn("skipping directory row with empty address",
					"file", s.path,
					"row", i+1,
				)
			}
			continue
		}

		label := address
		if len(row) >= 2 {
			if l := strings.TrimSpace(row[1]); l != "" {
				label = l
			}
		}

		devices = append(devices, Device{Address: address, Label: label})
	}

	return devices, nil
}
