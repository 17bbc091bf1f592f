package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/prabhmeharbedi/prabhmehar-loopai/internal/domain"
)

// Columns is the report header: one row per store, uptimes then downtimes,
// hour figures in minutes and day/week figures in hours.
var Columns = []string{
	"store_id",
	"uptime_last_hour",
	"uptime_last_day",
	"uptime_last_week",
	"downtime_last_hour",
	"downtime_last_day",
	"downtime_last_week",
}

// Row renders one metrics record in column order. Two decimal places keeps
// the minute-level computation reconstructable.
func Row(m domain.StoreMetrics) []string {
	return []string{
		m.StoreID,
		strconv.FormatFloat(m.UptimeLastHour, 'f', 2, 64),
		strconv.FormatFloat(m.UptimeLastDay, 'f', 2, 64),
		strconv.FormatFloat(m.UptimeLastWeek, 'f', 2, 64),
		strconv.FormatFloat(m.DowntimeLastHour, 'f', 2, 64),
		strconv.FormatFloat(m.DowntimeLastDay, 'f', 2, 64),
		strconv.FormatFloat(m.DowntimeLastWeek, 'f', 2, 64),
	}
}

// ArtifactStore is the durable write-once-then-read home for report files.
type ArtifactStore interface {
	// Save persists a finished report keyed by report id and returns its
	// location.
	Save(reportID string, rows []domain.StoreMetrics) (string, error)
	// Open reads back a previously saved artifact by location.
	Open(path string) (io.ReadCloser, error)
}

// FileArtifactStore writes CSV artifacts under a base directory.
type FileArtifactStore struct {
	dir string
}

func NewFileArtifactStore(dir string) *FileArtifactStore {
	return &FileArtifactStore{dir: dir}
}

var _ ArtifactStore = (*FileArtifactStore)(nil)

func (s *FileArtifactStore) Save(reportID string, rows []domain.StoreMetrics) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	path := filepath.Join(s.dir, reportID+".csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return "", fmt.Errorf("failed to write report header: %w", err)
	}
	for _, m := range rows {
		if err := w.Write(Row(m)); err != nil {
			return "", fmt.Errorf("failed to write report row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush report: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close report file: %w", err)
	}

	return path, nil
}

func (s *FileArtifactStore) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report file: %w", err)
	}
	return f, nil
}
