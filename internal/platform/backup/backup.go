// Package backup produces zip archives of pharmacy data for offline
// safekeeping. Each archive contains one CSV per registered exporter,
// a metadata.json describing the export, and a plain-text summary report.
package backup

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	ErrNoExporters  = errors.New("no exporters registered")
	ErrInvalidName  = errors.New("backup name may only contain letters, digits, dashes and underscores")
	ErrAlreadyExist = errors.New("a backup with that name already exists")
)

// Exporter supplies one CSV table for an archive.
type Exporter struct {
	Name   string
	Header []string
	Rows   func(ctx context.Context) ([][]string, error)
}

// SummaryFunc produces the lines of the archive's plain-text report.
type SummaryFunc func(ctx context.Context) ([]string, error)

// Archive describes a backup file on disk.
type Archive struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// Metadata is written into each archive as metadata.json.
type Metadata struct {
	Name      string         `json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	Tables    map[string]int `json:"tables"`
}

// Manager creates and lists backup archives in a directory.
type Manager struct {
	dir       string
	log       zerolog.Logger
	exporters []Exporter
	summary   SummaryFunc
}

// NewManager creates a Manager writing archives under dir.
func NewManager(dir string, logger zerolog.Logger) *Manager {
	return &Manager{dir: dir, log: logger.With().Str("component", "backup").Logger()}
}

// RegisterExporter adds a CSV exporter. Exporters run in registration order.
func (m *Manager) RegisterExporter(e Exporter) {
	m.exporters = append(m.exporters, e)
}

// RegisterSummary sets the function that produces report.txt.
func (m *Manager) RegisterSummary(fn SummaryFunc) {
	m.summary = fn
}

// CreateFull exports every registered table into a new zip archive.
// An empty name defaults to a timestamped one.
func (m *Manager) CreateFull(ctx context.Context, name string) (*Archive, error) {
	if len(m.exporters) == 0 {
		return nil, ErrNoExporters
	}
	if name == "" {
		name = time.Now().UTC().Format("backup-20060102-150405")
	}
	if !validName(name) {
		return nil, ErrInvalidName
	}

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}

	path := filepath.Join(m.dir, name+".zip")
	if _, err := os.Stat(path); err == nil {
		return nil, ErrAlreadyExist
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create archive: %w", err)
	}

	meta := Metadata{Name: name, CreatedAt: time.Now().UTC(), Tables: map[string]int{}}

	zw := zip.NewWriter(f)
	writeErr := func() error {
		for _, e := range m.exporters {
			rows, err := e.Rows(ctx)
			if err != nil {
				return fmt.Errorf("export %s: %w", e.Name, err)
			}
			w, err := zw.Create(e.Name + ".csv")
			if err != nil {
				return err
			}
			cw := csv.NewWriter(w)
			if err := cw.Write(e.Header); err != nil {
				return err
			}
			if err := cw.WriteAll(rows); err != nil {
				return err
			}
			meta.Tables[e.Name] = len(rows)
		}

		if m.summary != nil {
			lines, err := m.summary(ctx)
			if err != nil {
				return fmt.Errorf("summary: %w", err)
			}
			w, err := zw.Create("report.txt")
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(w, strings.Join(lines, "\n")); err != nil {
				return err
			}
		}

		w, err := zw.Create("metadata.json")
		if err != nil {
			return err
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}()

	if err := zw.Close(); err != nil && writeErr == nil {
		writeErr = err
	}
	if err := f.Close(); err != nil && writeErr == nil {
		writeErr = err
	}
	if writeErr != nil {
		os.Remove(path)
		return nil, writeErr
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	m.log.Info().Str("archive", name).Int64("size", info.Size()).Msg("backup created")

	return &Archive{Name: name, Size: info.Size(), CreatedAt: meta.CreatedAt}, nil
}

// List returns all archives in the backup directory, newest first.
func (m *Manager) List() ([]Archive, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Archive{}, nil
		}
		return nil, err
	}

	archives := []Archive{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".zip") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		archives = append(archives, Archive{
			Name:      strings.TrimSuffix(entry.Name(), ".zip"),
			Size:      info.Size(),
			CreatedAt: info.ModTime().UTC(),
		})
	}

	sort.Slice(archives, func(i, j int) bool {
		return archives[i].CreatedAt.After(archives[j].CreatedAt)
	})

	return archives, nil
}

func validName(name string) bool {
	if name == "" || len(name) > 128 {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
