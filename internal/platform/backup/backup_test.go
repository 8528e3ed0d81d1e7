package backup

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	dir := t.TempDir()
	m := NewManager(dir, zerolog.Nop())
	m.RegisterExporter(Exporter{
		Name:   "medicines",
		Header: []string{"id", "name"},
		Rows: func(ctx context.Context) ([][]string, error) {
			return [][]string{{"1", "Aspirin"}, {"2", "Warfarin"}}, nil
		},
	})
	m.RegisterExporter(Exporter{
		Name:   "customers",
		Header: []string{"id", "name"},
		Rows: func(ctx context.Context) ([][]string, error) {
			return [][]string{{"1", "John Smith"}}, nil
		},
	})
	m.RegisterSummary(func(ctx context.Context) ([]string, error) {
		return []string{"medicines: 2", "customers: 1"}, nil
	})
	return m, dir
}

func readZipEntry(t *testing.T, path, name string) []byte {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	defer zr.Close()
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open entry %s: %v", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read entry %s: %v", name, err)
		}
		return data
	}
	t.Fatalf("entry %s not found in archive", name)
	return nil
}

func TestCreateFull(t *testing.T) {
	m, dir := newTestManager(t)

	archive, err := m.CreateFull(context.Background(), "nightly")
	if err != nil {
		t.Fatalf("CreateFull: %v", err)
	}
	if archive.Name != "nightly" {
		t.Errorf("expected name nightly, got %s", archive.Name)
	}
	if archive.Size <= 0 {
		t.Errorf("expected positive size, got %d", archive.Size)
	}

	path := filepath.Join(dir, "nightly.zip")

	var meta Metadata
	if err := json.Unmarshal(readZipEntry(t, path, "metadata.json"), &meta); err != nil {
		t.Fatalf("decode metadata: %v", err)
	}
	if meta.Name != "nightly" {
		t.Errorf("metadata name = %s", meta.Name)
	}
	if meta.Tables["medicines"] != 2 || meta.Tables["customers"] != 1 {
		t.Errorf("unexpected table counts: %v", meta.Tables)
	}
}

func TestCreateFull_CSVContent(t *testing.T) {
	m, dir := newTestManager(t)

	if _, err := m.CreateFull(context.Background(), "nightly"); err != nil {
		t.Fatalf("CreateFull: %v", err)
	}

	data := readZipEntry(t, filepath.Join(dir, "nightly.zip"), "medicines.csv")
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d records", len(records))
	}
	if records[0][1] != "name" {
		t.Errorf("unexpected header: %v", records[0])
	}
	if records[2][1] != "Warfarin" {
		t.Errorf("unexpected row: %v", records[2])
	}
}

func TestCreateFull_Report(t *testing.T) {
	m, dir := newTestManager(t)

	if _, err := m.CreateFull(context.Background(), "nightly"); err != nil {
		t.Fatalf("CreateFull: %v", err)
	}

	report := string(readZipEntry(t, filepath.Join(dir, "nightly.zip"), "report.txt"))
	if report != "medicines: 2\ncustomers: 1\n" {
		t.Errorf("unexpected report: %q", report)
	}
}

func TestCreateFull_DuplicateName(t *testing.T) {
	m, _ := newTestManager(t)

	if _, err := m.CreateFull(context.Background(), "nightly"); err != nil {
		t.Fatalf("first CreateFull: %v", err)
	}
	_, err := m.CreateFull(context.Background(), "nightly")
	if !errors.Is(err, ErrAlreadyExist) {
		t.Errorf("expected ErrAlreadyExist, got %v", err)
	}
}

func TestCreateFull_InvalidName(t *testing.T) {
	m, _ := newTestManager(t)

	for _, name := range []string{"../escape", "has space", "semi;colon"} {
		if _, err := m.CreateFull(context.Background(), name); !errors.Is(err, ErrInvalidName) {
			t.Errorf("name %q: expected ErrInvalidName, got %v", name, err)
		}
	}
}

func TestCreateFull_DefaultName(t *testing.T) {
	m, _ := newTestManager(t)

	archive, err := m.CreateFull(context.Background(), "")
	if err != nil {
		t.Fatalf("CreateFull: %v", err)
	}
	if archive.Name == "" {
		t.Error("expected generated name")
	}
}

func TestCreateFull_NoExporters(t *testing.T) {
	m := NewManager(t.TempDir(), zerolog.Nop())
	if _, err := m.CreateFull(context.Background(), "empty"); !errors.Is(err, ErrNoExporters) {
		t.Errorf("expected ErrNoExporters, got %v", err)
	}
}

func TestCreateFull_ExporterErrorRemovesArchive(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir, zerolog.Nop())
	m.RegisterExporter(Exporter{
		Name:   "broken",
		Header: []string{"id"},
		Rows: func(ctx context.Context) ([][]string, error) {
			return nil, errors.New("table unavailable")
		},
	})

	if _, err := m.CreateFull(context.Background(), "broken"); err == nil {
		t.Fatal("expected error from failing exporter")
	}

	archives, err := m.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(archives) != 0 {
		t.Errorf("expected partial archive to be removed, found %d", len(archives))
	}
}

func TestList(t *testing.T) {
	m, _ := newTestManager(t)

	if _, err := m.CreateFull(context.Background(), "first"); err != nil {
		t.Fatalf("CreateFull: %v", err)
	}
	if _, err := m.CreateFull(context.Background(), "second"); err != nil {
		t.Fatalf("CreateFull: %v", err)
	}

	archives, err := m.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(archives) != 2 {
		t.Fatalf("expected 2 archives, got %d", len(archives))
	}
	for _, a := range archives {
		if a.Size <= 0 {
			t.Errorf("archive %s has size %d", a.Name, a.Size)
		}
	}
}

func TestList_MissingDir(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "never-created"), zerolog.Nop())
	archives, err := m.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(archives) != 0 {
		t.Errorf("expected empty list, got %d", len(archives))
	}
}
