package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/SeatShuffle/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultMaxRetries = 2000
	cfg.LogLevel = "debug"

	store := model.NewTemplateStore()
	store.Add(model.NewClassTemplate("3B", "", model.Request{Students: 28, Rows: 4, Cols: 7}))

	if err := ExportAllData(path, cfg, store); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}

	if backup.Version != BackupVersion {
		t.Errorf("expected version %s, got %s", BackupVersion, backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if backup.Config.DefaultMaxRetries != 2000 {
		t.Errorf("expected DefaultMaxRetries=2000, got %d", backup.Config.DefaultMaxRetries)
	}
	if backup.Config.LogLevel != "debug" {
		t.Errorf("expected LogLevel=debug, got %s", backup.Config.LogLevel)
	}
	if len(backup.Templates.Templates) != 1 || backup.Templates.Templates[0].Students != 28 {
		t.Errorf("templates not restored: %+v", backup.Templates)
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	_, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportAllDataInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportAllData(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "noversion.json")
	if err := os.WriteFile(path, []byte(`{"config":{}}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportAllData(path)
	if err == nil {
		t.Fatal("expected error for missing version")
	}
}

func TestExportAllDataCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deep", "nested", "backup.json")

	if err := ExportAllData(path, model.DefaultAppConfig(), model.NewTemplateStore()); err != nil {
		t.Fatalf("ExportAllData should create parent dirs: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("backup file was not created")
	}
}

func TestImportAllDataNilSlices(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")
	data := []byte(`{"version":"1.0.0","config":{"recent_requests":null},"templates":{"templates":null}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Config.RecentRequests == nil {
		t.Error("RecentRequests should not be nil after import")
	}
	if backup.Templates.Templates == nil {
		t.Error("Templates should not be nil after import")
	}
}

func writeBackup(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "backup.json")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImportAllDataRejectsNewerMajorVersion(t *testing.T) {
	path := writeBackup(t, `{"version":"2.0.0","config":{}}`)

	_, err := ImportAllData(path)
	if !errors.Is(err, ErrUnsupportedBackup) {
		t.Fatalf("expected ErrUnsupportedBackup, got %v", err)
	}
}

func TestImportAllDataRejectsInvalidConfig(t *testing.T) {
	tests := map[string]string{
		"overflow mode":    `{"version":"1.0.0","config":{"default_overflow_mode":"random"}}`,
		"negative rows":    `{"version":"1.0.0","config":{"default_rows":-1}}`,
		"negative retries": `{"version":"1.0.0","config":{"default_max_retries":-5}}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ImportAllData(writeBackup(t, body))
			if !errors.Is(err, model.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestImportAllDataRejectsUnseatableTemplate(t *testing.T) {
	// Student 9 is fixed outside a 2x2 room.
	body := `{"version":"1.1.0","config":{},"templates":{"templates":[
		{"name":"3B","students":4,"rows":2,"cols":2,"fixed_seats":[{"student":9,"row":5,"col":0}]}
	]}}`

	_, err := ImportAllData(writeBackup(t, body))
	if !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestImportAllDataRejectsDuplicateTemplateNames(t *testing.T) {
	body := `{"version":"1.1.0","config":{},"templates":{"templates":[
		{"name":"3B","students":4,"rows":2,"cols":2},
		{"name":"3B","students":6,"rows":2,"cols":3}
	]}}`

	_, err := ImportAllData(writeBackup(t, body))
	if !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestImportAllDataRejectsUnnamedTemplate(t *testing.T) {
	body := `{"version":"1.1.0","config":{},"templates":{"templates":[{"students":4,"rows":2,"cols":2}]}}`

	_, err := ImportAllData(writeBackup(t, body))
	if !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
