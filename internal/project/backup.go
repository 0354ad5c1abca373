package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/piwi3910/SeatShuffle/internal/model"
)

// BackupVersion is written into every backup file. Backups with the same
// major version can be restored.
const BackupVersion = "1.1.0"

// ErrUnsupportedBackup is returned for backups written by an incompatible release.
var ErrUnsupportedBackup = errors.New("unsupported backup version")

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version   string              `json:"version"`
	CreatedAt string              `json:"created_at"`
	Config    model.AppConfig     `json:"config"`
	Templates model.TemplateStore `json:"templates"`
}

// ExportAllData exports the config and class templates to a single JSON file
// at the specified path.
func ExportAllData(exportPath string, config model.AppConfig, templates model.TemplateStore) error {
	backup := BackupData{
		Version:   BackupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Templates: templates,
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup data: %w", err)
	}

	dir := filepath.Dir(exportPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	if err := os.WriteFile(exportPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The config defaults and every template's class must be valid, so a restore
// never leaves behind a template that cannot be shuffled.
// The caller is responsible for applying the imported config and templates.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if err := checkBackupVersion(backup.Version); err != nil {
		return BackupData{}, err
	}
	if err := checkAppConfig(backup.Config); err != nil {
		return BackupData{}, fmt.Errorf("backup config: %w", err)
	}
	if err := checkBackupTemplates(backup.Templates.Templates); err != nil {
		return BackupData{}, err
	}

	if backup.Config.RecentRequests == nil {
		backup.Config.RecentRequests = []string{}
	}
	if backup.Templates.Templates == nil {
		backup.Templates.Templates = []model.ClassTemplate{}
	}
	return backup, nil
}

func checkBackupVersion(version string) error {
	if version == "" {
		return fmt.Errorf("invalid backup file: missing version field")
	}
	major, _, _ := strings.Cut(version, ".")
	current, _, _ := strings.Cut(BackupVersion, ".")
	if major != current {
		return fmt.Errorf("%w: %s (this release reads %s.x)", ErrUnsupportedBackup, version, current)
	}
	return nil
}

func checkBackupTemplates(templates []model.ClassTemplate) error {
	seen := make(map[string]int, len(templates))
	for i, tmpl := range templates {
		if tmpl.Name == "" {
			return fmt.Errorf("%w: backup template %d has no name", model.ErrInvalidInput, i)
		}
		if j, dup := seen[tmpl.Name]; dup {
			return fmt.Errorf("%w: backup templates %d and %d are both named %q",
				model.ErrInvalidInput, j, i, tmpl.Name)
		}
		seen[tmpl.Name] = i
		if err := tmpl.ToRequest().Validate(); err != nil {
			return fmt.Errorf("backup template %q: %w", tmpl.Name, err)
		}
	}
	return nil
}
