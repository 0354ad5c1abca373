package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/piwi3910/SeatShuffle/internal/model"
)

// DefaultTemplatePath returns the default file path for the templates store.
// This is located at ~/.seatshuffle/templates.json.
func DefaultTemplatePath() string {
	return filepath.Join(DefaultConfigDir(), "templates.json")
}

// SaveTemplates writes the template store to a JSON file.
func SaveTemplates(path string, store model.TemplateStore) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadTemplates reads a template store from a JSON file.
// If the file does not exist, returns an empty store.
func LoadTemplates(path string) (model.TemplateStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewTemplateStore(), nil
		}
		return model.TemplateStore{}, err
	}
	var store model.TemplateStore
	if err := json.Unmarshal(data, &store); err != nil {
		return model.TemplateStore{}, err
	}
	if store.Templates == nil {
		store.Templates = []model.ClassTemplate{}
	}
	return store, nil
}

// LoadDefaultTemplates loads templates from the default path.
func LoadDefaultTemplates() (model.TemplateStore, error) {
	return LoadTemplates(DefaultTemplatePath())
}

// SaveDefaultTemplates saves templates to the default path.
func SaveDefaultTemplates(store model.TemplateStore) error {
	return SaveTemplates(DefaultTemplatePath(), store)
}

// ExportTemplate writes a single template to a JSON file for sharing.
func ExportTemplate(path string, tmpl model.ClassTemplate) error {
	data, err := json.MarshalIndent(tmpl, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ImportTemplate reads a single shared template from a JSON file.
func ImportTemplate(path string) (model.ClassTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.ClassTemplate{}, err
	}

	var tmpl model.ClassTemplate
	if err := json.Unmarshal(data, &tmpl); err != nil {
		return model.ClassTemplate{}, err
	}
	if tmpl.Name == "" {
		return model.ClassTemplate{}, errors.New("imported template has no name")
	}
	if err := tmpl.ToRequest().Validate(); err != nil {
		return model.ClassTemplate{}, err
	}
	return tmpl, nil
}
