package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/SeatShuffle/internal/model"
	"gopkg.in/yaml.v3"
)

// isYAML reports whether path names a YAML file.
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// LoadRequest reads a seating request from a YAML (.yaml, .yml) or JSON file.
// Unknown fields are rejected so typos do not silently drop constraints. The
// request is not validated here.
func LoadRequest(path string) (model.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Request{}, fmt.Errorf("failed to read request file: %w", err)
	}

	var req model.Request
	if isYAML(path) {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&req); err != nil {
			return model.Request{}, fmt.Errorf("%w: request %s: %v", model.ErrInvalidInput, path, err)
		}
		return req, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return model.Request{}, fmt.Errorf("%w: request %s: %v", model.ErrInvalidInput, path, err)
	}
	return req, nil
}

// SaveRequest writes a request as YAML or JSON depending on the file extension.
func SaveRequest(path string, req model.Request) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(req)
	} else {
		data, err = json.MarshalIndent(req, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create request directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadResult reads a seating result (at least its seating and overflow) from
// a JSON file, as written by SaveResult or the shuffle command.
func LoadResult(path string) (model.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Result{}, fmt.Errorf("failed to read result file: %w", err)
	}
	var res model.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return model.Result{}, fmt.Errorf("%w: result %s: %v", model.ErrInvalidInput, path, err)
	}
	if res.Overflow == nil {
		res.Overflow = []int{}
	}
	return res, nil
}

// SaveResult writes a seating result as JSON.
func SaveResult(path string, res model.Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create result directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
