package mock

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/studiowebux/examcli/internal/types"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// LoadFixtures loads seed exams from a .yaml, .yml, .json or .jsonc file
func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures file: %w", err)
	}

	var fixtures Fixtures

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fixtures); err != nil {
			return nil, fmt.Errorf("failed to parse YAML fixtures: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &fixtures); err != nil {
			return nil, fmt.Errorf("failed to parse JSON fixtures: %w", err)
		}
	case ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &fixtures); err != nil {
			return nil, fmt.Errorf("failed to parse JSONC fixtures: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported fixtures file format: %s (use .yaml, .yml, .json or .jsonc)", ext)
	}

	if err := validateFixtures(&fixtures); err != nil {
		return nil, fmt.Errorf("invalid fixtures: %w", err)
	}

	return &fixtures, nil
}

// validateFixtures validates seed exams
func validateFixtures(fixtures *Fixtures) error {
	seen := make(map[int64]bool, len(fixtures.Exams))
	for i, exam := range fixtures.Exams {
		if exam.ID <= 0 {
			return fmt.Errorf("exam %d: id must be positive", i)
		}
		if seen[exam.ID] {
			return fmt.Errorf("exam %d: duplicate id %d", i, exam.ID)
		}
		seen[exam.ID] = true
		if exam.Title == "" {
			return fmt.Errorf("exam %d: title is required", i)
		}
		if exam.Status == "" {
			fixtures.Exams[i].Status = types.StatusPreparing
			continue
		}
		if _, err := types.ParseStatus(string(exam.Status)); err != nil {
			return fmt.Errorf("exam %d: %w", i, err)
		}
	}
	return nil
}
