package curriculum

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"curriculum-service/internal/models"

	"gopkg.in/yaml.v3"
)

// LoadDir reads curriculum documents from a directory tree and normalizes
// each one. Documents may be JSON or YAML. A document that fails the format
// check is logged and skipped so one bad file does not block a seed run.
func LoadDir(root string) ([]*models.Curriculum, error) {
	var curricula []*models.Curriculum

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}

		var raw []byte
		switch {
		case strings.HasSuffix(path, ".json"):
			raw, err = os.ReadFile(path)
		case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
			raw, err = readYAML(path)
		default:
			return nil
		}
		if err != nil {
			log.Printf("skipping unreadable curriculum file %s: %v", path, err)
			return nil
		}

		cur, err := Normalize(raw)
		if err != nil {
			log.Printf("skipping invalid curriculum file %s: %v", path, err)
			return nil
		}
		curricula = append(curricula, cur)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking curriculum dir %s: %w", root, err)
	}
	return curricula, nil
}

// readYAML converts a YAML document to JSON so the one normalization
// pipeline handles both formats.
func readYAML(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}
