package curriculum

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// NewRegistryFromDir loads topic definitions from YAML files under dir.
// Files are visited in lexical path order, which fixes the topic order.
// Files that do not parse as a topic are logged and skipped.
func NewRegistryFromDir(dir string) (*Registry, error) {
	var topics []Topic

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		if !strings.HasSuffix(path, ".yaml") && !strings.HasSuffix(path, ".yml") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		var topic Topic
		if err := yaml.Unmarshal(data, &topic); err != nil {
			slog.Warn("skipping invalid topic YAML", "path", path, "error", err)
			return nil
		}
		if topic.ID == "" || len(topic.Concepts) == 0 {
			slog.Warn("skipping incomplete topic YAML", "path", path)
			return nil
		}

		topics = append(topics, topic)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading curriculum from %s: %w", dir, err)
	}

	r, err := NewRegistry(topics...)
	if err != nil {
		return nil, fmt.Errorf("loading curriculum from %s: %w", dir, err)
	}

	slog.Info("curriculum loaded", "dir", dir, "topics", len(topics))
	return r, nil
}
