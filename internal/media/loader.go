package media

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type topicFile struct {
	TopicID string `yaml:"topic_id"`
	Items   []Item `yaml:"items"`
}

// NewIndexFromDir loads per-topic media catalogs from YAML files under
// dir. Each file carries a topic_id and its item list; invalid files are
// logged and skipped.
func NewIndexFromDir(baseURL, dir string) (*Index, error) {
	items := make(map[string][]Item)

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

		var tf topicFile
		if err := yaml.Unmarshal(data, &tf); err != nil {
			slog.Warn("skipping invalid media YAML", "path", path, "error", err)
			return nil
		}
		if tf.TopicID == "" || len(tf.Items) == 0 {
			slog.Warn("skipping incomplete media YAML", "path", path)
			return nil
		}

		items[tf.TopicID] = append(items[tf.TopicID], tf.Items...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading media index from %s: %w", dir, err)
	}

	slog.Info("media index loaded", "dir", dir, "topics", len(items))
	return NewIndex(baseURL, items), nil
}
