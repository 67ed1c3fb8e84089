// Package registry loads the model catalog a node can run locally.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"fogproxy/internal/common/fsutil"
	"fogproxy/pkg/types"
)

// catalogFile is the on-disk document shape: {models: [...]}.
type catalogFile struct {
	Models []types.Model `json:"models" yaml:"models" toml:"models"`
}

// Load reads a catalog from a single file or from every catalog file in a directory.
func Load(path string) ([]types.Model, error) {
	abs, err := fsutil.Resolve(path)
	if err != nil {
		return nil, err
	}
	if fsutil.IsDir(abs) {
		return LoadDir(abs)
	}
	return LoadFile(abs)
}

// LoadFile parses one catalog file based on its extension (.yaml/.yml, .json, .toml).
// YAML and JSON files may also hold a bare top-level list of models.
func LoadFile(path string) ([]types.Model, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	models, err := decode(fsutil.Ext(path), b)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if err := validate(models); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return models, nil
}

// LoadDir concatenates every catalog file in dir, in lexical filename order.
// Files with other extensions are ignored.
func LoadDir(dir string) ([]types.Model, error) {
	base, err := fsutil.Resolve(dir)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isCatalogExt(fsutil.Ext(e.Name())) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	var models []types.Model
	for _, name := range names {
		ms, err := LoadFile(filepath.Join(base, name))
		if err != nil {
			return nil, err
		}
		models = append(models, ms...)
	}
	return models, nil
}

func isCatalogExt(ext string) bool {
	switch ext {
	case ".yaml", ".yml", ".json", ".toml":
		return true
	}
	return false
}

func decode(ext string, b []byte) ([]types.Model, error) {
	var doc catalogFile
	switch ext {
	case ".yaml", ".yml":
		if looksLikeList(b, '-') {
			var list []types.Model
			if err := yaml.Unmarshal(b, &list); err != nil {
				return nil, err
			}
			return list, nil
		}
		if err := yaml.Unmarshal(b, &doc); err != nil {
			return nil, err
		}
	case ".json":
		if looksLikeList(b, '[') {
			var list []types.Model
			if err := json.Unmarshal(b, &list); err != nil {
				return nil, err
			}
			return list, nil
		}
		if err := json.Unmarshal(b, &doc); err != nil {
			return nil, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported catalog extension: %s", ext)
	}
	return doc.Models, nil
}

// looksLikeList reports whether the first significant character of b is lead.
func looksLikeList(b []byte, lead byte) bool {
	for _, line := range strings.Split(string(b), "\n") {
		s := strings.TrimSpace(line)
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		return s[0] == lead
	}
	return false
}

func validate(models []types.Model) error {
	for i, m := range models {
		if strings.TrimSpace(m.Name) == "" {
			return fmt.Errorf("model %d: empty name", i)
		}
		if m.Accuracy < 0 || m.Cost < 0 {
			return fmt.Errorf("model %q: accuracy and cost must be non-negative", m.Name)
		}
	}
	return nil
}
