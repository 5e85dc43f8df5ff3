// Package config reads option files (.brace.toml, .brace.yaml) and feeds
// them, in file order, into style.Options.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"brace/internal/style"
)

// FileNames are probed in every directory, first match wins.
var FileNames = []string{".brace.toml", ".brace.yaml", ".brace.yml"}

// Entry is one key/value pair as written in the file.
type Entry struct {
	Key   string
	Value string
	Line  int
}

// File is a parsed option file.
type File struct {
	Path    string
	Entries []Entry
	// Exclude holds glob patterns from the "exclude" key.
	Exclude []string
}

// Find walks up from startDir and returns the first option file found.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, errors.Wrapf(err, "resolve %q", startDir)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !os.IsNotExist(err) {
				return "", false, errors.Wrapf(err, "stat %q", candidate)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses an option file; the format follows the extension.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read options %s", path)
	}
	var entries []Entry
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		entries, err = parseYAML(data)
	default:
		entries, err = parseTOML(data)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "parse options %s", path)
	}
	f := &File{Path: path}
	for _, e := range entries {
		if style.NormalizeKey(e.Key) == "exclude" {
			for _, p := range strings.Split(e.Value, ",") {
				if p = strings.TrimSpace(p); p != "" {
					f.Exclude = append(f.Exclude, p)
				}
			}
			continue
		}
		f.Entries = append(f.Entries, e)
	}
	return f, nil
}

// Apply sets every entry on opts in file order.
func (f *File) Apply(opts *style.Options) error {
	for _, e := range f.Entries {
		if err := opts.Set(e.Key, e.Value); err != nil {
			if e.Line > 0 {
				return errors.Wrapf(err, "%s:%d", f.Path, e.Line)
			}
			return errors.Wrapf(err, "%s", f.Path)
		}
	}
	return nil
}

func parseTOML(data []byte) ([]Entry, error) {
	var raw map[string]any
	meta, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&raw)
	if err != nil {
		return nil, err
	}
	var out []Entry
	for _, key := range meta.Keys() {
		if len(key) != 1 {
			return nil, errors.Errorf("nested key %q is not supported", key.String())
		}
		v, err := scalarString(raw[key[0]])
		if err != nil {
			return nil, errors.Wrapf(err, "key %s", key[0])
		}
		out = append(out, Entry{Key: key[0], Value: v})
	}
	return out, nil
}

func scalarString(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case []any:
		parts := make([]string, 0, len(x))
		for _, item := range x {
			s, err := scalarString(item)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ","), nil
	}
	return "", fmt.Errorf("unsupported value type %T", v)
}

func parseYAML(data []byte) ([]Entry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.Errorf("line %d: top level must be a mapping", root.Line)
	}
	var out []Entry
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		var value string
		switch v.Kind {
		case yaml.ScalarNode:
			value = v.Value
		case yaml.SequenceNode:
			parts := make([]string, 0, len(v.Content))
			for _, item := range v.Content {
				if item.Kind != yaml.ScalarNode {
					return nil, errors.Errorf("line %d: %s: nested lists are not supported", item.Line, k.Value)
				}
				parts = append(parts, item.Value)
			}
			value = strings.Join(parts, ",")
		default:
			return nil, errors.Errorf("line %d: %s: unsupported value", v.Line, k.Value)
		}
		out = append(out, Entry{Key: k.Value, Value: value, Line: k.Line})
	}
	return out, nil
}
