package menu

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Button is a leaf entry bound to a shell command.
type Button struct {
	Name        string `json:"name" yaml:"name"`
	Icon        string `json:"icon" yaml:"icon"`
	Command     string `json:"command" yaml:"command"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string `json:"category,omitempty" yaml:"category,omitempty"`
}

// Category groups buttons under a named sub-menu.
type Category struct {
	Name        string `json:"name" yaml:"name"`
	Icon        string `json:"icon" yaml:"icon"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Config is the validated menu document. It is read-only after Load.
type Config struct {
	Buttons    []Button       `json:"buttons" yaml:"buttons"`
	Categories []Category     `json:"categories" yaml:"categories"`
	Theme      map[string]any `json:"theme,omitempty" yaml:"theme,omitempty"`
}

// CategoryByName resolves a category. Duplicate names resolve to the last
// definition.
func (c *Config) CategoryByName(name string) (Category, bool) {
	if c == nil {
		return Category{}, false
	}
	var (
		found Category
		ok    bool
	)
	for _, cat := range c.Categories {
		if cat.Name == name {
			found = cat
			ok = true
		}
	}
	return found, ok
}

type fieldSpec struct {
	name     string
	required bool
}

var (
	buttonFields = []fieldSpec{
		{name: "name", required: true},
		{name: "icon", required: true},
		{name: "command", required: true},
		{name: "description"},
		{name: "category"},
	}
	categoryFields = []fieldSpec{
		{name: "name", required: true},
		{name: "icon", required: true},
		{name: "description"},
	}
)

// Load reads the first existing candidate and returns the parsed config
// together with the path it came from.
func Load(candidates []string, log *zap.Logger) (*Config, string, error) {
	if log == nil {
		log = zap.NewNop()
	}
	tried := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		path := strings.TrimSpace(candidate)
		if path == "" {
			continue
		}
		tried = append(tried, path)
		info, err := os.Stat(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				log.Debug("skipping menu config candidate", zap.String("path", path), zap.Error(err))
			}
			continue
		}
		if info.IsDir() {
			log.Debug("skipping menu config candidate", zap.String("path", path), zap.String("reason", "is a directory"))
			continue
		}
		log.Info("loading menu config", zap.String("path", path))
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, path, fmt.Errorf("read menu config %s: %w", path, err)
		}
		cfg, err := Parse(data, path)
		if err != nil {
			return nil, path, err
		}
		log.Debug("menu config loaded",
			zap.String("path", path),
			zap.Int("buttons", len(cfg.Buttons)),
			zap.Int("categories", len(cfg.Categories)),
		)
		return cfg, path, nil
	}
	return nil, "", &NotFoundError{Paths: tried}
}

// Parse decodes and validates a menu document. path is only used to give
// errors context.
func Parse(data []byte, path string) (*Config, error) {
	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		offset := int64(-1)
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			offset = syntaxErr.Offset
		}
		return nil, &ParseError{Path: path, Offset: offset, Err: err}
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil || top == nil {
		return nil, &ValidationError{Path: path, Section: "config", Index: -1, Reason: "top level must be a JSON object"}
	}

	cfg := &Config{Theme: map[string]any{}}

	rawButtons, ok := top["buttons"]
	if !ok {
		return nil, &ValidationError{Path: path, Section: "buttons", Index: -1, Reason: "required key is missing"}
	}
	buttons, verr := decodeArray(rawButtons, "buttons", path, false)
	if verr != nil {
		return nil, verr
	}
	cfg.Buttons = make([]Button, 0, len(buttons))
	for i, raw := range buttons {
		values, verr := decodeObject(raw, buttonFields, "buttons", i, path)
		if verr != nil {
			return nil, verr
		}
		btn := Button{
			Name:        values["name"],
			Icon:        values["icon"],
			Command:     values["command"],
			Description: values["description"],
			Category:    values["category"],
		}
		if strings.TrimSpace(btn.Command) == "" {
			return nil, &ValidationError{Path: path, Section: "buttons", Index: i, Field: "command", Reason: "must not be empty"}
		}
		cfg.Buttons = append(cfg.Buttons, btn)
	}

	if rawCategories, ok := top["categories"]; ok {
		categories, verr := decodeArray(rawCategories, "categories", path, true)
		if verr != nil {
			return nil, verr
		}
		seen := make(map[string]int, len(categories))
		cfg.Categories = make([]Category, 0, len(categories))
		for i, raw := range categories {
			values, verr := decodeObject(raw, categoryFields, "categories", i, path)
			if verr != nil {
				return nil, verr
			}
			cat := Category{
				Name:        values["name"],
				Icon:        values["icon"],
				Description: values["description"],
			}
			if strings.TrimSpace(cat.Name) == "" {
				return nil, &ValidationError{Path: path, Section: "categories", Index: i, Field: "name", Reason: "must not be empty"}
			}
			if first, dup := seen[cat.Name]; dup {
				return nil, &ValidationError{
					Path:    path,
					Section: "categories",
					Index:   i,
					Field:   "name",
					Reason:  fmt.Sprintf("duplicate category name %q (first defined at index %d)", cat.Name, first),
				}
			}
			seen[cat.Name] = i
			cfg.Categories = append(cfg.Categories, cat)
		}
	}

	if rawTheme, ok := top["theme"]; ok && !isNull(rawTheme) {
		var theme map[string]any
		if err := json.Unmarshal(rawTheme, &theme); err != nil {
			return nil, &ValidationError{Path: path, Section: "theme", Index: -1, Reason: "must be a JSON object"}
		}
		cfg.Theme = theme
	}

	return cfg, nil
}

func decodeArray(raw json.RawMessage, section, path string, allowNull bool) ([]json.RawMessage, *ValidationError) {
	if isNull(raw) {
		if allowNull {
			return nil, nil
		}
		return nil, &ValidationError{Path: path, Section: section, Index: -1, Reason: "must be an array, got null"}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &ValidationError{Path: path, Section: section, Index: -1, Reason: "must be an array"}
	}
	return items, nil
}

func decodeObject(raw json.RawMessage, fields []fieldSpec, section string, index int, path string) (map[string]string, *ValidationError) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, &ValidationError{Path: path, Section: section, Index: index, Reason: "must be a JSON object"}
	}
	allowed := make(map[string]struct{}, len(fields))
	values := make(map[string]string, len(fields))
	for _, field := range fields {
		allowed[field.name] = struct{}{}
		value, present := obj[field.name]
		if !present || (isNull(value) && !field.required) {
			if field.required {
				return nil, &ValidationError{Path: path, Section: section, Index: index, Field: field.name, Reason: "required field is missing"}
			}
			continue
		}
		var s string
		if err := json.Unmarshal(value, &s); err != nil || isNull(value) {
			return nil, &ValidationError{Path: path, Section: section, Index: index, Field: field.name, Reason: "must be a string"}
		}
		values[field.name] = s
	}
	for _, key := range sortedKeys(obj) {
		if _, ok := allowed[key]; !ok {
			return nil, &ValidationError{Path: path, Section: section, Index: index, Field: key, Reason: "unknown field"}
		}
	}
	return values, nil
}

func sortedKeys(obj map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
