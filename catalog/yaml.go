package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlEntity is one entity file:
//
//	name: Main
//	languages: [neutral, de]
//	entries:
//	  - key: Greeting
//	    values:
//	      neutral: Hi
//	      de: Hallo
type yamlEntity struct {
	Name      string      `yaml:"name"`
	Languages []string    `yaml:"languages"`
	Entries   []yamlEntry `yaml:"entries"`
}

type yamlEntry struct {
	Key     string            `yaml:"key"`
	Comment string            `yaml:"comment"`
	Values  map[string]string `yaml:"values"`
}

// LoadYAMLDir builds a catalog from every `.yaml/.yml` file below dir, one
// entity per file, in lexical path order.
func LoadYAMLDir(dir string) (*Resources, error) {
	r := New()
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		if err := r.loadYAMLFile(path); err != nil {
			return fmt.Errorf("loadYAMLFile %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Resources) loadYAMLFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var ye yamlEntity
	if err := yaml.Unmarshal(data, &ye); err != nil {
		return fmt.Errorf("yaml unmarshal: %w", err)
	}
	name := ye.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	locales := make([]Locale, 0, len(ye.Languages))
	for _, l := range ye.Languages {
		locales = append(locales, ParseLocale(l))
	}
	entity := r.NewEntity(name, locales...)

	for i, e := range ye.Entries {
		if e.Key == "" {
			return fmt.Errorf("entry %d missing 'key' field", i)
		}
		values := make(map[Locale]string, len(e.Values))
		for l, v := range e.Values {
			values[ParseLocale(l)] = v
		}
		entity.Add(e.Key, values).Comment = e.Comment
	}
	return nil
}
