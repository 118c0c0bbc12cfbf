// Package filesystem loads series definitions from YAML seed files.
package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	v1 "github.com/aevon-lab/calseries/internal/api/v1"
)

// LoadSeeds reads every *.yaml / *.yml file in dir, one series per file.
// A missing directory yields no seeds. Series without a calendar get
// defaultCalendar.
func LoadSeeds(dir, defaultCalendar string) ([]*v1.Series, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("seed dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("seed path %q is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading seed dir: %w", err)
	}

	seen := make(map[string]string)
	var out []*v1.Series
	for _, e := range entries {
		if e.IsDir() || (!strings.HasSuffix(e.Name(), ".yaml") && !strings.HasSuffix(e.Name(), ".yml")) {
			continue
		}

		path := filepath.Join(dir, e.Name())
		series, err := loadSeedFile(path, defaultCalendar)
		if err != nil {
			return nil, err
		}
		if series == nil {
			continue
		}

		if prev, exists := seen[series.Name]; exists {
			return nil, fmt.Errorf("series %q: defined in both %s and %s", series.Name, prev, path)
		}
		seen[series.Name] = path
		out = append(out, series)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func loadSeedFile(path, defaultCalendar string) (*v1.Series, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file %s: %w", path, err)
	}

	var raw v1.SeriesDefinition
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing seed file %s: %w", path, err)
	}
	if raw.Name == "" {
		return nil, nil // empty / comment-only file
	}

	series, err := raw.ToSeries(defaultCalendar)
	if err != nil {
		return nil, fmt.Errorf("series %q in %s: %w", raw.Name, path, err)
	}
	return series, nil
}
