package github

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadRulesFile reads a rule document: either hand-written YAML or the
// JSON report produced by the fetch-and-print path (YAML being a JSON
// superset, both parse the same way). The document may be one rule
// mapping or a sequence of them.
func LoadRulesFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var rules []Record
	if err := yaml.Unmarshal(data, &rules); err == nil {
		return rules, nil
	}

	var single Record
	if err := yaml.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}
	return []Record{single}, nil
}
