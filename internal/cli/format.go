package cli

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/five82/shelfscan/internal/session"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// formatRecord renders a found search record. YAML output keeps the key
// order the catalog sent.
func formatRecord(outcome session.SearchOutcome, format string) (string, error) {
	if format != formatYAML {
		return outcome.Text(), nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(outcome.Record, &doc); err != nil {
		return "", fmt.Errorf("decode record: %w", err)
	}
	blockStyle(&doc)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}
	return buf.String(), nil
}

// blockStyle clears the flow and quoting styles a JSON document decodes with.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		blockStyle(child)
	}
}
