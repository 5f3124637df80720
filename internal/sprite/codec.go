package sprite

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseDocument parses a sprite document from YAML bytes.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse sprite document: %w", err)
	}
	return &doc, nil
}

// LoadDocument reads and parses a sprite document file.
//
// Example:
//
//	doc, err := sprite.LoadDocument("assets/examples/walker.sprite.yaml")
//	if err != nil {
//	    log.Fatalf("Failed to load document: %v", err)
//	}
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sprite document '%s': %w", path, err)
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sprite document '%s': %w", path, err)
	}
	return doc, nil
}

// SaveDocument marshals a document to YAML and writes it to path.
func SaveDocument(path string, doc *Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal sprite document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write sprite document '%s': %w", path, err)
	}
	return nil
}
