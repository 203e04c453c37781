package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nicwaller/fleece"
)

// loadFieldsFile reads a flat YAML mapping of static fields, keeping file order.
//
//	env: prod
//	datacenter: par1
func loadFieldsFile(path string) ([]fleece.StaticField, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fields file: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(dat, &doc); err != nil {
		return nil, fmt.Errorf("parse fields file %s: %w", path, err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("fields file %s: expected a mapping of key: value", path)
	}

	fields := make([]fleece.StaticField, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("fields file %s line %d: value of %q must be a scalar", path, value.Line, key.Value)
		}
		fields = append(fields, fleece.StaticField{Key: key.Value, Value: value.Value})
	}
	return fields, nil
}
