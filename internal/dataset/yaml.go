package dataset

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"datalist/internal/domain"
)

// parseYAML decodes a YAML sequence of mappings, keeping field order.
func parseYAML(data []byte) ([]string, []domain.Record, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("decode yaml: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil, fmt.Errorf("empty yaml document")
	}
	root := doc.Content[0]
	if root.Kind != yaml.SequenceNode {
		return nil, nil, fmt.Errorf("line %d: expected a sequence of records", root.Line)
	}

	var order fieldOrder
	records := make([]domain.Record, 0, len(root.Content))
	for idx, item := range root.Content {
		if item.Kind != yaml.MappingNode {
			return nil, nil, fmt.Errorf("record %d (line %d): expected a mapping", idx, item.Line)
		}
		rec := domain.Record{}
		for i := 0; i+1 < len(item.Content); i += 2 {
			keyNode, valNode := item.Content[i], item.Content[i+1]
			key := keyNode.Value
			if valNode.Kind != yaml.ScalarNode {
				return nil, nil, fmt.Errorf("record %d field %q (line %d): nested values are not supported", idx, key, valNode.Line)
			}
			if valNode.ShortTag() == "!!timestamp" {
				// Keep dates as written rather than as time.Time.
				rec[key] = domain.StringValue(valNode.Value)
				order.add(key)
				continue
			}
			var raw interface{}
			if err := valNode.Decode(&raw); err != nil {
				return nil, nil, fmt.Errorf("record %d field %q: %w", idx, key, err)
			}
			v, err := domain.ValueOf(raw)
			if err != nil {
				return nil, nil, fmt.Errorf("record %d field %q (line %d): %w", idx, key, valNode.Line, err)
			}
			rec[key] = v
			order.add(key)
		}
		records = append(records, rec)
	}
	return order.names, records, nil
}
