package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func (v *Values) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*v = Values{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*v = list
		return nil
	default:
		return fmt.Errorf("line %d: expected a string or a list of strings", node.Line)
	}
}

// UnmarshalYAML accepts either an ordered mapping of pattern to replacement
// or a list of {pattern, replacement} objects.
func (r *ReplaceRules) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		rules := make(ReplaceRules, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if value.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: replacement for %q must be a string", value.Line, key.Value)
			}
			rules = append(rules, ReplaceRule{Pattern: key.Value, Replacement: value.Value})
		}
		*r = rules
		return nil
	case yaml.SequenceNode:
		var rules []ReplaceRule
		if err := node.Decode(&rules); err != nil {
			return err
		}
		*r = rules
		return nil
	default:
		return fmt.Errorf("line %d: body_replace must be a mapping or a list", node.Line)
	}
}

// UnmarshalYAML reads
//
//	item_field_map:
//	  status:
//	    private:
//	      draft: true
//
// preserving the order of fields and values.
func (m *FieldMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: item_field_map must be a mapping", node.Line)
	}

	var overrides FieldMap
	for i := 0; i+1 < len(node.Content); i += 2 {
		field, values := node.Content[i], node.Content[i+1]
		if values.Kind != yaml.MappingNode {
			return fmt.Errorf("line %d: item_field_map.%s must be a mapping", values.Line, field.Value)
		}
		for j := 0; j+1 < len(values.Content); j += 2 {
			trigger, body := values.Content[j], values.Content[j+1]
			var fm map[string]any
			if err := body.Decode(&fm); err != nil {
				return fmt.Errorf("item_field_map.%s.%s: %w", field.Value, trigger.Value, err)
			}
			overrides = append(overrides, FieldOverride{
				Field:     field.Value,
				Value:     trigger.Value,
				Overrides: fm,
			})
		}
	}

	*m = overrides
	return nil
}
