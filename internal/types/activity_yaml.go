package types

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML accepts either the numeric value or the name.
func (a *ActivityType) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: activity type must be a scalar", value.Line)
	}
	parsed, err := ParseActivityType(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*a = parsed
	return nil
}
