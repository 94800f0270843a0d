// pkg/utils/yaml.go - YAML helpers for multi-line text.

package utils

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// LiteralString marshals as a literal block scalar so multi-line text such
// as a workflow transcript stays readable in YAML output.
type LiteralString string

// MarshalYAML implements the yaml.Marshaler interface.
func (ls LiteralString) MarshalYAML() (interface{}, error) {
	value := string(ls)
	if value == "" {
		return "", nil
	}
	node := &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!str",
		Value: strings.TrimRight(value, "\n") + "\n",
		Style: yaml.LiteralStyle,
	}
	return node, nil
}
