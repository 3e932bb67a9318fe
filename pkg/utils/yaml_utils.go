package utils

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-yaml"
)

const DefaultYAMLIndent = 2

// ConvertToYAML converts the provided value to a YAML document.
func ConvertToYAML(data interface{}) (string, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf, yaml.Indent(DefaultYAMLIndent))
	if err := encoder.Encode(data); err != nil {
		return "", err
	}
	if err := encoder.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// PrintAsYAML prints the provided value as a YAML document to the console.
func PrintAsYAML(data interface{}) error {
	y, err := ConvertToYAML(data)
	if err != nil {
		return err
	}
	fmt.Print(y)
	return nil
}
