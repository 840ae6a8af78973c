package params

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MarshalYAML encodes the shape as its name.
func (s Shape) MarshalYAML() (interface{}, error) { return s.String(), nil }

// UnmarshalYAML decodes a shape from its name.
func (s *Shape) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return fmt.Errorf("shape: %w", err)
	}
	parsed, err := ShapeFromName(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalYAML encodes the leaf shape as its name.
func (s LeafShape) MarshalYAML() (interface{}, error) { return s.String(), nil }

// UnmarshalYAML decodes a leaf shape from its name.
func (s *LeafShape) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return fmt.Errorf("leaf shape: %w", err)
	}
	parsed, err := LeafShapeFromName(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalYAML encodes the blossom shape as its name.
func (s BlossomShape) MarshalYAML() (interface{}, error) { return s.String(), nil }

// UnmarshalYAML decodes a blossom shape from its name.
func (s *BlossomShape) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return fmt.Errorf("blossom shape: %w", err)
	}
	parsed, err := BlossomShapeFromName(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Load decodes a custom parameter bundle from YAML. Fields omitted in the
// document keep their Defaults values, so a bundle only needs to state
// what it changes. The result is validated; error-severity findings are
// returned as an InvalidParameterError.
func Load(data []byte) (ParameterSet, error) {
	p := Defaults()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return ParameterSet{}, fmt.Errorf("decode parameter bundle: %w", err)
	}
	if findings := p.Validate(); HasErrors(findings) {
		return ParameterSet{}, &InvalidParameterError{Findings: findings}
	}
	return p, nil
}

// LoadFile reads and decodes a custom parameter bundle from a YAML file.
func LoadFile(path string) (ParameterSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ParameterSet{}, fmt.Errorf("read parameter bundle: %w", err)
	}
	return Load(data)
}
