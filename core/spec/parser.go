// Package spec parses declarative YAML job definitions, the file-driven
// alternative to hand-written Definition types for pipeline use.
package spec

import (
	"context"
	"fmt"

	"batch-client/core/apperrors"
	"batch-client/core/models"
	"batch-client/storage"

	"gopkg.in/yaml.v3"
)

// JobSpec is the top-level YAML job definition document.
type JobSpec struct {
	Definition SpecDefinition `yaml:"definition"`
}

// SpecDefinition is the definition section of the spec.
type SpecDefinition struct {
	Name       string          `yaml:"name"`
	Revision   string          `yaml:"revision"`
	Parameters []SpecParameter `yaml:"parameters"`
	// Inputs are S3 URIs that must exist before the job may be submitted.
	Inputs []string `yaml:"inputs"`
}

// SpecParameter is one declared parameter, in declaration order.
type SpecParameter struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// Definition is a job definition parsed from a YAML spec. It implements
// models.Definition; Validate checks that every declared input object
// exists in storage.
type Definition struct {
	models.Base

	name    string
	params  []models.Parameter
	inputs  []storage.S3Uri
	checker storage.ObjectChecker
}

// Parse parses a YAML job spec into a Definition. The checker is used by
// Validate to verify input objects; it may be nil when the spec declares
// no inputs.
func Parse(specYAML string, checker storage.ObjectChecker) (*Definition, error) {
	var spec JobSpec
	if err := yaml.Unmarshal([]byte(specYAML), &spec); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if spec.Definition.Name == "" {
		return nil, fmt.Errorf("job spec is missing a definition name")
	}

	def := &Definition{
		name:    spec.Definition.Name,
		checker: checker,
	}
	if spec.Definition.Revision != "" {
		def.AtRevision(spec.Definition.Revision)
	}
	for _, p := range spec.Definition.Parameters {
		def.params = append(def.params, models.Parameter{Name: p.Name, Value: p.Value})
	}
	for _, raw := range spec.Definition.Inputs {
		uri, err := storage.ParseS3Uri(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid input in job spec: %w", err)
		}
		def.inputs = append(def.inputs, uri)
	}
	return def, nil
}

// Name returns the job-family identifier declared in the spec.
func (d *Definition) Name() string {
	return d.name
}

// Parameters returns the declared parameters in declaration order.
func (d *Definition) Parameters() []models.Parameter {
	return d.params
}

// Inputs returns the input object URIs the definition depends on.
func (d *Definition) Inputs() []storage.S3Uri {
	return d.inputs
}

// Validate verifies every declared input object exists. Safe to call
// repeatedly.
func (d *Definition) Validate(ctx context.Context) error {
	if len(d.inputs) == 0 {
		return nil
	}
	if d.checker == nil {
		return fmt.Errorf("definition %s declares inputs but has no object checker", d.name)
	}
	for _, uri := range d.inputs {
		exists, err := uri.ObjectExists(ctx, d.checker)
		if err != nil {
			return fmt.Errorf("failed to check input %s: %w", uri, err)
		}
		if !exists {
			return apperrors.NotFound("input object", uri.String())
		}
	}
	return nil
}
