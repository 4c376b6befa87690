package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// OutputFormat selects the report renderer.
type OutputFormat string

const (
	FormatStylish OutputFormat = "stylish"
	FormatJSON    OutputFormat = "json"
)

// ProjectConfig holds project-level configuration loaded from .keyalign.yaml.
// Options are decoded separately because they are a string-or-object value.
type ProjectConfig struct {
	Options     RawOptions   `yaml:"-"           json:"options"`
	Include     []string     `yaml:"include"     json:"include,omitempty"     validate:"dive,required"`
	Exclude     []string     `yaml:"exclude"     json:"exclude,omitempty"     validate:"dive,required"`
	Concurrency int          `yaml:"concurrency" json:"concurrency,omitempty" validate:"gte=0,lte=256"`
	Format      OutputFormat `yaml:"format"      json:"format,omitempty"      validate:"omitempty,oneof=stylish json"`
	Cache       bool         `yaml:"cache"       json:"cache,omitempty"`
}

// DefaultConfig returns a zero-value config: default policy, every supported
// file, stylish output.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{}
}

// Policy normalizes the configured options.
func (c ProjectConfig) Policy() Policy {
	return Normalize(c.Options)
}

// EffectiveFormat returns the configured format, stylish when unset.
func (c ProjectConfig) EffectiveFormat() OutputFormat {
	if c.Format == "" {
		return FormatStylish
	}
	return c.Format
}

var configValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the non-option fields and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	err := configValidator.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("unknown %s %q (valid: %s)", field, fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte", "lte":
		return fmt.Sprintf("%s = %v (must be between 0 and 256)", field, fe.Value())
	case "required":
		return fmt.Sprintf("%s must not be empty", field)
	default:
		return fmt.Sprintf("%s failed %q validation", field, fe.Tag())
	}
}
