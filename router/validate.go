// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package router

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// fieldValidator is the package-wide go-playground/validator instance used
// for the built-in "email"/"url"/"number" field types. It is safe for
// concurrent use, so one instance is shared across all requests.
var fieldValidator = validator.New()

// FieldType names a built-in format check for FieldRule.Type.
type FieldType string

const (
	FieldTypeEmail  FieldType = "email"
	FieldTypeURL    FieldType = "url"
	FieldTypeNumber FieldType = "number"
)

// FieldRule describes the constraints applied to a single field by Validate.
// It mirrors the shape of a per-field validation rule: required-ness, an
// optional built-in format, length bounds, a custom check, and whether the
// field should be sanitized before being returned in ValidationResult.Sanitized.
type FieldRule struct {
	Required  bool
	Type      FieldType
	MinLength int
	MaxLength int
	Custom    func(value string) error
	Sanitize  bool
}

// ValidationResult is the outcome of Validate: whether every field passed,
// the per-field error messages for the ones that didn't, and the sanitized
// values for fields whose rule asked for it.
type ValidationResult struct {
	IsValid   bool
	Errors    map[string]string
	Sanitized map[string]string
}

// Validate checks values against rules field by field, in Go map iteration
// order over rules, which is not deterministic (so callers that need
// deterministic error ordering should check len(result.Errors) rather than
// depend on a specific key coming first).
//
// Example:
//
//	result := router.Validate(map[string]string{
//		"email": c.FormValue("email"),
//		"bio":   c.FormValue("bio"),
//	}, map[string]router.FieldRule{
//		"email": {Required: true, Type: router.FieldTypeEmail},
//		"bio":   {MaxLength: 280, Sanitize: true},
//	})
//	if !result.IsValid {
//		_ = c.ErrorJSON(http.StatusBadRequest, "validation failed", "VALIDATION_FAILED", result.Errors)
//		return
//	}
func Validate(values map[string]string, rules map[string]FieldRule) ValidationResult {
	result := ValidationResult{
		IsValid:   true,
		Errors:    make(map[string]string),
		Sanitized: make(map[string]string),
	}

	for field, rule := range rules {
		value := values[field]

		if rule.Required && strings.TrimSpace(value) == "" {
			result.IsValid = false
			result.Errors[field] = fmt.Sprintf("%s is required", field)
			continue
		}

		if value == "" {
			continue
		}

		if err := validateFieldType(value, rule.Type); err != nil {
			result.IsValid = false
			result.Errors[field] = err.Error()
			continue
		}

		if rule.MinLength > 0 && len(value) < rule.MinLength {
			result.IsValid = false
			result.Errors[field] = fmt.Sprintf("%s must be at least %d characters", field, rule.MinLength)
			continue
		}

		if rule.MaxLength > 0 && len(value) > rule.MaxLength {
			result.IsValid = false
			result.Errors[field] = fmt.Sprintf("%s must be at most %d characters", field, rule.MaxLength)
			continue
		}

		if rule.Custom != nil {
			if err := rule.Custom(value); err != nil {
				result.IsValid = false
				result.Errors[field] = err.Error()
				continue
			}
		}

		if rule.Sanitize {
			result.Sanitized[field] = Sanitize(value, SanitizeOptions{TrimSpace: true, StripHTML: true})
		}
	}

	return result
}

// validateFieldType dispatches the built-in format checks to
// go-playground/validator's single-variable Var entry point, which lets us
// reuse its "email"/"url"/"numeric" tags without declaring a struct.
func validateFieldType(value string, t FieldType) error {
	switch t {
	case "":
		return nil
	case FieldTypeEmail:
		if err := fieldValidator.Var(value, "email"); err != nil {
			return fmt.Errorf("must be a valid email address")
		}
	case FieldTypeURL:
		if err := fieldValidator.Var(value, "url"); err != nil {
			return fmt.Errorf("must be a valid URL")
		}
	case FieldTypeNumber:
		if err := fieldValidator.Var(value, "numeric"); err != nil {
			return fmt.Errorf("must be a number")
		}
	default:
		return fmt.Errorf("unknown field type %q", t)
	}
	return nil
}

// SanitizeOptions selects which transformations Sanitize applies, in a fixed
// order: StripHTML, then TrimSpace, then ToLower.
type SanitizeOptions struct {
	TrimSpace bool
	StripHTML bool
	ToLower   bool
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// Sanitize applies the requested transformations to value. StripHTML removes
// tags first, then HTML-escapes whatever text remains so that entities
// hidden inside attribute-like text (e.g. "&lt;script&gt;") can't reintroduce
// markup once rendered.
//
// Example:
//
//	clean := router.Sanitize("  <b>Hi</b>  ", router.SanitizeOptions{TrimSpace: true, StripHTML: true})
//	// "Hi"
func Sanitize(value string, opts SanitizeOptions) string {
	if opts.StripHTML {
		value = htmlTagPattern.ReplaceAllString(value, "")
		value = html.UnescapeString(value)
		value = html.EscapeString(value)
	}
	if opts.TrimSpace {
		value = strings.TrimSpace(value)
	}
	if opts.ToLower {
		value = strings.ToLower(value)
	}
	return value
}
