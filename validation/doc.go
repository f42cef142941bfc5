// Package validation validates configuration structs.
//
// Struct tags are checked with go-playground/validator and reported under
// their mapstructure key names; ad-hoc checks use the fluent Validator:
//
//	v := validation.New()
//	v.Required("base_url", cfg.BaseURL).OneOf("format", cfg.Format, formats)
//	err := v.Validate()
//
// Both return *errors.AppError with the offending fields in Details.
package validation
