// Package config provides configuration management for the SSHFS mount monitor.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single validation error with user-friendly message.
type ValidationError struct {
	Field   string      // Field path (e.g., "mount.base_dir")
	Tag     string      // Validation tag that failed (e.g., "required", "url")
	Value   interface{} // Actual value that failed validation
	Message string      // User-friendly error message
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []*ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  - %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// validate is the package-level validator instance.
var validate *validator.Validate

// init initializes the validator with custom validations.
func init() {
	validate = validator.New()

	validate.RegisterValidation("timezone", validateTimezone)
}

// Validate validates the configuration and returns user-friendly error messages.
func Validate(cfg *Config) error {
	var validationErrors ValidationErrors

	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		if fieldErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrors {
				validationErrors = append(validationErrors, &ValidationError{
					Field:   formatFieldName(fe.Namespace()),
					Tag:     fe.Tag(),
					Value:   fe.Value(),
					Message: translateError(fe),
				})
			}
		}
	}

	// Run custom business logic validations
	if errs := validateMount(cfg); len(errs) > 0 {
		validationErrors = append(validationErrors, errs...)
	}

	if errs := validateTimeouts(cfg); len(errs) > 0 {
		validationErrors = append(validationErrors, errs...)
	}

	if errs := validateNotify(cfg); len(errs) > 0 {
		validationErrors = append(validationErrors, errs...)
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}

	return nil
}

// validateTimezone is a custom validator for timezone strings.
func validateTimezone(fl validator.FieldLevel) bool {
	tz := fl.Field().String()
	if tz == "" {
		return true // Empty is allowed, will use default
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// validateMount validates the mount configuration.
// Relative mount points are resolved under base_dir, so base_dir itself
// must be absolute.
func validateMount(cfg *Config) ValidationErrors {
	var errors ValidationErrors

	if cfg.Mount.BaseDir != "" && !filepath.IsAbs(cfg.Mount.BaseDir) {
		errors = append(errors, &ValidationError{
			Field:   "mount.base_dir",
			Tag:     "absolute_path",
			Value:   cfg.Mount.BaseDir,
			Message: fmt.Sprintf("base directory must be an absolute path, got %q", cfg.Mount.BaseDir),
		})
	}

	return errors
}

// validateTimeouts validates that timeouts are positive and that the per-host
// hard timeout leaves room for the probe and the recovery settle period.
func validateTimeouts(cfg *Config) ValidationErrors {
	var errors ValidationErrors

	positive := []struct {
		name  string
		value time.Duration
	}{
		{"probe.timeout", cfg.Probe.Timeout},
		{"reconcile.host_timeout", cfg.Reconcile.HostTimeout},
		{"reconcile.recovery_settle", cfg.Reconcile.RecoverySettle},
		{"daemon.interval", cfg.Daemon.Interval},
		{"watch.refresh", cfg.Watch.Refresh},
	}

	for _, p := range positive {
		if p.value <= 0 {
			errors = append(errors, &ValidationError{
				Field:   p.name,
				Tag:     "positive_duration",
				Value:   p.value,
				Message: fmt.Sprintf("duration must be positive, got %v", p.value),
			})
		}
	}

	if cfg.Probe.Timeout > 0 && cfg.Reconcile.HostTimeout > 0 &&
		cfg.Probe.Timeout >= cfg.Reconcile.HostTimeout {
		errors = append(errors, &ValidationError{
			Field:   "reconcile.host_timeout",
			Tag:     "timeout_order",
			Value:   fmt.Sprintf("probe=%v, host=%v", cfg.Probe.Timeout, cfg.Reconcile.HostTimeout),
			Message: fmt.Sprintf("per-host timeout (%v) must be greater than probe timeout (%v)", cfg.Reconcile.HostTimeout, cfg.Probe.Timeout),
		})
	}

	return errors
}

// validateNotify validates the webhook notifier configuration.
func validateNotify(cfg *Config) ValidationErrors {
	var errors ValidationErrors

	if !cfg.Notify.Enabled {
		return errors
	}

	if cfg.Notify.WebhookURL == "" {
		errors = append(errors, &ValidationError{
			Field:   "notify.webhook_url",
			Tag:     "required_when_enabled",
			Value:   "",
			Message: "webhook_url is required when notify is enabled",
		})
	}

	return errors
}

// formatFieldName converts the validator field namespace to a user-friendly format.
// Example: "Config.Mount.BaseDir" -> "mount.basedir"
func formatFieldName(namespace string) string {
	// Remove the root struct name (e.g., "Config.")
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:] // Remove "Config"
	}

	for i, part := range parts {
		parts[i] = strings.ToLower(part)
	}

	return strings.Join(parts, ".")
}

// translateError converts a validator.FieldError to a user-friendly message.
func translateError(fe validator.FieldError) string {
	field := formatFieldName(fe.Namespace())

	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "url":
		return fmt.Sprintf("invalid URL format: %v", fe.Value())
	case "gte":
		return fmt.Sprintf("value must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("value must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("value must be one of: %s", fe.Param())
	case "dive":
		return fmt.Sprintf("invalid value in list: %v", fe.Value())
	case "timezone":
		return fmt.Sprintf("invalid timezone: %v", fe.Value())
	default:
		return fmt.Sprintf("validation failed on '%s' tag for field '%s'", fe.Tag(), field)
	}
}
