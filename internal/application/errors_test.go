package application

import (
	"slices"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	var err *ValidationError
	if err.Error() != "" {
		t.Fatalf("expected empty string for nil error, got %q", err.Error())
	}

	if got := (&ValidationError{}).Error(); got != "validation failed" {
		t.Fatalf("expected generic message for empty error, got %q", got)
	}

	withFields := &ValidationError{FieldErrors: map[string]string{"name": "required", "configuration.language": "unsupported"}}
	if got := withFields.Error(); got != "validation failed: configuration.language, name" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestValidationError_HasErrors(t *testing.T) {
	t.Parallel()

	if (&ValidationError{}).HasErrors() {
		t.Fatalf("expected HasErrors to report false for empty error")
	}
	if !(&ValidationError{FieldErrors: map[string]string{"name": "bad"}}).HasErrors() {
		t.Fatalf("expected HasErrors to report true when fields are present")
	}
}

func TestValidationError_AddKeepsFirstMessage(t *testing.T) {
	t.Parallel()

	v := &ValidationError{}
	v.add("name", "name is required")
	v.add("name", "name is too long")
	v.add("id", "configuration identifier is invalid")

	if got := v.FieldErrors["name"]; got != "name is required" {
		t.Fatalf("expected first message to win, got %q", got)
	}
	if got := v.Fields(); !slices.Equal(got, []string{"id", "name"}) {
		t.Fatalf("unexpected fields %v", got)
	}
}

func TestValidateConfigurationInput(t *testing.T) {
	t.Parallel()

	valid := weeklyConfiguration()

	cases := map[string]struct {
		input  ConfigurationInput
		fields []string
	}{
		"blank name": {input: ConfigurationInput{Name: "   ", Configuration: valid}, fields: []string{"name"}},
		"long name": {input: ConfigurationInput{Name: string(make([]rune, maxNameLength+1)), Configuration: valid}, fields: []string{"name"}},
		"unknown language": {input: func() ConfigurationInput {
			cfg := valid
			cfg.Language = 42
			return ConfigurationInput{Configuration: cfg}
		}(), fields: []string{"configuration.language", "name"}},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := validateConfigurationInput(tc.input)
			vErr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
			}
			if got := vErr.Fields(); !slices.Equal(got, tc.fields) {
				t.Fatalf("fields = %v, want %v", got, tc.fields)
			}
		})
	}

	name, err := validateConfigurationInput(ConfigurationInput{Name: "  Standup ", Configuration: valid})
	if err != nil || name != "Standup" {
		t.Fatalf("expected trimmed name, got %q (%v)", name, err)
	}
}
