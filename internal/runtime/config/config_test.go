package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateZeroValue(t *testing.T) {
	cfg := Config{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("zero config should validate, got %v", err)
	}
}

func TestValidateNamespaceCharset(t *testing.T) {
	cfg := Config{MetricsEnabled: true, MetricsNamespace: "my-app"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for dashed namespace")
	}
	if !strings.Contains(err.Error(), "invalid namespace") {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.MetricsNamespace = "my_app"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("underscored namespace should validate, got %v", err)
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := Config{MetricsNamespace: "orphaned", TracerName: "orphaned"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "metrics are disabled") || !strings.Contains(msg, "tracing is disabled") {
		t.Fatalf("expected both problems reported, got %v", err)
	}
}

func TestWithDefaults(t *testing.T) {
	cfg := Config{MetricsEnabled: true, TracingEnabled: true}.WithDefaults()
	if cfg.MetricsNamespace != DefaultMetricsNamespace {
		t.Fatalf("namespace default not applied: %q", cfg.MetricsNamespace)
	}
	if cfg.TracerName != DefaultTracerName {
		t.Fatalf("tracer name default not applied: %q", cfg.TracerName)
	}

	custom := Config{MetricsEnabled: true, MetricsNamespace: "dispatch"}.WithDefaults()
	if custom.MetricsNamespace != "dispatch" {
		t.Fatal("explicit namespace should survive WithDefaults")
	}
}

func TestValidateConfig(t *testing.T) {
	if err := ValidateConfig(nil); err != nil {
		t.Fatalf("nil config should be valid, got %v", err)
	}

	bad := &Config{MetricsEnabled: true, MetricsNamespace: "not ok"}
	err := ValidateConfig(bad)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var cfgErr ConfigValidationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigValidationError, got %T", err)
	}
	if cfgErr.Unwrap() == nil {
		t.Fatal("expected wrapped cause")
	}
}
