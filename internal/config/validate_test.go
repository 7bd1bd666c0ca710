package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "empty", content: ""},
		{name: "valid version", content: `version = "14.0.0"`},
		{name: "invalid version", content: `version = "fourteen"`, wantErr: "version"},
		{name: "partial version", content: `version = "14"`, wantErr: "version"},
		{name: "unsupported arch", content: `arch = "mips"`, wantErr: "mips"},
		{name: "blank command", content: `command = "  "`, wantErr: "command must not be blank"},
		{name: "blank module", content: `modules = ["a", ""]`, wantErr: "modules[1]"},
		{name: "non-digit module version", content: `node_module_version = "89a"`, wantErr: "node_module_version"},
		{name: "digit module version", content: `node_module_version = "89"`},
		{name: "ftp dist url", content: `dist_url = "ftp://example.com"`, wantErr: "dist_url"},
		{name: "hostless dist url", content: `dist_url = "https://"`, wantErr: "dist_url"},
		{name: "https dist url", content: `dist_url = "https://electronjs.org/headers"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content), "test.toml")
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !errors.Is(err, ErrConfigValidation) {
				t.Fatalf("expected ErrConfigValidation, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	got := DefaultPath("/project/node_modules/")
	if got != "/project/"+FileName {
		t.Fatalf("expected /project/%s, got %s", FileName, got)
	}
}
