package server

import (
	"testing"

	"github.com/iwvelando/converter-design/internal/config"
	"github.com/iwvelando/converter-design/pkg/constants"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
		wantErr  bool
	}{
		{"", constants.DefaultMaxUploadSizeBytes, false},
		{"512", 512, false},
		{"512B", 512, false},
		{"256K", 256 * 1024, false},
		{"256kb", 256 * 1024, false},
		{"2M", 2 * 1024 * 1024, false},
		{" 1 G ", 1024 * 1024 * 1024, false},
		{"M", 0, true},
		{"12T", 0, true},
		{"99999999999999999999", 0, true},
		{"9999999999G", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSize(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseSize(%q) expected error, got %d", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSize(%q) error = %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseSize(%q) = %d, expected %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestUploadLimit(t *testing.T) {
	limit, err := UploadLimit(config.ServerConfig{MaxUploadSize: "0"})
	if err != nil {
		t.Fatalf("UploadLimit() error = %v", err)
	}
	if limit != constants.DefaultMaxUploadSizeBytes {
		t.Errorf("a zero limit should fall back to the default, got %d", limit)
	}

	limit, err = UploadLimit(config.Default().Server)
	if err != nil {
		t.Fatalf("UploadLimit() error = %v", err)
	}
	if limit != constants.DefaultMaxUploadSizeBytes {
		t.Errorf("default limit = %d, expected %d", limit, constants.DefaultMaxUploadSizeBytes)
	}

	if _, err := UploadLimit(config.ServerConfig{MaxUploadSize: "lots"}); err == nil {
		t.Error("expected an error for an unparseable size")
	}
}
