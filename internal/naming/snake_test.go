package naming

import (
	"testing"
)

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Config", "config"},
		{"CfgNested", "cfg_nested"},
		{"HTTPServerConfig", "http_server_config"},
		{"OrderID", "order_id"},
		{"appSettings", "app_settings"},
		{"db_settings", "db_settings"},
		{"V2Config", "v2_config"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SnakeCase(tt.input); got != tt.expected {
				t.Errorf("SnakeCase(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
