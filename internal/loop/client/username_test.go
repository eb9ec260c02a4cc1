package client

import "testing"

func TestSanitizeUsername(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"ada", "ada"},
		{"  bob  ", "bob"},
		{"", DefaultUsername},
		{"\x1b[31m", "[31m"},
		{"\x00\x07", DefaultUsername},
		{"abcdefghijklmnopqrstuvwxyz", "abcdefghijklmnop"},
		{"żółw", "żółw"},
	}
	for _, tt := range tests {
		if got := SanitizeUsername(tt.in); got != tt.want {
			t.Errorf("SanitizeUsername(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
