package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("BOITECH_TEST_DIR", "/var/data")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty passes through",
			input:    "",
			expected: "",
		},
		{
			name:     "plain path untouched",
			input:    "/tmp/boitech.db",
			expected: "/tmp/boitech.db",
		},
		{
			name:     "bare tilde",
			input:    "~",
			expected: home,
		},
		{
			name:     "tilde prefix",
			input:    "~/journal.json",
			expected: filepath.Join(home, "journal.json"),
		},
		{
			name:     "environment variable",
			input:    "$BOITECH_TEST_DIR/boitech.db",
			expected: "/var/data/boitech.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandPath(tt.input))
		})
	}
}
