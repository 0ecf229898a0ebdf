package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expected    Config
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-a", "http://api.example.com", "-i", "30", "-t", "10", "-d", "/tmp/s.db"},
			expected: Config{
				ServerEndpointURL: "http://api.example.com",
				StorePath:         "/tmp/s.db",
				PollInterval:      30 * time.Second,
				ToastTTL:          10 * time.Second,
			},
		},
		{
			name: "defaults survive when flags absent",
			args: []string{"cmd"},
			expected: Config{
				ServerEndpointURL: "http://127.0.0.1:8080",
				StorePath:         "zapdesk.db",
				PollInterval:      60 * time.Second,
				ToastTTL:          5 * time.Second,
			},
		},
		{
			name:        "non-numeric interval",
			args:        []string{"cmd", "-i", "abc"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })
			os.Args = tt.args

			cfg := &Config{}
			cfg.LoadDefaults()

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg) })
				return
			}

			require.NotPanics(t, func() { parseFlags(cfg) })
			assert.Equal(t, tt.expected, *cfg)
		})
	}
}
