package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "home shorthand", path: "~/.pill-doser", want: filepath.Join(home, ".pill-doser")},
		{name: "nested home shorthand", path: "~/.pill-doser/logs/app.log", want: filepath.Join(home, ".pill-doser/logs/app.log")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandPath(tt.path))
		})
	}
}

func TestExpandPathAbsoluteUnchanged(t *testing.T) {
	assert.Equal(t, "/tmp/doses.db", expandPath("/tmp/doses.db"))
}

func TestSubcommandsRegistered(t *testing.T) {
	want := map[string]bool{
		"add":    false,
		"remove": false,
		"list":   false,
		"serve":  false,
		"top":    false,
	}

	for _, sub := range rootCmd.Commands() {
		name := strings.Fields(sub.Use)[0]
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}

	for name, found := range want {
		assert.True(t, found, "subcommand %s must be registered", name)
	}
}

func TestRootFlags(t *testing.T) {
	for _, flag := range []string{"config", "data-dir", "timezone", "debug", "pills", "hours", "sheet-url", "back-project"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), "persistent flag %s", flag)
	}
	assert.NotNil(t, rootCmd.Flags().Lookup("output"))
}
