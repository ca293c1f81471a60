package paths

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withHome(t *testing.T, home string) {
	t.Helper()
	saved := platformDir
	platformDir.homeDir = func() (string, error) { return home, nil }
	platformDir.userConfigDir = func() (string, error) { return filepath.Join(home, "AppConfig"), nil }
	t.Cleanup(func() { platformDir = saved })
}

func TestDefaultDirs_Linux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-only test")
	}

	t.Run("uses XDG variables when set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
		t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg-config/owloop", got)

		got, err = DefaultDataDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg-data/owloop", got)
	})

	t.Run("falls back to the home directory", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("XDG_DATA_HOME", "")
		withHome(t, "/home/robot")

		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/home/robot/.config/owloop", got)

		got, err = DefaultDataDir()
		require.NoError(t, err)
		assert.Equal(t, "/home/robot/.local/share/owloop", got)
	})

	t.Run("home lookup failure", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		saved := platformDir
		platformDir.homeDir = func() (string, error) { return "", errors.New("no home") }
		t.Cleanup(func() { platformDir = saved })

		_, err := DefaultConfigDir()
		assert.Error(t, err)
	})
}

func TestDefaultDirs_Other(t *testing.T) {
	if runtime.GOOS == "linux" {
		t.Skip("non-linux test")
	}
	withHome(t, "/home/robot")

	got, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/robot", "AppConfig", "owloop"), got)

	data, err := DefaultDataDir()
	require.NoError(t, err)
	assert.Equal(t, got, data)
}

func TestResolveConfigDir(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		envVal   string
		wantSub  string
	}{
		{name: "explicit wins over env", explicit: "/explicit/config", envVal: "/env/config", wantSub: "/explicit/config"},
		{name: "env wins when explicit empty", envVal: "/env/config", wantSub: "/env/config"},
		{name: "platform default when both empty", wantSub: "owloop"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigDir, tt.envVal)
			got, err := ResolveConfigDir(tt.explicit)
			require.NoError(t, err)
			assert.Contains(t, got, tt.wantSub)
		})
	}
}

func TestResolveDataDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	withHome(t, "/home/robot")
	def, err := DefaultDataDir()
	require.NoError(t, err)

	tests := []struct {
		name       string
		explicit   string
		configured string
		envVal     string
		want       string
	}{
		{name: "explicit wins over all", explicit: "/explicit/data", configured: "/config/data", envVal: "/env/data", want: "/explicit/data"},
		{name: "config.yaml wins over env", configured: "/config/data", envVal: "/env/data", want: "/config/data"},
		{name: "env wins when others empty", envVal: "/env/data", want: "/env/data"},
		{name: "platform default when all empty", want: def},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDataDir, tt.envVal)
			got, err := ResolveDataDir(tt.explicit, tt.configured)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolvedPathsAreAbsolute(t *testing.T) {
	t.Setenv(EnvConfigDir, "relative/env")
	got, err := ResolveConfigDir("")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)

	t.Setenv(EnvDataDir, "")
	got, err = ResolveDataDir("", "relative/config")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
}

func TestOntologyDir(t *testing.T) {
	assert.Equal(t, filepath.Join("/data", "robots"), OntologyDir("/data", "robots"))
}
