package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/windowsadmins/wampdoctor/pkg/config"
	"github.com/windowsadmins/wampdoctor/pkg/redist"
)

func TestParse_KeepsDefaultsForOmittedKeys(t *testing.T) {
	cfg, err := config.Parse([]byte("Ports: [8080, 3307]\nLocale: tr\nDarkMode: true\n"))
	require.NoError(t, err)
	require.Equal(t, []int{8080, 3307}, cfg.Ports)
	require.Equal(t, "tr", cfg.Locale)
	require.True(t, cfg.DarkMode)
	require.Equal(t, "wampapache64", cfg.ServiceName)
	require.Equal(t, 10, cfg.ServiceStartTimeoutSeconds)
	require.Equal(t, 15, cfg.InstallerTimeoutMinutes)
	require.Len(t, cfg.Catalog(), len(redist.DefaultCatalog()))
	require.NoError(t, cfg.Validate())
}

func TestParse_ExplicitZeroesFallBack(t *testing.T) {
	cfg, err := config.Parse([]byte("Ports: []\nServiceStartTimeoutSeconds: 0\nLogLevel: \"\"\n"))
	require.NoError(t, err)
	require.Equal(t, []int{80, 443, 3306}, cfg.Ports)
	require.Equal(t, 10, cfg.ServiceStartTimeoutSeconds)
	require.Equal(t, "INFO", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	var testCases = []struct {
		scenario string
		mutate   func(c *config.Configuration)
		wantErr  []string
	}{
		{scenario: "defaults are valid", mutate: func(*config.Configuration) {}},
		{
			scenario: "port out of range and duplicated",
			mutate:   func(c *config.Configuration) { c.Ports = []int{0, 80, 80, 70000} },
			wantErr:  []string{"port 0 out of range", "port 80 listed twice", "port 70000 out of range"},
		},
		{
			scenario: "empty service name",
			mutate:   func(c *config.Configuration) { c.ServiceName = " " },
			wantErr:  []string{"ServiceName must not be empty"},
		},
		{
			scenario: "negative timeouts",
			mutate: func(c *config.Configuration) {
				c.ServiceStartTimeoutSeconds = -1
				c.InstallerTimeoutMinutes = -5
			},
			wantErr: []string{"ServiceStartTimeoutSeconds", "InstallerTimeoutMinutes"},
		},
		{
			scenario: "unknown log level",
			mutate:   func(c *config.Configuration) { c.LogLevel = "TRACE" },
			wantErr:  []string{`unknown LogLevel "TRACE"`},
		},
		{
			scenario: "catalog ids",
			mutate: func(c *config.Configuration) {
				c.Redistributables = []redist.Package{{ID: "VC++2015_x64"}, {ID: "VC++2015_x64"}, {}}
			},
			wantErr: []string{"VC++2015_x64 listed twice", "redistributable #3 has no ID"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.scenario, func(t *testing.T) {
			cfg := config.GetDefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if len(tc.wantErr) == 0 {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tc.wantErr {
				require.ErrorContains(t, err, want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "Config.yaml")
	cfg := config.GetDefaultConfig()
	cfg.Ports = []int{8080}
	cfg.Locale = "de"
	require.NoError(t, config.SaveConfig(cfg, path))

	loaded, err := config.LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, []int{8080}, loaded.Ports)
	require.Equal(t, "de", loaded.Locale)
	require.Equal(t, path, loaded.Source)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Config.yaml")
	require.NoError(t, config.SaveConfig(&config.Configuration{Ports: []int{80, 80}, ServiceName: "x", LogLevel: "INFO"}, path))

	_, err := config.LoadConfig(path)
	require.ErrorContains(t, err, "port 80 listed twice")
}

func TestLoadConfig_MissingFileUsesFallback(t *testing.T) {
	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Contains(t, []string{"defaults", "registry"}, cfg.Source)
	require.NotEmpty(t, cfg.Ports)
}

func TestResolvePath(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	require.Equal(t, config.ConfigPath, config.ResolvePath(""))

	t.Setenv(config.EnvConfigPath, `D:\wamp\doctor.yaml`)
	require.Equal(t, `D:\wamp\doctor.yaml`, config.ResolvePath(""))
	require.Equal(t, "explicit.yaml", config.ResolvePath("explicit.yaml"))
}
