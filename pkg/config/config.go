// pkg/config/config.go - configuration settings for WampDoctor.

package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/windowsadmins/wampdoctor/pkg/redist"
	"gopkg.in/yaml.v3"
)

const ConfigPath = `C:\ProgramData\WampDoctor\Config.yaml`

// PolicyRegistryPath holds machine policy values used when no YAML file exists.
const PolicyRegistryPath = `SOFTWARE\WampDoctor\Config`

// EnvConfigPath overrides ConfigPath when set.
const EnvConfigPath = "WAMPDOCTOR_CONFIG"

// errNoPolicy is returned by the registry loader when no policy key exists.
var errNoPolicy = errors.New("no policy configuration")

// Configuration holds the configurable options for WampDoctor in YAML format
type Configuration struct {
	Ports                      []int  `yaml:"Ports"`
	ServiceName                string `yaml:"ServiceName"`
	ServiceStartTimeoutSeconds int    `yaml:"ServiceStartTimeoutSeconds"`
	InstallerDir               string `yaml:"InstallerDir"`
	InstallerTimeoutMinutes    int    `yaml:"InstallerTimeoutMinutes"`
	Locale                     string `yaml:"Locale"`
	DarkMode                   bool   `yaml:"DarkMode"`
	LogLevel                   string `yaml:"LogLevel"`
	LogDir                     string `yaml:"LogDir"`
	LogKeepRuns                int    `yaml:"LogKeepRuns"`
	LogMaxAgeDays              int    `yaml:"LogMaxAgeDays"`
	Verbose                    bool   `yaml:"Verbose"`

	// Empty means the built-in catalog.
	Redistributables []redist.Package `yaml:"Redistributables,omitempty"`

	// Source records where the values came from: a file path, "registry" or "defaults".
	Source string `yaml:"-"`
}

// ResolvePath picks the configuration file location: explicit path, then the
// environment override, then ConfigPath.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := strings.TrimSpace(os.Getenv(EnvConfigPath)); env != "" {
		return env
	}
	return ConfigPath
}

// LoadConfig loads the configuration from a YAML file.
// If the file doesn't exist it falls back to the policy registry key, and
// then to GetDefaultConfig.
func LoadConfig(path string) (*Configuration, error) {
	path = ResolvePath(path)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := GetDefaultConfig()
		switch policyErr := loadPolicy(PolicyRegistryPath, cfg); {
		case policyErr == nil:
			cfg.Source = "registry"
		case errors.Is(policyErr, errNoPolicy):
			cfg.Source = "defaults"
		default:
			log.Printf("Ignoring policy registry settings: %v", policyErr)
			cfg = GetDefaultConfig()
			cfg.Source = "defaults"
		}
		return cfg, cfg.Validate()
	}
	if err != nil {
		return nil, fmt.Errorf("reading configuration file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing configuration file %s: %w", path, err)
	}
	cfg.Source = path
	return cfg, cfg.Validate()
}

// Parse decodes YAML on top of the defaults, so a file only needs the keys it changes.
func Parse(data []byte) (*Configuration, error) {
	cfg := GetDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file.
func SaveConfig(cfg *Configuration, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("serializing configuration: %w", err)
	}

	path = ResolvePath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating configuration directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing configuration file: %w", err)
	}
	return nil
}

// GetDefaultConfig provides default configuration values.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Ports:                      []int{80, 443, 3306},
		ServiceName:                "wampapache64",
		ServiceStartTimeoutSeconds: 10,
		InstallerDir:               defaultInstallerDir(),
		InstallerTimeoutMinutes:    15,
		LogLevel:                   "INFO",
		LogDir:                     defaultLogDir(),
		LogKeepRuns:                20,
		LogMaxAgeDays:              30,
	}
}

// Catalog returns the configured redistributable catalog or the built-in one.
func (c *Configuration) Catalog() []redist.Package {
	if len(c.Redistributables) == 0 {
		return redist.DefaultCatalog()
	}
	return c.Redistributables
}

// applyDefaults fills zero values that YAML may have cleared explicitly.
func (c *Configuration) applyDefaults() {
	def := GetDefaultConfig()
	if len(c.Ports) == 0 {
		c.Ports = def.Ports
	}
	if c.ServiceStartTimeoutSeconds == 0 {
		c.ServiceStartTimeoutSeconds = def.ServiceStartTimeoutSeconds
	}
	if c.InstallerTimeoutMinutes == 0 {
		c.InstallerTimeoutMinutes = def.InstallerTimeoutMinutes
	}
	if c.InstallerDir == "" {
		c.InstallerDir = def.InstallerDir
	}
	if c.LogDir == "" {
		c.LogDir = def.LogDir
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

// Validate reports every problem found in the configuration at once.
func (c *Configuration) Validate() error {
	var errs []error

	seenPorts := make(map[int]bool, len(c.Ports))
	for _, p := range c.Ports {
		if p < 1 || p > 65535 {
			errs = append(errs, fmt.Errorf("port %d out of range 1-65535", p))
		}
		if seenPorts[p] {
			errs = append(errs, fmt.Errorf("port %d listed twice", p))
		}
		seenPorts[p] = true
	}
	if strings.TrimSpace(c.ServiceName) == "" {
		errs = append(errs, errors.New("ServiceName must not be empty"))
	}
	if c.ServiceStartTimeoutSeconds < 0 {
		errs = append(errs, errors.New("ServiceStartTimeoutSeconds must be positive"))
	}
	if c.InstallerTimeoutMinutes < 0 {
		errs = append(errs, errors.New("InstallerTimeoutMinutes must be positive"))
	}
	switch strings.ToUpper(c.LogLevel) {
	case "ERROR", "WARN", "INFO", "DEBUG":
	default:
		errs = append(errs, fmt.Errorf("unknown LogLevel %q", c.LogLevel))
	}

	seenIDs := make(map[redist.ID]bool)
	for i, p := range c.Redistributables {
		if p.ID == "" {
			errs = append(errs, fmt.Errorf("redistributable #%d has no ID", i+1))
			continue
		}
		if seenIDs[p.ID] {
			errs = append(errs, fmt.Errorf("redistributable %s listed twice", p.ID))
		}
		seenIDs[p.ID] = true
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

func defaultInstallerDir() string {
	programData := os.Getenv("ProgramData")
	if programData == "" {
		programData = `C:\ProgramData`
	}
	return filepath.Join(programData, "WampDoctor", "redist")
}

func defaultLogDir() string {
	programData := os.Getenv("ProgramData")
	if programData == "" {
		programData = `C:\ProgramData`
	}
	return filepath.Join(programData, "WampDoctor", "logs")
}
