//go:build windows

package config

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"golang.org/x/sys/windows/registry"
)

// loadPolicy loads configuration values from the policy registry key.
func loadPolicy(registryPath string, cfg *Configuration) error {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, registryPath, registry.READ)
	if errors.Is(err, registry.ErrNotExist) {
		return errNoPolicy
	}
	if err != nil {
		return fmt.Errorf("opening policy key %s: %w", registryPath, err)
	}
	defer key.Close()

	loadStringFromRegistry(key, "ServiceName", &cfg.ServiceName)
	loadStringFromRegistry(key, "InstallerDir", &cfg.InstallerDir)
	loadStringFromRegistry(key, "Locale", &cfg.Locale)
	loadStringFromRegistry(key, "LogLevel", &cfg.LogLevel)
	loadStringFromRegistry(key, "LogDir", &cfg.LogDir)

	loadIntFromRegistry(key, "ServiceStartTimeoutSeconds", &cfg.ServiceStartTimeoutSeconds)
	loadIntFromRegistry(key, "InstallerTimeoutMinutes", &cfg.InstallerTimeoutMinutes)
	loadIntFromRegistry(key, "LogKeepRuns", &cfg.LogKeepRuns)
	loadIntFromRegistry(key, "LogMaxAgeDays", &cfg.LogMaxAgeDays)

	loadBoolFromRegistry(key, "DarkMode", &cfg.DarkMode)
	loadBoolFromRegistry(key, "Verbose", &cfg.Verbose)

	var ports []string
	loadStringArrayFromRegistry(key, "Ports", &ports)
	if len(ports) > 0 {
		parsed := make([]int, 0, len(ports))
		for _, p := range ports {
			n, err := strconv.Atoi(p)
			if err != nil {
				return fmt.Errorf("policy value Ports: %q is not a number", p)
			}
			parsed = append(parsed, n)
		}
		cfg.Ports = parsed
	}

	return nil
}

// loadStringFromRegistry loads a string value from registry if it exists.
func loadStringFromRegistry(key registry.Key, valueName string, target *string) {
	if val, _, err := key.GetStringValue(valueName); err == nil && val != "" {
		*target = val
		log.Printf("Policy: %s = %s", valueName, val)
	}
}

// loadBoolFromRegistry accepts "true"/"false", "1"/"0" or a DWORD.
func loadBoolFromRegistry(key registry.Key, valueName string, target *bool) {
	if val, _, err := key.GetStringValue(valueName); err == nil {
		if parsed, parseErr := strconv.ParseBool(val); parseErr == nil {
			*target = parsed
			return
		}
	}
	if val, _, err := key.GetIntegerValue(valueName); err == nil {
		*target = val != 0
	}
}

// loadIntFromRegistry loads an integer stored as a string or a DWORD.
func loadIntFromRegistry(key registry.Key, valueName string, target *int) {
	if val, _, err := key.GetStringValue(valueName); err == nil {
		if parsed, parseErr := strconv.Atoi(val); parseErr == nil {
			*target = parsed
			return
		}
	}
	if val, _, err := key.GetIntegerValue(valueName); err == nil {
		*target = int(val)
	}
}

// loadStringArrayFromRegistry reads REG_MULTI_SZ or a comma-separated string.
func loadStringArrayFromRegistry(key registry.Key, valueName string, target *[]string) {
	var raw []string
	if vals, _, err := key.GetStringsValue(valueName); err == nil {
		raw = vals
	} else if val, _, err := key.GetStringValue(valueName); err == nil {
		raw = strings.Split(val, ",")
	}

	filtered := make([]string, 0, len(raw))
	for _, v := range raw {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			filtered = append(filtered, trimmed)
		}
	}
	if len(filtered) > 0 {
		*target = filtered
	}
}
