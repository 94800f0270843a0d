//go:build !windows

package i18n

func systemLanguages() []string { return nil }
