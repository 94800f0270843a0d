package i18n

import "os"

// Detect picks the startup locale: the configured code when available,
// otherwise the best match for the user's environment.
func (c *Catalog) Detect(configured string) string {
	if configured != "" && c.Has(configured) {
		return configured
	}
	prefs := []string{configured}
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(env); v != "" {
			prefs = append(prefs, v)
		}
	}
	prefs = append(prefs, systemLanguages()...)
	return c.Match(prefs...)
}
