// pkg/i18n/i18n.go - message tables for the user-visible workflow log and UI.

package i18n

import (
	"embed"
	"errors"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultLocale is used when nothing better matches.
const DefaultLocale = "en"

// ErrIncomplete is returned when a locale table misses keys or placeholders.
var ErrIncomplete = errors.New("incomplete locale table")

//go:embed locales/*.yaml
var localeFS embed.FS

var placeholderRe = regexp.MustCompile(`\{([a-z_]+)\}`)

// Locale is one language table.
type Locale struct {
	Code     string         `yaml:"-"`
	Name     string         `yaml:"name"`
	Messages map[Key]string `yaml:"messages"`
}

// Catalog holds every available locale.
type Catalog struct {
	locales map[string]*Locale
	codes   []string
	matcher language.Matcher
}

// Load parses the embedded locale tables and checks them for completeness.
func Load() (*Catalog, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, err
	}
	raw := make(map[string][]byte, len(entries))
	for _, e := range entries {
		data, err := localeFS.ReadFile(path.Join("locales", e.Name()))
		if err != nil {
			return nil, err
		}
		raw[strings.TrimSuffix(e.Name(), ".yaml")] = data
	}
	return Parse(raw)
}

// Parse builds a Catalog from YAML tables keyed by locale code. The table
// for DefaultLocale is the reference for keys and placeholders.
func Parse(tables map[string][]byte) (*Catalog, error) {
	c := &Catalog{locales: make(map[string]*Locale, len(tables))}
	for code, data := range tables {
		loc := &Locale{Code: code}
		if err := yaml.Unmarshal(data, loc); err != nil {
			return nil, fmt.Errorf("locale %s: %w", code, err)
		}
		c.locales[code] = loc
		c.codes = append(c.codes, code)
	}
	sort.Strings(c.codes)

	ref, ok := c.locales[DefaultLocale]
	if !ok {
		return nil, fmt.Errorf("%w: no %q table", ErrIncomplete, DefaultLocale)
	}

	var problems []string
	for _, code := range c.codes {
		problems = append(problems, check(ref, c.locales[code])...)
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("%w:\n  %s", ErrIncomplete, strings.Join(problems, "\n  "))
	}

	// DefaultLocale goes first so the matcher falls back to it.
	tags := []language.Tag{language.Make(DefaultLocale)}
	for _, code := range c.codes {
		if code != DefaultLocale {
			tags = append(tags, language.Make(code))
		}
	}
	c.matcher = language.NewMatcher(tags)
	return c, nil
}

func check(ref, loc *Locale) []string {
	var problems []string
	if loc.Name == "" {
		problems = append(problems, fmt.Sprintf("%s: missing name", loc.Code))
	}
	known := make(map[Key]bool, len(AllKeys))
	for _, k := range AllKeys {
		known[k] = true
		msg, ok := loc.Messages[k]
		if !ok || strings.TrimSpace(msg) == "" {
			problems = append(problems, fmt.Sprintf("%s: missing %s", loc.Code, k))
			continue
		}
		want := placeholders(ref.Messages[k])
		got := placeholders(msg)
		for p := range want {
			if !got[p] {
				problems = append(problems, fmt.Sprintf("%s: %s lacks {%s}", loc.Code, k, p))
			}
		}
		for p := range got {
			if !want[p] {
				problems = append(problems, fmt.Sprintf("%s: %s has unknown {%s}", loc.Code, k, p))
			}
		}
	}
	for k := range loc.Messages {
		if !known[k] {
			problems = append(problems, fmt.Sprintf("%s: unknown key %s", loc.Code, k))
		}
	}
	sort.Strings(problems)
	return problems
}

func placeholders(msg string) map[string]bool {
	out := map[string]bool{}
	for _, m := range placeholderRe.FindAllStringSubmatch(msg, -1) {
		out[m[1]] = true
	}
	return out
}

// Codes returns the available locale codes, sorted.
func (c *Catalog) Codes() []string {
	return append([]string(nil), c.codes...)
}

// Name returns the native display name of a locale.
func (c *Catalog) Name(code string) string {
	if loc, ok := c.locales[code]; ok {
		return loc.Name
	}
	return code
}

// Has reports whether code is an available locale.
func (c *Catalog) Has(code string) bool {
	_, ok := c.locales[code]
	return ok
}

// Match picks the available locale that best fits the given BCP 47 or POSIX
// style preferences ("tr-TR", "de_DE.UTF-8"), falling back to DefaultLocale.
func (c *Catalog) Match(prefs ...string) string {
	var tags []language.Tag
	for _, p := range prefs {
		p = strings.TrimSpace(p)
		if i := strings.IndexAny(p, ".@"); i >= 0 {
			p = p[:i]
		}
		p = strings.ReplaceAll(p, "_", "-")
		if p == "" || p == "C" || p == "POSIX" {
			continue
		}
		if tag, err := language.Parse(p); err == nil {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return DefaultLocale
	}

	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No {
		return DefaultLocale
	}
	if idx == 0 {
		return DefaultLocale
	}
	// index 0 is DefaultLocale; the rest follow c.codes without it
	i := 0
	for _, code := range c.codes {
		if code == DefaultLocale {
			continue
		}
		i++
		if i == idx {
			return code
		}
	}
	return DefaultLocale
}

// Translator renders messages in the current locale. It is safe for
// concurrent use; the UI switches locale while a workflow may be logging.
type Translator struct {
	mu      sync.RWMutex
	catalog *Catalog
	current *Locale
}

// NewTranslator returns a Translator set to code.
func NewTranslator(c *Catalog, code string) (*Translator, error) {
	t := &Translator{catalog: c}
	if err := t.SetLocale(code); err != nil {
		return nil, err
	}
	return t, nil
}

// Catalog returns the underlying catalog.
func (t *Translator) Catalog() *Catalog {
	return t.catalog
}

// SetLocale switches the current locale.
func (t *Translator) SetLocale(code string) error {
	loc, ok := t.catalog.locales[code]
	if !ok {
		return fmt.Errorf("unknown locale %q (available: %s)", code, strings.Join(t.catalog.codes, ", "))
	}
	t.mu.Lock()
	t.current = loc
	t.mu.Unlock()
	return nil
}

// Locale returns the current locale code.
func (t *Translator) Locale() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current.Code
}

// Text returns the message for key.
func (t *Translator) Text(key Key) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if msg, ok := t.current.Messages[key]; ok {
		return msg
	}
	return string(key)
}

// Format returns the message for key with {name} placeholders replaced.
// Arguments come in name, value pairs: Format(PortUsed, "port", 80, "pid", 4).
func (t *Translator) Format(key Key, args ...interface{}) string {
	msg := t.Text(key)
	if len(args) < 2 {
		return msg
	}
	pairs := make([]string, 0, len(args))
	for i := 0; i+1 < len(args); i += 2 {
		pairs = append(pairs, "{"+fmt.Sprint(args[i])+"}", fmt.Sprint(args[i+1]))
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}
