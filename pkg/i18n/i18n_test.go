package i18n_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/windowsadmins/wampdoctor/pkg/i18n"
)

func TestLoad_EmbeddedTablesComplete(t *testing.T) {
	t.Parallel()

	c, err := i18n.Load()
	require.NoError(t, err)
	require.Equal(t, []string{"de", "en", "tr"}, c.Codes())
	require.Equal(t, "Türkçe", c.Name("tr"))
}

func TestParse_ReportsProblems(t *testing.T) {
	t.Parallel()

	en := []byte(`
name: English
messages:
  port_used: "Port {port} is in use by {name} (PID {pid})."
`)
	_, err := i18n.Parse(map[string][]byte{"en": en})
	require.ErrorIs(t, err, i18n.ErrIncomplete)
	require.Contains(t, err.Error(), "en: missing scan")

	_, err = i18n.Parse(map[string][]byte{"tr": en})
	require.ErrorIs(t, err, i18n.ErrIncomplete)
}

func TestParse_PlaceholderMismatch(t *testing.T) {
	t.Parallel()

	c, err := i18n.Load()
	require.NoError(t, err)
	tr, err := i18n.NewTranslator(c, "en")
	require.NoError(t, err)

	// Rebuild a full English table and a German one with a dropped placeholder.
	full := "name: English\nmessages:\n"
	broken := "name: Deutsch\nmessages:\n"
	for _, k := range i18n.AllKeys {
		full += "  " + string(k) + ": " + quote(tr.Text(k)) + "\n"
		msg := tr.Text(k)
		if k == i18n.PortUsed {
			msg = "Port {port} belegt"
		}
		broken += "  " + string(k) + ": " + quote(msg) + "\n"
	}
	_, err = i18n.Parse(map[string][]byte{"en": []byte(full), "de": []byte(broken)})
	require.ErrorIs(t, err, i18n.ErrIncomplete)
	require.Contains(t, err.Error(), "de: port_used lacks {name}")
	require.Contains(t, err.Error(), "de: port_used lacks {pid}")
}

func TestTranslator(t *testing.T) {
	t.Parallel()

	c, err := i18n.Load()
	require.NoError(t, err)
	tr, err := i18n.NewTranslator(c, "en")
	require.NoError(t, err)

	require.Equal(t, "Port 3306 is in use by mysqld.exe (PID 4421).",
		tr.Format(i18n.PortUsed, "port", 3306, "name", "mysqld.exe", "pid", 4421))
	require.Equal(t, "Port 80 is free.", tr.Format(i18n.PortStatus, "port", 80))

	require.NoError(t, tr.SetLocale("tr"))
	require.Equal(t, "tr", tr.Locale())
	require.Equal(t, "Tara", tr.Text(i18n.Scan))
	require.Equal(t, "3 Visual C++ paketi eksik. Şimdi yüklensin mi?", tr.Format(i18n.VCConfirmText, "count", 3))

	require.Error(t, tr.SetLocale("xx"))
	require.Equal(t, "tr", tr.Locale())
}

func TestTranslator_ConcurrentSwitch(t *testing.T) {
	t.Parallel()

	c, err := i18n.Load()
	require.NoError(t, err)
	tr, err := i18n.NewTranslator(c, "en")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if i%2 == 0 {
					_ = tr.SetLocale(c.Codes()[j%3])
				} else {
					if tr.Text(i18n.Title) == "" {
						t.Error("empty title during locale switch")
					}
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestMatch(t *testing.T) {
	t.Parallel()

	c, err := i18n.Load()
	require.NoError(t, err)

	var testCases = []struct {
		scenario string
		prefs    []string
		want     string
	}{
		{scenario: "posix turkish", prefs: []string{"tr_TR.UTF-8"}, want: "tr"},
		{scenario: "bcp47 german", prefs: []string{"de-AT"}, want: "de"},
		{scenario: "unsupported", prefs: []string{"fr-FR"}, want: "en"},
		{scenario: "posix C", prefs: []string{"C"}, want: "en"},
		{scenario: "none", want: "en"},
		{scenario: "first usable wins", prefs: []string{"", "garbage!!", "de_DE"}, want: "de"},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.scenario, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, c.Match(tc.prefs...))
		})
	}

	require.Equal(t, "tr", c.Detect("tr"))
}

func quote(s string) string {
	out := `"`
	for _, r := range s {
		if r == '"' || r == '\\' {
			out += `\`
		}
		out += string(r)
	}
	return out + `"`
}
