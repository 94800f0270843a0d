package prompt_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/windowsadmins/wampdoctor/pkg/prompt"
)

func TestConsole_Answers(t *testing.T) {
	var testCases = []struct {
		scenario string
		input    string
		yes, no  string
		want     bool
	}{
		{scenario: "y", input: "y\n", yes: "Yes", no: "No", want: true},
		{scenario: "yes uppercase", input: "YES\n", yes: "Yes", no: "No", want: true},
		{scenario: "empty defaults to no", input: "\n", yes: "Yes", no: "No", want: false},
		{scenario: "eof defaults to no", input: "", yes: "Yes", no: "No", want: false},
		{scenario: "n", input: "n\n", yes: "Yes", no: "No", want: false},
		{scenario: "german ja", input: "ja\n", yes: "Ja", no: "Nein", want: true},
		{scenario: "german j", input: "j\n", yes: "Ja", no: "Nein", want: true},
		{scenario: "turkish e", input: "e\n", yes: "Evet", no: "Hayır", want: true},
		{scenario: "turkish hayir", input: "hayır\n", yes: "Evet", no: "Hayır", want: false},
		{scenario: "garbage", input: "maybe\n", yes: "Yes", no: "No", want: false},
	}
	for _, tc := range testCases {
		t.Run(tc.scenario, func(t *testing.T) {
			var out bytes.Buffer
			c := prompt.NewConsoleIO(strings.NewReader(tc.input), &out, true, tc.yes, tc.no)
			require.Equal(t, tc.want, c.Confirm(context.Background(), "Install", "2 missing"))
			require.Contains(t, out.String(), "2 missing ["+tc.yes+"/"+tc.no+"]: ")
		})
	}
}

func TestConsole_NonInteractiveDeclines(t *testing.T) {
	var out bytes.Buffer
	c := prompt.NewConsoleIO(strings.NewReader("y\n"), &out, false, "Yes", "No")
	require.False(t, c.Confirm(context.Background(), "Install", "1 missing"))
	require.True(t, strings.HasSuffix(out.String(), "[Yes/No]: No\n"))
}

func TestConsole_CancelledWhileWaiting(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := prompt.NewConsoleIO(r, io.Discard, true, "Yes", "No")
	require.False(t, c.Confirm(ctx, "Install", "1 missing"))
}

func TestAlwaysYes(t *testing.T) {
	require.True(t, prompt.AlwaysYes{}.Confirm(context.Background(), "t", "q"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.False(t, prompt.AlwaysYes{}.Confirm(ctx, "t", "q"))
}
