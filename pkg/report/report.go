// pkg/report/report.go - writes the transcript of a finished run to a file.
//
// The format follows the file extension: .json, .yaml/.yml, .pdf, and plain
// text for anything else.

package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
	"gopkg.in/yaml.v3"

	"github.com/windowsadmins/wampdoctor/pkg/utils"
	"github.com/windowsadmins/wampdoctor/pkg/version"
	"github.com/windowsadmins/wampdoctor/pkg/workflow"
)

// Document is the serializable form of a run.
type Document struct {
	RunID       string    `json:"run_id" yaml:"run_id"`
	Workflow    string    `json:"workflow" yaml:"workflow"`
	State       string    `json:"state" yaml:"state"`
	Progress    int       `json:"progress" yaml:"progress"`
	MaxProgress int       `json:"max_progress" yaml:"max_progress"`
	Locale      string    `json:"locale" yaml:"locale"`
	Started     time.Time `json:"started" yaml:"started"`
	Finished    time.Time `json:"finished" yaml:"finished"`
	Version     string    `json:"version" yaml:"version"`
	Lines       []string  `json:"lines" yaml:"-"`
}

// yamlDocument keeps the transcript as one literal block.
type yamlDocument struct {
	Document   `yaml:",inline"`
	Transcript utils.LiteralString `yaml:"transcript"`
}

// FromRun captures a run. Call it after the workflow returned.
func FromRun(run *workflow.Run) Document {
	return Document{
		RunID:       run.ID,
		Workflow:    string(run.Kind),
		State:       run.State().String(),
		Progress:    run.Progress(),
		MaxProgress: workflow.MaxProgress,
		Locale:      run.Locale,
		Started:     run.Started,
		Finished:    run.Finished,
		Version:     version.Version().Version,
		Lines:       run.Lines(),
	}
}

// Write renders doc to path, choosing the format from the extension.
func Write(path string, doc Document) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON report: %w", err)
		}
		return writeFile(path, append(data, '\n'))
	case ".yaml", ".yml":
		data, err := yaml.Marshal(yamlDocument{
			Document:   doc,
			Transcript: utils.LiteralString(strings.Join(doc.Lines, "\n")),
		})
		if err != nil {
			return fmt.Errorf("encoding YAML report: %w", err)
		}
		return writeFile(path, data)
	case ".pdf":
		return writePDF(path, doc)
	default:
		return writeFile(path, []byte(Text(doc)))
	}
}

// Text renders doc as plain text.
func Text(doc Document) string {
	var b strings.Builder
	for _, h := range header(doc) {
		fmt.Fprintf(&b, "%-10s %s\n", h[0]+":", h[1])
	}
	b.WriteString("\n")
	for _, line := range doc.Lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func header(doc Document) [][2]string {
	return [][2]string{
		{"Run", doc.RunID},
		{"Workflow", doc.Workflow},
		{"State", doc.State},
		{"Progress", fmt.Sprintf("%d/%d", doc.Progress, doc.MaxProgress)},
		{"Locale", doc.Locale},
		{"Started", fmtTime(doc.Started)},
		{"Finished", fmtTime(doc.Finished)},
		{"Version", doc.Version},
	}
}

func writePDF(path string, doc Document) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.SetAutoPageBreak(true, 14)
	pdf.SetTitle("WAMP Doctor report", false)
	// core fonts are cp1252; characters outside it are substituted
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, "WAMP Doctor - "+doc.Workflow, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(60, 60, 60)
	for _, h := range header(doc) {
		pdf.CellFormat(28, 6, h[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(h[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Courier", "", 9)
	pdf.SetTextColor(20, 20, 20)
	for _, line := range doc.Lines {
		if line == "" {
			pdf.Ln(3)
			continue
		}
		pdf.MultiCell(0, 4.5, tr(line), "", "L", false)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("writing PDF report: %w", err)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.RFC3339)
}
