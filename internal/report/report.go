// Package report renders an aggregated scan result for humans and
// machines. All renderers consume the one severity rendering table from
// the model package, colors and ranks are never redefined here.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/KubeVet/kubevet/internal/fix"
	"github.com/KubeVet/kubevet/internal/model"
)

var version string

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		version = "unknown"
	} else {
		version = info.Main.Version
	}
}

// Report is one scan result stamped with a serial number and a timestamp,
// optionally enriched with per-finding suggestions.
type Report struct {
	SerialNumber string           `json:"serialNumber"`
	GeneratedAt  time.Time        `json:"generatedAt"`
	Tool         string           `json:"tool"`
	Version      string           `json:"version"`
	Path         string           `json:"path"`
	Findings     []model.Finding  `json:"findings"`
	Suggestions  []fix.Suggestion `json:"-"`
	Summary      map[string]int   `json:"summary"`
}

// New builds a Report for result. suggestions may be nil; when present it
// must match result.Findings by index.
func New(path string, result model.Result, suggestions []fix.Suggestion) Report {
	summary := make(map[string]int, 4)
	for sev, n := range result.CountBySeverity() {
		summary[sev.String()] = n
	}
	return Report{
		SerialNumber: "urn:uuid:" + uuid.New().String(),
		GeneratedAt:  time.Now().UTC(),
		Tool:         "kubevet",
		Version:      version,
		Path:         path,
		Findings:     result.Findings,
		Suggestions:  suggestions,
		Summary:      summary,
	}
}

// suggestionText is what a presentation slot shows for finding i: the
// suggestion, its failure placeholder, or nothing at all.
func (r Report) suggestionText(i int) string {
	if r.Suggestions == nil || i >= len(r.Suggestions) {
		return ""
	}
	return r.Suggestions[i].Text
}

// HasSuggestions reports whether the suggestion column should render.
func (r Report) HasSuggestions() bool {
	return len(r.Suggestions) > 0
}

// AsJSON writes the report as indented JSON. Suggestions, when present,
// are inlined next to their findings.
func (r Report) AsJSON(w io.Writer) error {
	type jsonFinding struct {
		Severity   string `json:"severity"`
		Message    string `json:"message"`
		Snippet    string `json:"snippet,omitempty"`
		Suggestion string `json:"suggestion,omitempty"`
	}
	out := struct {
		SerialNumber string         `json:"serialNumber"`
		GeneratedAt  time.Time      `json:"generatedAt"`
		Tool         string         `json:"tool"`
		Version      string         `json:"version"`
		Path         string         `json:"path"`
		Findings     []jsonFinding  `json:"findings"`
		Summary      map[string]int `json:"summary"`
	}{
		SerialNumber: r.SerialNumber,
		GeneratedAt:  r.GeneratedAt,
		Tool:         r.Tool,
		Version:      r.Version,
		Path:         r.Path,
		Findings:     make([]jsonFinding, len(r.Findings)),
		Summary:      r.Summary,
	}
	for i, f := range r.Findings {
		out.Findings[i] = jsonFinding{
			Severity:   f.Severity.String(),
			Message:    f.Message,
			Snippet:    f.Snippet,
			Suggestion: r.suggestionText(i),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// WriteText writes the terminal rendering, one line per finding, colored
// when colored is set.
func (r Report) WriteText(w io.Writer, colored bool) error {
	const reset = "\033[0m"

	if len(r.Findings) == 0 {
		_, err := fmt.Fprintf(w, "%s: no issues found\n", r.Path)
		return err
	}

	for i, f := range r.Findings {
		rendering := f.Severity.Rendering()
		var err error
		if colored {
			_, err = fmt.Fprintf(w, "%s%s [%s]%s %s\n",
				rendering.Color, rendering.Icon, f.Severity, reset, f.Message)
		} else {
			_, err = fmt.Fprintf(w, "%s [%s] %s\n", rendering.Icon, f.Severity, f.Message)
		}
		if err != nil {
			return err
		}
		if s := r.suggestionText(i); s != "" {
			if _, err := fmt.Fprintf(w, "    fix: %s\n", s); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(w, "\n%d finding(s)", len(r.Findings))
	if err != nil {
		return err
	}
	for _, sev := range []model.Severity{model.Critical, model.High, model.Medium, model.Low} {
		if n := r.Summary[sev.String()]; n > 0 {
			if _, err := fmt.Fprintf(w, " %s=%d", sev, n); err != nil {
				return err
			}
		}
	}
	_, err = fmt.Fprintln(w)
	return err
}
