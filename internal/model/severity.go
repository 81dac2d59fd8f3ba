package model

import "fmt"

// Severity is an ordinal risk classification of a finding.
// The zero value is Low.
type Severity int

const (
	Low Severity = iota
	Medium
	High
	Critical
)

var severityNames = [...]string{
	Low:      "Low",
	Medium:   "Medium",
	High:     "High",
	Critical: "Critical",
}

func (s Severity) String() string {
	if s < Low || s > Critical {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return severityNames[s]
}

func (s Severity) MarshalText() ([]byte, error) {
	if s < Low || s > Critical {
		return nil, fmt.Errorf("unknown severity %d", int(s))
	}
	return []byte(severityNames[s]), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	for i, name := range severityNames {
		if string(text) == name {
			*s = Severity(i)
			return nil
		}
	}
	return fmt.Errorf("unknown severity %q", string(text))
}

// Rendering carries everything a presentation layer needs to draw one
// severity. There is exactly one table, every front-end consumes it.
type Rendering struct {
	Rank       int    // sort rank, higher is worse
	Color      string // ANSI escape for terminals
	HexColor   string // color for HTML reports
	Icon       string
	SarifLevel string // SARIF 2.1.0 result level
}

var renderings = map[Severity]Rendering{
	Low:      {Rank: 1, Color: "\033[34m", HexColor: "#2563eb", Icon: "ℹ", SarifLevel: "note"},
	Medium:   {Rank: 2, Color: "\033[33m", HexColor: "#d97706", Icon: "⚠", SarifLevel: "warning"},
	High:     {Rank: 3, Color: "\033[31m", HexColor: "#dc2626", Icon: "✖", SarifLevel: "error"},
	Critical: {Rank: 4, Color: "\033[35m", HexColor: "#7c3aed", Icon: "‼", SarifLevel: "error"},
}

func (s Severity) Rendering() Rendering {
	return renderings[s]
}
