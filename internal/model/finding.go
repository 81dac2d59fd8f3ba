package model

// Finding is a single detected issue. Findings are values, never mutated
// after creation.
type Finding struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"` // includes source path, kind and name when available
	Snippet  string   `json:"snippet,omitempty"`
}

// Result is the ordered finding sequence of one scan invocation.
// Order is detection order: per-file in walk order, per-document in file
// order, per-container and per-rule inside a document. No deduplication,
// no severity sorting.
type Result struct {
	Findings []Finding `json:"findings"`
}

func (r *Result) Append(findings ...Finding) {
	r.Findings = append(r.Findings, findings...)
}

func (r Result) Empty() bool {
	return len(r.Findings) == 0
}

// CountBySeverity returns how many findings carry each severity.
func (r Result) CountBySeverity() map[Severity]int {
	counts := make(map[Severity]int, 4)
	for _, f := range r.Findings {
		counts[f.Severity]++
	}
	return counts
}
