package model

import (
	"errors"
)

// ErrFindings signals a scan completed and reported at least one finding.
// The CLI maps it onto its own exit status.
var ErrFindings = errors.New("findings reported")
