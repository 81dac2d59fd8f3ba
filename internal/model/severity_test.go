package model_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KubeVet/kubevet/internal/model"
)

func TestSeverityOrdering(t *testing.T) {
	t.Parallel()

	require.True(t, model.Low < model.Medium)
	require.True(t, model.Medium < model.High)
	require.True(t, model.High < model.Critical)
}

func TestSeverityString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		severity model.Severity
		want     string
	}{
		{model.Low, "Low"},
		{model.Medium, "Medium"},
		{model.High, "High"},
		{model.Critical, "Critical"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, tt.severity.String())

			var parsed model.Severity
			require.NoError(t, parsed.UnmarshalText([]byte(tt.want)))
			require.Equal(t, tt.severity, parsed)
		})
	}

	var parsed model.Severity
	require.Error(t, parsed.UnmarshalText([]byte("Fatal")))
}

func TestSeverityRenderingTable(t *testing.T) {
	t.Parallel()

	// every severity renders, ranks follow the ordering
	prevRank := 0
	for _, sev := range []model.Severity{model.Low, model.Medium, model.High, model.Critical} {
		r := sev.Rendering()
		require.NotEmpty(t, r.Color, sev.String())
		require.NotEmpty(t, r.HexColor, sev.String())
		require.NotEmpty(t, r.Icon, sev.String())
		require.NotEmpty(t, r.SarifLevel, sev.String())
		require.Greater(t, r.Rank, prevRank, sev.String())
		prevRank = r.Rank
	}
}

func TestResultCounts(t *testing.T) {
	t.Parallel()

	var result model.Result
	require.True(t, result.Empty())

	result.Append(
		model.Finding{Severity: model.High, Message: "a"},
		model.Finding{Severity: model.High, Message: "b"},
		model.Finding{Severity: model.Low, Message: "c"},
	)
	require.False(t, result.Empty())
	require.Equal(t, map[model.Severity]int{model.High: 2, model.Low: 1}, result.CountBySeverity())
}
