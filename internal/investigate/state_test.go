package investigate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veritide/compliance-cli/internal/model"
)

func TestDecide(t *testing.T) {
	named := &model.CustomerRecord{Personal: model.PersonalInfo{Name: "Jane Cooper"}}
	unnamed := &model.CustomerRecord{}

	tests := []struct {
		name   string
		found  bool
		rec    *model.CustomerRecord
		want   State
		reason string
	}{
		{"found with name", true, named, StateFound, ""},
		{"found but nil record", true, nil, StateNotFound, "customer not found"},
		{"found but empty name", true, unnamed, StateNotFound, "customer not found"},
		{"not found", false, nil, StateNotFound, "customer not found"},
		{"not found with record anyway", false, named, StateNotFound, "customer not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Decide(tt.found, tt.rec, "")
			assert.Equal(t, tt.want, out.State)
			if tt.want == StateFound {
				assert.Same(t, tt.rec, out.Record)
				assert.Empty(t, out.Reason)
			} else {
				assert.Nil(t, out.Record)
				assert.Equal(t, tt.reason, out.Reason)
			}
		})
	}
}

func TestDecide_PreservesReason(t *testing.T) {
	out := Decide(false, nil, "The portal search returned no matching customer.")
	assert.Equal(t, StateNotFound, out.State)
	assert.Equal(t, "The portal search returned no matching customer.", out.Reason)
}

func TestTerminalReport(t *testing.T) {
	rep := TerminalReport("Jane Cooper", "The portal search returned no matching customer.")

	assert.Equal(t, "Jane Cooper", rep.CustomerName)
	assert.Equal(t, model.RiskUnknown, rep.RiskLevel)
	assert.Contains(t, rep.ExecutiveSummary, "Jane Cooper")
	assert.Contains(t, rep.ExecutiveSummary, "The portal search returned no matching customer.")
	assert.Contains(t, rep.ExecutiveSummary, "No research phase was run.")
	assert.False(t, rep.GeneratedAt.IsZero())

	require.NotNil(t, rep.Record)
	assert.Equal(t, "N/A", rep.Record.Personal.Name)
	assert.Equal(t, "N/A", rep.Record.Personal.DateOfBirth)
	assert.Equal(t, "N/A", rep.Record.Personal.Address)
	assert.Equal(t, model.RiskUnknown, rep.Record.RiskLevel)
	assert.Empty(t, rep.Record.Transactions)
	assert.Empty(t, rep.Record.Investigations)

	require.NotEmpty(t, rep.RecommendedActions)
	assert.Len(t, rep.RecommendedActions, 3)
}

func TestTerminalReport_Deterministic(t *testing.T) {
	a := TerminalReport("X", "reason.")
	b := TerminalReport("X", "reason.")
	a.GeneratedAt = b.GeneratedAt
	assert.Equal(t, a, b)
}
