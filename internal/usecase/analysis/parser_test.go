package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
)

const validResultJSON = `{
	"trajectory_analysis": {"engagement": "Declining", "meeting_length": "Shorter", "energy": "Falling", "future_talk": "Less"},
	"subtle_signals": {
		"language_patterns": ["shifted from we to you"],
		"energy_flags": ["short answers"],
		"trust_concerns": [],
		"financial_anxiety": ["asked about billing twice"],
		"positive_signals": []
	},
	"critical_moments": [
		{"quote": "whatever you think is best", "surface_read": "deferring", "deep_meaning": "disengagement", "implication": "checked out", "confidence": "High"}
	],
	"bottom_line": {
		"trajectory": "Declining",
		"churn_risk": "High",
		"client_confidence": 4,
		"confidence_in_assessment": "Medium",
		"whats_really_going_on": "They are evaluating alternatives",
		"likely_underlying_driver_if_churn": "Perceived lack of results"
	},
	"action_plan": [{"action": "Schedule call", "why": "rebuild trust", "how": "direct ask"}],
	"meeting_action_items": [],
	"communication_styles": [],
	"sarcasm_instances": []
}`

func TestParser_ParseResult(t *testing.T) {
	p := NewParser()

	result, err := p.ParseResult(validResultJSON)
	require.NoError(t, err)
	assert.Equal(t, entities.TrajectoryDeclining, result.BottomLine.Trajectory)
	assert.Equal(t, entities.ChurnRiskHigh, result.BottomLine.ChurnRisk)
	assert.Equal(t, 4, result.BottomLine.ClientConfidence)
	require.Len(t, result.CriticalMoments, 1)
	assert.Equal(t, "whatever you think is best", result.CriticalMoments[0].Quote)
}

func TestParser_ParseResult_StripsCodeFences(t *testing.T) {
	p := NewParser()

	fenced := "```json\n" + validResultJSON + "\n```"
	result, err := p.ParseResult(fenced)
	require.NoError(t, err)
	assert.Equal(t, entities.ChurnRiskHigh, result.BottomLine.ChurnRisk)

	bare := "```\n" + validResultJSON + "\n```"
	result, err = p.ParseResult(bare)
	require.NoError(t, err)
	assert.Equal(t, entities.TrajectoryDeclining, result.BottomLine.Trajectory)
}

func TestParser_ParseResult_RejectsMalformed(t *testing.T) {
	p := NewParser()

	cases := map[string]string{
		"not json":           `trajectory is declining`,
		"unknown trajectory": `{"bottom_line": {"trajectory": "Sideways", "churn_risk": "Low", "client_confidence": 5}}`,
		"unknown churn risk": `{"bottom_line": {"trajectory": "Stable", "churn_risk": "Extreme", "client_confidence": 5}}`,
		"confidence too low": `{"bottom_line": {"trajectory": "Stable", "churn_risk": "Low", "client_confidence": 0}}`,
		"confidence too big": `{"bottom_line": {"trajectory": "Stable", "churn_risk": "Low", "client_confidence": 11}}`,
		"empty":              ``,
	}
	for name, raw := range cases {
		if _, err := p.ParseResult(raw); err == nil {
			t.Errorf("%s: expected parse to fail", name)
		}
	}
}
