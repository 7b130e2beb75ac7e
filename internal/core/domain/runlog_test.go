package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactName(t *testing.T) {
	assert.Equal(t, "CyberX #1.json", ArtifactName("CyberX", 1))
	assert.Equal(t, "CyberX #42.json", ArtifactName("CyberX", 42))
}

func TestParseArtifactName(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		want   int
		wantOK bool
	}{
		{"valid", "CyberX #5.json", 5, true},
		{"large", "CyberX #120.json", 120, true},
		{"other product", "Other #5.json", 0, false},
		{"no number", "CyberX #.json", 0, false},
		{"not a number", "CyberX #abc.json", 0, false},
		{"zero", "CyberX #0.json", 0, false},
		{"wrong extension", "CyberX #5.txt", 0, false},
		{"backup copy", "CyberX #5.json.bak", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := ParseArtifactName("CyberX", tt.file)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestRunLog_JSONShape(t *testing.T) {
	log := NewRunLog(3)
	log.Phases.Phase1 = NewCollectionPhase()
	log.Phases.Phase1.CollectionMethod = CollectionFallback

	data, err := json.Marshal(log)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, float64(3), decoded["run_number"])

	phases := decoded["phases"].(map[string]any)
	assert.Contains(t, phases, "phase1")
	assert.NotContains(t, phases, "phase2")

	phase1 := phases["phase1"].(map[string]any)
	assert.Equal(t, "fallback", phase1["collection_method"])
	assert.Equal(t, []any{}, phase1["reports"])
	assert.Equal(t, []any{}, phase1["failed_urls"])
	assert.NotContains(t, phase1, "error")
}

func TestNewSessionPhase(t *testing.T) {
	p := NewSessionPhase(nil)
	assert.Equal(t, SessionRunning, p.Status)
	assert.NotNil(t, p.PredefinedQuestions)
	assert.NotNil(t, p.Queries)
	assert.Equal(t, SessionDescription, p.Description)
}
