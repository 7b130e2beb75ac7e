package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreatRecord_MarshalJSON_AlwaysSixFields(t *testing.T) {
	tests := []struct {
		name   string
		record ThreatRecord
	}{
		{"zero value", ThreatRecord{}},
		{"actor only", ThreatRecord{Actor: "APT31"}},
		{"full", ThreatRecord{
			Actor:    "APT31",
			Aliases:  []string{"Judgement Panda"},
			TTPs:     []string{"CloudyLoader"},
			Targets:  []string{"Russian IT"},
			IOCs:     []string{"1.2.3.4"},
			Timeline: "Nov 2025",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.record)
			require.NoError(t, err)

			var fields map[string]any
			require.NoError(t, json.Unmarshal(data, &fields))
			assert.Len(t, fields, 6)
			for _, key := range []string{"aliases", "ttps", "targets", "iocs"} {
				assert.IsType(t, []any{}, fields[key], key)
			}
			for _, key := range []string{"actor", "timeline"} {
				assert.IsType(t, "", fields[key], key)
			}
		})
	}
}

func TestThreatRecord_UnmarshalJSON_Lenient(t *testing.T) {
	input := `{
		"actor": "Storm-0249",
		"aliases": "none known",
		"ttps": ["ClickFix", "Ransomware", "ClickFix", " "],
		"targets": null,
		"timeline": 2025,
		"extra": "ignored"
	}`

	var r ThreatRecord
	require.NoError(t, json.Unmarshal([]byte(input), &r))

	assert.Equal(t, "Storm-0249", r.Actor)
	assert.Equal(t, []string{"none known"}, r.Aliases)
	assert.Equal(t, []string{"ClickFix", "Ransomware"}, r.TTPs)
	assert.Equal(t, []string{}, r.Targets)
	assert.Equal(t, []string{}, r.IOCs)
	assert.Equal(t, "2025", r.Timeline)
}

func TestThreatRecord_UnmarshalJSON_NotObject(t *testing.T) {
	var r ThreatRecord
	assert.Error(t, json.Unmarshal([]byte(`["a","b"]`), &r))
}

func TestThreatIntel_Variants(t *testing.T) {
	structured := Structured(ThreatRecord{Actor: "Charon"})
	record, ok := structured.Record()
	assert.True(t, ok)
	assert.True(t, structured.IsStructured())
	assert.Equal(t, "Charon", record.Actor)
	_, ok = structured.Raw()
	assert.False(t, ok)

	unparsed := Unparsed("  not json  ")
	raw, ok := unparsed.Raw()
	assert.True(t, ok)
	assert.Equal(t, "not json", raw)
	_, ok = unparsed.Record()
	assert.False(t, ok)
}

func TestThreatIntel_MarshalJSON_Unparsed(t *testing.T) {
	data, err := json.Marshal(Unparsed("Sorry, I can't <help> & stuff"))
	require.NoError(t, err)

	assert.JSONEq(t, `{"raw":"Sorry, I can't <help> & stuff","note":"parse failed"}`, string(data))
}

func TestThreatIntel_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		intel ThreatIntel
	}{
		{"structured", Structured(ThreatRecord{Actor: "SideWinder", Aliases: []string{"APT-C-17"}})},
		{"unparsed", Unparsed("garbage")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.intel)
			require.NoError(t, err)

			var got ThreatIntel
			require.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, tt.intel, got)
		})
	}
}
