package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ParseFailedNote is attached to model output that could not be decoded.
const ParseFailedNote = "parse failed"

// ThreatRecord is the canonical structured profile of one threat actor.
// Every record has exactly these six fields whatever produced it; set-valued
// fields are never nil once normalised.
type ThreatRecord struct {
	// Actor is the main threat actor name.
	Actor string `json:"actor" yaml:"actor"`

	// Aliases are alternative names for the actor.
	Aliases []string `json:"aliases" yaml:"aliases"`

	// TTPs are tactics, techniques and procedures.
	TTPs []string `json:"ttps" yaml:"ttps"`

	// Targets are industries, countries or sectors.
	Targets []string `json:"targets" yaml:"targets"`

	// IOCs are indicators of compromise.
	IOCs []string `json:"iocs" yaml:"iocs"`

	// Timeline is a free-text period of activity.
	Timeline string `json:"timeline" yaml:"timeline"`
}

// Normalised returns a copy with trimmed strings and de-duplicated,
// non-nil sets.
func (r ThreatRecord) Normalised() ThreatRecord {
	return ThreatRecord{
		Actor:    strings.TrimSpace(r.Actor),
		Aliases:  normaliseSet(r.Aliases),
		TTPs:     normaliseSet(r.TTPs),
		Targets:  normaliseSet(r.Targets),
		IOCs:     normaliseSet(r.IOCs),
		Timeline: strings.TrimSpace(r.Timeline),
	}
}

// MarshalJSON always emits all six fields with empty arrays, never null.
func (r ThreatRecord) MarshalJSON() ([]byte, error) {
	type plain ThreatRecord
	return marshalNoEscape(plain(r.Normalised()))
}

// UnmarshalJSON decodes leniently: set fields accept an array or a single
// string, scalar fields accept any JSON value, and missing fields are empty.
func (r *ThreatRecord) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*r = ThreatRecord{
		Actor:    decodeScalar(fields["actor"]),
		Aliases:  decodeSet(fields["aliases"]),
		TTPs:     decodeSet(fields["ttps"]),
		Targets:  decodeSet(fields["targets"]),
		IOCs:     decodeSet(fields["iocs"]),
		Timeline: decodeScalar(fields["timeline"]),
	}
	*r = r.Normalised()
	return nil
}

// ThreatIntel is either a Structured ThreatRecord or the Unparsed model
// output that could not be decoded into one.
type ThreatIntel struct {
	record     ThreatRecord
	raw        string
	structured bool
}

// Structured wraps a decoded record.
func Structured(r ThreatRecord) ThreatIntel {
	return ThreatIntel{record: r.Normalised(), structured: true}
}

// Unparsed wraps model output that was not valid JSON.
func Unparsed(text string) ThreatIntel {
	return ThreatIntel{raw: strings.TrimSpace(text)}
}

// Record returns the structured record, if any.
func (t ThreatIntel) Record() (ThreatRecord, bool) {
	return t.record, t.structured
}

// Raw returns the unparsed text, if any.
func (t ThreatIntel) Raw() (string, bool) {
	return t.raw, !t.structured
}

// IsStructured reports whether the variant holds a ThreatRecord.
func (t ThreatIntel) IsStructured() bool {
	return t.structured
}

type unparsedJSON struct {
	Raw  string `json:"raw"`
	Note string `json:"note"`
}

// MarshalJSON emits the record, or {raw, note} for unparsed output.
func (t ThreatIntel) MarshalJSON() ([]byte, error) {
	if t.structured {
		return t.record.MarshalJSON()
	}
	return marshalNoEscape(unparsedJSON{Raw: t.raw, Note: ParseFailedNote})
}

// UnmarshalJSON restores either variant from its JSON form.
func (t *ThreatIntel) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	_, hasRaw := fields["raw"]
	_, hasActor := fields["actor"]
	if hasRaw && !hasActor {
		var u unparsedJSON
		if err := json.Unmarshal(data, &u); err != nil {
			return err
		}
		*t = Unparsed(u.Raw)
		return nil
	}
	var r ThreatRecord
	if err := r.UnmarshalJSON(data); err != nil {
		return err
	}
	*t = Structured(r)
	return nil
}

func normaliseSet(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func decodeScalar(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}

func decodeSet(raw json.RawMessage) []string {
	if len(raw) == 0 || string(raw) == "null" {
		return []string{}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []string{decodeScalar(raw)}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, decodeScalar(item))
	}
	return out
}

// marshalNoEscape encodes v without HTML escaping so log artifacts keep
// characters like '&' and '<' readable.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
