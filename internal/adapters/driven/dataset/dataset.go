// Package dataset holds the built-in threat profiles and the predefined
// question table, embedded as YAML.
package dataset

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/cyberx-cli/internal/core/domain"
)

//go:embed threats.yaml
var threatsYAML []byte

//go:embed questions.yaml
var questionsYAML []byte

// Threats returns the substitute threat records in their fixed order.
func Threats() ([]domain.ThreatRecord, error) {
	return ParseThreats(threatsYAML)
}

// Questions returns the predefined question table.
func Questions() (domain.QATable, error) {
	return ParseQuestions(questionsYAML)
}

// ParseThreats decodes a YAML list of threat records. Records are
// normalised so set fields are never nil.
func ParseThreats(data []byte) ([]domain.ThreatRecord, error) {
	var records []domain.ThreatRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: threat dataset: %w", domain.ErrParse, err)
	}
	for i := range records {
		records[i] = records[i].Normalised()
	}
	return records, nil
}

// ParseQuestions decodes a YAML list of question/answer pairs.
func ParseQuestions(data []byte) (domain.QATable, error) {
	var entries []domain.QAEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return domain.QATable{}, fmt.Errorf("%w: question table: %w", domain.ErrParse, err)
	}
	return domain.NewQATable(entries), nil
}
