package oracle

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// Understanding labels the oracle may attach to a learner turn.
const (
	UnderstandingGood      = "gut"
	UnderstandingMedium    = "mittel"
	UnderstandingNeedsHelp = "hilfe"
)

// ErrMalformed is returned when the oracle replied but its payload is not
// a valid judgment, even after one strip-and-reparse attempt.
var ErrMalformed = errors.New("malformed oracle judgment")

// Judgment is the validated interpretation of one oracle response. It is
// pure data; the engine alone applies it to session state.
type Judgment struct {
	Message             string `json:"nachricht"`
	HelpStage           int    `json:"hilfe_stufe"`
	ShowMedia           bool   `json:"bild_zeigen"`
	MediaHint           string `json:"bild_hinweis"`
	ConceptUnderstood   bool   `json:"konzept_verstanden"`
	OfferSources        bool   `json:"quellen_anbieten"`
	FrustrationDetected bool   `json:"frustration_erkannt"`
	Understanding       string `json:"verstaendnis"`
}

const judgmentSchema = `{
	"type": "object",
	"required": ["nachricht"],
	"properties": {
		"nachricht":           {"type": "string", "minLength": 1},
		"hilfe_stufe":         {"type": "integer", "minimum": 0},
		"bild_zeigen":         {"type": "boolean"},
		"bild_hinweis":        {"type": "string"},
		"konzept_verstanden":  {"type": "boolean"},
		"quellen_anbieten":    {"type": "boolean"},
		"frustration_erkannt": {"type": "boolean"},
		"verstaendnis":        {"enum": ["gut", "mittel", "hilfe", ""]}
	}
}`

var (
	schemaOnce     sync.Once
	compiledSchema *gojsonschema.Schema
	schemaErr      error
)

func schema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(judgmentSchema))
	})
	return compiledSchema, schemaErr
}

// ParseJudgment decodes and validates a raw oracle response. If the raw
// text is not valid, it strips fenced code wrappers and tries exactly
// once more before failing with ErrMalformed.
func ParseJudgment(raw string) (Judgment, error) {
	candidate := strings.TrimSpace(raw)

	j, err := decodeJudgment(candidate)
	if err == nil {
		return j, nil
	}

	stripped := stripFences(candidate)
	if stripped == candidate {
		return Judgment{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	j, err = decodeJudgment(stripped)
	if err != nil {
		return Judgment{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return j, nil
}

func decodeJudgment(payload string) (Judgment, error) {
	s, err := schema()
	if err != nil {
		return Judgment{}, fmt.Errorf("compile judgment schema: %w", err)
	}

	result, err := s.Validate(gojsonschema.NewStringLoader(payload))
	if err != nil {
		return Judgment{}, fmt.Errorf("not a JSON object: %v", err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return Judgment{}, fmt.Errorf("schema violation: %s", strings.Join(details, "; "))
	}

	var j Judgment
	if err := json.Unmarshal([]byte(payload), &j); err != nil {
		return Judgment{}, fmt.Errorf("decode judgment: %v", err)
	}
	return j, nil
}

// stripFences removes a fenced code wrapper (```json ... ```) some
// oracle responses put around the payload.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
