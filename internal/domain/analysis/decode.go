package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidResponse = errors.New("invalid analysis response")

type wireAssessment struct {
	RiskScore   *int    `json:"riskScore"`
	Sentiment   *string `json:"sentiment"`
	Summary     *string `json:"summary"`
	HealthTrend *string `json:"healthTrend"`
}

// DecodeAssessment parsea el texto del provider. Los cuatro campos son obligatorios
// y deben respetar rango/enums; cualquier desvío es ErrInvalidResponse.
func DecodeAssessment(text string) (Assessment, error) {
	raw := stripCodeFence(text)
	if raw == "" {
		return Assessment{}, fmt.Errorf("%w: empty response text", ErrInvalidResponse)
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.DisallowUnknownFields()

	var w wireAssessment
	if err := dec.Decode(&w); err != nil {
		return Assessment{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	switch {
	case w.RiskScore == nil:
		return Assessment{}, fmt.Errorf("%w: missing riskScore", ErrInvalidResponse)
	case w.Sentiment == nil:
		return Assessment{}, fmt.Errorf("%w: missing sentiment", ErrInvalidResponse)
	case w.Summary == nil:
		return Assessment{}, fmt.Errorf("%w: missing summary", ErrInvalidResponse)
	case w.HealthTrend == nil:
		return Assessment{}, fmt.Errorf("%w: missing healthTrend", ErrInvalidResponse)
	}

	a := Assessment{
		RiskScore:   *w.RiskScore,
		Sentiment:   Sentiment(strings.TrimSpace(*w.Sentiment)),
		Summary:     strings.TrimSpace(*w.Summary),
		HealthTrend: ParseHealthTrend(*w.HealthTrend),
	}

	if a.RiskScore < MinRiskScore || a.RiskScore > MaxRiskScore {
		return Assessment{}, fmt.Errorf("%w: riskScore %d out of range", ErrInvalidResponse, a.RiskScore)
	}
	if !a.Sentiment.Valid() {
		return Assessment{}, fmt.Errorf("%w: sentiment %q", ErrInvalidResponse, a.Sentiment)
	}
	if !a.HealthTrend.Valid() {
		return Assessment{}, fmt.Errorf("%w: healthTrend %q", ErrInvalidResponse, a.HealthTrend)
	}
	if a.Summary == "" {
		return Assessment{}, fmt.Errorf("%w: empty summary", ErrInvalidResponse)
	}
	return a, nil
}

// Algunos modelos envuelven el JSON en ```json ... ``` aunque se pida lo contrario.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
