package analysis

import (
	"encoding/json"
	"strings"
)

// Sentiment del dueño/mascota percibido en las notas.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

// HealthTrend es la evolución clínica estimada.
type HealthTrend string

const (
	HealthTrendImproving HealthTrend = "improving"
	HealthTrendStable    HealthTrend = "stable"
	HealthTrendDeclining HealthTrend = "declining"
)

// ParseHealthTrend acepta cualquier capitalización ("Improving", "STABLE").
func ParseHealthTrend(s string) HealthTrend {
	return HealthTrend(strings.ToLower(strings.TrimSpace(s)))
}

func (h *HealthTrend) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*h = ParseHealthTrend(s)
	return nil
}

func (h HealthTrend) Valid() bool {
	switch h {
	case HealthTrendImproving, HealthTrendStable, HealthTrendDeclining:
		return true
	}
	return false
}

const (
	MinRiskScore = 0
	MaxRiskScore = 100
)

// Assessment es el resultado estructurado de analizar una consulta.
type Assessment struct {
	RiskScore   int         `json:"riskScore"`
	Sentiment   Sentiment   `json:"sentiment"`
	Summary     string      `json:"summary"`
	HealthTrend HealthTrend `json:"healthTrend"`
}

// Source indica por qué camino se obtuvo el Assessment.
type Source string

const (
	SourceNoCredential    Source = "no_credential"
	SourceProviderSuccess Source = "provider_success"
	SourceProviderFailure Source = "provider_failure"
)

// Result es lo que devuelve Analyze: siempre un Assessment utilizable + su origen.
type Result struct {
	Assessment
	Source Source `json:"source"`
}

const (
	SummaryMissingCredential = "API key missing. Simulated summary provided."
	SummaryAnalysisFailed    = "Analysis failed."
)

// MissingCredentialAssessment se usa cuando no hay provider configurado.
func MissingCredentialAssessment() Assessment {
	return Assessment{
		RiskScore:   50,
		Sentiment:   SentimentNeutral,
		Summary:     SummaryMissingCredential,
		HealthTrend: HealthTrendStable,
	}
}

// FailedAssessment se usa cuando la llamada o el parseo fallan.
func FailedAssessment() Assessment {
	return Assessment{
		RiskScore:   0,
		Sentiment:   SentimentNeutral,
		Summary:     SummaryAnalysisFailed,
		HealthTrend: HealthTrendStable,
	}
}

// Valid chequea rango y enums (no exige summary: lo puede omitir quien completa a mano).
func (a Assessment) Valid() bool {
	return a.RiskScore >= MinRiskScore && a.RiskScore <= MaxRiskScore &&
		a.Sentiment.Valid() && a.HealthTrend.Valid()
}
