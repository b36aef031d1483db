package analysis

import (
	"fmt"
	"strings"
)

const DefaultSummaryLanguage = "Portuguese (Brazil)"

// Request es lo que recibe un Provider: instrucciones ya armadas + los datos crudos
// (algunos providers los usan para construir su propio payload).
type Request struct {
	Notes           string
	ServiceType     string
	SummaryLanguage string

	SystemPrompt string
	UserPrompt   string
}

const systemPrompt = "You are a veterinary clinical assistant. " +
	"Reply with a single JSON object and nothing else. " +
	`The object must have exactly these fields: ` +
	`"riskScore" (integer 0-100, 100 is critical), ` +
	`"sentiment" (one of "Positive", "Neutral", "Negative"), ` +
	`"summary" (one short sentence for the timeline), ` +
	`"healthTrend" (one of "improving", "stable", "declining").`

func buildRequest(notes, serviceType, language string) Request {
	if strings.TrimSpace(language) == "" {
		language = DefaultSummaryLanguage
	}

	user := fmt.Sprintf(
		"Analyze the following veterinary consultation notes for a %s visit.\n"+
			"Notes: %q.\n\n"+
			"Determine the risk score (0-100 where 100 is critical), the client/pet sentiment "+
			"(Positive, Neutral, Negative), a brief summary for the timeline in %s, "+
			"and the health trend (improving, stable, declining).",
		serviceType, notes, language,
	)

	return Request{
		Notes:           notes,
		ServiceType:     serviceType,
		SummaryLanguage: language,
		SystemPrompt:    systemPrompt,
		UserPrompt:      user,
	}
}

// ResponseSchema describe la salida esperada en formato OpenAPI-subset
// (lo acepta Gemini como responseSchema).
func ResponseSchema() map[string]any {
	return map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"riskScore": map[string]any{
				"type":        "INTEGER",
				"description": "Risk score from 0 to 100",
			},
			"sentiment": map[string]any{
				"type": "STRING",
				"enum": []string{string(SentimentPositive), string(SentimentNeutral), string(SentimentNegative)},
			},
			"summary": map[string]any{
				"type":        "STRING",
				"description": "One sentence summary of the visit",
			},
			"healthTrend": map[string]any{
				"type": "STRING",
				"enum": []string{string(HealthTrendImproving), string(HealthTrendStable), string(HealthTrendDeclining)},
			},
		},
		"required": []string{"riskScore", "sentiment", "summary", "healthTrend"},
	}
}
