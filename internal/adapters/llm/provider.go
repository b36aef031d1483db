package llm

import (
	"fmt"
	"strings"

	"vet-clinic-ops/internal/adapters/llm/gemini"
	"vet-clinic-ops/internal/adapters/llm/openai"
	"vet-clinic-ops/internal/config"
	"vet-clinic-ops/internal/domain/analysis"
)

// NewProvider arma el provider configurado. "none" devuelve nil: el Analyzer
// responde con el assessment simulado.
func NewProvider(cfg config.AnalysisConfig) (analysis.Provider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case config.ProviderNone:
		return nil, nil
	case config.ProviderGemini, "":
		return gemini.NewClient(gemini.Config{
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		})
	case config.ProviderOpenAI:
		return openai.NewClient(openai.Config{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
		}), nil
	default:
		return nil, fmt.Errorf("unknown analysis provider %q", cfg.Provider)
	}
}
