package analysis

import (
	"context"
	"errors"
	"fmt"

	"vet-clinic-ops/internal/platform/logger"
)

var (
	ErrProviderNotConfigured = errors.New("analysis provider not configured")
	ErrProviderUpstream      = errors.New("analysis provider upstream error")
)

// Provider es un generador de texto externo (Gemini, OpenAI, ...).
// Generate debe devolver el texto crudo (JSON) que produjo el modelo.
type Provider interface {
	Name() string
	Configured() bool
	Generate(ctx context.Context, req Request) (string, error)
}

type Config struct {
	SummaryLanguage string
	Logger          logger.Logger
	Metrics         *Metrics // opcional
}

// Analyzer nunca devuelve error: ante falta de credencial o falla del provider
// responde con un Assessment de fallback y lo marca en Result.Source.
type Analyzer struct {
	provider Provider
	language string
	log      logger.Logger
	metrics  *Metrics
}

func NewAnalyzer(p Provider, cfg Config) *Analyzer {
	l := cfg.Logger
	if l == nil {
		l = logger.Nop()
	}
	return &Analyzer{
		provider: p,
		language: cfg.SummaryLanguage,
		log:      l.With(map[string]any{"component": "analysis"}),
		metrics:  cfg.Metrics,
	}
}

// Analyze evalúa las notas de una consulta. Una llamada = a lo sumo un request al provider.
func (a *Analyzer) Analyze(ctx context.Context, notes, serviceType string) Result {
	res := a.analyze(ctx, notes, serviceType)
	if a != nil {
		a.metrics.observe(res.Source)
	}
	return res
}

func (a *Analyzer) analyze(ctx context.Context, notes, serviceType string) Result {
	if a == nil || a.provider == nil || !a.provider.Configured() {
		if a != nil {
			a.log.Warn("analysis provider not configured, returning simulated assessment", nil)
		}
		return Result{Assessment: MissingCredentialAssessment(), Source: SourceNoCredential}
	}

	req := buildRequest(notes, serviceType, a.language)

	text, err := a.generate(ctx, req)
	if err != nil {
		a.log.Error("analysis failed", map[string]any{
			"provider": a.provider.Name(),
			"err":      err,
		})
		return Result{Assessment: FailedAssessment(), Source: SourceProviderFailure}
	}

	as, err := DecodeAssessment(text)
	if err != nil {
		a.log.Error("analysis response rejected", map[string]any{
			"provider": a.provider.Name(),
			"err":      err,
		})
		return Result{Assessment: FailedAssessment(), Source: SourceProviderFailure}
	}

	a.log.Debug("analysis completed", map[string]any{
		"provider":   a.provider.Name(),
		"risk_score": as.RiskScore,
	})
	return Result{Assessment: as, Source: SourceProviderSuccess}
}

// generate aísla la llamada externa: un panic del adapter también cuenta como falla.
func (a *Analyzer) generate(ctx context.Context, req Request) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: provider panic: %v", ErrProviderUpstream, r)
		}
	}()
	return a.provider.Generate(ctx, req)
}
