package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Fake provider
// -------------------------

type fakeProvider struct {
	configured bool
	text       string
	err        error
	panicWith  any

	calls   int
	lastReq Request
}

func (f *fakeProvider) Name() string     { return "fake" }
func (f *fakeProvider) Configured() bool { return f.configured }

func (f *fakeProvider) Generate(ctx context.Context, req Request) (string, error) {
	f.calls++
	f.lastReq = req
	if f.panicWith != nil {
		panic(f.panicWith)
	}
	return f.text, f.err
}

func assertWellFormed(t *testing.T, r Result) {
	t.Helper()
	assert.GreaterOrEqual(t, r.RiskScore, MinRiskScore)
	assert.LessOrEqual(t, r.RiskScore, MaxRiskScore)
	assert.True(t, r.Sentiment.Valid(), "sentiment %q", r.Sentiment)
	assert.True(t, r.HealthTrend.Valid(), "healthTrend %q", r.HealthTrend)
	assert.NotEmpty(t, r.Summary)
}

// -------------------------
// Tests
// -------------------------

func TestAnalyze_NoProvider_ReturnsMissingCredentialFallback(t *testing.T) {
	inputs := []struct{ notes, serviceType string }{
		{"Dog limping, improving slightly", "Post-Vet"},
		{"", ""},
		{strings.Repeat("x", 5000), "Emergency"},
	}

	for _, p := range []Provider{nil, &fakeProvider{configured: false}} {
		a := NewAnalyzer(p, Config{})
		for _, in := range inputs {
			r := a.Analyze(context.Background(), in.notes, in.serviceType)
			assert.Equal(t, SourceNoCredential, r.Source)
			assert.Equal(t, 50, r.RiskScore)
			assert.Equal(t, SentimentNeutral, r.Sentiment)
			assert.Equal(t, HealthTrendStable, r.HealthTrend)
			assert.NotEmpty(t, r.Summary)
		}
	}
}

func TestAnalyze_NotConfigured_DoesNotCallProvider(t *testing.T) {
	p := &fakeProvider{configured: false, text: `{"riskScore":1}`}
	NewAnalyzer(p, Config{}).Analyze(context.Background(), "notes", "Routine")
	assert.Equal(t, 0, p.calls)
}

func TestAnalyze_ProviderSuccess(t *testing.T) {
	p := &fakeProvider{
		configured: true,
		text:       `{"riskScore":20,"sentiment":"Positive","summary":"Recuperação em andamento.","healthTrend":"improving"}`,
	}
	a := NewAnalyzer(p, Config{SummaryLanguage: "English"})

	r := a.Analyze(context.Background(), "Dog limping, improving slightly", "Post-Vet")

	assert.Equal(t, SourceProviderSuccess, r.Source)
	assert.Equal(t, Assessment{
		RiskScore:   20,
		Sentiment:   SentimentPositive,
		Summary:     "Recuperação em andamento.",
		HealthTrend: HealthTrendImproving,
	}, r.Assessment)

	require.Equal(t, 1, p.calls)
	assert.Contains(t, p.lastReq.UserPrompt, "Post-Vet")
	assert.Contains(t, p.lastReq.UserPrompt, "Dog limping, improving slightly")
	assert.Contains(t, p.lastReq.UserPrompt, "English")
	assert.NotEmpty(t, p.lastReq.SystemPrompt)
}

func TestAnalyze_ProviderFailures_ReturnFailedFallback(t *testing.T) {
	cases := map[string]*fakeProvider{
		"transport error": {configured: true, err: errors.New("connection reset")},
		"empty text":      {configured: true, text: ""},
		"not json":        {configured: true, text: "the dog is fine"},
		"missing field":   {configured: true, text: `{"riskScore":10,"sentiment":"Positive","summary":"ok"}`},
		"out of range":    {configured: true, text: `{"riskScore":140,"sentiment":"Positive","summary":"ok","healthTrend":"stable"}`},
		"bad enum":        {configured: true, text: `{"riskScore":10,"sentiment":"Happy","summary":"ok","healthTrend":"stable"}`},
		"float score":     {configured: true, text: `{"riskScore":10.5,"sentiment":"Positive","summary":"ok","healthTrend":"stable"}`},
		"panic":           {configured: true, panicWith: "nil map"},
	}

	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			r := NewAnalyzer(p, Config{}).Analyze(context.Background(), "notes", "Routine")
			assert.Equal(t, SourceProviderFailure, r.Source)
			assert.Equal(t, FailedAssessment(), r.Assessment)
			assertWellFormed(t, r)
		})
	}
}

func TestAnalyze_CountsResultsBySource(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	ok := &fakeProvider{configured: true, text: `{"riskScore":5,"sentiment":"Neutral","summary":"ok","healthTrend":"stable"}`}
	bad := &fakeProvider{configured: true, err: errors.New("boom")}

	NewAnalyzer(nil, Config{Metrics: m}).Analyze(context.Background(), "n", "Routine")
	NewAnalyzer(ok, Config{Metrics: m}).Analyze(context.Background(), "n", "Routine")
	NewAnalyzer(ok, Config{Metrics: m}).Analyze(context.Background(), "n", "Routine")
	NewAnalyzer(bad, Config{Metrics: m}).Analyze(context.Background(), "n", "Routine")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.results.WithLabelValues(string(SourceNoCredential))))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.results.WithLabelValues(string(SourceProviderSuccess))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.results.WithLabelValues(string(SourceProviderFailure))))
}

func TestDecodeAssessment_AcceptsCodeFence(t *testing.T) {
	a, err := DecodeAssessment("```json\n{\"riskScore\":75,\"sentiment\":\"Negative\",\"summary\":\"Piora.\",\"healthTrend\":\"Declining\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, 75, a.RiskScore)
	assert.Equal(t, SentimentNegative, a.Sentiment)
	assert.Equal(t, HealthTrendDeclining, a.HealthTrend)
}

func TestDecodeAssessment_RejectsUnknownFields(t *testing.T) {
	_, err := DecodeAssessment(`{"riskScore":1,"sentiment":"Neutral","summary":"x","healthTrend":"stable","extra":true}`)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestHealthTrend_UnmarshalNormalizesCase(t *testing.T) {
	var a Assessment
	require.NoError(t, json.Unmarshal([]byte(`{"riskScore":20,"sentiment":"Positive","summary":"ok","healthTrend":"Improving"}`), &a))
	assert.Equal(t, HealthTrendImproving, a.HealthTrend)
	assert.True(t, a.Valid())

	assert.Equal(t, HealthTrendStable, ParseHealthTrend(" STABLE "))
	assert.False(t, ParseHealthTrend("better").Valid())
}
