package llm

import (
	"testing"

	"vet-clinic-ops/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(config.AnalysisConfig{Provider: config.ProviderNone, APIKey: "k"})
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = NewProvider(config.AnalysisConfig{Provider: "Gemini", APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "gemini", p.Name())
	assert.True(t, p.Configured())

	p, err = NewProvider(config.AnalysisConfig{Provider: config.ProviderOpenAI})
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())
	assert.False(t, p.Configured())

	_, err = NewProvider(config.AnalysisConfig{Provider: "claude"})
	assert.Error(t, err)
}
