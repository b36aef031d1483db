package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"vet-clinic-ops/internal/domain/analysis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeCmd_WithoutProviderPrintsSimulatedResult(t *testing.T) {
	t.Setenv("VETCLINIC_ANALYSIS_PROVIDER", "none")
	t.Setenv("VETCLINIC_LOGGING_LEVEL", "error")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"analyze", "--notes", "Dog limping, improving slightly", "--service-type", "Post-Vet"})

	require.NoError(t, root.Execute())

	var res analysis.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Equal(t, 50, res.RiskScore)
	assert.Equal(t, analysis.SourceNoCredential, res.Source)
}

func TestAnalyzeCmd_RejectsBadFlags(t *testing.T) {
	t.Setenv("VETCLINIC_ANALYSIS_PROVIDER", "none")

	for name, args := range map[string][]string{
		"no notes":     {"analyze"},
		"bad service":  {"analyze", "--notes", "x", "--service-type", "Grooming"},
		"missing file": {"analyze", "--notes", "x", "--config", "/nonexistent/vetclinic.yaml"},
	} {
		t.Run(name, func(t *testing.T) {
			root := newRootCmd()
			root.SetOut(&bytes.Buffer{})
			root.SetArgs(args)
			assert.Error(t, root.Execute())
		})
	}
}
