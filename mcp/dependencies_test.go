package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/codesim/domain"
	"github.com/ludo-technologies/codesim/internal/config"
)

func TestNewDependencies(t *testing.T) {
	deps := NewDependencies(nil, "")
	require.NotNil(t, deps.Config())
	assert.Equal(t, domain.DefaultThreshold, deps.Config().Compare.Threshold)
	assert.Empty(t, deps.ConfigPath())
	assert.Len(t, deps.Registry().Languages(), len(domain.AllLanguages()))

	_, err := deps.BuildCompareUseCase()
	assert.NoError(t, err)
	_, err = deps.BuildBatchUseCase()
	assert.NoError(t, err)
}

func TestDependenciesExtraKeywords(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Languages.ExtraKeywords = map[string][]string{"python": {"self"}}
	cfg.Compare.Language = "py"

	deps := NewDependencies(cfg, "/tmp/.codesim.toml")
	spec, err := deps.Registry().Lookup(domain.LanguagePython)
	require.NoError(t, err)
	assert.True(t, spec.IsKeyword("self"))
	assert.Equal(t, domain.LanguagePython, deps.configuredLanguage())
	assert.Equal(t, "/tmp/.codesim.toml", deps.ConfigPath())
}
