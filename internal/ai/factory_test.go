package ai_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dnd-server/internal/ai"
)

type stubProvider struct{}

func (stubProvider) Generate(context.Context, ai.GenerateRequest) string { return "stub" }
func (stubProvider) Model() string                                       { return "stub-model" }

func TestRegistryAvailable(t *testing.T) {
	r := ai.NewRegistry()
	assert.Equal(t, []string{"deepseek", "openrouter"}, r.Available())
}

func TestRegistryCreateUnknown(t *testing.T) {
	r := ai.NewRegistry()

	_, err := r.Create("gpt-banana", "key", ai.Options{})
	require.Error(t, err)
	// Ошибка перечисляет доступные провайдеры
	assert.Contains(t, err.Error(), "gpt-banana")
	assert.Contains(t, err.Error(), "deepseek")
	assert.Contains(t, err.Error(), "openrouter")
}

func TestRegistryCreateCaseInsensitive(t *testing.T) {
	r := ai.NewRegistry()

	p, err := r.Create("DeepSeek", "test-key", ai.Options{})
	require.NoError(t, err)
	assert.Equal(t, "deepseek-chat", p.Model())
}

func TestRegistryRegister(t *testing.T) {
	r := ai.NewRegistry()
	r.Register("custom", func(apiKey string, opts ai.Options) (ai.Provider, error) {
		return stubProvider{}, nil
	})

	assert.Equal(t, []string{"custom", "deepseek", "openrouter"}, r.Available())

	p, err := r.Create("custom", "", ai.Options{})
	require.NoError(t, err)
	assert.Equal(t, "stub-model", p.Model())
}

func TestCreateWithoutAPIKey(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")

	r := ai.NewRegistry()

	t.Run("deepseek", func(t *testing.T) {
		_, err := r.Create("deepseek", "", ai.Options{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DEEPSEEK_API_KEY")
	})

	t.Run("openrouter", func(t *testing.T) {
		_, err := r.Create("openrouter", "", ai.Options{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "OPENROUTER_API_KEY")
	})
}
