package llm

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != "gemini" {
		t.Errorf("default provider = %q, want gemini", cfg.Provider)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("retry attempts = %d, want 3", cfg.Retry.MaxAttempts)
	}
}

func TestConfigFromEnv_ProviderDiscovery(t *testing.T) {
	t.Setenv("MATHTUTOR_LLM_PROVIDER", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("MATHTUTOR_GEMINI_API_KEY", "")
	t.Setenv("MATHTUTOR_OPENAI_API_KEY", "")
	t.Setenv("MATHTUTOR_ANTHROPIC_API_KEY", "")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" {
		t.Errorf("discovered provider = %q, want openai", cfg.Provider)
	}
	if cfg.OpenAI.APIKey != "test-key" {
		t.Errorf("api key not picked up")
	}
}

func TestConfigFromEnv_ExplicitProviderWins(t *testing.T) {
	t.Setenv("MATHTUTOR_LLM_PROVIDER", "anthropic")
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg := ConfigFromEnv()
	if cfg.Provider != "anthropic" {
		t.Errorf("provider = %q, want anthropic", cfg.Provider)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "gemini"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing gemini key")
	}

	cfg.Gemini.APIKey = "k"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	cfg.Provider = "mock"
	if err := cfg.Validate(); err != nil {
		t.Errorf("mock provider should not need a key: %v", err)
	}

	cfg.Provider = "nope"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown provider")
	}
}
