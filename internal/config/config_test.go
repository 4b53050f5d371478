package config

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"MATH_BATTLES_SEED", "MATH_BATTLES_LOG_FILE", "MATH_BATTLES_MUTE",
		"MATH_BATTLES_ROSTER", "MATH_BATTLES_MODEL", "GEMINI_API_KEY"} {
		t.Setenv(k, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Seed != 0 || cfg.Mute || cfg.RosterPath != "" {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
	if cfg.LogFile != DefaultLogFile {
		t.Errorf("Expected log file %q, got %q", DefaultLogFile, cfg.LogFile)
	}
	if cfg.GeminiModel != DefaultModel {
		t.Errorf("Expected model %q, got %q", DefaultModel, cfg.GeminiModel)
	}
	if err := cfg.RequireGemini(); err == nil {
		t.Error("Expected RequireGemini to fail without an API key")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("MATH_BATTLES_SEED", "42")
	t.Setenv("MATH_BATTLES_LOG_FILE", "/tmp/battle.log")
	t.Setenv("MATH_BATTLES_MUTE", "true")
	t.Setenv("MATH_BATTLES_ROSTER", "roster.yaml")
	t.Setenv("MATH_BATTLES_MODEL", "gemini-2.5-pro")
	t.Setenv("GEMINI_API_KEY", "key")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	want := Config{
		Seed:         42,
		LogFile:      "/tmp/battle.log",
		Mute:         true,
		RosterPath:   "roster.yaml",
		GeminiAPIKey: "key",
		GeminiModel:  "gemini-2.5-pro",
	}
	if *cfg != want {
		t.Errorf("LoadConfig() = %+v, want %+v", *cfg, want)
	}
	if err := cfg.RequireGemini(); err != nil {
		t.Errorf("Unexpected RequireGemini error: %v", err)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"MATH_BATTLES_SEED", "abc"},
		{"MATH_BATTLES_MUTE", "sometimes"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv("MATH_BATTLES_SEED", "")
			t.Setenv("MATH_BATTLES_MUTE", "")
			t.Setenv(tt.key, tt.value)
			if _, err := LoadConfig(); err == nil {
				t.Errorf("Expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}
