package state

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"imglink/config"
	"imglink/settings"
)

func TestContextWithEnv(t *testing.T) {
	ctx := ContextWithEnv(context.Background())
	env := EnvFromContext(ctx)
	if env == nil {
		t.Fatal("EnvFromContext() returned nil")
	}
	if env.start.IsZero() {
		t.Error("Environment start time not set")
	}
	if env.Now == nil {
		t.Error("Environment clock not set")
	}
}

func TestEnvFromContext_PanicOnMissingEnv(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when env not in context")
		}
	}()
	EnvFromContext(context.Background())
}

func TestLocalEnv_Uptime(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))

	time.Sleep(10 * time.Millisecond)
	uptime := env.Uptime()

	if uptime < 10*time.Millisecond {
		t.Errorf("Uptime() = %v, expected at least 10ms", uptime)
	}
	if uptime > 1*time.Second {
		t.Errorf("Uptime() = %v, unexpectedly large", uptime)
	}
}

func TestLocalEnv_RedirectStdLog(t *testing.T) {
	t.Run("with logger", func(t *testing.T) {
		env := &LocalEnv{
			Log: zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1))),
		}
		env.RedirectStdLog()
		if env.restoreStdLog == nil {
			t.Error("Expected restoreStdLog to be set")
		}
		env.RestoreStdLog()
	})

	t.Run("without logger", func(t *testing.T) {
		env := &LocalEnv{}
		env.RedirectStdLog()
		if env.restoreStdLog != nil {
			t.Error("Expected restoreStdLog to remain nil")
		}
		env.RestoreStdLog()
	})
}

func TestLocalEnv_Settings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	env := &LocalEnv{
		Cfg: &config.Config{Settings: config.SettingsConfig{Path: path}},
		Log: zaptest.NewLogger(t),
	}

	env.LoadSettings()
	if env.Settings != (settings.Settings{}) {
		t.Errorf("expected empty settings, got %+v", env.Settings)
	}

	env.Settings.BaseURL = "https://example.com/docs"
	env.SaveSettings()

	other := &LocalEnv{Cfg: env.Cfg}
	other.LoadSettings()
	if other.Settings.BaseURL != "https://example.com/docs" {
		t.Errorf("BaseURL = %q after reload", other.Settings.BaseURL)
	}
}

func TestLocalEnv_SaveSettingsIgnoresFailures(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	env := &LocalEnv{
		Log:          zaptest.NewLogger(t),
		SettingsPath: filepath.Join(blocker, "settings.yaml"),
	}
	// must not panic or report anything
	env.SaveSettings()

	env = &LocalEnv{}
	env.SaveSettings()
}
