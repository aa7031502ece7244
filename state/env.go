// Package state defines shared program state.
package state

import (
	"context"
	"time"

	"go.uber.org/zap"

	"imglink/config"
	"imglink/settings"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// Settings are persisted between runs, loaded lazily by commands which
	// need them.
	Settings     settings.Settings
	SettingsPath string

	// used by build and shell subcommands
	Overwrite bool

	// Now is the clock used to stamp documents.
	Now func() time.Time

	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// LoadSettings reads persisted settings from the configured location. Any
// problem results in empty settings.
func (e *LocalEnv) LoadSettings() {
	e.SettingsPath = e.Cfg.Settings.Path
	if len(e.SettingsPath) == 0 {
		e.SettingsPath = settings.DefaultPath()
	}
	e.Settings = settings.Load(e.SettingsPath)
	if e.Log != nil {
		e.Log.Debug("Settings loaded", zap.String("file", e.SettingsPath), zap.Object("settings", e.Settings))
	}
}

// SaveSettings persists current settings. Failures are never reported to the
// user, only logged.
func (e *LocalEnv) SaveSettings() {
	if len(e.SettingsPath) == 0 {
		return
	}
	if err := settings.Save(e.SettingsPath, e.Settings); err != nil {
		if e.Log != nil {
			e.Log.Debug("Unable to save settings", zap.String("file", e.SettingsPath), zap.Error(err))
		}
		return
	}
	if err := e.Rpt.StoreCopy("settings.yaml", e.SettingsPath); err != nil && e.Log != nil {
		e.Log.Debug("Unable to store settings in report", zap.Error(err))
	}
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
