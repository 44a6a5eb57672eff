// Package state defines shared program state.
package state

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"lfmt/cache"
	"lfmt/config"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg   *config.Config
	Rpt   *config.Report
	Log   *zap.Logger
	Cache *cache.Cache
	// RunID tags output names and report entries of a single program run.
	RunID uuid.UUID

	// used by format subcommand
	NoDirs    bool
	Overwrite bool

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

func newLocalEnv() *LocalEnv {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return &LocalEnv{start: time.Now(), RunID: id}
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// OpenCache opens formatting cache if configuration asks for one.
func (e *LocalEnv) OpenCache() error {
	if e.Cfg == nil || len(e.Cfg.Processing.Cache) == 0 || e.Cache != nil {
		return nil
	}
	c, err := cache.Open(e.Cfg.Processing.Cache, e.Log.Named("cache"))
	if err != nil {
		return err
	}
	e.Cache = c
	return nil
}

// Close releases resources opened by commands. Logging and report are
// handled separately as they have to outlive everything else.
func (e *LocalEnv) Close() (err error) {
	if e.Cache != nil {
		if er := e.Cache.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close cache: %w", er))
		}
		e.Cache = nil
	}
	return err
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
