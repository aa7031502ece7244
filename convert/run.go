package convert

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"imglink/config"
	"imglink/docx"
	"imglink/state"
)

// Run is the build command: creates document from images in a folder without
// any interaction.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("build")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no image folder has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) > 0 {
		if dst, err = filepath.Abs(dst); err != nil {
			return err
		}
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.LoadSettings()
	s := newSession(env, log)

	if err := applyFlags(s, cmd); err != nil {
		return err
	}
	env.Overwrite = cmd.Bool("overwrite")

	if err := s.open(src); err != nil {
		return err
	}
	log.Info(s.linkStatus)

	if patterns := cmd.StringSlice("select"); len(patterns) > 0 {
		if _, err := s.sel.SelectMatching(patterns); err != nil {
			return err
		}
	} else {
		s.sel.SelectAll()
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst),
		zap.Int("images", s.sel.Len()), zap.Int("selected", s.sel.Count()))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	res, err := s.create(ctx, dst, env.Overwrite, nil)
	if err != nil {
		return err
	}
	return reportResult(res, log)
}

// applyFlags overrides session values with ones given on command line.
func applyFlags(s *session, cmd *cli.Command) error {
	if cmd.IsSet("width") {
		w, err := docx.ParseWidth(cmd.String("width"))
		if err != nil {
			return err
		}
		s.width = w
	}
	// configured width could be anything
	if err := s.setWidth(s.width); err != nil {
		return err
	}
	if cmd.IsSet("strategy") {
		strategy, err := config.ParseLinkStrategy(cmd.String("strategy"))
		if err != nil {
			return err
		}
		s.setStrategy(strategy)
	}
	if cmd.IsSet("base-url") {
		s.setBaseURL(cmd.String("base-url"), true)
	}
	return nil
}

func reportResult(res *Result, log *zap.Logger) error {
	switch {
	case res.Outcome == OutcomeSaved:
		log.Info(res.Status, zap.Int("written", res.Written), zap.Int("skipped", res.Skipped))
	case res.Outcome.Warning():
		log.Warn(res.Status, zap.Stringer("outcome", res.Outcome), zap.Int("skipped", res.Skipped))
	default:
		return fmt.Errorf("unexpected outcome: %s", res.Outcome)
	}
	return nil
}
