package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"imglink/config"
	"imglink/docx"
	"imglink/images"
	"imglink/links"
	"imglink/selection"
	"imglink/state"
)

// session is what user is working on: image folder, selected images, link
// strategy and display width. Shared by build and shell commands.
type session struct {
	env *state.LocalEnv
	log *zap.Logger

	folder   string
	sel      *selection.Set
	strategy config.LinkStrategy
	width    float64

	baseURL string
	// explicitly requested base URL is never replaced by inferred one
	pinned    bool
	localRoot string
	baseRoot  string

	resolver   links.Resolver
	linkStatus string
	status     string
}

// newSession picks up configured values, persisted settings fill the gaps.
func newSession(env *state.LocalEnv, log *zap.Logger) *session {
	s := &session{
		env:       env,
		log:       log,
		sel:       selection.New(nil),
		strategy:  env.Cfg.Links.Strategy,
		width:     env.Cfg.Document.Width,
		baseURL:   firstNonEmpty(env.Cfg.Links.BaseURL, env.Settings.BaseURL),
		localRoot: firstNonEmpty(env.Cfg.Links.LocalRoot, env.Settings.LocalRoot),
		baseRoot:  firstNonEmpty(env.Cfg.Links.BaseRoot, env.Settings.BaseRoot),
		status:    "Pick a folder to begin.",
	}
	s.refreshResolver()
	return s
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if len(v) > 0 {
			return v
		}
	}
	return ""
}

// open discovers images in dir. All images start unchecked. Base URL is
// re-inferred if folder is under local root. Previous state is kept on
// error.
func (s *session) open(dir string) error {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	fi, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("unable to access folder: %w", err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("not a folder: %s", dir)
	}

	found, err := images.Discover(dir, s.env.Cfg.Discovery.Order)
	if err != nil {
		return err
	}

	s.folder = dir
	s.sel.Reset(found)
	if !s.pinned {
		if inferred, ok := links.InferBaseURL(dir, s.localRoot, s.baseRoot); ok {
			s.log.Debug("Base URL inferred", zap.String("folder", dir), zap.String("url", inferred))
			s.baseURL = inferred
		}
	}
	s.refreshResolver()

	s.status = "Images loaded."
	s.log.Debug("Folder opened", zap.String("folder", dir), zap.Int("images", len(found)),
		zap.Stringer("order", s.env.Cfg.Discovery.Order))
	return nil
}

func (s *session) setBaseURL(u string, pin bool) {
	s.baseURL, s.pinned = u, pin
	s.refreshResolver()
}

func (s *session) setStrategy(strategy config.LinkStrategy) {
	s.strategy = strategy
	s.refreshResolver()
}

func (s *session) setWidth(w float64) error {
	if _, ok := docx.PixelsFor(w); !ok {
		return fmt.Errorf("%w: %s", docx.ErrUnsupportedWidth, docx.FormatWidth(w))
	}
	s.width = w
	return nil
}

// refreshResolver is called whenever anything resolver depends on changes.
func (s *session) refreshResolver() {
	s.resolver, s.linkStatus = links.New(s.strategy, s.baseURL, s.folder)
	s.log.Debug("Link resolver selected", zap.Stringer("strategy", s.strategy), zap.String("status", s.linkStatus))
}

// remember copies values persisted between runs into settings.
func (s *session) remember() {
	s.env.Settings.BaseURL = s.baseURL
	s.env.Settings.LocalRoot = s.localRoot
	s.env.Settings.BaseRoot = s.baseRoot
}

// create makes document out of current selection and remembers settings on
// success.
func (s *session) create(ctx context.Context, output string, overwrite bool, confirm func(string) bool) (*Result, error) {
	s.remember()

	res, err := Create(ctx, &Request{
		Folder:    s.folder,
		Selection: s.sel,
		Resolver:  s.resolver,
		Output:    output,
		Width:     s.width,
		Overwrite: overwrite,
		Confirm:   confirm,
	}, s.log)
	if res != nil {
		s.status = res.Status
	}
	return res, err
}
