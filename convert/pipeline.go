package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"imglink/docx"
	"imglink/links"
	"imglink/selection"
	"imglink/state"
)

// Outcome tells how document creation ended.
type Outcome int

const (
	OutcomeSaved Outcome = iota
	OutcomeNoFolder
	OutcomeNoImages
	OutcomeNothingSelected
	OutcomeNoValidLinks
	// existing destination and user declined to replace it
	OutcomeCancelled
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSaved:
		return "saved"
	case OutcomeNoFolder:
		return "no folder"
	case OutcomeNoImages:
		return "no images"
	case OutcomeNothingSelected:
		return "nothing selected"
	case OutcomeNoValidLinks:
		return "no valid links"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Warning is true for conditions user should fix before trying again.
func (o Outcome) Warning() bool {
	switch o {
	case OutcomeNoFolder, OutcomeNoImages, OutcomeNothingSelected, OutcomeNoValidLinks:
		return true
	}
	return false
}

const (
	statusNoFolder     = "Please pick a folder with images first."
	statusNothing      = "Select at least one image to continue."
	statusSkipped      = "Some images were skipped due to missing or invalid hyperlinks."
	statusNoValidLinks = "No valid hyperlinks; provide a base URL to continue."
	statusFailed       = "Document creation failed."
	statusCancelled    = "Document was not saved."
)

// Result describes document creation. Expected conditions (nothing selected,
// no links) are reported here and never as errors.
type Result struct {
	Outcome Outcome
	Path    string
	Written int
	Skipped int
	Status  string
}

// Request is everything necessary to create document.
type Request struct {
	Folder    string
	Selection *selection.Set
	Resolver  links.Resolver
	Output    string
	Width     float64
	Overwrite bool
	// Confirm is asked when Output exists and Overwrite is not set. When nil
	// existing destination is an error.
	Confirm func(path string) bool
}

// Prepare resolves hyperlinks for selected images in their order. Images
// without hyperlink are counted as skipped.
func Prepare(paths []string, r links.Resolver) (entries []docx.Entry, skipped int) {
	entries = make([]docx.Entry, 0, len(paths))
	for _, p := range paths {
		link, ok := r.Resolve(p)
		if !ok {
			skipped++
			continue
		}
		entries = append(entries, docx.Entry{Path: p, Hyperlink: link})
	}
	return entries, skipped
}

// Create builds document from selected images and saves it. Error is returned
// only when building or saving fails, in this case nothing is written to the
// destination.
func Create(ctx context.Context, req *Request, log *zap.Logger) (*Result, error) {
	env := state.EnvFromContext(ctx)

	if len(req.Folder) == 0 {
		return &Result{Outcome: OutcomeNoFolder, Status: statusNoFolder}, nil
	}
	if req.Selection == nil || req.Selection.Len() == 0 {
		return &Result{Outcome: OutcomeNoImages, Status: statusNoFolder}, nil
	}
	if req.Selection.Count() == 0 {
		return &Result{Outcome: OutcomeNothingSelected, Status: statusNothing}, nil
	}

	entries, skipped := Prepare(req.Selection.Selected(), req.Resolver)
	if skipped > 0 {
		log.Warn(statusSkipped, zap.Int("skipped", skipped))
	}
	if len(entries) == 0 {
		return &Result{Outcome: OutcomeNoValidLinks, Skipped: skipped, Status: statusNoValidLinks}, nil
	}

	res := &Result{Path: ensureDocxExt(req.Output), Skipped: skipped}
	if len(req.Output) == 0 {
		res.Path = defaultOutputPath(req.Folder, len(entries), req.Width, env)
	}
	if p, err := filepath.Abs(res.Path); err == nil {
		res.Path = p
	}

	overwrite := req.Overwrite
	if _, err := os.Stat(res.Path); err == nil && !overwrite && req.Confirm != nil {
		if !req.Confirm(res.Path) {
			res.Outcome, res.Status = OutcomeCancelled, statusCancelled
			return res, nil
		}
		overwrite = true
	}

	fail := func(err error) (*Result, error) {
		res.Outcome, res.Status = OutcomeFailed, statusFailed
		return res, err
	}

	log.Info("Creating document", zap.String("folder", req.Folder), zap.String("output", res.Path),
		zap.Int("images", len(entries)), zap.String("width", docx.FormatWidth(req.Width)))
	start := time.Now()

	data, err := docx.Build(ctx, entries, &docx.Options{
		Width:   req.Width,
		Title:   documentTitle(req.Folder, env),
		Creator: env.Cfg.Document.Creator,
		Created: env.Now(),
		Images:  &env.Cfg.Images,
	}, log)
	if err != nil {
		return fail(fmt.Errorf("unable to build document: %w", err))
	}
	if err := docx.Write(data, res.Path, overwrite, env.Cfg.Document.FixZip, log); err != nil {
		if errors.Is(err, docx.ErrOutputExists) {
			return fail(err)
		}
		return fail(fmt.Errorf("unable to save document: %w", err))
	}

	env.Rpt.Store("result/"+strings.TrimLeft(filepath.ToSlash(res.Path), "/"), res.Path)
	env.SaveSettings()

	res.Outcome, res.Written = OutcomeSaved, len(entries)
	res.Status = "Saved Word document to " + res.Path
	if skipped > 0 {
		res.Status += fmt.Sprintf(" (%d skipped)", skipped)
	}
	log.Info("Document created", zap.String("output", res.Path), zap.Int("written", res.Written),
		zap.Int("skipped", skipped), zap.Duration("elapsed", time.Since(start)))
	return res, nil
}

func documentTitle(folder string, env *state.LocalEnv) string {
	if len(env.Cfg.Document.Title) > 0 {
		return env.Cfg.Document.Title
	}
	return filepath.Base(folder)
}

// ensureDocxExt appends .docx unless path already has it (in any case).
func ensureDocxExt(path string) string {
	if len(path) == 0 || strings.EqualFold(filepath.Ext(path), docxExt) {
		return path
	}
	return path + docxExt
}
