package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"imglink/config"
	"imglink/docx"
	"imglink/state"
)

const shellHelp = `Commands:
  open DIR          pick image folder, all images start unchecked
  base [URL]        show or set base URL, "-" clears it
  strategy [NAME]   show or set link strategy (base_url, mapping)
  list              show images and selection
  toggle N...       flip selection of images by number, ranges like 2-5 allowed
  select PATTERN... select only images matching shell patterns
  all               select all images
  clear             clear selection
  width [INCHES]    show or set display width
  create [PATH]     create Word document, default is next to the folder
  status            show current state
  help              show this text
  quit              leave
`

// Shell is the interactive command: a line oriented replacement for folder
// picker, image checklist and save dialog.
func Shell(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("shell")

	env.LoadSettings()

	s := newSession(env, log)
	defer func() {
		s.remember()
		env.SaveSettings()
	}()
	if err := applyFlags(s, cmd); err != nil {
		return err
	}
	con := newConsole(os.Stdin, os.Stdout)

	if dir := cmd.Args().First(); len(dir) > 0 {
		if err := s.open(dir); err != nil {
			fmt.Fprintf(con, "Warning: %v\n", err)
		}
	}
	return runShell(ctx, s, con)
}

func runShell(ctx context.Context, s *session, con console) error {
	fmt.Fprintf(con, "%s\nType \"help\" for commands.\n", s.status)
	if len(s.folder) > 0 {
		printList(con, s)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		con.SetPrompt(prompt(s))
		line, err := con.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("unable to read command: %w", err)
		}

		name, arg := splitCommand(line)
		if len(name) == 0 {
			continue
		}
		s.log.Debug("Shell command", zap.String("command", name), zap.String("args", arg))

		switch name {
		case "quit", "exit", "q":
			return nil
		case "help", "?":
			fmt.Fprint(con, shellHelp)
		case "open":
			shellOpen(con, s, arg)
		case "base":
			shellBase(con, s, arg)
		case "strategy":
			shellStrategy(con, s, arg)
		case "list", "ls":
			printList(con, s)
		case "toggle", "t":
			shellToggle(con, s, arg)
		case "select":
			shellSelect(con, s, arg)
		case "all":
			s.sel.SelectAll()
			printCount(con, s)
		case "clear":
			s.sel.Clear()
			printCount(con, s)
		case "width":
			shellWidth(con, s, arg)
		case "create":
			shellCreate(ctx, con, s, arg)
		case "status":
			printStatus(con, s)
		default:
			fmt.Fprintf(con, "Unknown command %q, type \"help\" for commands.\n", name)
		}
	}
}

func prompt(s *session) string {
	return fmt.Sprintf("[%d/%d] > ", s.sel.Count(), s.sel.Len())
}

// splitCommand returns lower cased command name and the rest of the line with
// surrounding quotes removed.
func splitCommand(line string) (string, string) {
	line = strings.TrimSpace(line)
	name, arg, _ := strings.Cut(line, " ")
	return strings.ToLower(name), unquote(strings.TrimSpace(arg))
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' && s[len(s)-1] == '"' || s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

func shellOpen(con console, s *session, arg string) {
	if len(arg) == 0 {
		fmt.Fprintln(con, "Warning: folder is required.")
		return
	}
	if err := s.open(arg); err != nil {
		fmt.Fprintf(con, "Warning: %v\n", err)
		return
	}
	fmt.Fprintf(con, "%s %d images in %s\n", s.status, s.sel.Len(), s.folder)
	fmt.Fprintln(con, s.linkStatus)
	printList(con, s)
}

func shellBase(con console, s *session, arg string) {
	switch arg {
	case "":
	case "-":
		s.setBaseURL("", false)
	default:
		s.setBaseURL(arg, false)
	}
	if len(s.baseURL) == 0 {
		fmt.Fprintln(con, "Base URL is not set.")
	} else {
		fmt.Fprintf(con, "Base URL: %s\n", s.baseURL)
	}
	if s.strategy == config.LinkStrategyBaseUrl {
		fmt.Fprintln(con, s.linkStatus)
	}
}

func shellStrategy(con console, s *session, arg string) {
	if len(arg) > 0 {
		strategy, err := config.ParseLinkStrategy(arg)
		if err != nil {
			fmt.Fprintf(con, "Warning: %v\n", err)
			return
		}
		s.setStrategy(strategy)
	}
	fmt.Fprintf(con, "Link strategy: %s\n%s\n", s.strategy, s.linkStatus)
}

func shellToggle(con console, s *session, arg string) {
	nums, err := parseNumbers(arg, s.sel.Len())
	if err != nil {
		fmt.Fprintf(con, "Warning: %v\n", err)
		return
	}
	for _, n := range nums {
		// numbers are validated, cannot fail
		_, _ = s.sel.Toggle(n - 1)
	}
	printCount(con, s)
}

func shellSelect(con console, s *session, arg string) {
	n, err := s.sel.SelectMatching(strings.Fields(arg))
	if err != nil {
		fmt.Fprintf(con, "Warning: %v\n", err)
		return
	}
	fmt.Fprintf(con, "%d images selected\n", n)
}

func shellWidth(con console, s *session, arg string) {
	if len(arg) > 0 {
		w, err := docx.ParseWidth(arg)
		if err != nil {
			fmt.Fprintf(con, "Warning: %v\n", err)
			return
		}
		// ParseWidth only returns widths from the table
		_ = s.setWidth(w)
	}
	var sb strings.Builder
	for _, w := range docx.Widths() {
		mark := " "
		if w == s.width {
			mark = "*"
		}
		fmt.Fprintf(&sb, " %s%s\"", mark, docx.FormatWidth(w))
	}
	fmt.Fprintf(con, "Image width:%s\n", sb.String())
}

func shellCreate(ctx context.Context, con console, s *session, arg string) {
	confirm := func(path string) bool {
		fmt.Fprintf(con, "%s already exists.\n", path)
		con.SetPrompt("Replace it? [y/N] ")
		answer, err := con.ReadLine()
		if err != nil {
			return false
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes"
	}

	res, err := s.create(ctx, arg, false, confirm)
	if err != nil {
		fmt.Fprintf(con, "Error creating document: %v\n", err)
		if res != nil {
			fmt.Fprintln(con, res.Status)
		}
		return
	}
	switch {
	case res.Outcome == OutcomeSaved:
		fmt.Fprintln(con, "Word document created successfully.")
		fmt.Fprintln(con, res.Status)
	case res.Outcome == OutcomeNoValidLinks && res.Skipped > 0:
		fmt.Fprintf(con, "%d skipped\n", res.Skipped)
		fmt.Fprintf(con, "Warning: %s\n", res.Status)
	case res.Outcome.Warning():
		fmt.Fprintf(con, "Warning: %s\n", res.Status)
	default:
		fmt.Fprintln(con, res.Status)
	}
}

// parseNumbers accepts 1-based numbers and inclusive ranges (2-5).
func parseNumbers(arg string, limit int) ([]int, error) {
	fields := strings.Fields(strings.ReplaceAll(arg, ",", " "))
	if len(fields) == 0 {
		return nil, errors.New("image numbers are required")
	}

	var nums []int
	for _, f := range fields {
		from, to, isRange := strings.Cut(f, "-")
		lo, err := strconv.Atoi(from)
		if err != nil {
			return nil, fmt.Errorf("bad image number %q", f)
		}
		hi := lo
		if isRange {
			if hi, err = strconv.Atoi(to); err != nil {
				return nil, fmt.Errorf("bad image range %q", f)
			}
		}
		if lo < 1 || hi > limit || lo > hi {
			return nil, fmt.Errorf("image number out of range %q, have %d images", f, limit)
		}
		for n := lo; n <= hi; n++ {
			nums = append(nums, n)
		}
	}
	return nums, nil
}

func printCount(con console, s *session) {
	fmt.Fprintf(con, "%d images selected\n", s.sel.Count())
}

func printList(con console, s *session) {
	if len(s.folder) == 0 {
		fmt.Fprintln(con, "Warning: "+statusNoFolder)
		return
	}
	items := s.sel.Items()
	if len(items) == 0 {
		fmt.Fprintln(con, "No images found.")
		return
	}
	width := len(strconv.Itoa(len(items)))
	for i, item := range items {
		mark := " "
		if s.sel.Checked(i) {
			mark = "x"
		}
		fmt.Fprintf(con, "  [%s] %*d  %s\n", mark, width, i+1, filepath.Base(item))
	}
	printCount(con, s)
}

func printStatus(con console, s *session) {
	folder := s.folder
	if len(folder) == 0 {
		folder = "(none)"
	}
	base := s.baseURL
	if len(base) == 0 {
		base = "(none)"
	}
	fmt.Fprintf(con, "Folder:   %s\n", folder)
	fmt.Fprintf(con, "Images:   %d, %d selected\n", s.sel.Len(), s.sel.Count())
	fmt.Fprintf(con, "Strategy: %s\n", s.strategy)
	fmt.Fprintf(con, "Base URL: %s\n", base)
	fmt.Fprintf(con, "Width:    %s\"\n", docx.FormatWidth(s.width))
	fmt.Fprintf(con, "Links:    %s\n", s.linkStatus)
	fmt.Fprintf(con, "Status:   %s\n", s.status)
}
