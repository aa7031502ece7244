package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"imglink/docx"
	"imglink/state"
)

// Inspect is the inspect command: prints pictures and hyperlinks found in
// Word document.
func Inspect(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("inspect")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no document has been specified")
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	info, err := docx.Inspect(src)
	if err != nil {
		return err
	}
	log.Debug("Document inspected", zap.String("file", src), zap.Int("pictures", len(info.Pictures)))

	env.Rpt.Store("inspected/"+filepath.Base(src), src)
	return printInfo(os.Stdout, src, info)
}

func printInfo(w io.Writer, name string, info *docx.Info) error {
	yesNo := func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	}

	fmt.Fprintf(w, "Document:        %s\n", name)
	if len(info.Title) > 0 {
		fmt.Fprintf(w, "Title:           %s\n", info.Title)
	}
	if len(info.Creator) > 0 {
		fmt.Fprintf(w, "Creator:         %s\n", info.Creator)
	}
	if len(info.Identifier) > 0 {
		fmt.Fprintf(w, "Identifier:      %s\n", info.Identifier)
	}
	if !info.Created.IsZero() {
		fmt.Fprintf(w, "Created:         %s\n", info.Created.Format("2006-01-02 15:04:05 MST"))
	}
	fmt.Fprintf(w, "Compression off: %s\n", yesNo(info.NoCompression))
	fmt.Fprintf(w, "Default DPI:     %s\n", info.DefaultImageDPI)
	fmt.Fprintf(w, "Single click:    %s\n", yesNo(info.FollowOnClick))
	fmt.Fprintf(w, "Paragraphs:      %d\n", info.Paragraphs)
	fmt.Fprintf(w, "Pictures:        %d\n\n", len(info.Pictures))

	if len(info.Pictures) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tFORMAT\tPIXELS\tINCHES\tCLICK\tHYPERLINK")
	for i, p := range info.Pictures {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%dx%d\t%.2fx%.2f\t%s\t%s\n",
			i+1, p.Name, p.Format, p.Width, p.Height, p.DisplayWidth, p.DisplayHeight, yesNo(p.Clickable), p.Hyperlink)
	}
	return tw.Flush()
}
