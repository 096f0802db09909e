package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/genwalk/genwalk/internal/config"
	"github.com/genwalk/genwalk/internal/pipeline"
)

const (
	colorReset = "\x1b[0m"
	colorRed   = "\x1b[31m"
	colorBold  = "\x1b[1m"
)

// Run executes the checker over the given environment files and writes the
// report to out. Exit codes: 0 clean, 1 type errors were reported, 2 usage
// error or malformed input.
func Run(args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: genwalk <env.yaml> [<env.yaml> ...]")
		return 2
	}
	for _, path := range args {
		if !isEnvFile(path) {
			fmt.Fprintf(errOut, "warning: %s has no recognized environment extension\n", path)
		}
	}

	ctx := pipeline.NewContext(args...)
	ctx = pipeline.New(&pipeline.LoadProcessor{}, &pipeline.CheckProcessor{}).Run(ctx)

	for _, err := range ctx.Errors {
		fmt.Fprintln(errOut, err)
	}

	color := isTerminal(out)
	diags := ctx.Collector.Drain()
	for _, d := range diags {
		if color {
			fmt.Fprintf(out, "%s: %serror %s%s [%s]: %s\n",
				d.Pos, colorRed, d.Code, colorReset, d.Kind, d.Message)
		} else {
			fmt.Fprintf(out, "%s: error %s [%s]: %s\n", d.Pos, d.Code, d.Kind, d.Message)
		}
	}

	summary := fmt.Sprintf("run %s: %d file(s), %d error(s)", ctx.RunID, len(ctx.Units), len(diags))
	if color {
		summary = colorBold + summary + colorReset
	}
	fmt.Fprintln(out, summary)

	switch {
	case len(ctx.Errors) > 0:
		return 2
	case len(diags) > 0:
		return 1
	}
	return 0
}

func isEnvFile(path string) bool {
	for _, ext := range config.EnvFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
