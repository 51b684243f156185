package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/blockmark/internal/logging"
	"github.com/yaklabco/blockmark/pkg/config"
	"github.com/yaklabco/blockmark/pkg/fsutil"
)

var errInitAborted = errors.New("init aborted")

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a blockmark configuration file",
		Long: `Create a .blockmark.yml configuration file in the current directory.
The file documents the render options and output placement and is picked up
automatically by "blockmark render" in this directory and below.

When the file already exists and stdin is a terminal, you are asked before it
is overwritten. JSON files are not discovered automatically; pass them with
--config.

Examples:
  blockmark init                      Create a minimal .blockmark.yml
  blockmark init --full               Document every option with its default
  blockmark init --format json        Create .blockmark.json instead
  blockmark init --output site.yml    Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags, stdinIsTerminal())
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Document every option with its default value")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output file path (default: .blockmark.yml or .blockmark.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags, interactive bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	if flags.format != "yaml" && flags.format != "json" {
		return fmt.Errorf("%w: invalid format %q: must be yaml or json", errInvalidUsage, flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".blockmark.yml"
		if flags.format == "json" {
			outputPath = ".blockmark.json"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil && !flags.force {
		if !interactive {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		ok, err := confirmOverwrite(cmd.InOrStdin(), cmd.ErrOrStderr(), outputPath)
		if err != nil {
			return err
		}
		if !ok {
			return errInitAborted
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(ctx, absPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'blockmark render' to render the Markdown files below this directory")

	return nil
}

// confirmOverwrite asks on out and reads a yes/no answer from in.
func confirmOverwrite(in io.Reader, out io.Writer, path string) (bool, error) {
	fmt.Fprintf(out, "%s already exists. Overwrite? [y/N] ", path)

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
