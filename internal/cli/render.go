package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/blockmark/internal/configloader"
	"github.com/yaklabco/blockmark/internal/logging"
	"github.com/yaklabco/blockmark/pkg/block"
	"github.com/yaklabco/blockmark/pkg/config"
	"github.com/yaklabco/blockmark/pkg/fsutil"
	"github.com/yaklabco/blockmark/pkg/markup"
	"github.com/yaklabco/blockmark/pkg/reporter"
	"github.com/yaklabco/blockmark/pkg/runner"
)

var (
	errInvalidUsage  = errors.New("invalid usage")
	errInvalidConfig = errors.New("failed to load configuration")
)

// stdinPath names standard input on the command line.
const stdinPath = "-"

type renderFlags struct {
	pretty         bool
	sourceIndices  bool
	detectLanguage bool
	typographics   bool
	hardWraps      bool
	staged         bool
	jobs           int
	outDir         string
	ext            string
	ignore         []string
	format         string
	verbose        bool
	compact        bool
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [paths...]",
		Short: "Render Markdown files to HTML",
		Long:  renderLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, flags)
		},
	}

	addRenderFlags(cmd, flags)

	return cmd
}

const renderLongDescription = `Render Markdown files to HTML.

With no paths, or with "-", the document is read from stdin and the HTML is
written to stdout. A single file is also written to stdout unless an output
directory is configured. Otherwise every .md, .markdown and .txt file found
under the given paths is rendered next to its source (or under --out-dir)
and a summary is printed to stderr.

Examples:
  blockmark render < README.md            # Render stdin to stdout
  blockmark render README.md --pretty     # Render one file, indented
  blockmark render docs/                  # Render docs/**/*.md to .html
  blockmark render docs/ --out-dir site   # Mirror docs/ into site/
  blockmark render . --ignore 'vendor/**' # Skip a directory
  blockmark render docs/ --format json    # Machine-readable summary`

func addRenderFlags(cmd *cobra.Command, flags *renderFlags) {
	cmd.Flags().BoolVar(&flags.pretty, "pretty", false, "re-indent the rendered HTML")
	cmd.Flags().BoolVar(&flags.sourceIndices, "source-indices", false,
		"annotate block elements with their source offset (data-src)")
	cmd.Flags().BoolVar(&flags.detectLanguage, "detect-language", false,
		"tag fenced code with a detected language class")
	cmd.Flags().BoolVar(&flags.typographics, "typographics", false,
		"typographic replacements (reserved, currently no effect)")
	cmd.Flags().BoolVar(&flags.hardWraps, "hard-wraps", false,
		"turn line breaks inside paragraphs into <br>")
	cmd.Flags().BoolVar(&flags.staged, "staged", false,
		"compile block by block so cancellation stops large documents early")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringVar(&flags.outDir, "out-dir", "", "directory to write rendered files to")
	cmd.Flags().StringVar(&flags.ext, "ext", "", "extension of rendered files (default .html)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringVar(&flags.format, "format", "text", "summary format: text, json")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "list every file and block counts")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "minify JSON output")
}

// cliConfig builds the highest-precedence configuration layer. Only flags
// the user actually set are carried, so lower layers keep their values.
func cliConfig(cmd *cobra.Command, flags *renderFlags) *config.Config {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("pretty") {
		cfg.Pretty = config.Bool(flags.pretty)
	}
	if changed("source-indices") {
		cfg.SourceIndices = config.Bool(flags.sourceIndices)
	}
	if changed("detect-language") {
		cfg.DetectLanguage = config.Bool(flags.detectLanguage)
	}
	if changed("typographics") {
		cfg.Inline.Typographics = config.Bool(flags.typographics)
	}
	if changed("hard-wraps") {
		cfg.Inline.HardWraps = config.Bool(flags.hardWraps)
	}
	if changed("ignore") {
		cfg.Ignore = flags.ignore
	}
	if changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if changed("jobs") {
		cfg.Jobs = flags.jobs
	}

	cfg.Staged = flags.staged
	cfg.Output.Dir = flags.outDir
	cfg.Output.Extension = flags.ext

	return cfg
}

func runRender(cmd *cobra.Command, args []string, flags *renderFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliConfig(cmd, flags),
	})
	if err != nil {
		return errors.Join(errInvalidConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	opts := cfg.Options()
	logger.Debug("configuration loaded",
		logging.FieldPretty, opts.Pretty,
		logging.FieldSourceIndices, opts.SourceIndices,
		logging.FieldDetectLanguage, opts.DetectLanguage,
		logging.FieldStaged, cfg.Staged,
		logging.FieldJobs, cfg.Jobs,
	)

	if len(args) == 0 || (len(args) == 1 && args[0] == stdinPath) {
		return renderStream(ctx, logger, cfg, cmd.InOrStdin(), cmd.OutOrStdout())
	}

	if len(args) == 1 && cfg.Output.Dir == "" {
		if info, statErr := os.Stat(args[0]); statErr == nil && info.Mode().IsRegular() {
			return renderSingle(ctx, cfg, args[0], cmd.OutOrStdout())
		}
	}

	for _, arg := range args {
		if arg == stdinPath {
			return fmt.Errorf("%w: %q cannot be combined with other paths", errInvalidUsage, stdinPath)
		}
	}

	return renderBatch(ctx, cmd, logger, cfg, args, workDir, flags)
}

// renderStream compiles the whole of r and writes the HTML to w.
func renderStream(ctx context.Context, logger *log.Logger, cfg *config.Config, r io.Reader, w io.Writer) error {
	content, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	html, err := compileDocument(ctx, logger, cfg, string(content))
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, html); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func renderSingle(ctx context.Context, cfg *config.Config, path string, w io.Writer) error {
	content, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return err
	}

	ctx = logging.WithFields(ctx, logging.FieldPath, path)
	html, err := compileDocument(ctx, logging.FromContext(ctx), cfg, string(content))
	if err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}

	if _, err := io.WriteString(w, html); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func compileDocument(ctx context.Context, logger *log.Logger, cfg *config.Config, text string) (string, error) {
	if !cfg.Staged {
		return markup.Compile(text, cfg.Overrides(), block.WithLogger(logger)), nil
	}
	html, err := block.NewSession(text, cfg.Options(), block.WithLogger(logger)).Drain(ctx)
	if err != nil {
		return "", fmt.Errorf("render cancelled: %w", err)
	}
	return html, nil
}

func renderBatch(
	ctx context.Context,
	cmd *cobra.Command,
	logger *log.Logger,
	cfg *config.Config,
	paths []string,
	workDir string,
	flags *renderFlags,
) error {
	batch := runner.New(logger)

	runOpts := runner.Options{
		Paths:        paths,
		WorkingDir:   workDir,
		Extensions:   cfg.Extensions,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Staged:       cfg.Staged,
		Config:       cfg,
	}

	logger.Debug("starting render run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := batch.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("render run failed"), err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidUsage, err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:     cmd.ErrOrStderr(),
		Format:     format,
		Color:      colorMode,
		Verbose:    flags.verbose,
		Compact:    flags.compact,
		WorkingDir: workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	logger.Debug("render run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesRendered, result.Stats.FilesRendered,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
	)

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrRenderFailed
	}

	return nil
}
