package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/blockmark/internal/configloader"
	"github.com/yaklabco/blockmark/internal/ui/pretty"
	"github.com/yaklabco/blockmark/pkg/config"
)

func newConfigCommand() *cobra.Command {
	var showEnv bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long: `Print the configuration "blockmark render" would use in this directory,
as YAML, with the files it was loaded from listed in the header.

With --env, list the BLOCKMARK_* environment variables instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			colorMode, err := cmd.Flags().GetString("color")
			if err != nil {
				colorMode = "auto"
			}
			styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))

			if showEnv {
				return printEnvVars(cmd.OutOrStdout(), styles)
			}
			return printResolvedConfig(cmd, styles)
		},
	}

	cmd.Flags().BoolVar(&showEnv, "env", false, "list supported environment variables")

	return cmd
}

func printResolvedConfig(cmd *cobra.Command, styles *pretty.Styles) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

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
	})
	if err != nil {
		return errors.Join(errInvalidConfig, err)
	}

	header := config.DefaultTemplateHeader() + "\n#\n"
	if len(loadResult.LoadedFrom) == 0 {
		header += "# Loaded from: built-in defaults only"
	} else {
		header += "# Loaded from:"
		for _, path := range loadResult.LoadedFrom {
			header += "\n#   " + path
		}
	}

	content, err := loadResult.Config.ToYAMLWithHeader(header)
	if err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, warning := range loadResult.Warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), styles.Warning.Render("warning: ")+warning)
	}
	if _, err := out.Write(content); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func printEnvVars(w io.Writer, styles *pretty.Styles) error {
	vars := configloader.ListEnvVars()
	names := make([]string, 0, len(vars))
	width := 0
	for name := range vars {
		names = append(names, name)
		width = max(width, len(name))
	}
	slices.Sort(names)

	var sb strings.Builder
	sb.WriteString(styles.Heading.Render("Environment variables:"))
	sb.WriteString("\n")
	for _, name := range names {
		sb.WriteString("  ")
		sb.WriteString(styles.Flag.Render(rpad(name, width)))
		sb.WriteString("  ")
		sb.WriteString(vars[name])
		sb.WriteString("\n")
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
