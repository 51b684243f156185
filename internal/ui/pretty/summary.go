package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/yaklabco/blockmark/pkg/block"
	"github.com/yaklabco/blockmark/pkg/runner"
)

const (
	wordFile  = "file"
	wordFiles = "files"

	bytesPerKiB = 1024
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatBytes renders a byte count as B or KiB.
func FormatBytes(n int) string {
	if n < bytesPerKiB {
		return strconv.Itoa(n) + " B"
	}
	return fmt.Sprintf("%.1f KiB", float64(n)/bytesPerKiB)
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "Rendered 3 files (42 blocks, 12.3 KiB), 1 unchanged, 1 failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No files to render.") + "\n"
	}

	blocks := stats.Blocks.Total()
	head := fmt.Sprintf("Rendered %d %s", stats.FilesRendered, plural(stats.FilesRendered, wordFile, wordFiles))
	parts := []string{
		s.Success.Render(head) + s.Dim.Render(fmt.Sprintf(" (%d %s, %s)",
			blocks, plural(blocks, "block", "blocks"), FormatBytes(stats.BytesRendered))),
	}

	if stats.FilesUnchanged > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d unchanged", stats.FilesUnchanged)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatFileLine formats the outcome for one file.
func (s *Styles) FormatFileLine(outcome runner.FileOutcome, displayPath, displayOutput string) string {
	if outcome.Error != nil {
		return fmt.Sprintf("%s: %s\n",
			s.FilePath.Render(displayPath),
			s.Error.Render(fmt.Sprintf("error: %v", outcome.Error)),
		)
	}

	status := ""
	if !outcome.Written {
		status = s.Dim.Render(" (unchanged)")
	}
	return fmt.Sprintf("%s %s %s%s\n",
		s.FilePath.Render(displayPath),
		s.Arrow.Render("->"),
		s.Output.Render(displayOutput),
		status,
	)
}

// FormatBlockTable renders the per-kind block counts as a table. Kinds that
// never occurred are left out.
func (s *Styles) FormatBlockTable(stats block.Stats) string {
	rows := make([][]string, 0, len(block.Kinds()))
	for _, kind := range block.Kinds() {
		if n := stats[kind]; n > 0 {
			rows = append(rows, []string{s.Kind.Render(kind.String()), strconv.Itoa(n)})
		}
	}
	if len(rows) == 0 {
		return ""
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.TableBorder).
		Headers("BLOCK", "COUNT").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return s.TableHeader.Padding(0, 1)
			}
			if col == 1 {
				return style.Align(lipgloss.Right)
			}
			return style
		})

	return tbl.Render() + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")

	builder.WriteString("  Files discovered: " + s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")
	builder.WriteString("  Files written:    " + s.SummaryValue.Render(strconv.Itoa(stats.FilesWritten)) + "\n")
	if stats.FilesUnchanged > 0 {
		builder.WriteString("  Files unchanged:  " + s.Dim.Render(strconv.Itoa(stats.FilesUnchanged)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:     " + s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}
	builder.WriteString("  HTML size:        " + s.SummaryValue.Render(FormatBytes(stats.BytesRendered)) + "\n")

	if tbl := s.FormatBlockTable(stats.Blocks); tbl != "" {
		builder.WriteString("\n")
		builder.WriteString(tbl)
	}

	builder.WriteString("\n")
	if stats.FilesErrored > 0 {
		builder.WriteString(s.Failure.Render("Render failed"))
	} else {
		builder.WriteString(s.Success.Render("Render complete"))
	}
	builder.WriteString("\n")

	return builder.String()
}
