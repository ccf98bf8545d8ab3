package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"lutforge/internal/effect"
	"lutforge/internal/operator"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var targetDir string

	cmd := &cobra.Command{
		Use:   "inspect <effect.json>",
		Short: "Show the decoded operator stack of an effect document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			compiler := effect.NewCompiler(args[0], effect.Options{
				TargetDir: targetDir,
				Logger:    ctx.logger(),
			})
			if err := compiler.Load(); err != nil {
				return err
			}

			var rows [][]string
			for i, op := range compiler.ColorOperators() {
				rows = append(rows, []string{fmt.Sprint(i + 1), "color", operatorSummary(op)})
			}
			for i, op := range compiler.RepositionOperators() {
				rows = append(rows, []string{fmt.Sprint(i + 1), "reposition", operatorSummary(op)})
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "no recognized operators")
				return nil
			}
			renderOperatorTable(out, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&targetDir, "target-dir", "", "Directory that file references are rewritten into by basename")
	return cmd
}

// operatorSummary renders one operator as a short human-readable line.
func operatorSummary(op operator.Operator) string {
	switch typed := op.(type) {
	case operator.ColorSpace:
		return fmt.Sprintf("colorspace %s -> %s", typed.In, typed.Out)
	case operator.FileLUT:
		return fmt.Sprintf("lut %s (%s, %s)", typed.File, typed.Interpolation, typed.Direction)
	case operator.CDL:
		base := fmt.Sprintf("cdl slope=%v offset=%v power=%v sat=%v",
			typed.Slope, typed.Offset, typed.Power, typed.Saturation)
		if typed.File != "" {
			base += " file=" + typed.File
		}
		return base
	case operator.LookProduct:
		return fmt.Sprintf("look product (%d items, working space %s)", len(typed.Items), typed.WorkingSpace)
	case operator.Transform:
		return fmt.Sprintf("transform translate=%v rotate=%v scale=%v center=%v",
			typed.Translate, typed.Rotate, typed.Scale, typed.Center)
	case operator.Crop:
		return fmt.Sprintf("crop %v", typed.Box)
	case operator.Mirror:
		return fmt.Sprintf("mirror flip=%v flop=%v", typed.Flip, typed.Flop)
	case operator.CornerPin:
		return fmt.Sprintf("corner pin to=%v", typed.To)
	default:
		return fmt.Sprintf("%T", op)
	}
}

// renderOperatorTable draws a rounded table on terminals and plain
// tab-separated lines when output is piped.
func renderOperatorTable(w io.Writer, rows [][]string) {
	if !isTerminal(w) {
		for _, row := range rows {
			fmt.Fprintln(w, strings.Join(row, "\t"))
		}
		return
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "CATEGORY", "OPERATOR"})
	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		tw.AppendRow(r)
	}
	tw.Render()
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
