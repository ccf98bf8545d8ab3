package main

import (
	"github.com/spf13/cobra"

	"lutforge/internal/effect"
)

func newLookCommand(ctx *commandContext) *cobra.Command {
	var (
		targetPath string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "look <look.json>",
		Short: "Compile a look-product document into oiiotool arguments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			look := effect.NewLookFile(args[0], effect.Options{
				TargetDir: targetPath,
				Logger:    ctx.logger(),
			})
			if err := look.Load(); err != nil {
				return err
			}
			return writeArgs(cmd.OutOrStdout(), look.OiiotoolArgs(), asJSON)
		},
	}

	cmd.Flags().StringVar(&targetPath, "target-path", "", "Render target whose stem names missing LUT files")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the argument vector as JSON")

	return cmd
}
