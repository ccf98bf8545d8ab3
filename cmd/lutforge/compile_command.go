package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lutforge/internal/effect"
	"lutforge/internal/ociogen"
	"lutforge/internal/reposition"
)

func newCompileCommand(ctx *commandContext) *cobra.Command {
	var (
		targetDir   string
		contextName string
		destPath    string
		width       int
		height      int
		fit         string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "compile <effect.json>",
		Short: "Compile an effect document into oiiotool arguments",
		Long: `Compile loads a per-shot effect document, decodes its color and
reposition operators, and prints the oiiotool argument vector on stdout.

With --context a shot OCIO config is synthesized from the base config and the
color pipeline is applied through it; without, color operators are emitted as
inline --colorconvert / --ociofiletransform arguments.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			log := ctx.logger()

			compiler := effect.NewCompiler(args[0], effect.Options{
				TargetDir: targetDir,
				Logger:    log,
			})
			if err := compiler.Load(); err != nil {
				return err
			}

			if width == 0 {
				width = cfg.Output.Width
			}
			if height == 0 {
				height = cfg.Output.Height
			}
			if fit == "" {
				fit = cfg.Output.Fit
			}

			var out []string
			if contextName != "" {
				vars := make([]ociogen.Var, 0, len(cfg.Environment))
				for _, v := range cfg.Environment {
					vars = append(vars, ociogen.Var{Name: v.Name, Value: v.Value})
				}
				gen, err := ociogen.New(ociogen.Options{
					Context:      contextName,
					Family:       cfg.OCIO.Family,
					WorkingSpace: cfg.OCIO.WorkingSpace,
					Views:        cfg.OCIO.Views,
					Description:  cfg.OCIO.Description,
					ConfigPath:   cfg.OCIO.BaseConfig,
					StagingDir:   cfg.Paths.StagingDir,
					Vars:         vars,
					Logger:       log,
				}, compiler.ColorOperators()...)
				if err != nil {
					return err
				}
				written, err := gen.CreateConfig(destPath)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), "wrote", written)

				proc := &reposition.Processor{
					Operators: compiler.RepositionOperators(),
					DstWidth:  width,
					DstHeight: height,
					Fit:       fit,
				}
				out = append(gen.OiiotoolCmd(), proc.OiiotoolArgs()...)
			} else {
				reformat := &reposition.Processor{DstWidth: width, DstHeight: height, Fit: fit}
				out = append(compiler.OiiotoolArgs(), reformat.OiiotoolArgs()...)
			}

			return writeArgs(cmd.OutOrStdout(), out, asJSON)
		},
	}

	cmd.Flags().StringVar(&targetDir, "target-dir", "", "Directory that file references are rewritten into by basename")
	cmd.Flags().StringVar(&contextName, "context", "", "Shot context name; enables OCIO config synthesis")
	cmd.Flags().StringVar(&destPath, "dest", "", "Destination for the synthesized config (default: staging dir)")
	cmd.Flags().IntVar(&width, "width", 0, "Destination width for the reformat stage")
	cmd.Flags().IntVar(&height, "height", 0, "Destination height for the reformat stage")
	cmd.Flags().StringVar(&fit, "fit", "", "Fit mode: letterbox, width, or height")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the argument vector as JSON")

	return cmd
}
