package main

import (
	"fmt"
	"os"

	"github.com/ritzau/graf-editor/pkg/editor"
	"github.com/ritzau/graf-editor/pkg/output"
	"github.com/ritzau/graf-editor/pkg/replay"
	"github.com/spf13/cobra"
)

func replayCmd() *cobra.Command {
	var svgPath string

	cmd := &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Apply a recorded event script and print the resulting graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(cmd); err != nil {
				return err
			}

			script, err := replay.Load(args[0])
			if err != nil {
				return err
			}

			session := editor.NewSession(editor.LogNotifier{})
			result, err := replay.Apply(cmd.Context(), session, script)
			if err != nil {
				return err
			}

			output.PrintSummary(cmd.OutOrStdout(), session.Snapshot(), &result)

			if svgPath != "" {
				f, err := os.Create(svgPath)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", svgPath, err)
				}
				defer f.Close()
				if err := session.WriteSVG(f); err != nil {
					return fmt.Errorf("failed to write scene: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&svgPath, "svg", "", "Also write the resulting scene to this SVG file")
	return cmd
}
