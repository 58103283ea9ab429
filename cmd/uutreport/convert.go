package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rom8726/uutreport/exporters"
)

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <report.json>",
		Short: "Convert a report file to JUnit XML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := readReport(args[0])
			if err != nil {
				return err
			}

			output, _ := cmd.Flags().GetString("output")
			if output == "" {
				output = strings.TrimSuffix(args[0], ".json") + ".xml"
			}

			if err := exporters.SaveJUnitXML(report, output); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)

			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "output file (default: input with .xml extension)")

	return cmd
}
