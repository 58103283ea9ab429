package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rom8726/uutreport"
)

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <report.json>",
		Short: "Print a summary of a report file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")

			report, err := readReport(args[0])
			if err != nil {
				return err
			}

			displayReport(cmd, report, verbose)

			return nil
		},
	}

	return cmd
}

func readReport(path string) (*uutreport.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report file: %w", err)
	}

	report, err := uutreport.Parse(data)
	if err != nil {
		return nil, err
	}

	return report, nil
}

func displayReport(cmd *cobra.Command, report *uutreport.Report, verbose bool) {
	out := cmd.OutOrStdout()

	_, _ = fmt.Fprintln(out, "UUT REPORT")
	_, _ = fmt.Fprintln(out, strings.Repeat("-", 60))
	_, _ = fmt.Fprintf(out, "Sequence:     %s\n", report.Root.Name)
	_, _ = fmt.Fprintf(out, "Part number:  %s rev %s\n", report.PN, report.Rev)
	_, _ = fmt.Fprintf(out, "Serial:       %s\n", report.SN)
	_, _ = fmt.Fprintf(out, "Station:      %s (%s)\n", report.MachineName, report.Location)
	_, _ = fmt.Fprintf(out, "Result:       %s\n", resultLabel(report.Result))
	_, _ = fmt.Fprintf(out, "Started:      %s\n", report.Start)
	if report.UUT != nil && report.UUT.ExecTime != nil {
		_, _ = fmt.Fprintf(out, "Duration:     %.2f seconds\n", *report.UUT.ExecTime)
	}
	_, _ = fmt.Fprintln(out)

	for _, step := range report.Root.Steps {
		printStep(out, step, 0, verbose)
	}
}

func printStep(out io.Writer, step *uutreport.Step, depth int, verbose bool) {
	indent := strings.Repeat("  ", depth)
	_, _ = fmt.Fprintf(out, "%s[%s] %s (%s)\n", indent, step.Status, step.Name, step.Type)

	if verbose {
		for _, meas := range step.NumericMeas {
			_, _ = fmt.Fprintf(out, "%s    %s = %v %s [%s]\n", indent, measLabel(meas.Name), meas.Value, meas.Unit, meas.Status)
		}
		for _, meas := range step.StringMeas {
			_, _ = fmt.Fprintf(out, "%s    %s = %q [%s]\n", indent, measLabel(meas.Name), meas.Value, meas.Status)
		}
		for _, meas := range step.BooleanMeas {
			_, _ = fmt.Fprintf(out, "%s    %s [%s]\n", indent, measLabel(meas.Name), meas.Status)
		}
	}

	for _, child := range step.Steps {
		printStep(out, child, depth+1, verbose)
	}
}

func measLabel(name string) string {
	if name == "" {
		return "measurement"
	}

	return name
}

func resultLabel(result uutreport.UUTStatus) string {
	switch result {
	case uutreport.UUTPassed:
		return "PASSED"
	case uutreport.UUTFailed:
		return "FAILED"
	case uutreport.UUTError:
		return "ERROR"
	case uutreport.UUTTerminated:
		return "TERMINATED"
	default:
		return string(result)
	}
}
