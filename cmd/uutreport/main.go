// Command uutreport is a small workbench for UUT test report files: it
// prints a summary of a report, converts it to JUnit XML and uploads it to a
// WATS server.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
