package exporters

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"github.com/rom8726/uutreport"
)

// JUnitTestSuite represents JUnit XML test suite format
type JUnitTestSuite struct {
	XMLName   xml.Name        `xml:"testsuite"`
	Name      string          `xml:"name,attr"`
	Tests     int             `xml:"tests,attr"`
	Failures  int             `xml:"failures,attr"`
	Errors    int             `xml:"errors,attr"`
	Skipped   int             `xml:"skipped,attr"`
	Time      float64         `xml:"time,attr"`
	Timestamp string          `xml:"timestamp,attr"`
	TestCases []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase represents a single test case
type JUnitTestCase struct {
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Error     *JUnitError   `xml:"error,omitempty"`
	Skipped   *JUnitSkipped `xml:"skipped,omitempty"`
}

// JUnitFailure represents a test failure
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Content string `xml:",chardata"`
}

// JUnitError represents a test error
type JUnitError struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Content string `xml:",chardata"`
}

// JUnitSkipped marks a skipped test case
type JUnitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// GenerateJUnitXML converts a UUT report to JUnit XML. Every step directly
// under the root becomes one test case; nested measurement failures are
// summarized in the case content.
func GenerateJUnitXML(report *uutreport.Report) (string, error) {
	suite := JUnitTestSuite{
		Name:      report.Root.Name,
		Timestamp: report.Start,
		TestCases: make([]JUnitTestCase, 0, len(report.Root.Steps)),
	}
	if report.UUT != nil && report.UUT.ExecTime != nil {
		suite.Time = *report.UUT.ExecTime
	}

	classname := report.PN + "." + report.SN

	for _, step := range report.Root.Steps {
		testCase := JUnitTestCase{
			Name:      step.Name,
			Classname: classname,
			Time:      step.TotTime,
		}

		switch step.Status {
		case uutreport.StepFailed:
			suite.Failures++
			testCase.Failure = &JUnitFailure{
				Message: failureMessage(step),
				Type:    string(step.Type),
				Content: formatFailedMeasurements(step),
			}
		case uutreport.StepError, uutreport.StepTerminated:
			suite.Errors++
			testCase.Error = &JUnitError{
				Message: failureMessage(step),
				Type:    string(step.Status),
			}
		case uutreport.StepSkipped:
			suite.Skipped++
			testCase.Skipped = &JUnitSkipped{}
		}

		suite.Tests++
		suite.TestCases = append(suite.TestCases, testCase)
	}

	output, err := xml.MarshalIndent(suite, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JUnit XML: %w", err)
	}

	return xml.Header + string(output), nil
}

// SaveJUnitXML writes the converted report to a file
func SaveJUnitXML(report *uutreport.Report, filename string) error {
	content, err := GenerateJUnitXML(report)
	if err != nil {
		return err
	}

	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write JUnit XML file: %w", err)
	}

	return nil
}

func failureMessage(step *uutreport.Step) string {
	if step.ErrorMessage != "" {
		return step.ErrorMessage
	}

	return fmt.Sprintf("step %q finished with status %s", step.Name, step.Status)
}

// formatFailedMeasurements collects every failing measurement in the
// subtree into a readable block
func formatFailedMeasurements(step *uutreport.Step) string {
	var lines []string
	collectFailedMeasurements(step, "", &lines)

	return strings.Join(lines, "\n")
}

func collectFailedMeasurements(step *uutreport.Step, prefix string, lines *[]string) {
	path := step.Name
	if prefix != "" {
		path = prefix + "/" + step.Name
	}

	for _, meas := range step.NumericMeas {
		if meas.Status != uutreport.MeasFailed {
			continue
		}
		line := fmt.Sprintf("%s: value %v %s failed %s check", path, meas.Value, meas.Unit, meas.CompOp)
		*lines = append(*lines, line)
	}
	for _, meas := range step.StringMeas {
		if meas.Status != uutreport.MeasFailed {
			continue
		}
		*lines = append(*lines, fmt.Sprintf("%s: value %q failed %s check against %q", path, meas.Value, meas.CompOp, meas.Limit))
	}
	for _, meas := range step.BooleanMeas {
		if meas.Status != uutreport.MeasFailed {
			continue
		}
		name := meas.Name
		if name == "" {
			name = "result"
		}
		*lines = append(*lines, fmt.Sprintf("%s: %s is FAILED", path, name))
	}

	for _, child := range step.Steps {
		collectFailedMeasurements(child, path, lines)
	}
}
