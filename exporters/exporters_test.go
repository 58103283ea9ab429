package exporters

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rom8726/uutreport"
)

func newFinishedReport(t *testing.T) *uutreport.Report {
	t.Helper()

	report, err := uutreport.New(uutreport.Info{
		Name:         "Main Sequence",
		PartNumber:   "PN-1234",
		SerialNumber: "SN-0001",
		Revision:     "A",
		ProcessCode:  100,
		ProcessName:  "Final Test",
		MachineName:  "station-01",
		Location:     "line-1",
		Purpose:      "production",
		Operator:     "oper",
	})
	require.NoError(t, err)

	passing, err := report.AddTestSequence("passing", "passing.seq", "1.0")
	require.NoError(t, err)
	pf, err := passing.AddStep("selftest", uutreport.TypePassFail)
	require.NoError(t, err)
	_, err = pf.AddResult(true)
	require.NoError(t, err)
	passing.SetTotalTime(0.5)

	failing, err := report.AddTestSequence("failing", "failing.seq", "1.0")
	require.NoError(t, err)
	num, err := failing.AddStep("voltage", uutreport.TypeNumericLimit)
	require.NoError(t, err)
	_, err = num.CompareBinary(2.5, 3.0, uutreport.BinaryGE, "V")
	require.NoError(t, err)
	failing.SetTotalTime(1.25)

	execTime := 1.75
	report.UUT.ExecTime = &execTime

	return report
}

func TestPrometheusExporter_Record(t *testing.T) {
	exporter := NewPrometheusExporter("wats")
	report := newFinishedReport(t)

	exporter.Record(report)

	assert.Equal(t, 1.0, testutil.ToFloat64(
		exporter.reportsTotal.WithLabelValues("Final Test", "F"),
	))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		exporter.stepsTotal.WithLabelValues("SequenceCall", "F"),
	))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		exporter.stepsTotal.WithLabelValues("ET_NLT", "F"),
	))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		exporter.measurements.WithLabelValues("numeric", "F"),
	))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		exporter.measurements.WithLabelValues("boolean", "P"),
	))
}

func TestPrometheusExporter_RecordUpload(t *testing.T) {
	exporter := NewPrometheusExporter("wats")

	exporter.RecordUpload(true)
	exporter.RecordUpload(true)
	exporter.RecordUpload(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(exporter.uploadsTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(exporter.uploadsTotal.WithLabelValues("failure")))
}

func TestPrometheusExporter_Handler(t *testing.T) {
	exporter := NewPrometheusExporter("wats")
	exporter.RecordUpload(true)

	assert.NotNil(t, exporter.Handler())
	assert.NotNil(t, exporter.Registry())

	families, err := exporter.Registry().Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)
}

func TestGenerateJUnitXML(t *testing.T) {
	report := newFinishedReport(t)

	out, err := GenerateJUnitXML(report)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, `name="Main Sequence"`)
	assert.Contains(t, out, `tests="2"`)
	assert.Contains(t, out, `failures="1"`)
	assert.Contains(t, out, `classname="PN-1234.SN-0001"`)
	assert.Contains(t, out, `<failure`)
	assert.Contains(t, out, "GE check")
	assert.NotContains(t, out, "<error")
}

func TestGenerateJUnitXML_ErrorAndSkipped(t *testing.T) {
	report := newFinishedReport(t)

	errored, err := report.AddTestSequence("errored", "errored.seq", "1.0")
	require.NoError(t, err)
	errored.SetError(1, "fixture timeout")
	errored.SetStatus(uutreport.StepError)

	skipped, err := report.AddTestSequence("skipped", "skipped.seq", "1.0")
	require.NoError(t, err)
	skipped.SetStatus(uutreport.StepSkipped)

	out, err := GenerateJUnitXML(report)
	require.NoError(t, err)

	assert.Contains(t, out, `errors="1"`)
	assert.Contains(t, out, `skipped="1"`)
	assert.Contains(t, out, "fixture timeout")
	assert.Contains(t, out, "<skipped")
}

func TestSaveJUnitXML(t *testing.T) {
	report := newFinishedReport(t)
	path := t.TempDir() + "/report.xml"

	require.NoError(t, SaveJUnitXML(report, path))

	assert.FileExists(t, path)
}
