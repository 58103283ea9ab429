package uutreport

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	report := newTestReport(t)

	assert.Equal(t, reportType, report.Type)
	assert.NotEqual(t, uuid.Nil, report.ID)
	assert.Equal(t, "PN-1234", report.PN)
	assert.Equal(t, "SN-0001", report.SN)
	assert.Equal(t, UUTPassed, report.Result)
	assert.NotEmpty(t, report.Start)

	require.NotNil(t, report.Root)
	assert.True(t, report.Root.IsSequenceCall())
	assert.Equal(t, "Main Sequence", report.Root.Name)
	require.NotNil(t, report.Root.SeqCall)
	assert.Equal(t, "Main Sequence", report.Root.SeqCall.Path)
	assert.Equal(t, "1.0", report.Root.SeqCall.Version)

	require.NotNil(t, report.UUT)
	assert.Equal(t, "oper", report.UUT.User)
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Info)
		field  string
	}{
		{"empty part number", func(i *Info) { i.PartNumber = "" }, "part number"},
		{"long part number", func(i *Info) { i.PartNumber = strings.Repeat("x", 101) }, "part number"},
		{"empty serial number", func(i *Info) { i.SerialNumber = "" }, "serial number"},
		{"empty name", func(i *Info) { i.Name = "" }, "name"},
		{"long machine name", func(i *Info) { i.MachineName = strings.Repeat("x", 101) }, "machine name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Info{
				Name:         "Main Sequence",
				PartNumber:   "PN-1234",
				SerialNumber: "SN-0001",
				Revision:     "A",
				ProcessCode:  100,
				MachineName:  "station-01",
				Location:     "line-1",
				Purpose:      "production",
				Operator:     "oper",
			}
			tt.mutate(&info)

			_, err := New(info)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestReport_SetResult(t *testing.T) {
	report := newTestReport(t)

	require.NoError(t, report.SetResult(UUTTerminated))
	assert.Equal(t, UUTTerminated, report.Result)
	assert.Equal(t, StepTerminated, report.Root.Status)

	require.NoError(t, report.SetResult(UUTFailed))
	assert.Equal(t, StepFailed, report.Root.Status)

	err := report.SetResult(UUTStatus("X"))
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, UUTFailed, report.Result)
}

func TestReport_AddComment(t *testing.T) {
	report := newTestReport(t)

	got, err := report.AddComment("first")
	require.NoError(t, err)
	assert.Equal(t, "first", got)

	got, err = report.AddComment("second")
	require.NoError(t, err)
	assert.Equal(t, "first</br>second", got)
	assert.Equal(t, "first</br>second", report.UUT.Comment)
}

func TestReport_AddComment_Overflow(t *testing.T) {
	report := newTestReport(t)

	_, err := report.AddComment(strings.Repeat("x", maxComment))
	require.NoError(t, err)

	// the separator pushes the joined comment past the cap
	got, err := report.AddComment("y")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "comment", verr.Field)
	assert.Len(t, got, maxComment)
}

func TestReport_AddTestSequence(t *testing.T) {
	report := newTestReport(t)

	seq, err := report.AddTestSequence("PowerOn", "power_on.seq", "1.2")
	require.NoError(t, err)
	require.Len(t, report.Root.Steps, 1)
	assert.Same(t, seq, report.Root.Steps[0])
}

func TestReport_AddSubUnit_Validation(t *testing.T) {
	report := newTestReport(t)

	err := report.AddSubUnit("", "PN-1", "A", "SN-1")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "part type", verr.Field)

	// revision may be empty
	require.NoError(t, report.AddSubUnit("PCBA", "PN-1", "", "SN-1"))
}

func TestReport_AddAdditionalData(t *testing.T) {
	report := newTestReport(t)

	data, err := report.AddAdditionalData("test context")
	require.NoError(t, err)

	prop, err := data.AddProperty("temperature", PropertyNumber, "23.5", "")
	require.NoError(t, err)
	assert.Equal(t, "temperature", prop.Name)

	_, err = report.AddAdditionalData("")
	assert.Error(t, err)
}

func TestReport_Document_Sparse(t *testing.T) {
	report := newTestReport(t)

	_, err := report.Root.AddStep("voltage", TypeNumericLimit)
	require.NoError(t, err)

	data, err := report.Document()
	require.NoError(t, err)

	doc := string(data)
	assert.Contains(t, doc, `"stepType":"ET_NLT"`)
	assert.Contains(t, doc, `"result":"P"`)
	// zero-valued optional fields stay off the wire
	assert.NotContains(t, doc, "errorCode")
	assert.NotContains(t, doc, "numericMeas")
	assert.NotContains(t, doc, "miscInfos")
	assert.NotContains(t, doc, "subUnits")
}
