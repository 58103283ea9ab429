package uutreport

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RoundTrip(t *testing.T) {
	report := newTestReport(t)

	seq, err := report.AddTestSequence("PowerOn", "power_on.seq", "1.1")
	require.NoError(t, err)

	numeric, err := seq.AddStep("voltage", TypeNumericLimit)
	require.NoError(t, err)
	_, err = numeric.CompareTernary(3.3, 3.0, 3.6, TernaryGELE, "V")
	require.NoError(t, err)

	multi, err := seq.AddStep("rails", TypeNumericLimitMultiple)
	require.NoError(t, err)
	_, err = multi.CompareBinaryNamed("vcc", 5.01, 5.1, BinaryLE, "V")
	require.NoError(t, err)
	_, err = multi.CompareBinaryNamed("vdd", 1.8, 1.7, BinaryGE, "V")
	require.NoError(t, err)

	str, err := seq.AddStep("firmware", TypeStringValue)
	require.NoError(t, err)
	_, err = str.CompareString("v2.4.1", "v2.4.1", BinaryEQ)
	require.NoError(t, err)

	pf, err := seq.AddStep("selftest", TypePassFail)
	require.NoError(t, err)
	_, err = pf.AddResult(true)
	require.NoError(t, err)

	chartStep, err := seq.AddStep("sweep", TypeChart)
	require.NoError(t, err)
	chart, err := chartStep.AddChart(ChartLineLogX, "Gain over frequency", "f", "gain", "Hz", "dB")
	require.NoError(t, err)
	require.NoError(t, chart.AddSeries("run-1", "10;100;1000", "1.1;1.0;0.7"))

	attStep, err := seq.AddStep("console", TypeAttachment)
	require.NoError(t, err)
	require.NoError(t, attStep.AddAttachment("console.log", "text/plain", "aGVsbG8="))

	_, err = report.AddComment("round trip")
	require.NoError(t, err)
	require.NoError(t, report.AddMiscInfo("fixture", "F-7"))
	require.NoError(t, report.AddSubUnit("PCBA", "PN-99", "B", "SN-99"))

	data, err := report.Document()
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)

	if diff := cmp.Diff(report, parsed, cmpopts.IgnoreUnexported(Step{})); diff != "" {
		t.Errorf("report changed across the round trip (-want +got):\n%s", diff)
	}
}

func TestParse_RestoresTreeLinks(t *testing.T) {
	report := newTestReport(t)

	seq, err := report.AddTestSequence("seq", "seq.seq", "1.0")
	require.NoError(t, err)
	_, err = seq.AddStep("leaf", TypePassFail)
	require.NoError(t, err)

	data, err := report.Document()
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)

	// a failing measurement in the parsed tree must still reach the report
	leafs := parsed.FindStepsByName("leaf")
	require.Len(t, leafs, 1)
	assert.Same(t, parsed, leafs[0].Owner())

	_, err = leafs[0].AddResult(false)
	require.NoError(t, err)
	assert.Equal(t, UUTFailed, parsed.Result)
	assert.Equal(t, StepFailed, parsed.Root.Status)
}

func TestParse_MissingRoot(t *testing.T) {
	_, err := Parse([]byte(`{"type":"T","pn":"PN-1","sn":"SN-1"}`))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "root", verr.Field)
}

func TestParse_RootMustBeSequenceCall(t *testing.T) {
	_, err := Parse([]byte(`{"root":{"stepType":"ET_NLT","name":"leaf","group":"M","status":"P"}}`))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "root", verr.Field)
}

func TestParse_UnknownStepType(t *testing.T) {
	doc := `{
		"root": {
			"stepType": "SequenceCall", "name": "main", "group": "M", "status": "P",
			"steps": [
				{"stepType": "ET_BOGUS", "name": "leaf", "group": "M", "status": "P"}
			]
		}
	}`

	_, err := Parse([]byte(doc))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "stepType", verr.Field)
}

func TestParse_LeafWithChildren(t *testing.T) {
	doc := `{
		"root": {
			"stepType": "SequenceCall", "name": "main", "group": "M", "status": "P",
			"steps": [
				{
					"stepType": "ET_PFT", "name": "leaf", "group": "M", "status": "P",
					"steps": [
						{"stepType": "ET_PFT", "name": "nested", "group": "M", "status": "P"}
					]
				}
			]
		}
	}`

	_, err := Parse([]byte(doc))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "steps", verr.Field)
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`{not json`))
	assert.Error(t, err)
}
