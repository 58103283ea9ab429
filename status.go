package uutreport

// UUTStatus is the overall outcome of a report. The report result and the
// root step status must always carry matching codes.
type UUTStatus string

const (
	// UUTPassed indicates the unit passed all tests
	UUTPassed UUTStatus = "P"

	// UUTFailed indicates at least one test failed
	UUTFailed UUTStatus = "F"

	// UUTError indicates the run aborted due to an error
	UUTError UUTStatus = "E"

	// UUTTerminated indicates the run was interrupted
	UUTTerminated UUTStatus = "T"
)

// StepStatus is the status code of a single step
type StepStatus string

const (
	StepPassed     StepStatus = "P"
	StepFailed     StepStatus = "F"
	StepDone       StepStatus = "D"
	StepError      StepStatus = "E"
	StepTerminated StepStatus = "T"
	StepSkipped    StepStatus = "S"
)

// MeasStatus is the status code of a single measurement
type MeasStatus string

const (
	MeasPassed  MeasStatus = "P"
	MeasFailed  MeasStatus = "F"
	MeasSkipped MeasStatus = "S"
)

// StepType identifies a step variant on the wire
type StepType string

const (
	// TypeSequenceCall is the only step type that owns child steps
	TypeSequenceCall StepType = "SequenceCall"

	// TypeNumericLimit holds at most one unnamed numeric measurement
	TypeNumericLimit StepType = "ET_NLT"

	// TypeNumericLimitMultiple holds 1-10 uniquely named numeric measurements
	TypeNumericLimitMultiple StepType = "ET_MNLT"

	// TypeStringValue holds at most one unnamed string measurement
	TypeStringValue StepType = "ET_SVT"

	// TypeStringValueMultiple holds 1-10 uniquely named string measurements
	TypeStringValueMultiple StepType = "ET_MSVT"

	// TypePassFail holds at most one unnamed boolean measurement
	TypePassFail StepType = "ET_PFT"

	// TypePassFailMultiple holds 1-10 uniquely named boolean measurements
	TypePassFailMultiple StepType = "ET_MPFT"

	// TypeChart carries a chart and no measurements
	TypeChart StepType = "Chart"

	// TypeAttachment carries an attachment and no measurements
	TypeAttachment StepType = "Attachment"
)

// Step group codes. Every step belongs to one of three groups.
const (
	GroupStartup = "S"
	GroupMain    = "M"
	GroupCleanup = "C"
)

// ChartType selects the axis scaling of a chart
type ChartType string

const (
	// ChartLine is a standard cartesian chart
	ChartLine ChartType = "LINE"
	// ChartLineLogXY uses logarithmic X and Y axes
	ChartLineLogXY ChartType = "LineLogXY"
	// ChartLineLogX uses a logarithmic X axis
	ChartLineLogX ChartType = "LineLogX"
	// ChartLineLogY uses a logarithmic Y axis
	ChartLineLogY ChartType = "LineLogY"
)

// PropertyType is the value type of an additional-data property
type PropertyType string

const (
	PropertyNumber PropertyType = "Number"
	PropertyString PropertyType = "String"
	PropertyBool   PropertyType = "Bool"
	PropertyObj    PropertyType = "Obj"
	PropertyArray  PropertyType = "Array"
)

// compOpLog marks measurements that were logged without a comparison
const compOpLog = "LOG"

func measStatus(passed bool) MeasStatus {
	if passed {
		return MeasPassed
	}

	return MeasFailed
}
