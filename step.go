package uutreport

import "fmt"

const maxMeasurements = 10

// Step is one node in the execution tree. The Type field discriminates the
// nine step kinds; only sequence-call steps own child steps, and only the
// measurement kinds accept measurements. Steps are created through the
// parent's append operations, never directly, so that the parent
// back-reference used for status propagation and forwarding is always set.
//
// Exported fields map 1:1 to the wire document. Mutate the tree through
// methods only; the tree is not safe for concurrent use.
type Step struct {
	ID           string     `json:"id,omitempty"`
	Group        string     `json:"group"`
	Type         StepType   `json:"stepType"`
	Name         string     `json:"name"`
	Start        string     `json:"start,omitempty"`
	Status       StepStatus `json:"status"`
	ErrorCode    *int       `json:"errorCode,omitempty"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
	TotTime      float64    `json:"totTime,omitempty"`

	// CausedSeqFailure and CausedUUTFailure attribute a sequence or report
	// failure to this step
	CausedSeqFailure *bool `json:"causedSeqFailure,omitempty"`
	CausedUUTFailure *bool `json:"causedUUTFailure,omitempty"`

	ReportText        string            `json:"reportText,omitempty"`
	AdditionalResults []*AdditionalData `json:"additionalResults,omitempty"`
	Chart             *Chart            `json:"chart,omitempty"`
	Attachment        *Attachment       `json:"attachment,omitempty"`

	// Steps and SeqCall are populated on sequence-call steps only
	Steps   []*Step       `json:"steps,omitempty"`
	SeqCall *SequenceCall `json:"seqCall,omitempty"`

	// Exactly one of the measurement lists is populated, matching Type
	NumericMeas []NumericMeasurement `json:"numericMeas,omitempty"`
	StringMeas  []StringMeasurement  `json:"stringMeas,omitempty"`
	BooleanMeas []BooleanMeasurement `json:"booleanMeas,omitempty"`

	// parent is a non-owning back-reference, nil for the root step.
	// report is set on the root step only.
	parent *Step
	report *Report
}

// IsSequenceCall reports whether the step can own child steps
func (s *Step) IsSequenceCall() bool {
	return s.Type == TypeSequenceCall
}

// AddSequenceCall appends a nested sequence-call step. Only sequence-call
// steps accept children.
func (s *Step) AddSequenceCall(name, path, version string) (*Step, error) {
	if !s.IsSequenceCall() {
		return nil, fmt.Errorf("%w: step type %s cannot own child steps", ErrInvalidArgument, s.Type)
	}

	seqCall := &SequenceCall{Path: path, Name: name, Version: version}
	if err := seqCall.validate(); err != nil {
		return nil, err
	}
	if err := checkLen("step name", name, 1, 100); err != nil {
		return nil, err
	}

	step := &Step{
		Group:   GroupMain,
		Type:    TypeSequenceCall,
		Name:    name,
		Status:  StepPassed,
		SeqCall: seqCall,
		parent:  s,
	}
	s.Steps = append(s.Steps, step)

	return step, nil
}

// AddStep appends a leaf step of the given kind under a sequence call
func (s *Step) AddStep(name string, typ StepType) (*Step, error) {
	if !s.IsSequenceCall() {
		return nil, fmt.Errorf("%w: step type %s cannot own child steps", ErrInvalidArgument, s.Type)
	}
	if typ == TypeSequenceCall {
		return nil, fmt.Errorf("%w: use AddSequenceCall for nested sequences", ErrInvalidArgument)
	}
	if !validLeafType(typ) {
		return nil, fmt.Errorf("%w: unknown step type %q", ErrInvalidArgument, string(typ))
	}
	if err := checkLen("step name", name, 1, 100); err != nil {
		return nil, err
	}

	step := &Step{
		Group:  GroupMain,
		Type:   typ,
		Name:   name,
		Status: StepPassed,
		parent: s,
	}
	s.Steps = append(s.Steps, step)

	return step, nil
}

func validLeafType(typ StepType) bool {
	switch typ {
	case TypeNumericLimit, TypeNumericLimitMultiple,
		TypeStringValue, TypeStringValueMultiple,
		TypePassFail, TypePassFailMultiple,
		TypeChart, TypeAttachment:
		return true
	default:
		return false
	}
}

// SetStatus assigns the step status. Assigning FAILED propagates upward:
// every ancestor is forced to FAILED, and once the root is reached the
// owning report's result is forced as well. Non-failing values only touch
// this step and never downgrade an already failed ancestor.
func (s *Step) SetStatus(status StepStatus) {
	s.Status = status
	if status != StepFailed {
		return
	}
	if s.parent != nil {
		s.parent.SetStatus(StepFailed)

		return
	}
	if s.report != nil {
		s.report.Result = UUTFailed
	}
}

// SetTotalTime records the elapsed execution time of the step in seconds
func (s *Step) SetTotalTime(seconds float64) {
	s.TotTime = seconds
}

// SetError records the error code and message of a failure during the step
func (s *Step) SetError(code int, message string) {
	s.ErrorCode = &code
	s.ErrorMessage = message
}

// measurement family helpers

func (s *Step) isSingleFamily() bool {
	switch s.Type {
	case TypeNumericLimit, TypeStringValue, TypePassFail:
		return true
	default:
		return false
	}
}

func (s *Step) isMultipleFamily() bool {
	switch s.Type {
	case TypeNumericLimitMultiple, TypeStringValueMultiple, TypePassFailMultiple:
		return true
	default:
		return false
	}
}

func (s *Step) measurementCount() int {
	return len(s.NumericMeas) + len(s.StringMeas) + len(s.BooleanMeas)
}

func (s *Step) measurementName(i int) string {
	switch {
	case i < len(s.NumericMeas):
		return s.NumericMeas[i].Name
	case i < len(s.StringMeas):
		return s.StringMeas[i].Name
	default:
		return s.BooleanMeas[i].Name
	}
}

// checkMeasurement enforces the insertion invariants of the step's
// measurement family before any mutation takes place. Single-family steps
// hold at most one unnamed measurement; multiple-family steps hold up to
// ten uniquely named ones. The empty name means "no name".
func (s *Step) checkMeasurement(name string) error {
	switch {
	case s.isSingleFamily():
		if s.measurementCount() > 0 {
			return fmt.Errorf("%w: only one measurement is allowed in a single limit step", ErrCapacityExceeded)
		}
		if name != "" {
			return fmt.Errorf("%w: a name must not be set for a single limit step", ErrInvalidArgument)
		}
	case s.isMultipleFamily():
		if s.measurementCount() >= maxMeasurements {
			return fmt.Errorf(
				"%w: at most %d measurements are allowed in a multiple limit step",
				ErrCapacityExceeded, maxMeasurements,
			)
		}
		if name == "" {
			return fmt.Errorf("%w: a name must be set for a multiple limit step", ErrInvalidArgument)
		}
		if err := checkLen("measurement name", name, 1, 100); err != nil {
			return err
		}
		for i := 0; i < s.measurementCount(); i++ {
			if s.measurementName(i) == name {
				return fmt.Errorf("%w: measurement %q already exists in the step", ErrDuplicateName, name)
			}
		}
	default:
		return fmt.Errorf("%w: step type %s does not hold measurements", ErrInvalidArgument, s.Type)
	}

	return nil
}

// numeric measurements

// CompareBinary compares a value against a single limit on an unnamed
// numeric-limit step, records the measurement and updates the step status.
// A failing comparison propagates FAILED up the tree.
func (s *Step) CompareBinary(value, limit float64, op BinaryCompOp, unit string) (bool, error) {
	return s.recordBinary("", value, limit, op, unit)
}

// CompareBinaryNamed is CompareBinary for multiple numeric-limit steps; the
// name must be unique within the step.
func (s *Step) CompareBinaryNamed(name string, value, limit float64, op BinaryCompOp, unit string) (bool, error) {
	return s.recordBinary(name, value, limit, op, unit)
}

func (s *Step) recordBinary(name string, value, limit float64, op BinaryCompOp, unit string) (bool, error) {
	if err := s.requireNumeric(); err != nil {
		return false, err
	}
	if err := s.checkMeasurement(name); err != nil {
		return false, err
	}
	if err := checkLen("unit", unit, 0, 20); err != nil {
		return false, err
	}

	passed, err := CompareBinary(value, limit, op)
	if err != nil {
		return false, err
	}

	status := measStatus(passed)
	s.NumericMeas = append(s.NumericMeas, NumericMeasurement{
		CompOp:   string(op),
		Name:     name,
		Status:   status,
		Unit:     unit,
		Value:    value,
		LowLimit: &limit,
	})
	s.SetStatus(StepStatus(status))

	return passed, nil
}

// CompareTernary compares a value against a low and a high limit on an
// unnamed numeric-limit step, records the measurement and updates the step
// status.
func (s *Step) CompareTernary(value, low, high float64, op TernaryCompOp, unit string) (bool, error) {
	return s.recordTernary("", value, low, high, op, unit)
}

// CompareTernaryNamed is CompareTernary for multiple numeric-limit steps
func (s *Step) CompareTernaryNamed(name string, value, low, high float64, op TernaryCompOp, unit string) (bool, error) {
	return s.recordTernary(name, value, low, high, op, unit)
}

func (s *Step) recordTernary(name string, value, low, high float64, op TernaryCompOp, unit string) (bool, error) {
	if err := s.requireNumeric(); err != nil {
		return false, err
	}
	if err := s.checkMeasurement(name); err != nil {
		return false, err
	}
	if err := checkLen("unit", unit, 0, 20); err != nil {
		return false, err
	}

	passed, err := CompareTernary(value, low, high, op)
	if err != nil {
		return false, err
	}

	status := measStatus(passed)
	s.NumericMeas = append(s.NumericMeas, NumericMeasurement{
		CompOp:    string(op),
		Name:      name,
		Status:    status,
		Unit:      unit,
		Value:     value,
		LowLimit:  &low,
		HighLimit: &high,
	})
	s.SetStatus(StepStatus(status))

	return passed, nil
}

// LogNumeric appends a passing numeric measurement without a comparison.
// The value is recorded, no limit is set and the step status is untouched.
func (s *Step) LogNumeric(value float64, unit string) error {
	return s.logNumeric("", value, unit)
}

// LogNumericNamed is LogNumeric for multiple numeric-limit steps
func (s *Step) LogNumericNamed(name string, value float64, unit string) error {
	return s.logNumeric(name, value, unit)
}

func (s *Step) logNumeric(name string, value float64, unit string) error {
	if err := s.requireNumeric(); err != nil {
		return err
	}
	if err := s.checkMeasurement(name); err != nil {
		return err
	}
	if err := checkLen("unit", unit, 0, 20); err != nil {
		return err
	}

	s.NumericMeas = append(s.NumericMeas, NumericMeasurement{
		CompOp: compOpLog,
		Name:   name,
		Status: MeasPassed,
		Unit:   unit,
		Value:  value,
	})

	return nil
}

func (s *Step) requireNumeric() error {
	if s.Type != TypeNumericLimit && s.Type != TypeNumericLimitMultiple {
		return fmt.Errorf("%w: step type %s does not take numeric measurements", ErrInvalidArgument, s.Type)
	}

	return nil
}

// string measurements

// CompareString compares a string value against a limit on an unnamed
// string-value step. Only EQ and NE are accepted: the service mishandles
// relational operators on strings, so they are rejected up front.
func (s *Step) CompareString(value, limit string, op BinaryCompOp) (bool, error) {
	return s.recordString("", value, limit, op)
}

// CompareStringNamed is CompareString for multiple string-value steps
func (s *Step) CompareStringNamed(name, value, limit string, op BinaryCompOp) (bool, error) {
	return s.recordString(name, value, limit, op)
}

func (s *Step) recordString(name, value, limit string, op BinaryCompOp) (bool, error) {
	if err := s.requireString(); err != nil {
		return false, err
	}
	switch op {
	case BinaryGT, BinaryGE, BinaryLT, BinaryLE:
		return false, fmt.Errorf("%w: operator %s is not supported for string steps", ErrUnsupportedOperator, op)
	}
	if err := s.checkMeasurement(name); err != nil {
		return false, err
	}
	if err := s.checkStringOperands(value, limit); err != nil {
		return false, err
	}

	passed, err := CompareBinary(value, limit, op)
	if err != nil {
		return false, err
	}

	status := measStatus(passed)
	s.StringMeas = append(s.StringMeas, StringMeasurement{
		CompOp: string(op),
		Name:   name,
		Status: status,
		Value:  value,
		Limit:  limit,
	})
	s.SetStatus(StepStatus(status))

	return passed, nil
}

// CompareCase compares a string value against a limit for equality, either
// exactly or ignoring case, on an unnamed string-value step.
func (s *Step) CompareCase(value, limit string, op StringCaseOp) (bool, error) {
	return s.recordCase("", value, limit, op)
}

// CompareCaseNamed is CompareCase for multiple string-value steps
func (s *Step) CompareCaseNamed(name, value, limit string, op StringCaseOp) (bool, error) {
	return s.recordCase(name, value, limit, op)
}

func (s *Step) recordCase(name, value, limit string, op StringCaseOp) (bool, error) {
	if err := s.requireString(); err != nil {
		return false, err
	}
	if err := s.checkMeasurement(name); err != nil {
		return false, err
	}
	if err := s.checkStringOperands(value, limit); err != nil {
		return false, err
	}

	passed, err := CompareCase(value, limit, op)
	if err != nil {
		return false, err
	}

	status := measStatus(passed)
	s.StringMeas = append(s.StringMeas, StringMeasurement{
		CompOp: string(op),
		Name:   name,
		Status: status,
		Value:  value,
		Limit:  limit,
	})
	s.SetStatus(StepStatus(status))

	return passed, nil
}

// LogString appends a passing string measurement without a comparison
func (s *Step) LogString(value string) error {
	return s.logString("", value)
}

// LogStringNamed is LogString for multiple string-value steps
func (s *Step) LogStringNamed(name, value string) error {
	return s.logString(name, value)
}

func (s *Step) logString(name, value string) error {
	if err := s.requireString(); err != nil {
		return err
	}
	if err := s.checkMeasurement(name); err != nil {
		return err
	}
	if err := checkLen("value", value, 0, 100); err != nil {
		return err
	}

	s.StringMeas = append(s.StringMeas, StringMeasurement{
		CompOp: compOpLog,
		Name:   name,
		Status: MeasPassed,
		Value:  value,
	})

	return nil
}

func (s *Step) requireString() error {
	if s.Type != TypeStringValue && s.Type != TypeStringValueMultiple {
		return fmt.Errorf("%w: step type %s does not take string measurements", ErrInvalidArgument, s.Type)
	}

	return nil
}

func (s *Step) checkStringOperands(value, limit string) error {
	if err := checkLen("value", value, 0, 100); err != nil {
		return err
	}

	return checkLen("limit", limit, 0, 100)
}

// boolean measurements

// AddResult records a pass/fail outcome on an unnamed pass/fail step and
// updates the step status. Returns the result unchanged.
func (s *Step) AddResult(result bool) (bool, error) {
	return s.recordResult("", result)
}

// AddResultNamed is AddResult for multiple pass/fail steps
func (s *Step) AddResultNamed(name string, result bool) (bool, error) {
	return s.recordResult(name, result)
}

func (s *Step) recordResult(name string, result bool) (bool, error) {
	if s.Type != TypePassFail && s.Type != TypePassFailMultiple {
		return false, fmt.Errorf("%w: step type %s does not take boolean measurements", ErrInvalidArgument, s.Type)
	}
	if err := s.checkMeasurement(name); err != nil {
		return false, err
	}

	status := measStatus(result)
	s.BooleanMeas = append(s.BooleanMeas, BooleanMeasurement{
		Name:   name,
		Status: status,
	})
	s.SetStatus(StepStatus(status))

	return result, nil
}

// chart and attachment

// AddChart attaches a chart to the step. A step holds at most one chart;
// call Chart.AddSeries to fill it.
func (s *Step) AddChart(chartType ChartType, label, xLabel, yLabel, xUnit, yUnit string) (*Chart, error) {
	if s.Chart != nil {
		return nil, fmt.Errorf("%w: the step already has a chart", ErrCapacityExceeded)
	}
	if err := checkLen("chart label", label, 1, 100); err != nil {
		return nil, err
	}
	if err := checkLen("x-axis label", xLabel, 1, 50); err != nil {
		return nil, err
	}
	if err := checkLen("y-axis label", yLabel, 1, 50); err != nil {
		return nil, err
	}
	if err := checkLen("x-axis unit", xUnit, 0, 20); err != nil {
		return nil, err
	}
	if err := checkLen("y-axis unit", yUnit, 0, 20); err != nil {
		return nil, err
	}

	s.Chart = &Chart{
		ChartType: chartType,
		Label:     label,
		XLabel:    xLabel,
		XUnit:     xUnit,
		YLabel:    yLabel,
		YUnit:     yUnit,
	}

	return s.Chart, nil
}

// AddAttachment attaches a named, base64 encoded blob to the step. A step
// holds at most one attachment.
func (s *Step) AddAttachment(name, contentType, data string) error {
	if s.Attachment != nil {
		return fmt.Errorf("%w: the step already has an attachment", ErrCapacityExceeded)
	}
	if err := checkLen("attachment name", name, 1, 100); err != nil {
		return err
	}
	if err := checkLen("content type", contentType, 1, 100); err != nil {
		return err
	}
	if err := checkLen("attachment data", data, 1, 0); err != nil {
		return err
	}

	s.Attachment = &Attachment{
		Name:        name,
		ContentType: contentType,
		Data:        data,
	}

	return nil
}

// AddAdditionalData attaches an additional-data bag to the step's own list
func (s *Step) AddAdditionalData(name string) (*AdditionalData, error) {
	data, err := newAdditionalData(name)
	if err != nil {
		return nil, err
	}
	s.AdditionalResults = append(s.AdditionalResults, data)

	return data, nil
}

// forwarding operations: comments, misc info, sub-units, assets and
// report-level additional data are owned by the report alone, so steps
// forward them up the parent chain.

// Owner returns the report owning this step's tree
func (s *Step) Owner() *Report {
	step := s
	for step.parent != nil {
		step = step.parent
	}

	return step.report
}

// AddComment forwards a comment to the owning report
func (s *Step) AddComment(comment string) (string, error) {
	return s.Owner().AddComment(comment)
}

// AddMiscInfo forwards a misc-info text entry to the owning report
func (s *Step) AddMiscInfo(description, text string) error {
	return s.Owner().AddMiscInfo(description, text)
}

// AddMiscInfoNumeric forwards a misc-info numeric entry to the owning report
func (s *Step) AddMiscInfoNumeric(description string, numeric int) error {
	return s.Owner().AddMiscInfoNumeric(description, numeric)
}

// AddSubUnit forwards a sub-unit entry to the owning report
func (s *Step) AddSubUnit(partType, partNumber, revision, serialNumber string) error {
	return s.Owner().AddSubUnit(partType, partNumber, revision, serialNumber)
}

// AddAsset forwards an asset entry to the owning report
func (s *Step) AddAsset(assetSN string, usageCount int) error {
	return s.Owner().AddAsset(assetSN, usageCount)
}

// AddAdditionalDataToReport attaches an additional-data bag to the owning
// report instead of the step itself
func (s *Step) AddAdditionalDataToReport(name string) (*AdditionalData, error) {
	return s.Owner().AddAdditionalData(name)
}

// FindStepsByName collects all steps named name in this subtree. Children
// are visited in insertion order before the node itself, so descendant
// matches precede an ancestor's own match.
func (s *Step) FindStepsByName(name string) []*Step {
	if s.IsSequenceCall() {
		var found []*Step
		for _, child := range s.Steps {
			found = append(found, child.FindStepsByName(name)...)
		}
		if s.Name == name {
			found = append(found, s)
		}

		return found
	}

	if s.Name == name {
		return []*Step{s}
	}

	return nil
}
