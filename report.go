package uutreport

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// reportType is the wire identifier of a UUT test report
const reportType = "T"

// maxComment bounds the accumulated UUT comment field
const maxComment = 5000

// commentSeparator joins consecutive comments. The service renders the
// comment field as HTML.
const commentSeparator = "</br>"

// startLayout formats report and step timestamps: local time with zone
// offset, second precision.
const startLayout = "2006-01-02T15:04:05-07:00"

// Report is a complete UUT test report: unit identification, test
// environment, the root of the step tree and the report-level side
// collections. Build it with New, grow the tree through the step append
// operations and read it out once with Document.
//
// The report result and the root step status always carry matching codes:
// a failing measurement anywhere in the tree forces both to FAILED, and
// SetResult assigns both together.
type Report struct {
	Type        string     `json:"type"`
	ID          uuid.UUID  `json:"id"`
	PN          string     `json:"pn"`
	SN          string     `json:"sn"`
	Rev         string     `json:"rev"`
	ProductName string     `json:"productName,omitempty"`
	ProcessCode int        `json:"processCode"`
	ProcessName string     `json:"processName,omitempty"`
	Result      UUTStatus  `json:"result"`
	MachineName string     `json:"machineName"`
	Location    string     `json:"location"`
	Purpose     string     `json:"purpose"`
	Start       string     `json:"start"`
	StartUTC    string     `json:"startUTC,omitempty"`
	Root        *Step      `json:"root"`
	UUT         *UUT       `json:"uut"`
	MiscInfos   []MiscInfo `json:"miscInfos,omitempty"`
	SubUnits    []SubUnit  `json:"subUnits,omitempty"`

	AdditionalData []*AdditionalData `json:"additionalData,omitempty"`
	Assets         []Asset           `json:"assets,omitempty"`
}

// Info carries the identification and environment fields required to create
// a report
type Info struct {
	// Name names the test sequence; it becomes the root step name and the
	// root sequence path
	Name string

	PartNumber   string
	SerialNumber string
	Revision     string
	ProcessCode  int
	ProcessName  string

	MachineName string
	Location    string
	Purpose     string
	Operator    string
}

func (info *Info) validate() error {
	fields := []struct {
		name  string
		value string
		min   int
		max   int
	}{
		{"name", info.Name, 1, 100},
		{"part number", info.PartNumber, 1, 100},
		{"serial number", info.SerialNumber, 1, 100},
		{"revision", info.Revision, 1, 100},
		{"process name", info.ProcessName, 0, 100},
		{"machine name", info.MachineName, 1, 100},
		{"location", info.Location, 1, 100},
		{"purpose", info.Purpose, 1, 100},
		{"operator", info.Operator, 1, 100},
	}
	for _, f := range fields {
		if err := checkLen(f.name, f.value, f.min, f.max); err != nil {
			return err
		}
	}

	return nil
}

// New creates a report with a generated id, a PASSED result and a root
// sequence-call step in PASSED state linked back to the report.
func New(info Info) (*Report, error) {
	if err := info.validate(); err != nil {
		return nil, err
	}

	root := &Step{
		Group:  GroupMain,
		Type:   TypeSequenceCall,
		Name:   info.Name,
		Status: StepPassed,
		SeqCall: &SequenceCall{
			Path:    info.Name,
			Name:    info.Name,
			Version: "1.0",
		},
	}

	report := &Report{
		Type:        reportType,
		ID:          uuid.New(),
		PN:          info.PartNumber,
		SN:          info.SerialNumber,
		Rev:         info.Revision,
		ProcessCode: info.ProcessCode,
		ProcessName: info.ProcessName,
		Result:      UUTPassed,
		MachineName: info.MachineName,
		Location:    info.Location,
		Purpose:     info.Purpose,
		Start:       time.Now().Format(startLayout),
		Root:        root,
		UUT:         &UUT{User: info.Operator},
	}
	root.report = report

	return report, nil
}

// SetResult forces the report's terminal outcome. The root step status is
// assigned together with the result so that the two never diverge. This is
// the only way to set a non-FAILED terminal state, e.g. TERMINATED for an
// aborted run.
func (r *Report) SetResult(result UUTStatus) error {
	switch result {
	case UUTPassed, UUTFailed, UUTError, UUTTerminated:
	default:
		return fmt.Errorf("%w: unknown result code %q", ErrInvalidArgument, string(result))
	}

	r.Result = result
	r.Root.Status = StepStatus(result)

	return nil
}

// AddTestSequence appends a sequence-call step under the root
func (r *Report) AddTestSequence(name, path, version string) (*Step, error) {
	return r.Root.AddSequenceCall(name, path, version)
}

// AddComment appends a comment to the report's UUT header. Consecutive
// comments are joined with an HTML line break. Returns the accumulated
// comment.
func (r *Report) AddComment(comment string) (string, error) {
	joined := comment
	if r.UUT.Comment != "" {
		joined = r.UUT.Comment + commentSeparator + comment
	}
	if err := checkLen("comment", joined, 0, maxComment); err != nil {
		return r.UUT.Comment, err
	}
	r.UUT.Comment = joined

	return r.UUT.Comment, nil
}

// AddMiscInfo appends a misc-info entry with a text value
func (r *Report) AddMiscInfo(description, text string) error {
	if err := checkLen("description", description, 1, 100); err != nil {
		return err
	}
	if err := checkLen("text", text, 0, 100); err != nil {
		return err
	}
	r.MiscInfos = append(r.MiscInfos, MiscInfo{Description: description, Text: text})

	return nil
}

// AddMiscInfoNumeric appends a misc-info entry with a numeric value
func (r *Report) AddMiscInfoNumeric(description string, numeric int) error {
	if err := checkLen("description", description, 1, 100); err != nil {
		return err
	}
	r.MiscInfos = append(r.MiscInfos, MiscInfo{Description: description, Numeric: &numeric})

	return nil
}

// AddSubUnit appends a sub-unit entry. The part type, part number, revision
// and serial number must be known to the consuming service.
func (r *Report) AddSubUnit(partType, partNumber, revision, serialNumber string) error {
	fields := []struct {
		name  string
		value string
		min   int
		max   int
	}{
		{"part type", partType, 1, 50},
		{"part number", partNumber, 1, 100},
		{"revision", revision, 0, 100},
		{"serial number", serialNumber, 1, 100},
	}
	for _, f := range fields {
		if err := checkLen(f.name, f.value, f.min, f.max); err != nil {
			return err
		}
	}
	r.SubUnits = append(r.SubUnits, SubUnit{
		PartType: partType,
		PN:       partNumber,
		Rev:      revision,
		SN:       serialNumber,
	})

	return nil
}

// AddAsset appends an asset entry. The asset serial number must be known to
// the consuming service's asset manager.
func (r *Report) AddAsset(assetSN string, usageCount int) error {
	if err := checkLen("asset serial number", assetSN, 1, 100); err != nil {
		return err
	}
	r.Assets = append(r.Assets, Asset{AssetSN: assetSN, UsageCount: usageCount})

	return nil
}

// AddAdditionalData appends an additional-data bag to the report header
func (r *Report) AddAdditionalData(name string) (*AdditionalData, error) {
	data, err := newAdditionalData(name)
	if err != nil {
		return nil, err
	}
	r.AdditionalData = append(r.AdditionalData, data)

	return data, nil
}

func newAdditionalData(name string) (*AdditionalData, error) {
	if err := checkLen("additional data name", name, 1, 200); err != nil {
		return nil, err
	}

	return &AdditionalData{Name: name}, nil
}

// FindStepsByName searches the whole tree for steps with the given name.
// Descendant matches precede an ancestor's own match; a tree without
// matches yields an empty result.
func (r *Report) FindStepsByName(name string) []*Step {
	return r.Root.FindStepsByName(name)
}

// Document serializes the report into its wire form. Optional fields
// holding their zero value are omitted, as the consuming service expects a
// sparse document.
func (r *Report) Document() ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("serialize report: %w", err)
	}

	return data, nil
}

// Parse reconstructs a report from its wire form. Decoding is driven by
// each step's stepType discriminant, and the parent back-references of the
// tree are restored.
func Parse(data []byte) (*Report, error) {
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	if report.Root == nil {
		return nil, &ValidationError{Field: "root", Reason: "missing root step"}
	}
	if !report.Root.IsSequenceCall() {
		return nil, &ValidationError{
			Field:  "root",
			Reason: fmt.Sprintf("root step must be a sequence call, got %q", report.Root.Type),
		}
	}

	report.Root.report = &report
	if err := linkParents(report.Root); err != nil {
		return nil, err
	}

	return &report, nil
}

func linkParents(step *Step) error {
	if !step.IsSequenceCall() {
		if !validLeafType(step.Type) {
			return &ValidationError{
				Field:  "stepType",
				Reason: fmt.Sprintf("unknown step type %q", string(step.Type)),
			}
		}
		if len(step.Steps) > 0 {
			return &ValidationError{
				Field:  "steps",
				Reason: fmt.Sprintf("step type %s cannot own child steps", step.Type),
			}
		}
	}
	for _, child := range step.Steps {
		child.parent = step
		if err := linkParents(child); err != nil {
			return err
		}
	}

	return nil
}
