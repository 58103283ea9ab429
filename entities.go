package uutreport

import (
	"fmt"
	"strings"
)

const (
	maxChartSeries   = 10
	maxAxisDataChars = 10_000

	// seriesDataType is the only data type the service accepts for chart
	// series
	seriesDataType = "XYG"

	// seriesSeparator delimits values within one axis of a chart series
	seriesSeparator = ";"
)

// NumericMeasurement is a single recorded numeric comparison or logged value
type NumericMeasurement struct {
	CompOp    string     `json:"compOp"`
	Name      string     `json:"name,omitempty"`
	Status    MeasStatus `json:"status"`
	Unit      string     `json:"unit,omitempty"`
	Value     float64    `json:"value"`
	HighLimit *float64   `json:"highLimit,omitempty"`
	LowLimit  *float64   `json:"lowLimit,omitempty"`
}

// StringMeasurement is a single recorded string comparison or logged value
type StringMeasurement struct {
	CompOp string     `json:"compOp"`
	Name   string     `json:"name,omitempty"`
	Status MeasStatus `json:"status"`
	Value  string     `json:"value"`
	Limit  string     `json:"limit,omitempty"`
}

// BooleanMeasurement is a single recorded pass/fail result
type BooleanMeasurement struct {
	Name   string     `json:"name,omitempty"`
	Status MeasStatus `json:"status"`
}

// Chart holds up to ten named data series attached to a step
type Chart struct {
	ChartType ChartType     `json:"chartType"`
	Label     string        `json:"label"`
	XLabel    string        `json:"xLabel"`
	XUnit     string        `json:"xUnit,omitempty"`
	YLabel    string        `json:"yLabel"`
	YUnit     string        `json:"yUnit,omitempty"`
	Series    []ChartSeries `json:"series,omitempty"`
}

// ChartSeries is one named pair of delimiter-separated value sequences
type ChartSeries struct {
	DataType string `json:"dataType"`
	Name     string `json:"name"`
	XData    string `json:"xdata"`
	YData    string `json:"ydata"`
}

// AddSeries appends a data series to the chart. Both xdata and ydata are
// semicolon-separated value lists; they must hold the same number of
// elements and each is bounded at 10 000 characters. A chart holds at most
// ten series.
func (c *Chart) AddSeries(name, xdata, ydata string) error {
	if len(c.Series) >= maxChartSeries {
		return fmt.Errorf("%w: a chart holds at most %d series", ErrCapacityExceeded, maxChartSeries)
	}
	if err := checkLen("series name", name, 1, 100); err != nil {
		return err
	}
	if len(strings.Split(xdata, seriesSeparator)) != len(strings.Split(ydata, seriesSeparator)) {
		return &ValidationError{Field: "series data", Reason: "xdata and ydata must have the same number of elements"}
	}
	if len(xdata) > maxAxisDataChars || len(ydata) > maxAxisDataChars {
		return &ValidationError{
			Field:  "series data",
			Reason: fmt.Sprintf("xdata and ydata must be at most %d characters each", maxAxisDataChars),
		}
	}

	c.Series = append(c.Series, ChartSeries{
		DataType: seriesDataType,
		Name:     name,
		XData:    xdata,
		YData:    ydata,
	})

	return nil
}

// Attachment is a named, base64 encoded blob attached to a step
type Attachment struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Data        string `json:"data"`
}

// MiscInfo is one free-form description/value entry on the report
type MiscInfo struct {
	Description string `json:"description"`
	Typedef     string `json:"typedef,omitempty"`
	Text        string `json:"text,omitempty"`
	Numeric     *int   `json:"numeric,omitempty"`
}

// SubUnit identifies a physical sub-unit assembled into the UUT
type SubUnit struct {
	PartType string `json:"partType"`
	PN       string `json:"pn"`
	Rev      string `json:"rev"`
	SN       string `json:"sn"`
}

// Asset references a piece of test equipment used during the run
type Asset struct {
	AssetSN    string `json:"assetSN"`
	UsageCount int    `json:"usageCount"`
}

// SequenceCall describes the sequence file behind a sequence-call step
type SequenceCall struct {
	Path    string `json:"path"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

func (sc *SequenceCall) validate() error {
	if err := checkLen("sequence path", sc.Path, 1, 500); err != nil {
		return err
	}
	if err := checkLen("sequence name", sc.Name, 1, 200); err != nil {
		return err
	}

	return checkLen("sequence version", sc.Version, 1, 30)
}

// UUT is the header data of a report: operator, batch and fixture details
// and the total execution time.
type UUT struct {
	ExecTime        *float64 `json:"execTime,omitempty"`
	TestSocketIndex *int     `json:"testSocketIndex,omitempty"`
	BatchSN         string   `json:"batchSN,omitempty"`
	Comment         string   `json:"comment,omitempty"`
	ErrorCode       *int     `json:"errorCode,omitempty"`
	ErrorMessage    string   `json:"errorMessage,omitempty"`
	FixtureID       string   `json:"fixtureId,omitempty"`
	User            string   `json:"user"`
	BatchFailCount  *int     `json:"batchFailCount,omitempty"`
	BatchLoopIndex  *int     `json:"batchLoopIndex,omitempty"`
}
