package uutreport

import "fmt"

// BinaryCompOp compares a measured value against a single limit
type BinaryCompOp string

const (
	// BinaryEQ passes when value == limit
	BinaryEQ BinaryCompOp = "EQ"
	// BinaryNE passes when value != limit
	BinaryNE BinaryCompOp = "NE"
	// BinaryGT passes when value > limit
	BinaryGT BinaryCompOp = "GT"
	// BinaryGE passes when value >= limit
	BinaryGE BinaryCompOp = "GE"
	// BinaryLT passes when value < limit
	BinaryLT BinaryCompOp = "LT"
	// BinaryLE passes when value <= limit
	BinaryLE BinaryCompOp = "LE"
)

// Symbol returns the display glyph for the operator, e.g. GE -> "≥".
func (op BinaryCompOp) Symbol() (string, error) {
	switch op {
	case BinaryEQ:
		return "=", nil
	case BinaryNE:
		return "≠", nil
	case BinaryGT:
		return ">", nil
	case BinaryGE:
		return "≥", nil
	case BinaryLT:
		return "<", nil
	case BinaryLE:
		return "≤", nil
	default:
		return "", fmt.Errorf("%w: binary operator %q", ErrUnsupportedOperator, string(op))
	}
}

// TernaryCompOp compares a measured value against a low and a high limit.
// The first four operators accept values inside the interval, the last four
// accept values outside it.
type TernaryCompOp string

const (
	// TernaryGTLT passes when low < value < high
	TernaryGTLT TernaryCompOp = "GTLT"
	// TernaryGELE passes when low <= value <= high
	TernaryGELE TernaryCompOp = "GELE"
	// TernaryGELT passes when low <= value < high
	TernaryGELT TernaryCompOp = "GELT"
	// TernaryGTLE passes when low < value <= high
	TernaryGTLE TernaryCompOp = "GTLE"
	// TernaryLTGT passes when value < low or high < value
	TernaryLTGT TernaryCompOp = "LTGT"
	// TernaryLEGE passes when value <= low or high <= value
	TernaryLEGE TernaryCompOp = "LEGE"
	// TernaryLEGT passes when value <= low or high < value
	TernaryLEGT TernaryCompOp = "LEGT"
	// TernaryLTGE passes when value < low or high <= value
	TernaryLTGE TernaryCompOp = "LTGE"
)

// Symbols returns the display glyphs for both bounds of the operator,
// e.g. GTLE -> "<", "≤" as in low < value ≤ high.
func (op TernaryCompOp) Symbols() (string, string, error) {
	switch op {
	case TernaryGTLT:
		return "<", "<", nil
	case TernaryGELE:
		return "≤", "≤", nil
	case TernaryGELT:
		return "≤", "<", nil
	case TernaryGTLE:
		return "<", "≤", nil
	case TernaryLTGT:
		return ">", ">", nil
	case TernaryLEGE:
		return "≥", "≥", nil
	case TernaryLEGT:
		return "≥", ">", nil
	case TernaryLTGE:
		return ">", "≥", nil
	default:
		return "", "", fmt.Errorf("%w: ternary operator %q", ErrUnsupportedOperator, string(op))
	}
}

// StringCaseOp compares two strings for equality
type StringCaseOp string

const (
	// CaseSensitive requires an exact match
	CaseSensitive StringCaseOp = "CASESENSIT"
	// IgnoreCase matches after folding both operands to the same case
	IgnoreCase StringCaseOp = "IGNORECASE"
)
