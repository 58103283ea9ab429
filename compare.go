package uutreport

import (
	"cmp"
	"fmt"
	"strings"
)

// CompareBinary compares a value against a single limit. It works over
// numbers and strings; strings are compared lexicographically.
func CompareBinary[T cmp.Ordered](value, limit T, op BinaryCompOp) (bool, error) {
	switch op {
	case BinaryEQ:
		return value == limit, nil
	case BinaryNE:
		return value != limit, nil
	case BinaryGT:
		return value > limit, nil
	case BinaryGE:
		return value >= limit, nil
	case BinaryLT:
		return value < limit, nil
	case BinaryLE:
		return value <= limit, nil
	default:
		return false, fmt.Errorf("%w: binary operator %q", ErrUnsupportedOperator, string(op))
	}
}

// CompareTernary compares a value against a low and a high limit using the
// given interval operator.
func CompareTernary(value, low, high float64, op TernaryCompOp) (bool, error) {
	switch op {
	case TernaryGTLT:
		// (low, high)
		return low < value && value < high, nil
	case TernaryGELE:
		// [low, high]
		return low <= value && value <= high, nil
	case TernaryGELT:
		// [low, high)
		return low <= value && value < high, nil
	case TernaryGTLE:
		// (low, high]
		return low < value && value <= high, nil
	case TernaryLTGT:
		// outside [low, high]
		return value < low || high < value, nil
	case TernaryLEGE:
		// outside (low, high)
		return value <= low || high <= value, nil
	case TernaryLEGT:
		// outside (low, high]
		return value <= low || high < value, nil
	case TernaryLTGE:
		// outside [low, high)
		return value < low || high <= value, nil
	default:
		return false, fmt.Errorf("%w: ternary operator %q", ErrUnsupportedOperator, string(op))
	}
}

// CompareCase compares two strings for equality, either exactly or after
// folding both operands to lower case.
func CompareCase(value, limit string, op StringCaseOp) (bool, error) {
	switch op {
	case CaseSensitive:
		return value == limit, nil
	case IgnoreCase:
		return strings.EqualFold(value, limit), nil
	default:
		return false, fmt.Errorf("%w: string case operator %q", ErrUnsupportedOperator, string(op))
	}
}
