package uutreport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareBinary_Numbers(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		limit float64
		op    BinaryCompOp
		want  bool
	}{
		{"EQ equal", 1.5, 1.5, BinaryEQ, true},
		{"EQ not equal", 1.5, 2.5, BinaryEQ, false},
		{"NE not equal", 1.5, 2.5, BinaryNE, true},
		{"NE equal", 1.5, 1.5, BinaryNE, false},
		{"GT above", 2.0, 1.0, BinaryGT, true},
		{"GT at limit", 1.0, 1.0, BinaryGT, false},
		{"GE at limit", 1.0, 1.0, BinaryGE, true},
		{"GE below", 0.5, 1.0, BinaryGE, false},
		{"LT below", 1.2, 1.5, BinaryLT, true},
		{"LT at limit", 1.5, 1.5, BinaryLT, false},
		{"LE at limit", 1.5, 1.5, BinaryLE, true},
		{"LE above", 2.0, 1.5, BinaryLE, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompareBinary(tt.value, tt.limit, tt.op)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompareBinary_Strings(t *testing.T) {
	tests := []struct {
		name  string
		value string
		limit string
		op    BinaryCompOp
		want  bool
	}{
		{"EQ equal", "a", "a", BinaryEQ, true},
		{"EQ case differs", "a", "A", BinaryEQ, false},
		{"NE", "a", "b", BinaryNE, true},
		{"GT lexicographic", "b", "a", BinaryGT, true},
		{"LT lexicographic", "a", "b", BinaryLT, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompareBinary(tt.value, tt.limit, tt.op)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompareBinary_UnsupportedOperator(t *testing.T) {
	_, err := CompareBinary(1.0, 2.0, BinaryCompOp("BOGUS"))
	assert.ErrorIs(t, err, ErrUnsupportedOperator)
}

func TestCompareTernary(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		low   float64
		high  float64
		op    TernaryCompOp
		want  bool
	}{
		{"GTLT inside", 5, 1, 10, TernaryGTLT, true},
		{"GTLT at low bound", 1, 1, 10, TernaryGTLT, false},
		{"GTLT at high bound", 10, 1, 10, TernaryGTLT, false},
		{"GELE at low bound", 1, 1, 10, TernaryGELE, true},
		{"GELE at high bound", 10, 1, 10, TernaryGELE, true},
		{"GELE outside", 11, 1, 10, TernaryGELE, false},
		{"GELT at low bound", 1, 1, 10, TernaryGELT, true},
		{"GELT at high bound", 10, 1, 10, TernaryGELT, false},
		{"GTLE at high bound", 10, 1, 10, TernaryGTLE, true},
		{"GTLE at low bound", 1, 1, 10, TernaryGTLE, false},
		{"LTGT below", 0, 1, 10, TernaryLTGT, true},
		{"LTGT at low bound", 1, 1, 10, TernaryLTGT, false},
		{"LTGT inside", 5, 1, 10, TernaryLTGT, false},
		{"LTGT above", 11, 1, 10, TernaryLTGT, true},
		{"LEGE at low bound", 1, 1, 10, TernaryLEGE, true},
		{"LEGE at high bound", 10, 1, 10, TernaryLEGE, true},
		{"LEGE inside", 5, 1, 10, TernaryLEGE, false},
		{"LEGT at low bound", 1, 1, 10, TernaryLEGT, true},
		{"LEGT at high bound", 10, 1, 10, TernaryLEGT, false},
		{"LEGT above", 11, 1, 10, TernaryLEGT, true},
		{"LTGE at low bound", 1, 1, 10, TernaryLTGE, false},
		{"LTGE at high bound", 10, 1, 10, TernaryLTGE, true},
		{"LTGE below", 0, 1, 10, TernaryLTGE, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompareTernary(tt.value, tt.low, tt.high, tt.op)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompareTernary_UnsupportedOperator(t *testing.T) {
	_, err := CompareTernary(5, 1, 10, TernaryCompOp("BOGUS"))
	assert.ErrorIs(t, err, ErrUnsupportedOperator)
}

func TestCompareCase(t *testing.T) {
	tests := []struct {
		name  string
		value string
		limit string
		op    StringCaseOp
		want  bool
	}{
		{"sensitive equal", "hello", "hello", CaseSensitive, true},
		{"sensitive case differs", "a", "A", CaseSensitive, false},
		{"ignorecase case differs", "a", "A", IgnoreCase, true},
		{"ignorecase different strings", "a", "b", IgnoreCase, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompareCase(tt.value, tt.limit, tt.op)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompareCase_UnsupportedOperator(t *testing.T) {
	_, err := CompareCase("a", "a", StringCaseOp("BOGUS"))
	assert.ErrorIs(t, err, ErrUnsupportedOperator)
}

func TestBinaryCompOp_Symbol(t *testing.T) {
	tests := []struct {
		op   BinaryCompOp
		want string
	}{
		{BinaryEQ, "="},
		{BinaryNE, "≠"},
		{BinaryGT, ">"},
		{BinaryGE, "≥"},
		{BinaryLT, "<"},
		{BinaryLE, "≤"},
	}

	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			got, err := tt.op.Symbol()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := BinaryCompOp("BOGUS").Symbol()
	assert.ErrorIs(t, err, ErrUnsupportedOperator)
}

func TestTernaryCompOp_Symbols(t *testing.T) {
	low, high, err := TernaryGTLE.Symbols()
	require.NoError(t, err)
	assert.Equal(t, "<", low)
	assert.Equal(t, "≤", high)

	low, high, err = TernaryLEGE.Symbols()
	require.NoError(t, err)
	assert.Equal(t, "≥", low)
	assert.Equal(t, "≥", high)

	_, _, err = TernaryCompOp("BOGUS").Symbols()
	assert.ErrorIs(t, err, ErrUnsupportedOperator)
}
