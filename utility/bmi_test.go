package utility

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBMI_Normal(t *testing.T) {
	res, err := BMI(70, 1.75)
	require.NoError(t, err)
	assert.Equal(t, "22.86", res.Index)
	assert.Equal(t, BMINormal, res.Classification)
	assert.Equal(t, 70.0, res.Weight)
	assert.Equal(t, 1.75, res.Height)
}

func TestClassifyBMI_Boundaries(t *testing.T) {
	tests := []struct {
		index float64
		want  string
	}{
		{10, BMIUnderweight},
		{18.49999, BMIUnderweight},
		{18.5, BMINormal},
		{24.999, BMINormal},
		{25, BMIOverweight},
		{29.99, BMIOverweight},
		{30, BMIObese1},
		{35, BMIObese2},
		{39.999, BMIObese2},
		{40, BMIObese3},
		{95, BMIObese3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyBMI(tt.index), "index %v", tt.index)
	}
}

func TestBMI_IndexMatchesFormula(t *testing.T) {
	for _, w := range []float64{0.5, 12, 55.5, 80, 140, 999.9, 1000} {
		for _, h := range []float64{0.3, 1, 1.42, 1.8, 2.5, 3} {
			res, err := BMI(w, h)
			require.NoError(t, err)
			idx := w / (h * h)
			assert.Equal(t, fixed2(idx), res.Index)
			assert.Equal(t, ClassifyBMI(idx), res.Classification)
		}
	}
}

func TestBMI_Errors(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
		height float64
		kind   Kind
		field  string
	}{
		{"nan weight", math.NaN(), 1.7, KindMalformed, ""},
		{"inf height", 70, math.Inf(1), KindMalformed, ""},
		{"zero weight", 0, 1.7, KindOutOfDomain, "peso"},
		{"negative height", 70, -1.7, KindOutOfDomain, "altura"},
		{"zero height", 70, 0, KindOutOfDomain, "altura"},
		{"heavy", 1000.01, 1.7, KindOutOfDomain, "peso"},
		{"tall", 70, 3.01, KindOutOfDomain, "altura"},
		{"underflow", 70, 1e-200, KindOutOfDomain, "altura"},
		{"overflow", 1000, 1e-160, KindNonFinite, "imc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BMI(tt.weight, tt.height)
			require.Error(t, err)
			var ue *Error
			require.ErrorAs(t, err, &ue)
			assert.Equal(t, tt.kind, ue.Kind)
			assert.Equal(t, tt.field, ue.Field)
			assert.NotEmpty(t, ue.Message)
		})
	}
}

func TestBMI_DistinctMessages(t *testing.T) {
	inputs := [][2]float64{{math.NaN(), 1}, {-1, 1}, {1, -1}, {1001, 1}, {1, 4}}
	seen := map[string]bool{}
	for _, in := range inputs {
		_, err := BMI(in[0], in[1])
		require.Error(t, err)
		msg := err.(*Error).Message
		assert.False(t, seen[msg], "duplicate message %q", msg)
		seen[msg] = true
	}
}
