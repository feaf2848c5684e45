package utility

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertTemperature_Known(t *testing.T) {
	tests := []struct {
		value    float64
		from, to string
		want     string
	}{
		{25, "C", "F", "77.00"},
		{25, "c", " k ", "298.15"},
		{212, "F", "C", "100.00"},
		{0, "K", "C", "-273.15"},
		{-459.67, "F", "C", "-273.15"},
		{-273.15, "C", "F", "-459.67"},
		{37, "C", "C", "37.00"},
		{1.125, "C", "C", "1.13"},
		{-1.125, "C", "C", "-1.13"},
		{0.125, "C", "C", "0.13"},
	}
	for _, tt := range tests {
		res, err := ConvertTemperature(tt.value, tt.from, tt.to)
		require.NoError(t, err, "%v %s->%s", tt.value, tt.from, tt.to)
		assert.Equal(t, tt.want, res.Converted)
		assert.Equal(t, tt.value, res.Original)
	}
}

func TestConvertTemperature_NormalisesScales(t *testing.T) {
	res, err := ConvertTemperature(10, " f", "k ")
	require.NoError(t, err)
	assert.Equal(t, Fahrenheit, res.From)
	assert.Equal(t, Kelvin, res.To)
}

func TestConvertTemperature_RoundTrip(t *testing.T) {
	scales := []string{"C", "F", "K"}
	for _, v := range []float64{0, 1.5, 36.6, 100, 451, 5000} {
		for _, a := range scales {
			for _, b := range scales {
				there, err := ConvertTemperature(v, a, b)
				require.NoError(t, err)
				mid, err := strconv.ParseFloat(there.Converted, 64)
				require.NoError(t, err)

				back, err := ConvertTemperature(mid, b, a)
				require.NoError(t, err)
				got, err := strconv.ParseFloat(back.Converted, 64)
				require.NoError(t, err)
				assert.InDelta(t, v, got, 0.01, "%v %s->%s->%s", v, a, b, a)
			}
		}
	}
}

func TestConvertTemperature_Errors(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		from, to string
		kind     Kind
		field    string
	}{
		{"nan", math.NaN(), "C", "F", KindMalformed, "valor"},
		{"inf", math.Inf(-1), "C", "F", KindMalformed, "valor"},
		{"missing from", 1, " ", "F", KindMissing, ""},
		{"missing to", 1, "C", "", KindMissing, ""},
		{"bad from", 1, "X", "F", KindOutOfDomain, "de"},
		{"bad to", 1, "C", "Celsius", KindOutOfDomain, "para"},
		{"negative kelvin", -1, "K", "C", KindOutOfDomain, "valor"},
		{"below zero C", -300, "C", "F", KindOutOfDomain, "valor"},
		{"below zero F", -500, "F", "C", KindOutOfDomain, "valor"},
		{"overflow", math.MaxFloat64, "K", "F", KindNonFinite, "valorConvertido"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ConvertTemperature(tt.value, tt.from, tt.to)
			var ue *Error
			require.ErrorAs(t, err, &ue)
			assert.Equal(t, tt.kind, ue.Kind)
			assert.Equal(t, tt.field, ue.Field)
		})
	}
}

func TestConvertTemperature_NegativeKelvinAndAbsoluteZeroDiffer(t *testing.T) {
	_, errK := ConvertTemperature(-1, "K", "C")
	_, errC := ConvertTemperature(-300, "C", "K")
	require.Error(t, errK)
	require.Error(t, errC)
	assert.NotEqual(t, errK.Error(), errC.Error())
}

func TestParseScale(t *testing.T) {
	s, ok := ParseScale(" k")
	assert.True(t, ok)
	assert.Equal(t, Kelvin, s)

	_, ok = ParseScale("R")
	assert.False(t, ok)
}
