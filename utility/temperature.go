package utility

import "strings"

// Scale is a temperature unit code.
type Scale string

const (
	Celsius    Scale = "C"
	Fahrenheit Scale = "F"
	Kelvin     Scale = "K"
)

// AbsoluteZero is 0 K expressed in degrees Celsius.
const AbsoluteZero = -273.15

// absoluteZeroTolerance absorbs float noise at the boundary, e.g. -459.67 °F
// converts to -273.15000000000003 °C.
const absoluteZeroTolerance = 1e-9

// TemperatureResult is a converted temperature.
type TemperatureResult struct {
	Original  float64 `json:"valorOriginal"`
	From      Scale   `json:"escalaOrigem"`
	Converted string  `json:"valorConvertido"`
	To        Scale   `json:"escalaDestino"`
}

// ParseScale normalises a scale code: surrounding whitespace is removed and
// case is ignored.
func ParseScale(s string) (Scale, bool) {
	switch Scale(strings.ToUpper(strings.TrimSpace(s))) {
	case Celsius:
		return Celsius, true
	case Fahrenheit:
		return Fahrenheit, true
	case Kelvin:
		return Kelvin, true
	}
	return "", false
}

func toCelsius(v float64, from Scale) float64 {
	switch from {
	case Fahrenheit:
		return (v - 32) * 5 / 9
	case Kelvin:
		return v + AbsoluteZero
	default:
		return v
	}
}

func fromCelsius(c float64, to Scale) float64 {
	switch to {
	case Fahrenheit:
		return c*9/5 + 32
	case Kelvin:
		return c - AbsoluteZero
	default:
		return c
	}
}

// ConvertTemperature converts value from one scale to another, pivoting
// through Celsius. Temperatures below absolute zero are rejected.
func ConvertTemperature(value float64, from, to string) (TemperatureResult, error) {
	if !isFinite(value) {
		return TemperatureResult{}, newError(KindMalformed, "valor", "O valor deve ser um número finito.")
	}
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		return TemperatureResult{}, newError(KindMissing, "", "Informe as escalas de origem (de) e destino (para).")
	}
	src, ok := ParseScale(from)
	if !ok {
		return TemperatureResult{}, newError(KindOutOfDomain, "de", "Escala de origem inválida. Use C, F ou K.")
	}
	dst, ok := ParseScale(to)
	if !ok {
		return TemperatureResult{}, newError(KindOutOfDomain, "para", "Escala de destino inválida. Use C, F ou K.")
	}
	if src == Kelvin && value < 0 {
		return TemperatureResult{}, newError(KindOutOfDomain, "valor", "Temperatura em Kelvin não pode ser negativa.")
	}

	c := toCelsius(value, src)
	if c < AbsoluteZero-absoluteZeroTolerance {
		return TemperatureResult{}, newError(KindOutOfDomain, "valor", "Temperatura abaixo do zero absoluto (-273.15 °C).")
	}
	out := fromCelsius(c, dst)
	if !isFinite(out) {
		return TemperatureResult{}, newError(KindNonFinite, "valorConvertido", "A conversão resultou em um valor não finito.")
	}
	return TemperatureResult{
		Original:  value,
		From:      src,
		Converted: fixed2(out),
		To:        dst,
	}, nil
}
