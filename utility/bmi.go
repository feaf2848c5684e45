package utility

const (
	// MaxWeight is the heaviest accepted weight, in kilograms.
	MaxWeight = 1000.0
	// MaxHeight is the tallest accepted height, in metres.
	MaxHeight = 3.0
)

// BMI classification labels, lightest band first.
const (
	BMIUnderweight = "Abaixo do peso"
	BMINormal      = "Peso normal"
	BMIOverweight  = "Sobrepeso"
	BMIObese1      = "Obesidade Grau I"
	BMIObese2      = "Obesidade Grau II"
	BMIObese3      = "Obesidade Grau III"
)

var bmiBands = []struct {
	below float64
	label string
}{
	{18.5, BMIUnderweight},
	{25, BMINormal},
	{30, BMIOverweight},
	{35, BMIObese1},
	{40, BMIObese2},
}

// BMIResult is the outcome of a body-mass-index calculation.
type BMIResult struct {
	Index          string  `json:"imc"`
	Classification string  `json:"classificacao"`
	Weight         float64 `json:"peso"`
	Height         float64 `json:"altura"`
}

// ClassifyBMI maps an index to its band. Each threshold belongs to the band
// above it, so exactly 18.5 is BMINormal.
func ClassifyBMI(index float64) string {
	for _, b := range bmiBands {
		if index < b.below {
			return b.label
		}
	}
	return BMIObese3
}

// BMI computes weight / height² for a weight in kilograms and a height in
// metres.
func BMI(weight, height float64) (BMIResult, error) {
	if !isFinite(weight) || !isFinite(height) {
		return BMIResult{}, newError(KindMalformed, "", "Peso e altura devem ser números finitos.")
	}
	if weight <= 0 {
		return BMIResult{}, newError(KindOutOfDomain, "peso", "O peso deve ser maior que zero.")
	}
	if height <= 0 {
		return BMIResult{}, newError(KindOutOfDomain, "altura", "A altura deve ser maior que zero.")
	}
	if weight > MaxWeight {
		return BMIResult{}, newError(KindOutOfDomain, "peso", "O peso deve ser no máximo 1000 kg.")
	}
	if height > MaxHeight {
		return BMIResult{}, newError(KindOutOfDomain, "altura", "A altura deve ser no máximo 3 m.")
	}
	squared := height * height
	if squared == 0 {
		// Reachable for subnormal heights whose square underflows.
		return BMIResult{}, newError(KindOutOfDomain, "altura", "A altura é pequena demais para o cálculo.")
	}
	index := weight / squared
	if !isFinite(index) {
		return BMIResult{}, newError(KindNonFinite, "imc", "O cálculo do IMC resultou em um valor não finito.")
	}
	return BMIResult{
		Index:          fixed2(index),
		Classification: ClassifyBMI(index),
		Weight:         weight,
		Height:         height,
	}, nil
}
