package utility

import (
	"slices"
	"strconv"
	"strings"
)

// MaxListLength is the largest number of tokens AnalyzeNumbers accepts.
const MaxListLength = 1000

// NumbersResult is the analysis of a list of numbers.
type NumbersResult struct {
	Original   []float64  `json:"numerosOriginais"`
	Ascending  []float64  `json:"ordenadoCrescente"`
	Descending []float64  `json:"ordenadoDecrescente"`
	Stats      Statistics `json:"estatisticas"`
}

// Statistics summarises the valid numbers of a list.
type Statistics struct {
	Count int     `json:"quantidade"`
	Sum   string  `json:"soma"`
	Mean  string  `json:"media"`
	Max   float64 `json:"maior"`
	Min   float64 `json:"menor"`
}

// SplitList splits a comma separated list into raw tokens. An empty string
// yields an empty, non-nil slice.
func SplitList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	return strings.Split(raw, ",")
}

// ParseNumber coerces a token into a finite float64. Surrounding whitespace is
// ignored and negative zero comes back as plain zero.
func ParseNumber(token string) (float64, bool) {
	s := strings.TrimSpace(token)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || !isFinite(f) {
		return 0, false
	}
	if f == 0 {
		f = 0
	}
	return f, true
}

// AnalyzeNumbers coerces tokens to numbers and reports both sort orders plus
// summary statistics. Blank tokens count as 0, so "4,,2," is [4 0 2 0];
// tokens that are not finite numbers are dropped silently. A nil tokens slice
// is rejected as "not a list".
func AnalyzeNumbers(tokens []string) (NumbersResult, error) {
	if tokens == nil {
		return NumbersResult{}, newError(KindMalformed, "lista", "A entrada deve ser uma lista de números.")
	}
	if len(tokens) > MaxListLength {
		return NumbersResult{}, newError(KindOutOfDomain, "lista", "A lista deve ter no máximo 1000 elementos.")
	}

	nums := make([]float64, 0, len(tokens))
	for _, t := range tokens {
		if strings.TrimSpace(t) == "" {
			nums = append(nums, 0)
			continue
		}
		if f, ok := ParseNumber(t); ok {
			nums = append(nums, f)
		}
	}
	if len(nums) == 0 {
		return NumbersResult{}, newError(KindMalformed, "lista", "Nenhum número válido fornecido.")
	}

	sum := 0.0
	for _, n := range nums {
		sum += n
	}
	if !isFinite(sum) {
		return NumbersResult{}, newError(KindNonFinite, "soma", "A soma dos números excede o limite numérico.")
	}

	asc := slices.Clone(nums)
	slices.Sort(asc)
	desc := slices.Clone(asc)
	slices.Reverse(desc)

	return NumbersResult{
		Original:   nums,
		Ascending:  asc,
		Descending: desc,
		Stats: Statistics{
			Count: len(nums),
			Sum:   fixed2(sum),
			Mean:  fixed2(sum / float64(len(nums))),
			Max:   asc[len(asc)-1],
			Min:   asc[0],
		},
	}, nil
}
