package utility

import (
	"math"
	"math/big"
	"strconv"
)

var (
	bigHundred = big.NewFloat(100)
	bigHalf    = big.NewFloat(0.5)
)

// fixed2 formats x with exactly two decimal places, the display precision
// used for every rounded value in API responses. Values exactly halfway
// between two cents round away from zero (1.125 -> "1.13", -1.125 ->
// "-1.13"); everything else is correctly rounded from the exact binary value,
// so 1.005 (really 1.00499...) gives "1.00". Zero never prints a sign.
func fixed2(x float64) string {
	if x == 0 {
		return "0.00"
	}
	if isFinite(x) {
		if cents, ok := halfCentTie(x); ok {
			return formatCents(cents)
		}
	}
	return strconv.FormatFloat(x, 'f', 2, 64)
}

// halfCentTie reports whether x*100 lies exactly on n+0.5 and, if so, returns
// x*100 rounded away from zero. The product is computed exactly: 53 bits of
// mantissa times 7 bits fits well inside the 128 bit precision.
func halfCentTie(x float64) (*big.Int, bool) {
	scaled := new(big.Float).SetPrec(128).SetFloat64(x)
	scaled.Mul(scaled, bigHundred)

	whole, _ := scaled.Int(nil) // truncates toward zero
	frac := new(big.Float).SetPrec(128).Sub(scaled, new(big.Float).SetInt(whole))
	if frac.Abs(frac).Cmp(bigHalf) != 0 {
		return nil, false
	}
	if x < 0 {
		return whole.Sub(whole, big.NewInt(1)), true
	}
	return whole.Add(whole, big.NewInt(1)), true
}

// formatCents renders an integer number of hundredths as a decimal string.
func formatCents(cents *big.Int) string {
	sign := ""
	if cents.Sign() < 0 {
		sign = "-"
		cents = new(big.Int).Neg(cents)
	}
	digits := cents.String()
	for len(digits) < 3 {
		digits = "0" + digits
	}
	return sign + digits[:len(digits)-2] + "." + digits[len(digits)-2:]
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
