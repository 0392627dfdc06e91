package domain

// EvaluatePolynomial evaluates Σ coeffs[i]·x^i with Horner's scheme.
// An empty coefficient slice evaluates to zero.
func EvaluatePolynomial(coeffs []float64, x float64) float64 {
	result := 0.0
	for i := len(coeffs) - 1; i >= 0; i-- {
		result = result*x + coeffs[i]
	}
	return result
}
