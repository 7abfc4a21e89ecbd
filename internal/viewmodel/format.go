package viewmodel

import "strconv"

// FormatWeight renders a planned or logged weight; 0 is bodyweight.
func FormatWeight(weight float64) string {
	if weight == 0 {
		return "bodyweight"
	}
	return strconv.FormatFloat(weight, 'f', -1, 64) + " kg"
}
