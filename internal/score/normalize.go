package score

// Normalize maps v linearly from [min, max] onto [0, 1] and clamps.
// A degenerate range returns the neutral 0.5.
func Normalize(v, min, max float64) float64 {
	if max == min {
		return 0.5
	}
	return clamp01((v - min) / (max - min))
}
