package vmath

import "math"

// Directions are the 8 compass steps, clockwise from north-west
// Index arithmetic (heading + delta) mod 8 rotates the heading
var Directions = [8][2]int{
	{-1, -1},
	{0, -1},
	{1, -1},
	{1, 0},
	{1, 1},
	{0, 1},
	{-1, 1},
	{-1, 0},
}

// Direction returns the step vector of a heading index, wrapping negatives
func Direction(heading int) (dx, dy int) {
	d := Directions[Mod(heading, 8)]
	return d[0], d[1]
}

// Mod is the floored modulo (result has the sign of m)
func Mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// ClampChannel clamps a color channel to [0, 255]
func ClampChannel(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// ClampChannelF clamps and rounds a float channel to [0, 255]
func ClampChannelF(v float64) uint8 {
	if v >= 255 {
		return 255
	}
	if v <= 0 {
		return 0
	}
	return uint8(math.RoundToEven(v))
}

// Round rounds half to even, matching the rounding used for partition sizes
func Round(v float64) int {
	return int(math.RoundToEven(v))
}

// CosSinDeg returns cos and sin of an angle in degrees
func CosSinDeg(deg float64) (float64, float64) {
	rad := deg * math.Pi / 180
	return math.Cos(rad), math.Sin(rad)
}
