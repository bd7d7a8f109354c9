package utils

import "errors"

var ErrImplausibleBody = errors.New("height/weight out of plausible range")

// BMI expects height in inches and weight in pounds, matching the units the
// goal form collects. The summary endpoint leaves BMI out entirely when this
// errors, so bounds reject rather than clamp.
func BMI(heightIn, weightLb float64) (float64, error) {
	if heightIn < 20 || heightIn > 100 || weightLb < 20 || weightLb > 1000 {
		return 0, ErrImplausibleBody
	}
	return 703 * weightLb / (heightIn * heightIn), nil
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	case bmi < 35.0:
		return "Obesity class I"
	case bmi < 40.0:
		return "Obesity class II"
	default:
		return "Obesity class III"
	}
}
