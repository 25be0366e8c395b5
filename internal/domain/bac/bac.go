// Package bac estimates blood alcohol concentration for a single serving
// using the Widmark formula and maps the result onto advisory risk tiers.
//
// Every function in this file is pure and safe for concurrent use.
package bac

import (
	"fmt"
	"math"
)

const (
	// EthanolDensity is grams of ethanol per millilitre.
	EthanolDensity = 0.789
	// MetabolismRatePerHour is the BAC eliminated per hour.
	MetabolismRatePerHour = 0.015

	widmarkMale   = 0.68
	widmarkFemale = 0.55

	// soberEpsilon absorbs float residue when elapsed time lands on the sober point.
	soberEpsilon = 1e-12

	cautionThreshold = 0.02
	warningThreshold = 0.05
	dangerThreshold  = 0.08
)

var riskTiers = map[RiskLevel]RiskTier{
	RiskSafe:    {Level: RiskSafe, Message: "Minimal impairment expected", Color: "green"},
	RiskCaution: {Level: RiskCaution, Message: "Mild relaxation, slight impairment", Color: "yellow"},
	RiskWarning: {Level: RiskWarning, Message: "Impaired coordination and judgment", Color: "orange"},
	RiskDanger:  {Level: RiskDanger, Message: "Significant impairment - Do not drive", Color: "red"},
}

// ValidateDose checks a single dose.
func ValidateDose(d IngredientDose) error {
	switch {
	case math.IsNaN(d.VolumeMl) || d.VolumeMl <= 0 || math.IsInf(d.VolumeMl, 1):
		return newValidationError("volumeInMl", "Volume must be greater than 0")
	case math.IsNaN(d.ABV):
		return newValidationError("abv", "ABV must be a number")
	case d.ABV < 0:
		return newValidationError("abv", "ABV cannot be negative")
	case d.ABV > 1:
		return newValidationError("abv", "ABV cannot exceed 1")
	}
	return nil
}

// AggregateAlcoholGrams returns the ethanol mass of all doses in grams.
// Doses are validated up front so a single bad entry fails the whole call.
func AggregateAlcoholGrams(doses []IngredientDose) (float64, error) {
	for i, d := range doses {
		if err := ValidateDose(d); err != nil {
			vErr := err.(*ValidationError)
			return 0, newValidationError(fmt.Sprintf("ingredients[%d].%s", i, vErr.Field), vErr.Message)
		}
	}

	var grams float64
	for _, d := range doses {
		grams += d.VolumeMl * d.ABV * EthanolDensity
	}
	return grams, nil
}

// WidmarkFactor returns the body water distribution ratio for sex.
func WidmarkFactor(sex Sex) (float64, error) {
	switch sex {
	case SexMale:
		return widmarkMale, nil
	case SexFemale:
		return widmarkFemale, nil
	default:
		return 0, newValidationError("biologicalSex", "Biological sex must be male or female")
	}
}

// EstimateBAC computes the instantaneous BAC after consuming all doses at once.
// The result is rounded to four decimal places.
func EstimateBAC(doses []IngredientDose, sex Sex, weightKg float64) (float64, error) {
	bac, _, err := estimate(doses, sex, weightKg)
	return bac, err
}

// estimate returns the rounded BAC together with the ethanol grams it was derived from.
func estimate(doses []IngredientDose, sex Sex, weightKg float64) (bac, grams float64, err error) {
	if !(weightKg > 0) || math.IsInf(weightKg, 1) {
		return 0, 0, newValidationError("weightInKg", "Weight must be positive")
	}
	factor, err := WidmarkFactor(sex)
	if err != nil {
		return 0, 0, err
	}
	grams, err = AggregateAlcoholGrams(doses)
	if err != nil {
		return 0, 0, err
	}

	bac = grams / (factor * weightKg * 1000)
	return math.Round(bac*10000) / 10000, grams, nil
}

// ProjectBACAfterTime applies linear elimination and floors at zero.
func ProjectBACAfterTime(initialBAC, hoursElapsed float64) (float64, error) {
	if math.IsNaN(initialBAC) || initialBAC < 0 {
		return 0, newValidationError("bac", "Initial BAC cannot be negative")
	}
	if math.IsNaN(hoursElapsed) || hoursElapsed < 0 {
		return 0, newValidationError("hoursElapsed", "Hours elapsed cannot be negative")
	}
	remaining := initialBAC - MetabolismRatePerHour*hoursElapsed
	if remaining <= soberEpsilon {
		return 0, nil
	}
	return remaining, nil
}

// TimeUntilSober returns the hours needed to eliminate bac. Non-positive input is already sober.
func TimeUntilSober(bac float64) float64 {
	if bac <= 0 {
		return 0
	}
	return bac / MetabolismRatePerHour
}

// ClassifyRisk maps bac onto its tier. Lower bounds are inclusive.
func ClassifyRisk(bac float64) (RiskTier, error) {
	if math.IsNaN(bac) || bac < 0 {
		return RiskTier{}, newValidationError("bac", "BAC cannot be negative")
	}
	switch {
	case bac < cautionThreshold:
		return riskTiers[RiskSafe], nil
	case bac < warningThreshold:
		return riskTiers[RiskCaution], nil
	case bac < dangerThreshold:
		return riskTiers[RiskWarning], nil
	default:
		return riskTiers[RiskDanger], nil
	}
}

// Summarize composes estimate, classification and time to sober.
// ok is false when the profile lacks sex or weight; that is not an error.
func Summarize(doses []IngredientDose, profile Profile) (Summary, bool, error) {
	if !profile.Complete() {
		return Summary{}, false, nil
	}

	bac, err := EstimateBAC(doses, *profile.Sex, *profile.WeightKg)
	if err != nil {
		return Summary{}, false, err
	}
	risk, err := ClassifyRisk(bac)
	if err != nil {
		return Summary{}, false, err
	}

	return Summary{
		BAC:             bac,
		BACPercent:      FormatPercent(bac),
		HoursUntilSober: TimeUntilSober(bac),
		Risk:            risk,
	}, true, nil
}

// FormatPercent renders bac as a percentage with two decimals, e.g. 0.0142 -> "1.42".
func FormatPercent(bac float64) string {
	return fmt.Sprintf("%.2f", bac*100)
}
