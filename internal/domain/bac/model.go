package bac

import "strings"

// Sex selects the Widmark distribution factor.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ParseSex normalizes user supplied biological sex values.
func ParseSex(raw string) (Sex, error) {
	switch Sex(strings.ToLower(strings.TrimSpace(raw))) {
	case SexMale:
		return SexMale, nil
	case SexFemale:
		return SexFemale, nil
	default:
		return "", newValidationError("biologicalSex", "Biological sex must be male or female")
	}
}

// IngredientDose is a single consumed liquid. Only volume and strength matter here.
type IngredientDose struct {
	VolumeMl float64 `json:"volumeInMl"`
	ABV      float64 `json:"abv"`
}

// Profile carries the physiological inputs of the Widmark estimate.
// Either field may be missing when the user has not completed their profile.
type Profile struct {
	Sex      *Sex     `json:"biologicalSex,omitempty"`
	WeightKg *float64 `json:"weightInKg,omitempty"`
}

// Complete reports whether both sex and a usable weight are present.
func (p Profile) Complete() bool {
	return p.Sex != nil && *p.Sex != "" && p.WeightKg != nil && *p.WeightKg != 0
}

// RiskLevel is the discrete advisory category for a BAC value.
type RiskLevel string

const (
	RiskSafe    RiskLevel = "safe"
	RiskCaution RiskLevel = "caution"
	RiskWarning RiskLevel = "warning"
	RiskDanger  RiskLevel = "danger"
)

// RiskLevels lists every tier from lowest to highest.
var RiskLevels = []RiskLevel{RiskSafe, RiskCaution, RiskWarning, RiskDanger}

// RiskTier pairs a level with its advisory and display color.
type RiskTier struct {
	Level   RiskLevel `json:"level"`
	Message string    `json:"message"`
	Color   string    `json:"color"`
}

// Summary is the composed BAC result shown next to a recipe.
type Summary struct {
	BAC             float64  `json:"bac"`
	BACPercent      string   `json:"bacPercent"`
	HoursUntilSober float64  `json:"hoursUntilSober"`
	Risk            RiskTier `json:"riskLevel"`
}
