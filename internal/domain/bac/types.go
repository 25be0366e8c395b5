package bac

import (
	"context"
	"time"
)

// Config wires runtime knobs for the BAC service.
type Config struct {
	SummaryTTL time.Duration
}

// Store caches composed summaries and keeps per-tier assessment counters.
type Store interface {
	GetSummary(ctx context.Context, key string) (Summary, bool, error)
	SaveSummary(ctx context.Context, key string, summary Summary, ttl time.Duration) error
	IncrementTier(ctx context.Context, level RiskLevel) error
	TierCounts(ctx context.Context) (map[RiskLevel]int64, error)
}

// ProfileSource resolves the stored physiological profile of a user.
type ProfileSource interface {
	LoadProfile(ctx context.Context, userID int64) (Profile, error)
}

// Recorder observes classified assessments.
type Recorder interface {
	ObserveAssessment(level string)
}

// Ingredient mirrors a recipe ingredient; only volume and strength feed the estimate.
type Ingredient struct {
	Name     string  `json:"name" binding:"required"`
	VolumeMl float64 `json:"volumeInMl"`
	ABV      float64 `json:"abv"`
}

// ProfileInput is the optional profile carried by a request.
type ProfileInput struct {
	BiologicalSex *string  `json:"biologicalSex"`
	WeightKg      *float64 `json:"weightInKg"`
}

// DosesRequest carries a recipe ingredient list.
type DosesRequest struct {
	Ingredients []Ingredient `json:"ingredients" binding:"dive"`
}

// AlcoholResponse reports total ethanol mass.
type AlcoholResponse struct {
	AlcoholGrams float64 `json:"alcoholGrams"`
}

// EstimateRequest asks for an instantaneous BAC.
type EstimateRequest struct {
	Ingredients   []Ingredient `json:"ingredients" binding:"dive"`
	BiologicalSex string       `json:"biologicalSex" binding:"required"`
	WeightKg      float64      `json:"weightInKg"`
}

// EstimateResponse reports an instantaneous BAC.
type EstimateResponse struct {
	BAC          float64 `json:"bac"`
	BACPercent   string  `json:"bacPercent"`
	AlcoholGrams float64 `json:"alcoholGrams"`
}

// ProjectRequest asks for the BAC after hoursElapsed of elimination.
type ProjectRequest struct {
	BAC          float64 `json:"bac"`
	HoursElapsed float64 `json:"hoursElapsed"`
}

// ProjectResponse reports the projected BAC and its consequences.
type ProjectResponse struct {
	BAC             float64  `json:"bac"`
	BACPercent      string   `json:"bacPercent"`
	HoursUntilSober float64  `json:"hoursUntilSober"`
	Risk            RiskTier `json:"riskLevel"`
}

// ClassifyRequest asks for the risk tier of a BAC value.
type ClassifyRequest struct {
	BAC float64 `json:"bac"`
}

// SummaryRequest asks for a full summary with an inline profile.
type SummaryRequest struct {
	Ingredients []Ingredient `json:"ingredients" binding:"dive"`
	Profile     ProfileInput `json:"profile"`
}

// SummaryResponse is either an available summary or a profile-incomplete marker.
type SummaryResponse struct {
	Available bool     `json:"available"`
	Reason    string   `json:"reason,omitempty"`
	Summary   *Summary `json:"summary,omitempty"`
}

// TierStatsResponse reports how often each tier was served.
type TierStatsResponse struct {
	Counts map[RiskLevel]int64 `json:"counts"`
	Total  int64               `json:"total"`
}

// ReasonProfileIncomplete marks a summary that could not be computed yet.
const ReasonProfileIncomplete = "profile_incomplete"

// Doses strips names from an ingredient list.
func Doses(ingredients []Ingredient) []IngredientDose {
	doses := make([]IngredientDose, 0, len(ingredients))
	for _, ing := range ingredients {
		doses = append(doses, IngredientDose{VolumeMl: ing.VolumeMl, ABV: ing.ABV})
	}
	return doses
}

// ToProfile converts request input, validating the sex value when present.
func (p ProfileInput) ToProfile() (Profile, error) {
	var profile Profile
	if p.BiologicalSex != nil && *p.BiologicalSex != "" {
		sex, err := ParseSex(*p.BiologicalSex)
		if err != nil {
			return Profile{}, err
		}
		profile.Sex = &sex
	}
	if p.WeightKg != nil {
		weight := *p.WeightKg
		profile.WeightKg = &weight
	}
	return profile, nil
}
