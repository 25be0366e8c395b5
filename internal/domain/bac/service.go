package bac

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"

	apperrors "github.com/yanqian/cocktail-bac/pkg/errors"
)

// Service exposes BAC estimation workflows to transport layers.
type Service interface {
	Alcohol(ctx context.Context, req DosesRequest) (AlcoholResponse, error)
	Estimate(ctx context.Context, req EstimateRequest) (EstimateResponse, error)
	Project(ctx context.Context, req ProjectRequest) (ProjectResponse, error)
	Classify(ctx context.Context, req ClassifyRequest) (RiskTier, error)
	Summarize(ctx context.Context, req SummaryRequest) (SummaryResponse, error)
	SummarizeForUser(ctx context.Context, userID int64, req DosesRequest) (SummaryResponse, error)
	TierStats(ctx context.Context) (TierStatsResponse, error)
}

type service struct {
	cfg      Config
	store    Store
	profiles ProfileSource
	recorder Recorder
	logger   *slog.Logger
}

// NewService wires up the BAC domain.
func NewService(cfg Config, store Store, profiles ProfileSource, recorder Recorder, logger *slog.Logger) Service {
	return &service{
		cfg:      cfg,
		store:    store,
		profiles: profiles,
		recorder: recorder,
		logger:   logger.With("component", "bac.service"),
	}
}

func (s *service) Alcohol(_ context.Context, req DosesRequest) (AlcoholResponse, error) {
	grams, err := AggregateAlcoholGrams(Doses(req.Ingredients))
	if err != nil {
		return AlcoholResponse{}, invalidInput(err)
	}
	return AlcoholResponse{AlcoholGrams: grams}, nil
}

func (s *service) Estimate(_ context.Context, req EstimateRequest) (EstimateResponse, error) {
	sex, err := ParseSex(req.BiologicalSex)
	if err != nil {
		return EstimateResponse{}, invalidInput(err)
	}
	value, grams, err := estimate(Doses(req.Ingredients), sex, req.WeightKg)
	if err != nil {
		return EstimateResponse{}, invalidInput(err)
	}
	return EstimateResponse{
		BAC:          value,
		BACPercent:   FormatPercent(value),
		AlcoholGrams: grams,
	}, nil
}

func (s *service) Project(_ context.Context, req ProjectRequest) (ProjectResponse, error) {
	projected, err := ProjectBACAfterTime(req.BAC, req.HoursElapsed)
	if err != nil {
		return ProjectResponse{}, invalidInput(err)
	}
	risk, err := ClassifyRisk(projected)
	if err != nil {
		return ProjectResponse{}, invalidInput(err)
	}
	return ProjectResponse{
		BAC:             projected,
		BACPercent:      FormatPercent(projected),
		HoursUntilSober: TimeUntilSober(projected),
		Risk:            risk,
	}, nil
}

func (s *service) Classify(_ context.Context, req ClassifyRequest) (RiskTier, error) {
	tier, err := ClassifyRisk(req.BAC)
	if err != nil {
		return RiskTier{}, invalidInput(err)
	}
	return tier, nil
}

func (s *service) Summarize(ctx context.Context, req SummaryRequest) (SummaryResponse, error) {
	profile, err := req.Profile.ToProfile()
	if err != nil {
		return SummaryResponse{}, invalidInput(err)
	}
	return s.summarize(ctx, Doses(req.Ingredients), profile)
}

func (s *service) SummarizeForUser(ctx context.Context, userID int64, req DosesRequest) (SummaryResponse, error) {
	profile, err := s.profiles.LoadProfile(ctx, userID)
	if err != nil {
		return SummaryResponse{}, err
	}
	return s.summarize(ctx, Doses(req.Ingredients), profile)
}

func (s *service) TierStats(ctx context.Context) (TierStatsResponse, error) {
	counts, err := s.store.TierCounts(ctx)
	if err != nil {
		return TierStatsResponse{}, apperrors.Wrap("store_error", "failed to load tier statistics", err)
	}
	resp := TierStatsResponse{Counts: make(map[RiskLevel]int64, len(RiskLevels))}
	for _, level := range RiskLevels {
		resp.Counts[level] = counts[level]
		resp.Total += counts[level]
	}
	return resp, nil
}

func (s *service) summarize(ctx context.Context, doses []IngredientDose, profile Profile) (SummaryResponse, error) {
	if !profile.Complete() {
		return SummaryResponse{Available: false, Reason: ReasonProfileIncomplete}, nil
	}

	key, err := summaryKey(doses, profile)
	if err != nil {
		// NaN or Inf input fails validation in Summarize; skip the cache.
		s.logger.Debug("summary key unavailable", "error", err)
		key = ""
	}
	var (
		cached Summary
		found  bool
	)
	if key != "" {
		cached, found, err = s.store.GetSummary(ctx, key)
		if err != nil {
			s.logger.Warn("summary cache lookup failed", "error", err)
		}
	}
	if found {
		s.logger.Debug("summary cache hit", "key", key)
		s.recordTier(ctx, cached.Risk.Level)
		return SummaryResponse{Available: true, Summary: &cached}, nil
	}

	summary, ok, err := Summarize(doses, profile)
	if err != nil {
		return SummaryResponse{}, invalidInput(err)
	}
	if !ok {
		return SummaryResponse{Available: false, Reason: ReasonProfileIncomplete}, nil
	}

	if key != "" {
		if err := s.store.SaveSummary(ctx, key, summary, s.cfg.SummaryTTL); err != nil {
			s.logger.Warn("summary cache save failed", "error", err)
		}
	}
	s.recordTier(ctx, summary.Risk.Level)
	s.logger.Info("bac summary computed", "bac", summary.BAC, "risk", summary.Risk.Level, "ingredients", len(doses))
	return SummaryResponse{Available: true, Summary: &summary}, nil
}

func (s *service) recordTier(ctx context.Context, level RiskLevel) {
	if s.recorder != nil {
		s.recorder.ObserveAssessment(string(level))
	}
	if err := s.store.IncrementTier(ctx, level); err != nil {
		s.logger.Warn("tier counter update failed", "level", level, "error", err)
	}
}

func invalidInput(err error) error {
	return apperrors.Wrap("invalid_input", "invalid BAC input", err)
}

// summaryKey digests the ordered doses and profile into a stable cache key.
func summaryKey(doses []IngredientDose, profile Profile) (string, error) {
	payload, err := json.Marshal(struct {
		Doses    []IngredientDose `json:"d"`
		Sex      Sex              `json:"s"`
		WeightKg float64          `json:"w"`
	}{doses, *profile.Sex, *profile.WeightKg})
	if err != nil {
		return "", fmt.Errorf("encode summary key: %w", err)
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
