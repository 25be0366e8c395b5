package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yanqian/cocktail-bac/internal/domain/bac"
)

func newAlcoholCmd(state *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alcohol",
		Short: "Print the grams of ethanol in a recipe",
		RunE: func(cmd *cobra.Command, args []string) error {
			ingredients, err := ingredientsFromFlags(cmd)
			if err != nil {
				return err
			}
			resp, err := state.svc.Alcohol(cmd.Context(), bac.DosesRequest{Ingredients: ingredients})
			if err != nil {
				return err
			}
			return state.render(cmd, resp, func() string {
				return fmt.Sprintf("Alcohol: %.3f g\n", resp.AlcoholGrams)
			})
		},
	}
	addIngredientFlags(cmd)
	return cmd
}

func newEstimateCmd(state *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the instantaneous BAC of a recipe",
		RunE: func(cmd *cobra.Command, args []string) error {
			ingredients, err := ingredientsFromFlags(cmd)
			if err != nil {
				return err
			}
			sex, _ := cmd.Flags().GetString("sex")
			weight, _ := cmd.Flags().GetFloat64("weight")
			resp, err := state.svc.Estimate(cmd.Context(), bac.EstimateRequest{
				Ingredients:   ingredients,
				BiologicalSex: sex,
				WeightKg:      weight,
			})
			if err != nil {
				return err
			}
			return state.render(cmd, resp, func() string {
				return fmt.Sprintf("BAC: %.4f (%s%%)\nAlcohol: %.3f g\n", resp.BAC, resp.BACPercent, resp.AlcoholGrams)
			})
		},
	}
	addIngredientFlags(cmd)
	addProfileFlags(cmd)
	_ = cmd.MarkFlagRequired("sex")
	_ = cmd.MarkFlagRequired("weight")
	return cmd
}

func newProjectCmd(state *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project a BAC forward in time",
		RunE: func(cmd *cobra.Command, args []string) error {
			value, _ := cmd.Flags().GetFloat64("bac")
			hours, _ := cmd.Flags().GetFloat64("hours")
			resp, err := state.svc.Project(cmd.Context(), bac.ProjectRequest{BAC: value, HoursElapsed: hours})
			if err != nil {
				return err
			}
			return state.render(cmd, resp, func() string {
				return fmt.Sprintf("BAC: %.4f (%s%%)\n%sHours until sober: %.2f\n", resp.BAC, resp.BACPercent, riskLine(resp.Risk), resp.HoursUntilSober)
			})
		},
	}
	cmd.Flags().Float64("bac", 0, "starting BAC")
	cmd.Flags().Float64("hours", 0, "hours elapsed")
	_ = cmd.MarkFlagRequired("bac")
	_ = cmd.MarkFlagRequired("hours")
	return cmd
}

func newRiskCmd(state *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Classify a BAC into a risk tier",
		RunE: func(cmd *cobra.Command, args []string) error {
			value, _ := cmd.Flags().GetFloat64("bac")
			tier, err := state.svc.Classify(cmd.Context(), bac.ClassifyRequest{BAC: value})
			if err != nil {
				return err
			}
			return state.render(cmd, tier, func() string { return riskLine(tier) })
		},
	}
	cmd.Flags().Float64("bac", 0, "BAC to classify")
	_ = cmd.MarkFlagRequired("bac")
	return cmd
}

func newSoberCmd(state *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sober",
		Short: "Print the hours until a BAC reaches zero",
		RunE: func(cmd *cobra.Command, args []string) error {
			value, _ := cmd.Flags().GetFloat64("bac")
			hours := bac.TimeUntilSober(value)
			return state.render(cmd, map[string]float64{"hoursUntilSober": hours}, func() string {
				return fmt.Sprintf("Hours until sober: %.2f\n", hours)
			})
		},
	}
	cmd.Flags().Float64("bac", 0, "current BAC")
	_ = cmd.MarkFlagRequired("bac")
	return cmd
}

func newSummaryCmd(state *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Estimate, classify and time a recipe for a drinker profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			ingredients, err := ingredientsFromFlags(cmd)
			if err != nil {
				return err
			}
			req := bac.SummaryRequest{Ingredients: ingredients}
			if cmd.Flags().Changed("sex") {
				sex, _ := cmd.Flags().GetString("sex")
				req.Profile.BiologicalSex = &sex
			}
			if cmd.Flags().Changed("weight") {
				weight, _ := cmd.Flags().GetFloat64("weight")
				req.Profile.WeightKg = &weight
			}
			resp, err := state.svc.Summarize(cmd.Context(), req)
			if err != nil {
				return err
			}
			return state.render(cmd, resp, func() string {
				if !resp.Available {
					return "Summary unavailable: set --sex and --weight to estimate BAC\n"
				}
				s := resp.Summary
				return fmt.Sprintf("BAC: %.4f (%s%%)\n%sHours until sober: %.2f\n", s.BAC, s.BACPercent, riskLine(s.Risk), s.HoursUntilSober)
			})
		},
	}
	addIngredientFlags(cmd)
	addProfileFlags(cmd)
	return cmd
}

func addProfileFlags(cmd *cobra.Command) {
	cmd.Flags().String("sex", "", "biological sex (male or female)")
	cmd.Flags().Float64("weight", 0, "body weight in kg")
}

func riskLine(tier bac.RiskTier) string {
	return fmt.Sprintf("Risk: %s (%s) %s\n", tier.Level, tier.Color, tier.Message)
}
