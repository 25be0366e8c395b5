package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yanqian/cocktail-bac/internal/domain/bac"
)

// recipeFile is the on-disk recipe format. JSON files parse as YAML too.
type recipeFile struct {
	Ingredients []struct {
		Name     string  `yaml:"name"`
		VolumeMl float64 `yaml:"volumeInMl"`
		ABV      float64 `yaml:"abv"`
	} `yaml:"ingredients"`
}

func addIngredientFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringArrayP("ingredient", "i", nil, "ingredient as name:volumeMl:abv or volumeMl:abv (repeatable)")
	f.String("file", "", "YAML or JSON recipe file with an ingredients list")
}

// ingredientsFromFlags merges --file entries with --ingredient entries, file first.
func ingredientsFromFlags(cmd *cobra.Command) ([]bac.Ingredient, error) {
	var out []bac.Ingredient

	path, _ := cmd.Flags().GetString("file")
	if path != "" {
		fromFile, err := loadRecipeFile(path)
		if err != nil {
			return nil, err
		}
		out = append(out, fromFile...)
	}

	raw, _ := cmd.Flags().GetStringArray("ingredient")
	for _, entry := range raw {
		ing, err := parseIngredient(entry, len(out)+1)
		if err != nil {
			return nil, err
		}
		out = append(out, ing)
	}
	return out, nil
}

func loadRecipeFile(path string) ([]bac.Ingredient, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recipe file: %w", err)
	}
	var recipe recipeFile
	if err := yaml.Unmarshal(data, &recipe); err != nil {
		return nil, fmt.Errorf("parse recipe file: %w", err)
	}
	out := make([]bac.Ingredient, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		out = append(out, bac.Ingredient{Name: ing.Name, VolumeMl: ing.VolumeMl, ABV: ing.ABV})
	}
	return out, nil
}

func parseIngredient(entry string, position int) (bac.Ingredient, error) {
	parts := strings.Split(entry, ":")
	var name, volume, abv string
	switch len(parts) {
	case 2:
		name, volume, abv = fmt.Sprintf("ingredient %d", position), parts[0], parts[1]
	case 3:
		name, volume, abv = strings.TrimSpace(parts[0]), parts[1], parts[2]
	default:
		return bac.Ingredient{}, fmt.Errorf("ingredient %q: expected name:volumeMl:abv", entry)
	}

	volumeMl, err := strconv.ParseFloat(strings.TrimSpace(volume), 64)
	if err != nil {
		return bac.Ingredient{}, fmt.Errorf("ingredient %q: invalid volume: %w", entry, err)
	}
	strength, err := strconv.ParseFloat(strings.TrimSpace(abv), 64)
	if err != nil {
		return bac.Ingredient{}, fmt.Errorf("ingredient %q: invalid abv: %w", entry, err)
	}
	return bac.Ingredient{Name: name, VolumeMl: volumeMl, ABV: strength}, nil
}
