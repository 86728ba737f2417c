package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"go-agroadvisor/engine"
	"go-agroadvisor/models"
	"go-agroadvisor/utils"
)

func newRecommendCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend crops from conditions or a soil test",
	}
	cmd.AddCommand(newConditionsCmd(a), newSoilCmd(a))
	return cmd
}

func newConditionsCmd(a *app) *cobra.Command {
	var (
		soilType string
		season   string
		location string
		seed     int64
	)
	cmd := &cobra.Command{
		Use:   "conditions",
		Short: "Rank catalog crops for a soil type, season and region",
		Example: `  agroadvisor recommend conditions --soil Loamy --season Kharif --location Kerala
  agroadvisor recommend conditions --soil Clay --season Rabi --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := a.engine()
			if err != nil {
				return err
			}
			location = strings.TrimSpace(location)
			_, known := eng.Locations().Lookup(location)
			seed = utils.SeedOrNew(seed)
			recs := eng.RecommendByConditions(engine.NewSource(seed), soilType, season, location)
			return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
				"recommendations":   recs,
				"count":             len(recs),
				"location_fallback": !known,
				"seed":              seed,
			})
		},
	}
	cmd.Flags().StringVar(&soilType, "soil", "", "soil type, e.g. Loamy")
	cmd.Flags().StringVar(&season, "season", "", "season, e.g. Kharif")
	cmd.Flags().StringVar(&location, "location", "", "region name; unknown regions use the default adjustment")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for reproducible output (0 = random)")
	return cmd
}

func newSoilCmd(a *app) *cobra.Command {
	var raw models.RawSoilReading
	cmd := &cobra.Command{
		Use:     "soil",
		Short:   "Classify a soil test and apply the nutrient rules",
		Example: `  agroadvisor recommend soil --n 25 --p 40 --k 35 --rainfall 200 --humidity 80`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			analysis, err := engine.RecommendBySoil(raw)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), analysis)
		},
	}
	cmd.Flags().StringVar(&raw.Nitrogen, "n", "", "nitrogen reading")
	cmd.Flags().StringVar(&raw.Phosphorus, "p", "", "phosphorus reading")
	cmd.Flags().StringVar(&raw.Potassium, "k", "", "potassium reading")
	cmd.Flags().StringVar(&raw.Rainfall, "rainfall", "", "rainfall in mm")
	cmd.Flags().StringVar(&raw.Humidity, "humidity", "", "relative humidity in %")
	return cmd
}
