package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go-agroadvisor/engine"
	"go-agroadvisor/models"
	"go-agroadvisor/utils"
)

func newTrendsCmd(a *app) *cobra.Command {
	var (
		crops []string
		days  int
		seed  int64
		live  bool
	)
	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Print chart rows of crop price trends",
		Long: `Prints daily price rows for up to three crops. With --live the configured
market-data provider is asked first; simulated prices are used when it is
unavailable. Without crops the fixed fallback curves are printed.`,
		Example: `  agroadvisor trends --crops Rice,Wheat --days 14 --seed 7`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days <= 0 {
				days = a.cfg.Engine.DefaultTrendDays
			}
			if days > a.cfg.Engine.MaxTrendDays {
				days = a.cfg.Engine.MaxTrendDays
			}

			crops = utils.TrimNames(crops)
			if len(crops) == 0 {
				return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
					"source": models.TrendSimulated,
					"rows":   engine.FallbackSeries(days),
					"legend": []string{engine.LegendName(0), engine.LegendName(1), engine.LegendName(2)},
				})
			}

			series := models.MarketTrendSeries{}
			fetched := false
			if p := a.provider(); live && p != nil {
				var err error
				series, err = p.FetchTrends(cmd.Context(), crops, days)
				if err != nil {
					a.logger.Warn("Market data unavailable, using simulated trends", zap.Error(err))
				} else {
					fetched = true
				}
			}
			if !fetched {
				series = engine.Synthesize(engine.NewSource(utils.SeedOrNew(seed)), crops, days)
			}

			rows, err := engine.ToChartRows(series)
			if err != nil {
				return err
			}
			legend := make([]string, 0, 3)
			for i := 0; i < len(series.Series) && i < 3; i++ {
				legend = append(legend, engine.LegendName(i, series))
			}
			return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
				"source": series.Source,
				"series": series.Series,
				"rows":   rows,
				"legend": legend,
			})
		},
	}
	cmd.Flags().StringSliceVar(&crops, "crops", nil, "comma-separated crop names")
	cmd.Flags().IntVar(&days, "days", 0, "number of days (defaults to engine.default_trend_days)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for simulated prices (0 = random)")
	cmd.Flags().BoolVar(&live, "live", false, "ask the market-data provider first")
	return cmd
}
