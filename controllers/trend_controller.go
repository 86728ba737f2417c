package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-agroadvisor/engine"
	"go-agroadvisor/marketdata"
	"go-agroadvisor/models"
	"go-agroadvisor/utils"
)

// TrendController serves chart data for crop price trends.
type TrendController struct {
	Provider    marketdata.Provider // nil when no provider is configured
	DefaultDays int
	MaxDays     int
	Logger      *zap.Logger
}

// NewTrendController creates a TrendController.
func NewTrendController(provider marketdata.Provider, defaultDays, maxDays int, logger *zap.Logger) *TrendController {
	return &TrendController{Provider: provider, DefaultDays: defaultDays, MaxDays: maxDays, Logger: logger}
}

// TrendRequest is the body of POST /api/trends. Crops may be omitted when
// Recommendations are sent; their first three crops are charted instead.
type TrendRequest struct {
	Crops           []string               `json:"crops"`
	Recommendations models.Recommendations `json:"recommendations"`
	Days            int                    `json:"days"`
	Seed            int64                  `json:"seed"`
	Real            []models.CropSeries    `json:"real"`
}

// TrendRow is a chart row with the formatted tooltip for each filled slot.
type TrendRow struct {
	models.ChartRow
	Tooltips []string `json:"tooltips"`
}

// TrendResponse is the chart payload.
type TrendResponse struct {
	Source models.TrendSource       `json:"source"`
	Series models.MarketTrendSeries `json:"series"`
	Rows   []TrendRow               `json:"rows"`
	Legend []string                 `json:"legend"`
}

// Trends returns chart rows from caller-supplied data, the provider or synthesis,
// in that order of preference. With no crop context it returns the fixed
// fallback curves.
func (tc *TrendController) Trends(ctx *gin.Context) {
	var req TrendRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(ctx, err.Error())
		return
	}

	days := tc.clampDays(req.Days)
	crops := utils.TrimNames(req.Crops)
	if len(crops) == 0 {
		crops = req.Recommendations.CropNames(3)
	}

	var (
		series models.MarketTrendSeries
		err    error
	)
	switch {
	case len(req.Real) > 0:
		series, err = engine.FromRealTrends(req.Real)
		if err != nil {
			utils.Fail(ctx, http.StatusBadRequest, err.Error(), nil)
			return
		}
	case len(crops) == 0:
		utils.Success(ctx, tc.fallback(days))
		return
	default:
		series = tc.fetchOrSynthesize(ctx, crops, days, req.Seed)
	}

	rows, err := engine.ToChartRows(series)
	if err != nil {
		if errors.Is(err, engine.ErrSeriesLengthMismatch) {
			utils.BadRequest(ctx, err.Error())
			return
		}
		tc.Logger.Error("Failed to build chart rows", zap.Error(err))
		utils.InternalServerError(ctx, "failed to build chart rows")
		return
	}

	utils.Success(ctx, TrendResponse{
		Source: series.Source,
		Series: series,
		Rows:   withTooltips(rows),
		Legend: legend(len(series.Series), series, req.Recommendations),
	})
}

func (tc *TrendController) fetchOrSynthesize(ctx *gin.Context, crops []string, days int, seed int64) models.MarketTrendSeries {
	if tc.Provider != nil {
		series, err := tc.Provider.FetchTrends(ctx.Request.Context(), crops, days)
		if err == nil {
			return series
		}
		tc.Logger.Warn("Market data unavailable, using simulated trends",
			zap.Strings("crops", crops), zap.Error(err))
	}
	return engine.Synthesize(engine.NewSource(utils.SeedOrNew(seed)), crops, days)
}

func (tc *TrendController) fallback(days int) TrendResponse {
	return TrendResponse{
		Source: models.TrendSimulated,
		Series: models.MarketTrendSeries{Source: models.TrendSimulated, Series: []models.CropSeries{}},
		Rows:   withTooltips(engine.FallbackSeries(days)),
		Legend: legend(3),
	}
}

func (tc *TrendController) clampDays(days int) int {
	if days <= 0 {
		return tc.DefaultDays
	}
	if tc.MaxDays > 0 && days > tc.MaxDays {
		return tc.MaxDays
	}
	return days
}

func legend(n int, sources ...engine.SeriesNamer) []string {
	if n > 3 {
		n = 3
	}
	names := make([]string, n)
	for i := range names {
		names[i] = engine.LegendName(i, sources...)
	}
	return names
}

func withTooltips(rows []models.ChartRow) []TrendRow {
	out := make([]TrendRow, len(rows))
	for i, r := range rows {
		tips := []string{}
		for _, v := range []*float64{r.C1, r.C2, r.C3} {
			if v != nil {
				tips = append(tips, engine.FormatPrice(*v))
			}
		}
		out[i] = TrendRow{ChartRow: r, Tooltips: tips}
	}
	return out
}
