package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-agroadvisor/engine"
	"go-agroadvisor/models"
	"go-agroadvisor/utils"
)

// RecommendController serves the two recommenders and the knowledge tables.
type RecommendController struct {
	Engine *engine.Engine
	Logger *zap.Logger
}

// NewRecommendController creates a RecommendController.
func NewRecommendController(e *engine.Engine, logger *zap.Logger) *RecommendController {
	return &RecommendController{Engine: e, Logger: logger}
}

// ConditionsRequest is the body of POST /api/recommend/conditions.
type ConditionsRequest struct {
	SoilType string `json:"soilType"`
	Season   string `json:"season"`
	Location string `json:"location"`
	Seed     int64  `json:"seed"`
}

// SoilRequest is the body of POST /api/recommend/soil.
type SoilRequest struct {
	N        NumericString `json:"N"`
	P        NumericString `json:"P"`
	K        NumericString `json:"K"`
	Rainfall NumericString `json:"rainfall"`
	Humidity NumericString `json:"humidity"`
}

func (r SoilRequest) raw() models.RawSoilReading {
	return models.RawSoilReading{
		Nitrogen:   string(r.N),
		Phosphorus: string(r.P),
		Potassium:  string(r.K),
		Rainfall:   string(r.Rainfall),
		Humidity:   string(r.Humidity),
	}
}

// ByConditions ranks catalog crops for a soil type, season and region.
func (rc *RecommendController) ByConditions(ctx *gin.Context) {
	var req ConditionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(ctx, err.Error())
		return
	}

	location := strings.TrimSpace(req.Location)
	_, known := rc.Engine.Locations().Lookup(location)
	if !known {
		rc.Logger.Debug("Unknown location, using default adjustment",
			zap.String("location", location),
			zap.String("default", rc.Engine.Locations().Default()))
	}

	seed := utils.SeedOrNew(req.Seed)
	recs := rc.Engine.RecommendByConditions(engine.NewSource(seed), req.SoilType, req.Season, location)

	utils.Success(ctx, gin.H{
		"recommendations":   recs,
		"count":             len(recs),
		"location_fallback": !known,
		"seed":              seed,
	})
}

// BySoil classifies a soil test and applies the nutrient rules.
func (rc *RecommendController) BySoil(ctx *gin.Context) {
	var req SoilRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(ctx, err.Error())
		return
	}

	analysis, err := engine.RecommendBySoil(req.raw())
	if err != nil {
		var inputErr *engine.InputError
		if errors.As(err, &inputErr) {
			utils.Fail(ctx, http.StatusBadRequest, err.Error(), gin.H{"field": inputErr.Field})
			return
		}
		rc.Logger.Error("Soil recommendation failed", zap.Error(err))
		utils.InternalServerError(ctx, "soil recommendation failed")
		return
	}

	utils.Success(ctx, gin.H{
		"recommendations": analysis.Recommendations,
		"levels":          analysis.Levels,
	})
}

// Crops lists the loaded crop catalog.
func (rc *RecommendController) Crops(ctx *gin.Context) {
	profiles := rc.Engine.KnowledgeBase().Profiles()
	utils.Success(ctx, gin.H{"crops": profiles, "count": len(profiles)})
}

// Locations lists the regional adjustments and the fallback region.
func (rc *RecommendController) Locations(ctx *gin.Context) {
	table := rc.Engine.Locations()
	utils.Success(ctx, gin.H{"locations": table.Regions(), "default": table.Default()})
}
