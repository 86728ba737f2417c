package controllers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	gonanoid "github.com/matoous/go-nanoid"
	"go.uber.org/zap"

	"go-agroadvisor/models"
	"go-agroadvisor/utils"
)

const (
	favoriteIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	favoriteIDLength   = 16
	timeLayout         = "2006-01-02 15:04:05"
	dateLayout         = "2006-01-02"
	maxPageSize        = 100
)

// FavoriteController keeps each user's ledger of saved and starred recommendations.
type FavoriteController struct {
	DB     *sqlx.DB
	Logger *zap.Logger
}

// NewFavoriteController creates a FavoriteController.
func NewFavoriteController(db *sqlx.DB, logger *zap.Logger) *FavoriteController {
	return &FavoriteController{DB: db, Logger: logger}
}

// SaveFavoriteRequest is the body of POST /api/favorites.
type SaveFavoriteRequest struct {
	Record models.RecommendationRecord `json:"record"`
	Kind   models.FavoriteKind         `json:"kind"`
	Source models.RecommendationSource `json:"source" binding:"required"`
	Notes  string                      `json:"notes"`
}

// UpdateFavoriteRequest is the body of PUT /api/favorites/:id. Nil fields are left as they are.
type UpdateFavoriteRequest struct {
	Kind   *models.FavoriteKind         `json:"kind"`
	Notes  *string                      `json:"notes"`
	Record *models.RecommendationRecord `json:"record"`
}

func validKind(k models.FavoriteKind) bool {
	return k == models.KindSaved || k == models.KindFavorite
}

func validSource(s models.RecommendationSource) bool {
	return s == models.SourceConditions || s == models.SourceSoil
}

// SaveFavorite stores a recommendation record for the current user.
func (fc *FavoriteController) SaveFavorite(ctx *gin.Context) {
	userID := ctx.GetInt("userID")
	var req SaveFavoriteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(ctx, err.Error())
		return
	}
	if req.Kind == "" {
		req.Kind = models.KindSaved
	}
	if !validKind(req.Kind) {
		utils.BadRequest(ctx, "kind must be saved or favorite")
		return
	}
	if !validSource(req.Source) {
		utils.BadRequest(ctx, "source must be conditions or soil")
		return
	}
	if req.Record.Crop == "" {
		utils.BadRequest(ctx, "record.crop is required")
		return
	}

	id, err := gonanoid.Generate(favoriteIDAlphabet, favoriteIDLength)
	if err != nil {
		fc.Logger.Error("Failed to generate favorite id", zap.Error(err))
		utils.InternalServerError(ctx, "failed to generate id")
		return
	}
	recordJSON, err := json.Marshal(req.Record)
	if err != nil {
		utils.InternalServerError(ctx, "failed to encode record")
		return
	}

	now := time.Now().Format(timeLayout)
	fav := models.Favorite{
		ID:         id,
		UserID:     userID,
		Crop:       req.Record.Crop,
		Variety:    req.Record.VarietyName(),
		Kind:       req.Kind,
		Source:     req.Source,
		Notes:      req.Notes,
		RecordJSON: string(recordJSON),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	_, err = fc.DB.NamedExec(`
		INSERT INTO favorites (
			id, user_id, crop, variety, kind, source, notes, record_json, edited, created_at, updated_at
		) VALUES (
			:id, :user_id, :crop, :variety, :kind, :source, :notes, :record_json, :edited, :created_at, :updated_at
		)`, fav)
	if err != nil {
		fc.Logger.Error("Failed to save favorite", zap.Int("user_id", userID), zap.Error(err))
		utils.InternalServerError(ctx, "failed to save favorite")
		return
	}

	record := req.Record
	fav.Record = &record
	utils.Created(ctx, fav)
}

// GetFavorites lists the current user's ledger, newest first, with optional
// kind, crop and date filters.
func (fc *FavoriteController) GetFavorites(ctx *gin.Context) {
	userID := ctx.GetInt("userID")

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("pageSize", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = 10
	}
	kind := ctx.Query("kind")
	crop := ctx.Query("crop")
	startDate := ctx.Query("startDate")
	endDate := ctx.Query("endDate")

	where := " WHERE user_id = ?"
	params := []interface{}{userID}
	if kind != "" {
		where += " AND kind = ?"
		params = append(params, kind)
	}
	if crop != "" {
		where += " AND crop LIKE ?"
		params = append(params, "%"+crop+"%")
	}
	if startDate != "" {
		where += " AND created_at >= ?"
		params = append(params, dayBound(startDate, false))
	}
	if endDate != "" {
		where += " AND created_at <= ?"
		params = append(params, dayBound(endDate, true))
	}

	var totalCount int
	if err := fc.DB.Get(&totalCount, fc.DB.Rebind("SELECT COUNT(*) FROM favorites"+where), params...); err != nil {
		fc.Logger.Error("Failed to count favorites", zap.Error(err))
		utils.InternalServerError(ctx, "failed to count favorites")
		return
	}

	query := "SELECT * FROM favorites" + where + " ORDER BY created_at DESC, id LIMIT ? OFFSET ?"
	params = append(params, pageSize, (page-1)*pageSize)
	favorites := []models.Favorite{}
	if err := fc.DB.Select(&favorites, fc.DB.Rebind(query), params...); err != nil {
		fc.Logger.Error("Failed to list favorites", zap.Error(err))
		utils.InternalServerError(ctx, "failed to list favorites")
		return
	}
	for i := range favorites {
		decodeRecord(&favorites[i])
	}

	utils.SuccessWithPagination(ctx, favorites, totalCount, page, pageSize)
}

// GetFavorite returns one ledger entry owned by the current user.
func (fc *FavoriteController) GetFavorite(ctx *gin.Context) {
	fav, ok := fc.load(ctx)
	if !ok {
		return
	}
	utils.Success(ctx, fav)
}

// UpdateFavorite edits notes, kind or the stored record. Editing the record
// marks the entry as edited.
func (fc *FavoriteController) UpdateFavorite(ctx *gin.Context) {
	var req UpdateFavoriteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(ctx, err.Error())
		return
	}
	if req.Kind != nil && !validKind(*req.Kind) {
		utils.BadRequest(ctx, "kind must be saved or favorite")
		return
	}
	if req.Record != nil && req.Record.Crop == "" {
		utils.BadRequest(ctx, "record.crop is required")
		return
	}

	fav, ok := fc.load(ctx)
	if !ok {
		return
	}

	if req.Kind != nil {
		fav.Kind = *req.Kind
	}
	if req.Notes != nil {
		fav.Notes = *req.Notes
	}
	if req.Record != nil {
		recordJSON, err := json.Marshal(req.Record)
		if err != nil {
			utils.InternalServerError(ctx, "failed to encode record")
			return
		}
		fav.RecordJSON = string(recordJSON)
		fav.Crop = req.Record.Crop
		fav.Variety = req.Record.VarietyName()
		fav.Edited = true
		fav.Record = req.Record
	}
	fav.UpdatedAt = time.Now().Format(timeLayout)

	_, err := fc.DB.NamedExec(`
		UPDATE favorites SET
			crop = :crop, variety = :variety, kind = :kind, notes = :notes,
			record_json = :record_json, edited = :edited, updated_at = :updated_at
		WHERE id = :id AND user_id = :user_id`, fav)
	if err != nil {
		fc.Logger.Error("Failed to update favorite", zap.String("id", fav.ID), zap.Error(err))
		utils.InternalServerError(ctx, "failed to update favorite")
		return
	}
	utils.Success(ctx, fav)
}

// DeleteFavorite removes a ledger entry owned by the current user.
func (fc *FavoriteController) DeleteFavorite(ctx *gin.Context) {
	userID := ctx.GetInt("userID")
	result, err := fc.DB.Exec(fc.DB.Rebind("DELETE FROM favorites WHERE id = ? AND user_id = ?"), ctx.Param("id"), userID)
	if err != nil {
		fc.Logger.Error("Failed to delete favorite", zap.Error(err))
		utils.InternalServerError(ctx, "failed to delete favorite")
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		utils.NotFound(ctx, "favorite not found")
		return
	}
	utils.NoContent(ctx)
}

// load fetches the :id entry scoped to the current user and writes the error
// response itself when it fails.
func (fc *FavoriteController) load(ctx *gin.Context) (models.Favorite, bool) {
	var fav models.Favorite
	err := fc.DB.Get(&fav, fc.DB.Rebind("SELECT * FROM favorites WHERE id = ? AND user_id = ?"),
		ctx.Param("id"), ctx.GetInt("userID"))
	if errors.Is(err, sql.ErrNoRows) {
		utils.NotFound(ctx, "favorite not found")
		return fav, false
	}
	if err != nil {
		fc.Logger.Error("Failed to load favorite", zap.Error(err))
		utils.InternalServerError(ctx, "failed to load favorite")
		return fav, false
	}
	decodeRecord(&fav)
	return fav, true
}

// dayBound widens a date-only filter value to the first or last second of that
// day so it compares correctly against stored timestamps.
func dayBound(value string, endOfDay bool) string {
	if _, err := time.Parse(dateLayout, value); err != nil {
		return value
	}
	if endOfDay {
		return value + " 23:59:59"
	}
	return value + " 00:00:00"
}

func decodeRecord(fav *models.Favorite) {
	var rec models.RecommendationRecord
	if err := json.Unmarshal([]byte(fav.RecordJSON), &rec); err == nil {
		fav.Record = &rec
	}
}
