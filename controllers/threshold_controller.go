package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/causewayapp/causeway/models"
	"github.com/causewayapp/causeway/store"
	"github.com/causewayapp/causeway/utils"
)

// ThresholdController serves the cause-card deck and its administration.
type ThresholdController struct {
	db    *gorm.DB
	store *store.Store
}

// NewThresholdController creates a new controller instance.
func NewThresholdController(db *gorm.DB, st *store.Store) *ThresholdController {
	return &ThresholdController{db: db, store: st}
}

// ListThresholds returns active thresholds the user has not committed to,
// newest first. Cached per user; a commit invalidates the cache.
func (t *ThresholdController) ListThresholds(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	cacheKey := "cache:thresholds:user:" + userID
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(200, "application/json", b)
		return
	}

	thresholds, err := t.store.ListOpenThresholds(ctx.Request.Context(), userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to load thresholds")
		return
	}

	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: gin.H{"thresholds": thresholds}}
	utils.CacheSetJSON(cacheKey, wrapper, time.Hour)
	utils.Success(ctx, gin.H{"thresholds": thresholds})
}

// CreateThreshold opens a new cause for commitments. Admin only.
func (t *ThresholdController) CreateThreshold(ctx *gin.Context) {
	if !isAdmin(getUsername(ctx)) {
		utils.Error(ctx, http.StatusForbidden, 40310, "admin required")
		return
	}

	var req struct {
		Title       string `json:"title" binding:"required,min=1"`
		Description string `json:"description"`
		Category    string `json:"category" binding:"required"`
		TargetCount int    `json:"target_count" binding:"required,min=1"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid request payload")
		return
	}

	title := utils.Sanitize(strings.TrimSpace(req.Title))
	if title == "" {
		utils.Error(ctx, http.StatusBadRequest, 40041, "title cannot be empty")
		return
	}

	threshold := models.Threshold{
		Title:       title,
		Description: utils.Sanitize(req.Description),
		Category:    strings.TrimSpace(req.Category),
		TargetCount: req.TargetCount,
		IsActive:    true,
	}
	if err := t.db.Create(&threshold).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to create threshold")
		return
	}

	// New card shows up in every user's deck
	utils.InvalidateByPrefix("cache:thresholds:")

	utils.Success(ctx, gin.H{"threshold": threshold})
}

// SetThresholdActive toggles a threshold in or out of the deck. Admin only.
func (t *ThresholdController) SetThresholdActive(ctx *gin.Context) {
	if !isAdmin(getUsername(ctx)) {
		utils.Error(ctx, http.StatusForbidden, 40310, "admin required")
		return
	}

	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40042, "invalid request payload")
		return
	}

	id := ctx.Param("id")
	res := t.db.Model(&models.Threshold{}).Where("id = ?", id).Update("is_active", *req.IsActive)
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to update threshold")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, 40440, "threshold not found")
		return
	}

	utils.InvalidateByPrefix("cache:thresholds:")

	utils.Success(ctx, gin.H{"id": id, "is_active": *req.IsActive})
}
