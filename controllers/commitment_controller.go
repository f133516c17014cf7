package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/causewayapp/causeway/services"
	"github.com/causewayapp/causeway/store"
	"github.com/causewayapp/causeway/utils"
)

// CommitmentController exposes the swipe-right workflow and history.
type CommitmentController struct {
	store   *store.Store
	commits *services.CommitmentService
}

// NewCommitmentController creates a new controller instance.
func NewCommitmentController(st *store.Store, commits *services.CommitmentService) *CommitmentController {
	return &CommitmentController{store: st, commits: commits}
}

// CreateCommitment runs the commit workflow for one swipe. The request
// carries the threshold counters as the UI saw them at swipe time; the
// early-commit bonus is decided from that snapshot.
func (c *CommitmentController) CreateCommitment(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		ThresholdID  string `json:"threshold_id" binding:"required"`
		CurrentCount int    `json:"current_count" binding:"min=0"`
		TargetCount  int    `json:"target_count" binding:"min=0"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40050, "invalid request payload")
		return
	}

	result, err := c.commits.Commit(ctx.Request.Context(), userID, services.ThresholdSnapshot{
		ThresholdID:  req.ThresholdID,
		CurrentCount: req.CurrentCount,
		TargetCount:  req.TargetCount,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInsufficientEnergy):
			utils.Error(ctx, http.StatusBadRequest, 40051, "not enough energy to commit")
		case errors.Is(err, store.ErrThresholdUnavailable):
			utils.Error(ctx, http.StatusNotFound, 40450, "threshold not available")
		case errors.Is(err, services.ErrUnauthenticated):
			utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		default:
			utils.Sugar.Errorf("commit failed for user %s: %v", userID, err)
			utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to record commitment")
		}
		return
	}

	utils.Success(ctx, result)
}

// ListCommitments returns the user's commitment history with threshold
// summaries, newest first.
func (c *CommitmentController) ListCommitments(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	cacheKey := "cache:commitments:user:" + userID
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(200, "application/json", b)
		return
	}

	items, err := c.store.CommitmentHistory(ctx.Request.Context(), userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50051, "failed to load commitments")
		return
	}

	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: gin.H{"commitments": items}}
	utils.CacheSetJSON(cacheKey, wrapper, time.Hour)
	utils.Success(ctx, gin.H{"commitments": items})
}
