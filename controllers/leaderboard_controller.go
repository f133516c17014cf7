package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/causewayapp/causeway/config"
	"github.com/causewayapp/causeway/store"
	"github.com/causewayapp/causeway/utils"
)

// LeaderboardController serves the public top-N ranking snapshot.
type LeaderboardController struct {
	store *store.Store
}

// NewLeaderboardController creates a new controller instance.
func NewLeaderboardController(st *store.Store) *LeaderboardController {
	return &LeaderboardController{store: st}
}

// GetLeaderboard returns the ranking. Cached; every successful commit
// invalidates it, so the snapshot is at most one commit old.
func (l *LeaderboardController) GetLeaderboard(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes("cache:leaderboard"); ok {
		ctx.Data(200, "application/json", b)
		return
	}

	entries, err := l.store.Leaderboard(ctx.Request.Context(), config.Get().LeaderboardLimit)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50090, "failed to load leaderboard")
		return
	}

	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: gin.H{"leaderboard": entries}}
	utils.CacheSetJSON("cache:leaderboard", wrapper, time.Hour)
	utils.Success(ctx, gin.H{"leaderboard": entries})
}
