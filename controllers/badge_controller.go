package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/causewayapp/causeway/store"
	"github.com/causewayapp/causeway/utils"
)

// BadgeController serves the badge catalog with the user's earned state.
type BadgeController struct {
	store *store.Store
}

// NewBadgeController creates a new controller instance.
func NewBadgeController(st *store.Store) *BadgeController {
	return &BadgeController{store: st}
}

// ListBadges returns the catalog ordered by requirement, flagging earned
// badges. Earned state is written only by the post-commit evaluation.
func (b *BadgeController) ListBadges(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	cacheKey := "cache:badges:user:" + userID
	if cached, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(200, "application/json", cached)
		return
	}

	badges, err := b.store.ListBadgesWithStatus(ctx.Request.Context(), userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50080, "failed to load badges")
		return
	}

	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: gin.H{"badges": badges}}
	utils.CacheSetJSON(cacheKey, wrapper, time.Hour)
	utils.Success(ctx, gin.H{"badges": badges})
}
