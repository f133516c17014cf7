package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/causewayapp/causeway/energy"
	"github.com/causewayapp/causeway/store"
	"github.com/causewayapp/causeway/utils"
)

// ProfileController serves the user's own gamification state.
type ProfileController struct {
	store *store.Store
}

// NewProfileController creates a new controller instance.
func NewProfileController(st *store.Store) *ProfileController {
	return &ProfileController{store: st}
}

// Me returns the caller's profile, creating it on first contact. The stored
// energy value is accompanied by the refill-adjusted effective value so the
// client never has to trust a stale counter.
func (p *ProfileController) Me(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	profile, err := p.store.GetOrCreateProfile(ctx.Request.Context(), userID, getUsername(ctx))
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50070, "failed to load profile")
		return
	}

	utils.Success(ctx, gin.H{
		"profile":          profile,
		"effective_energy": energy.Current(profile.Energy, profile.LastEnergyReset, time.Now()),
	})
}
