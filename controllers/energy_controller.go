package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/causewayapp/causeway/energy"
	"github.com/causewayapp/causeway/store"
	"github.com/causewayapp/causeway/utils"
)

// EnergyController reports the live energy gate. Responses are never
// cached: energy is re-derived on every read.
type EnergyController struct {
	store *store.Store
}

// NewEnergyController creates a new controller instance.
func NewEnergyController(st *store.Store) *EnergyController {
	return &EnergyController{store: st}
}

// GetEnergy returns the refill-adjusted energy, whether a commit is
// currently possible, and the countdown to the next energy point.
func (e *EnergyController) GetEnergy(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	// Profiles are created lazily; a fresh user starts at full energy.
	if _, err := e.store.GetOrCreateProfile(ctx.Request.Context(), userID, getUsername(ctx)); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50060, "failed to load profile")
		return
	}

	current, err := e.store.GetEnergyWithRefill(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40460, "profile not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50061, "failed to compute energy")
		return
	}

	utils.Success(ctx, gin.H{
		"energy":     current,
		"max_energy": energy.MaxEnergy,
		"can_commit": energy.HasEnough(current),
		"next_in":    energy.UntilNext(current, time.Now()),
	})
}
