package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/causewayapp/causeway/models"
	"github.com/causewayapp/causeway/utils"
)

// StatsController provides aggregate figures such as counts and daily active users.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns aggregate statistics for the app.
func (s *StatsController) GetStats(ctx *gin.Context) {
	var userCount int64
	var thresholdCount int64
	var commitmentCount int64
	var dailyActive int64

	if err := s.db.Model(&models.Profile{}).Count(&userCount).Error; err != nil {
		// Fallback to 0 instead of failing the whole endpoint
		userCount = 0
	}

	if err := s.db.Model(&models.Threshold{}).Where("is_active = ?", true).Count(&thresholdCount).Error; err != nil {
		thresholdCount = 0
	}

	if err := s.db.Model(&models.Commitment{}).Count(&commitmentCount).Error; err != nil {
		commitmentCount = 0
	}

	// Daily active: sum of today's recorded requests across all paths.
	// Use string date equality to avoid timezone/type mismatches with DATE column
	today := time.Now().In(time.Local).Format("2006-01-02")
	if err := s.db.Model(&models.DailyActivity{}).
		Where("date = ?", today).
		Select("COALESCE(SUM(count),0)").
		Scan(&dailyActive).Error; err != nil {
		dailyActive = 0
	}

	utils.Success(ctx, gin.H{
		"user_count":         userCount,
		"threshold_count":    thresholdCount,
		"commitment_count":   commitmentCount,
		"daily_active_count": dailyActive,
	})
}
