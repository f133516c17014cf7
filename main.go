package main

import (
	"github.com/causewayapp/causeway/config"
	"github.com/causewayapp/causeway/models"
	"github.com/causewayapp/causeway/routes"
	"github.com/causewayapp/causeway/services"
	"github.com/causewayapp/causeway/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.Profile{},
		&models.Threshold{},
		&models.Commitment{},
		&models.Badge{},
		&models.UserBadge{},
		&models.DailyActivity{},
	)

	// Worker for best-effort side effects (streaks, badge evaluation)
	tasks := services.NewTaskQueue()
	defer tasks.Close()

	r := routes.SetupRouter(db, tasks)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
