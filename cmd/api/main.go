package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"machinepark/internal/config"
	"machinepark/internal/database"
	"machinepark/internal/middleware"
	"machinepark/internal/modules/availability"
	"machinepark/internal/modules/planner"
	"machinepark/internal/modules/usage"
	"machinepark/internal/repository"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	serviceRepo := repository.NewMachineServiceRepository(db)
	blockedRepo := repository.NewBlockedDateRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	usageRepo := repository.NewUsageRepository(db)
	downtimeRepo := repository.NewDowntimeRepository(db)

	availabilityService := availability.NewService(reservationRepo, blockedRepo, serviceRepo)
	availabilityHandler := availability.NewHandler(availabilityService)

	draftStore := planner.NewStore(cfg.DraftTTL)
	plannerService := planner.NewService(draftStore, availabilityService, reservationRepo)
	plannerHandler := planner.NewHandler(plannerService)

	usageService := usage.NewService(reservationRepo, serviceRepo, usageRepo, downtimeRepo)
	usageHandler := usage.NewHandler(usageService)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		availabilityHandler.RegisterRoutes(v1)
		plannerHandler.RegisterRoutes(v1)
		usageHandler.RegisterRoutes(v1)
	}

	log.Printf("listening on %s (env=%s)", cfg.Addr, cfg.AppEnv)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
