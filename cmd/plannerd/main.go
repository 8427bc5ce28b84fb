package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"everyday-planner/internal/config"
	"everyday-planner/internal/httpapi"
	"everyday-planner/internal/repository"
	"everyday-planner/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	instanceRepo := repository.NewInstanceRepository(db)
	checkinRepo := repository.NewCheckinRepository(db)
	holidayRepo := repository.NewHolidayRepository(db)

	holidaySvc := service.NewHolidayService(holidayRepo)
	templateSvc := service.NewTemplateService(templateRepo)
	instanceSvc := service.NewInstanceService(instanceRepo)
	planSvc := service.NewPlanService(db, templateRepo, instanceRepo, userRepo, holidaySvc)
	checkinSvc := service.NewCheckinService(db, checkinRepo, instanceRepo)
	statsSvc := service.NewStatsService(instanceRepo, checkinRepo)

	server := httpapi.NewServer(httpapi.Deps{
		Location:  cfg.Location,
		Users:     userRepo,
		Plans:     planSvc,
		Instances: instanceSvc,
		Templates: templateSvc,
		Checkins:  checkinSvc,
		Holidays:  holidaySvc,
		Stats:     statsSvc,
	})

	if cfg.PlanGenerationTime != "" {
		scheduler := service.NewSchedulerService(cfg.Location)
		if _, err := scheduler.ScheduleDaily(cfg.PlanGenerationTime, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			created, err := planSvc.GenerateForAllUsers(jobCtx, time.Now().In(cfg.Location))
			if err != nil {
				log.Printf("daily plan generation: %v", err)
				return
			}
			log.Printf("daily plan generation created %d instances", created)
		}); err != nil {
			log.Fatalf("schedule plan generation: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	log.Printf("Planner listening on %s", cfg.HTTPAddr)
	if err := server.Start(ctx, cfg.HTTPAddr); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("server stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}
