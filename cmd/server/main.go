package main

import (
	"context"
	"log"
	"net/http"
	"os"

	webAdapter "stockroom/internal/adapters/web"
	"stockroom/internal/app"
	"stockroom/internal/core"
	"stockroom/internal/db"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	catalogService := core.NewCatalogService(pool)
	stockService := core.NewStockService(pool)
	intakeService := core.NewIntakeService(pool, stockService)
	dispatchService := core.NewDispatchService(pool, stockService)
	reportingService := core.NewReportingService(pool)
	userService := core.NewUserService(pool)

	svc := app.NewAppService(catalogService, intakeService, stockService,
		dispatchService, reportingService, userService)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, logger, allowedOrigins)

	logger.Info("server starting", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}
