// cmd/dashboard/main.go
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/mlubs/IM-Intel/internal/api"
	"github.com/mlubs/IM-Intel/internal/api/handlers"
	"github.com/mlubs/IM-Intel/internal/api/responses"
	"github.com/mlubs/IM-Intel/internal/config"
	"github.com/mlubs/IM-Intel/internal/core/dashboard"
	"github.com/mlubs/IM-Intel/internal/core/workbook"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func newLogger(development bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if development {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("Falha ao iniciar o logger: %v", err)
	}
	return logger
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Print("Arquivo .env não encontrado, prosseguindo com variáveis de ambiente")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuração inválida: %v", err)
	}

	logger := newLogger(cfg.Log.Development)
	defer logger.Sync()
	responses.InitLogger(logger)
	gin.SetMode(cfg.Server.GinMode)

	dashboardService := dashboard.NewService(dashboard.Config{
		DateColumn:   cfg.Dataset.DateColumn,
		Source:       cfg.Dataset.Source,
		FetchTimeout: cfg.Dataset.FetchTimeout,
		Fetcher:      workbook.NewFetcher(&http.Client{Timeout: cfg.Dataset.FetchTimeout}),
		Logger:       logger,
	})

	if cfg.Dataset.LoadSample {
		if _, err := dashboardService.LoadSample(); err != nil {
			logger.Warn("falha ao carregar dados de exemplo", zap.Error(err))
		}
	}
	// a falha na carga automática mantém os dados de exemplo; o upload manual segue disponível
	if _, err := dashboardService.Reload(context.Background()); err != nil {
		logger.Warn("carga automática do arquivo database falhou",
			zap.String("source", cfg.Dataset.Source), zap.Error(err))
	}

	dashboardHandler := handlers.NewDashboardHandler(dashboardService, cfg.Server.MaxUploadBytes)
	router := api.NewRouter(dashboardHandler)

	logger.Info("🚀 Dashboard Service (Go) iniciado", zap.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Falha ao iniciar o servidor do painel", zap.Error(err))
	}
}
