package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alligatorO15/fin-mentor/internal/api"
	"github.com/alligatorO15/fin-mentor/internal/config"
	"github.com/alligatorO15/fin-mentor/internal/repository"
	"github.com/alligatorO15/fin-mentor/internal/service"
	"github.com/joho/godotenv"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	// загрузка .env файла
	if err := godotenv.Load(); err != nil {
		logger.Info("Файл .env не найден, используются переменные окружения")
	}

	if err := run(logger); err != nil {
		logger.Error("Сервер завершился с ошибкой", "error", err)
		os.Exit(1)
	}
	logger.Info("Сервер остановлен")
}

func run(logger *slog.Logger) error {
	// загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// хранилище и миграции
	repos, closeDB, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("подключение к базе данных: %w", err)
	}
	defer closeDB()

	// инициализация сервисов, состояние поднимается из базы
	services, err := service.NewServices(ctx, repos, cfg, logger)
	if err != nil {
		return fmt.Errorf("инициализация сервисов: %w", err)
	}

	// инициализация и запуск API сервера
	server, err := api.NewServer(cfg, services, logger)
	if err != nil {
		return err
	}

	logger.Info("Запуск сервера FinMentor", "port", cfg.Port, "storage", cfg.Storage)
	return server.Run(ctx, ":"+cfg.Port)
}
