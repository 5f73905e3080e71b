package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"bistroPulseWs/internal/config"
	handler "bistroPulseWs/internal/modules/tracking/application/handler"
	usecase "bistroPulseWs/internal/modules/tracking/application/usecase"
	"bistroPulseWs/internal/modules/tracking/infrastructure"
	transport "bistroPulseWs/internal/modules/tracking/interface"
	"bistroPulseWs/internal/platform/broker"
	"bistroPulseWs/internal/shared/auth"
	"bistroPulseWs/internal/shared/logging"
)

func main() {
	// Attempt to load variables from .env so local runs honour configuration tweaks.
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logFile, logger, err := setupLogging(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(logger)
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))
	slog.Info("kafka config resolved", slog.Any("brokers", cfg.Kafka.Brokers), slog.String("group", cfg.Kafka.GroupID), slog.String("topic", cfg.Kafka.OrderTopic))

	hub := infrastructure.NewHub()
	clientOpts := infrastructure.ClientOptions{
		SendBuffer:   cfg.Websocket.SendBuffer,
		ReadLimit:    cfg.Websocket.ReadLimit,
		PongWait:     cfg.Websocket.PongTimeout,
		PingInterval: cfg.Websocket.PingInterval,
	}

	// Use cases
	publishUC := usecase.NewPublishOrderEventUseCase(hub)
	broadcastUC := usecase.NewBroadcastUseCase(hub)

	// Kafka consumers: the persistence service emits one event per committed
	// order change on the configured topic.
	registry := broker.NewHandlerRegistry()
	registry.Register(handler.NewOrderStreamHandler(cfg.Kafka.OrderTopic, publishUC))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	broker.StartKafkaConsumers(ctx, registry, cfg.Kafka.Brokers, cfg.Kafka.GroupID)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetOutput(log.Writer())

	var validator auth.TokenValidator
	if cfg.Security.JWTSecret != "" {
		validator = auth.NewJWTValidator(cfg.Security.JWTSecret)
	}

	e.GET("/ws/orders/:order_id", transport.NewOrderTrackingHandler(hub, validator, clientOpts))
	e.GET("/ws/restaurants/:restaurant_id", transport.NewRestaurantDashboardHandler(hub, validator, clientOpts))
	e.GET("/ws/test", transport.NewTestHandler(hub, clientOpts))
	e.POST("/internal/orders/changed", transport.NewOrderChangedHandler(publishUC))
	e.POST("/broadcast", transport.NewBroadcastHTTPHandler(broadcastUC))

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil {
			slog.Error("http server stopped", slog.Any("error", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	slog.Info("shutting down")
	cancel()
	hub.Shutdown()
	e.Close()
}

func setupLogging(cfg config.LoggingConfig) (*os.File, *slog.Logger, error) {
	dir := cfg.Directory
	if dir == "" {
		dir = "./logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	fileName := filepath.Join(dir, time.Now().UTC().Format("2006-01-02")+".log")
	file, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	writer := io.MultiWriter(os.Stdout, file)
	logger := logging.New(writer, logging.Config{
		Level:     cfg.Level,
		Format:    cfg.Format,
		AddSource: true,
	})
	log.SetOutput(writer)
	log.SetFlags(0)
	log.SetPrefix("")

	return file, logger, nil
}
