package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SocialApp/social-api/internal/handler"
	"github.com/SocialApp/social-api/internal/rabbitmq"
	"github.com/SocialApp/social-api/internal/repository"
	"github.com/SocialApp/social-api/internal/repository/postgres"
	"github.com/SocialApp/social-api/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := initEnv(); err != nil {
		logger.Sugar().Fatalf("failed to load environment variables: %s", err.Error())
	}

	if err := initConfig(); err != nil {
		logger.Sugar().Fatalf("failed to initialize yaml config: %s", err.Error())
	}

	db, err := pgxpool.New(ctx, os.Getenv("POSTGRES_URL"))
	if err != nil {
		logger.Sugar().Fatalf("failed to connect to postgres: %s", err.Error())
	}
	defer db.Close()

	if err := postgres.Init(ctx, db); err != nil {
		logger.Sugar().Fatalf("failed to initialize postgres schema: %s", err.Error())
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: viper.GetString("redis.addr"),
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	defer rdb.Close()

	mq, err := rabbitmq.Connect(os.Getenv("RABBITMQ_URL"))
	if err != nil {
		logger.Sugar().Fatalf("failed to connect to rabbitmq: %s", err.Error())
	}
	defer mq.Close()

	repo := repository.New(db, rdb)
	services := service.New(logger, repo, mq)
	handlers := handler.New(services)

	srv := &http.Server{
		Addr: ":" + viper.GetString("port"),
		Handler: handlers.InitRoutes(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("failed to run http server: %s", err.Error())
		}
	}()
	logger.Sugar().Infof("server is listening on port %s", viper.GetString("port"))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("failed to shutdown http server gracefully: %s", err.Error())
	}
}

func initEnv() error {
	return godotenv.Load(".env")
}

func initConfig() error {
	viper.AddConfigPath("./")
	viper.SetConfigType("yaml")
	viper.SetConfigName("app")
	return viper.ReadInConfig()
}
