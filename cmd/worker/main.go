// worker consume las alertas de stock bajo encoladas por la API (Asynq sobre Redis).
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/inventory-tracker/internal/infrastructure/alerts"
	"github.com/jhoicas/inventory-tracker/pkg/config"
	"github.com/jhoicas/inventory-tracker/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   "worker",
	})
	if !cfg.Redis.Enabled() {
		log.Fatal().Msg("REDIS_ADDR es requerido para el worker")
	}

	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, asynq.Config{
		Concurrency: 5,
		Queues:      map[string]int{alerts.QueueDefault: 1},
		Logger:      asynqLogger{log: log},
	})

	if err := srv.Start(alerts.NewServeMux(log.Component("alerts"))); err != nil {
		log.Fatal().Err(err).Msg("iniciar worker")
	}
	log.Info().Str("redis", cfg.Redis.Addr).Msg("worker de alertas iniciado")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, deteniendo worker...")
	srv.Shutdown()
	log.Info().Msg("worker detenido")
}

// asynqLogger adapta el logger de la app a asynq.Logger.
type asynqLogger struct {
	log *logger.Logger
}

func (l asynqLogger) Debug(args ...interface{}) { l.log.Debug().Msg(sprint(args)) }
func (l asynqLogger) Info(args ...interface{})  { l.log.Info().Msg(sprint(args)) }
func (l asynqLogger) Warn(args ...interface{})  { l.log.Warn().Msg(sprint(args)) }
func (l asynqLogger) Error(args ...interface{}) { l.log.Error().Msg(sprint(args)) }
func (l asynqLogger) Fatal(args ...interface{}) { l.log.Fatal().Msg(sprint(args)) }

func sprint(args []interface{}) string {
	return fmt.Sprint(args...)
}
