package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/St1cky1/flight-planner/internal/api"
	grpcapi "github.com/St1cky1/flight-planner/internal/api/grpc"
	"github.com/St1cky1/flight-planner/internal/api/handlers"
	"github.com/St1cky1/flight-planner/internal/config"
	"github.com/St1cky1/flight-planner/internal/identicon"
	"github.com/St1cky1/flight-planner/internal/infrastructure/client"
	"github.com/St1cky1/flight-planner/internal/infrastructure/storage"
	"github.com/St1cky1/flight-planner/internal/repository"
	"github.com/St1cky1/flight-planner/internal/usecase"
	"github.com/St1cky1/flight-planner/internal/worker"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ Ошибка конфигурации: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runMigrations(cfg.MigrationsPath, cfg.DB.DSN()); err != nil {
		log.Fatal("❌ Ошибка миграций: ", err)
	}

	pg, err := client.NewPostgresClient(ctx, cfg.DB.DSN())
	if err != nil {
		log.Fatal("❌ Ошибка подключения к БД: ", err)
	}
	defer pg.Close()
	log.Println("✅ Подключение к БД установлено")

	// без RabbitMQ аватарки работают, просто не уходят события аудита
	var publisher usecase.AvatarEventPublisher
	rabbitMQ, err := client.NewRabbitMQClient(cfg.RabbitMQURL)
	if err != nil {
		log.Printf("⚠️  RabbitMQ недоступен, события аватарок не отправляются: %v", err)
	} else {
		defer rabbitMQ.Close()
		publisher = rabbitMQ
		log.Println("✅ Подключение к RabbitMQ установлено")
	}

	avatarStore, closeStore, err := storage.OpenAvatarStore(ctx, cfg, pg.Pool)
	if err != nil {
		log.Fatal("❌ Ошибка хранилища аватарок: ", err)
	}
	defer closeStore()

	// Инициализируем репозитории
	employeeRepo := repository.NewEmployeeRepository(pg.Pool)
	auditRepo := repository.NewAvatarAuditRepository(pg.Pool)

	avatarService := usecase.NewAvatarService(avatarStore, identicon.New(), publisher)

	healthHandler := handlers.NewHealthHandler(map[string]handlers.HealthCheck{
		"postgres": pg.HealthCheck,
	})
	avatarHandler := handlers.NewAvatarHandler(avatarService, employeeRepo)

	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           api.NewRouter(avatarHandler, healthHandler, cfg.APIKey),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if cfg.APIKey == "" {
		log.Println("⚠️  API_KEY не задан, /api открыт без авторизации")
	}

	var wg sync.WaitGroup
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	consumers := []*worker.Consumer{
		worker.NewConsumer(cfg.RabbitMQURL, client.EmployeeDeletedQueue, "employee_cleanup_worker",
			worker.NewEmployeeCleanupWorker(avatarService).Handle),
		worker.NewConsumer(cfg.RabbitMQURL, client.AvatarAuditQueue, "avatar_audit_worker",
			worker.NewAvatarAuditWorker(auditRepo).Handle),
	}
	for _, c := range consumers {
		wg.Add(1)
		go func(c *worker.Consumer) {
			defer wg.Done()
			c.Start(workerCtx)
		}(c)
	}

	grpcServer := grpcapi.NewGRPCServer()
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := grpcServer.Start(cfg.GRPCPort); err != nil {
			log.Printf("❌ gRPC server error: %v", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("HTTP сервер слушает :%s", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("❌ HTTP server error: %v", err)
			stop()
		}
	}()

	grpcServer.SetServing(true)
	log.Println("✅ Сервис аватарок готов к работе")
	fmt.Printf(" HTTP: http://localhost:%s/api/employees/{id}/avatar\n", cfg.HTTPPort)
	fmt.Printf(" gRPC health: localhost:%s\n", cfg.GRPCPort)

	<-ctx.Done()
	log.Println("Завершение работы...")

	grpcServer.SetServing(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Ошибка остановки HTTP сервера: %v", err)
	}
	grpcServer.Stop()
	workerCancel()
	avatarService.WaitEvents()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("✅ Приложение завершено корректно")
	case <-shutdownCtx.Done():
		log.Println("⚠️  Не дождались остановки всех горутин")
		os.Exit(1)
	}
}

func runMigrations(migrationsPath, dbURL string) error {
	m, err := migrate.New(migrationsPath, dbURL)
	if err != nil {
		return fmt.Errorf("ошибка создания мигратора: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("ошибка выполнения миграций: %w", err)
	}

	log.Println("✅ Миграции выполнены успешно")
	return nil
}
