package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	findAvailabilityHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/find_availability"
	getStaffBitmapHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_staff_bitmap"
	getStaffShiftsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_staff_shifts"
	getStoreCapacityHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_store_capacity"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/cache/memorycache"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/cache/rediscache"
	blacklistRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/blacklist"
	forceLocationRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/forcelocation"
	rosterRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/roster"
	staffRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/staff"
	storeRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/store"
	taskRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/task"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/cachegate"
	capacityService "github.com/m04kA/SMC-AvailabilityService/internal/service/capacity"
	distributionService "github.com/m04kA/SMC-AvailabilityService/internal/service/distribution"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/matrix"
	scheduleService "github.com/m04kA/SMC-AvailabilityService/internal/service/schedule"
	findAvailabilityUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/find_availability"
	getStaffBitmapUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_staff_bitmap"
	getStaffShiftsUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_staff_shifts"
	getStoreCapacityUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_store_capacity"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-AvailabilityService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Репозитории работают через обёртку с метриками или напрямую через *sql.DB
	var (
		executor dbmetrics.DBExecutor
		txMgr    *txmanager.TransactionManager
	)
	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		executor = wrappedDB
		txMgr = txmanager.NewTransactionManager(wrappedDB)
		log.Info("Database metrics collection started")
	} else {
		executor = db
		txMgr = txmanager.NewFromDB(db)
	}

	staffRepository := staffRepo.NewRepository(executor)
	storeRepository := storeRepo.NewRepository(executor)
	rosterRepository := rosterRepo.NewRepository(executor)
	taskRepository := taskRepo.NewRepository(executor)
	forceLocationRepository := forceLocationRepo.NewRepository(executor)
	blacklistRepository := blacklistRepo.NewRepository(executor)

	// Хранилище кэша: Redis или память процесса
	var cacheStore cachegate.CacheStore
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if cfg.Tracing.Enabled {
			if err := redisotel.InstrumentTracing(redisClient); err != nil {
				log.Warn("Failed to instrument redis tracing: %v", err)
			}
		}

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancelPing()
			log.Fatal("Failed to ping redis: %v", err)
		}
		cancelPing()

		cacheStore = rediscache.NewStore(redisClient, cfg.Redis.KeyPrefix, time.Duration(cfg.Redis.TTLHours)*time.Hour)
		log.Info("Redis cache connected (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
	} else {
		cacheStore = memorycache.NewStore()
		log.Info("Redis disabled, using in-memory cache")
	}

	gate := cachegate.NewGate(cacheStore, txMgr, &cachegate.RealTimeProvider{}, metricsCollector, log)

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(rosterRepository, taskRepository, staffRepository, txMgr, gate, log)
	capacitySvc := capacityService.NewService(storeRepository, taskRepository, txMgr, gate, log)
	distributionSvc := distributionService.NewService(
		staffRepository,
		taskRepository,
		forceLocationRepository,
		txMgr,
		gate,
		log,
		cfg.Engine.DefaultStoreIDs,
	)
	staffMatrix := matrix.NewMatrix(scheduleSvc, staffRepository, distributionSvc, metricsCollector, log, cfg.Engine.WorkerPoolSize)

	// Инициализируем use cases
	findAvailabilityUseCase := findAvailabilityUC.NewUseCase(
		capacitySvc,
		staffMatrix,
		distributionSvc,
		blacklistRepository,
		metricsCollector,
		log,
		findAvailabilityUC.Limits{
			MaxPartySize:       cfg.Engine.MaxPartySize,
			MaxDurationMinutes: cfg.Engine.MaxDurationMinutes,
		},
	)
	getStaffBitmapUseCase := getStaffBitmapUC.NewUseCase(scheduleSvc, log)
	getStoreCapacityUseCase := getStoreCapacityUC.NewUseCase(capacitySvc, log)
	getStaffShiftsUseCase := getStaffShiftsUC.NewUseCase(scheduleSvc, distributionSvc, log)

	// Инициализируем handlers
	findAvailability := findAvailabilityHandler.NewHandler(findAvailabilityUseCase, log)
	getStaffBitmap := getStaffBitmapHandler.NewHandler(getStaffBitmapUseCase, log)
	getStoreCapacity := getStoreCapacityHandler.NewHandler(getStoreCapacityUseCase, log)
	getStaffShifts := getStaffShiftsHandler.NewHandler(getStaffShiftsUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.CustomerID)

	// Проверка возможности бронирования (X-Customer-ID опционален)
	api.HandleFunc("/stores/{storeId}/availability", findAvailability.Handle).Methods(http.MethodPost)

	// Загрузка комнат филиала по блокам
	api.HandleFunc("/stores/{storeId}/capacity", getStoreCapacity.Handle).Methods(http.MethodGet)

	// Битовые карты мастера на дату
	api.HandleFunc("/staff/{staffName}/bitmap", getStaffBitmap.Handle).Methods(http.MethodGet)

	// Смены мастеров на дату
	api.HandleFunc("/schedules", getStaffShifts.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
