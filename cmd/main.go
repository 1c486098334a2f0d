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

	cancelBookingHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/create_booking"
	createFacilityHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/create_facility"
	createStateHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/create_state"
	deleteFacilityHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/delete_facility"
	deleteStateHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/delete_state"
	getAvailableSlotsHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/get_booking"
	getFacilityHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/get_facility"
	getUserBookingsHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/get_user_bookings"
	listFacilitiesHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/list_facilities"
	listStatesHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/list_states"
	updateBookingHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/update_booking"
	updateBookingStatusHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/update_booking_status"
	updateFacilityHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/update_facility"
	updateStateHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/update_state"
	"github.com/m04kA/SMC-FacilityService/internal/api/middleware"
	"github.com/m04kA/SMC-FacilityService/internal/config"
	bookingRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/booking"
	facilityRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/facility"
	locationRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/location"
	identityServiceClient "github.com/m04kA/SMC-FacilityService/internal/integrations/identityservice"
	bookingsService "github.com/m04kA/SMC-FacilityService/internal/service/bookings"
	facilitiesService "github.com/m04kA/SMC-FacilityService/internal/service/facilities"
	locationsService "github.com/m04kA/SMC-FacilityService/internal/service/locations"
	createBookingUC "github.com/m04kA/SMC-FacilityService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-FacilityService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-FacilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FacilityService/pkg/logger"
	"github.com/m04kA/SMC-FacilityService/pkg/metrics"
	"github.com/m04kA/SMC-FacilityService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-FacilityService/pkg/txmanager"
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

	log.Info("Starting SMC-FacilityService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем клиента сервиса пользователей
	identityClient := identityServiceClient.NewClient(
		cfg.IdentityService.URL,
		time.Duration(cfg.IdentityService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (IdentityService=%s timeout=%ds)",
		cfg.IdentityService.URL, cfg.IdentityService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		facilityRepository *facilityRepo.Repository
		bookingRepository  *bookingRepo.Repository
		locationRepository *locationRepo.Repository
	)

	var txMgr createBookingUC.TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		facilityRepository = facilityRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		locationRepository = locationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		facilityRepository = facilityRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		locationRepository = locationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	facilitySvc := facilitiesService.NewService(
		facilityRepository,
		identityClient,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		facilityRepository,
		identityClient,
		log,
	)
	locationSvc := locationsService.NewService(
		locationRepository,
		facilityRepository,
		identityClient,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		facilityRepository,
		identityClient,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		facilityRepository,
		log,
	)

	// Инициализируем handlers
	listFacilities := listFacilitiesHandler.NewHandler(facilitySvc, log)
	getFacility := getFacilityHandler.NewHandler(facilitySvc, log)
	createFacility := createFacilityHandler.NewHandler(facilitySvc, log)
	updateFacility := updateFacilityHandler.NewHandler(facilitySvc, log)
	deleteFacility := deleteFacilityHandler.NewHandler(facilitySvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	listStates := listStatesHandler.NewHandler(locationSvc, log)
	createState := createStateHandler.NewHandler(locationSvc, log)
	updateState := updateStateHandler.NewHandler(locationSvc, log)
	deleteState := deleteStateHandler.NewHandler(locationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог площадок
	api.HandleFunc("/facilities", listFacilities.Handle).Methods(http.MethodGet)
	api.HandleFunc("/facilities/{facilityId}", getFacility.Handle).Methods(http.MethodGet)
	api.HandleFunc("/facilities/{facilityId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Справочник регионов
	api.HandleFunc("/states", listStates.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-Email header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// История бронирований пользователя
	protected.HandleFunc("/users/{email}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление каталогом (для администраторов) ---
	protected.HandleFunc("/facilities", createFacility.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/facilities/{facilityId}", updateFacility.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/facilities/{facilityId}", deleteFacility.Handle).Methods(http.MethodDelete)

	// --- Справочник регионов (для администраторов) ---
	protected.HandleFunc("/states", createState.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/states/{stateId}", updateState.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/states/{stateId}", deleteState.Handle).Methods(http.MethodDelete)

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
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
