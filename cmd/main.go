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
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelReservationHandler "github.com/m04kA/RC-FacilityService/internal/api/handlers/cancel_reservation"
	createFacilityHandler "github.com/m04kA/RC-FacilityService/internal/api/handlers/create_facility"
	createInstructorHandler "github.com/m04kA/RC-FacilityService/internal/api/handlers/create_instructor"
	createReservationHandler "github.com/m04kA/RC-FacilityService/internal/api/handlers/create_reservation"
	createScheduleHandler "github.com/m04kA/RC-FacilityService/internal/api/handlers/create_schedule"
	generateSlotsHandler "github.com/m04kA/RC-FacilityService/internal/api/handlers/generate_slots"
	getAvailableSlotsHandler "github.com/m04kA/RC-FacilityService/internal/api/handlers/get_available_slots"
	getFacilityHandler "github.com/m04kA/RC-FacilityService/internal/api/handlers/get_facility"
	getFacilityReservationsHandler "github.com/m04kA/RC-FacilityService/internal/api/handlers/get_facility_reservations"
	getInstructorHandler "github.com/m04kA/RC-FacilityService/internal/api/handlers/get_instructor"
	getReservationHandler "github.com/m04kA/RC-FacilityService/internal/api/handlers/get_reservation"
	getStatisticsHandler "github.com/m04kA/RC-FacilityService/internal/api/handlers/get_statistics"
	getUserReservationsHandler "github.com/m04kA/RC-FacilityService/internal/api/handlers/get_user_reservations"
	listFacilitiesHandler "github.com/m04kA/RC-FacilityService/internal/api/handlers/list_facilities"
	listInstructorsHandler "github.com/m04kA/RC-FacilityService/internal/api/handlers/list_instructors"
	listSchedulesHandler "github.com/m04kA/RC-FacilityService/internal/api/handlers/list_schedules"
	updateFacilityHandler "github.com/m04kA/RC-FacilityService/internal/api/handlers/update_facility"
	updateReservationStatusHandler "github.com/m04kA/RC-FacilityService/internal/api/handlers/update_reservation_status"
	updateScheduleHandler "github.com/m04kA/RC-FacilityService/internal/api/handlers/update_schedule"
	"github.com/m04kA/RC-FacilityService/internal/api/middleware"
	"github.com/m04kA/RC-FacilityService/internal/config"
	facilityRepo "github.com/m04kA/RC-FacilityService/internal/infra/storage/facility"
	reservationRepo "github.com/m04kA/RC-FacilityService/internal/infra/storage/reservation"
	scheduleRepo "github.com/m04kA/RC-FacilityService/internal/infra/storage/schedule"
	slotRepo "github.com/m04kA/RC-FacilityService/internal/infra/storage/slot"
	notifyServiceClient "github.com/m04kA/RC-FacilityService/internal/integrations/notifyservice"
	userServiceClient "github.com/m04kA/RC-FacilityService/internal/integrations/userservice"
	registryService "github.com/m04kA/RC-FacilityService/internal/service/registry"
	reservationsService "github.com/m04kA/RC-FacilityService/internal/service/reservations"
	statisticsService "github.com/m04kA/RC-FacilityService/internal/service/statistics"
	createScheduleUC "github.com/m04kA/RC-FacilityService/internal/usecase/create_schedule"
	generateSlotsUC "github.com/m04kA/RC-FacilityService/internal/usecase/generate_slots"
	getAvailableSlotsUC "github.com/m04kA/RC-FacilityService/internal/usecase/get_available_slots"
	reserveSlotUC "github.com/m04kA/RC-FacilityService/internal/usecase/reserve_slot"
	updateScheduleUC "github.com/m04kA/RC-FacilityService/internal/usecase/update_schedule"
	"github.com/m04kA/RC-FacilityService/pkg/dbmetrics"
	"github.com/m04kA/RC-FacilityService/pkg/logger"
	"github.com/m04kA/RC-FacilityService/pkg/metrics"
	"github.com/m04kA/RC-FacilityService/pkg/simpletxmanager"
	"github.com/m04kA/RC-FacilityService/pkg/txmanager"
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

	log.Info("Starting RC-FacilityService...")
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

	// Применяем миграции (если указан путь)
	if cfg.Database.MigrationsPath != "" {
		if err := goose.SetDialect("postgres"); err != nil {
			log.Fatal("Failed to set goose dialect: %v", err)
		}
		if err := goose.UpContext(context.Background(), db, cfg.Database.MigrationsPath); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Migrations applied from %s", cfg.Database.MigrationsPath)
	}

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds, NotifyService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout, cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		facilityRepository    *facilityRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		slotRepository        *slotRepo.Repository
		reservationRepository *reservationRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		facilityRepository = facilityRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		facilityRepository = facilityRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	registrySvc := registryService.NewService(
		facilityRepository,
		scheduleRepository,
		userClient,
		log,
	)
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		facilityRepository,
		userClient,
		notifyClient,
		log,
	)
	statisticsSvc := statisticsService.NewService(
		reservationRepository,
		facilityRepository,
		userClient,
		log,
	)

	// Инициализируем use cases
	generateSlotsUseCase := generateSlotsUC.NewUseCase(
		scheduleRepository,
		slotRepository,
		reservationRepository,
		txMgr,
		cfg.Booking.MaxHorizonDays,
		cfg.Booking.KeepShortFinalSlot,
		log,
	)
	createScheduleUseCase := createScheduleUC.NewUseCase(
		facilityRepository,
		scheduleRepository,
		generateSlotsUseCase,
		txMgr,
		cfg.Booking.DefaultHorizonDays,
		log,
	)
	updateScheduleUseCase := updateScheduleUC.NewUseCase(
		scheduleRepository,
		slotRepository,
		generateSlotsUseCase,
		txMgr,
		cfg.Booking.DefaultHorizonDays,
		log,
	)
	reserveSlotUseCase := reserveSlotUC.NewUseCase(
		facilityRepository,
		slotRepository,
		reservationRepository,
		userClient,
		notifyClient,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		facilityRepository,
		slotRepository,
		reservationRepository,
		log,
	)

	// Инициализируем handlers
	createFacility := createFacilityHandler.NewHandler(registrySvc, log)
	updateFacility := updateFacilityHandler.NewHandler(registrySvc, log)
	getFacility := getFacilityHandler.NewHandler(registrySvc, log)
	listFacilities := listFacilitiesHandler.NewHandler(registrySvc, log)
	createInstructor := createInstructorHandler.NewHandler(registrySvc, log)
	getInstructor := getInstructorHandler.NewHandler(registrySvc, log)
	listInstructors := listInstructorsHandler.NewHandler(registrySvc, log)
	listSchedules := listSchedulesHandler.NewHandler(registrySvc, log)
	createSchedule := createScheduleHandler.NewHandler(createScheduleUseCase, registrySvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(updateScheduleUseCase, registrySvc, log)
	generateSlots := generateSlotsHandler.NewHandler(generateSlotsUseCase, registrySvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createReservation := createReservationHandler.NewHandler(reserveSlotUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationsSvc, log)
	getFacilityReservations := getFacilityReservationsHandler.NewHandler(reservationsSvc, log)
	getStatistics := getStatisticsHandler.NewHandler(statisticsSvc, log)

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

	// Каталог объектов жилого комплекса
	api.HandleFunc("/apartments/{apartmentId}/facilities", listFacilities.Handle).Methods(http.MethodGet)
	api.HandleFunc("/facilities/{facilityId}", getFacility.Handle).Methods(http.MethodGet)

	// Инструкторы объекта
	api.HandleFunc("/facilities/{facilityId}/instructors", listInstructors.Handle).Methods(http.MethodGet)
	api.HandleFunc("/instructors/{instructorId}", getInstructor.Handle).Methods(http.MethodGet)

	// Расписания объекта
	api.HandleFunc("/facilities/{facilityId}/schedules", listSchedules.Handle).Methods(http.MethodGet)

	// Доступные слоты на дату
	api.HandleFunc("/facilities/{facilityId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Управление объектами (для администраторов) ---
	protected.HandleFunc("/facilities", createFacility.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/facilities/{facilityId}", updateFacility.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/facilities/{facilityId}/instructors", createInstructor.Handle).Methods(http.MethodPost)

	// --- Расписания и слоты (для администраторов) ---
	protected.HandleFunc("/schedules", createSchedule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/schedules/{scheduleId}", updateSchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/schedules/{scheduleId}/generate-slots", generateSlots.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	// Создание заявки на бронирование
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Подтверждение / отклонение заявки (для администраторов)
	protected.HandleFunc("/reservations/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)

	// Отмена бронирования
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// История бронирований жителя
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Администрирование объекта ---
	// Список бронирований объекта
	protected.HandleFunc("/facilities/{facilityId}/reservations", getFacilityReservations.Handle).Methods(http.MethodGet)

	// Статистика использования объекта
	protected.HandleFunc("/facilities/{facilityId}/statistics", getStatistics.Handle).Methods(http.MethodGet)

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
