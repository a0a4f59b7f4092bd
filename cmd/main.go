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

	computeRateHandler "github.com/peppertree17/booking-service/internal/api/handlers/compute_rate"
	createBookingHandler "github.com/peppertree17/booking-service/internal/api/handlers/create_booking"
	dashboardStatsHandler "github.com/peppertree17/booking-service/internal/api/handlers/dashboard_stats"
	deactivateRateHandler "github.com/peppertree17/booking-service/internal/api/handlers/deactivate_rate"
	deleteBookingHandler "github.com/peppertree17/booking-service/internal/api/handlers/delete_booking"
	exportCalendarHandler "github.com/peppertree17/booking-service/internal/api/handlers/export_calendar"
	getAvailabilityHandler "github.com/peppertree17/booking-service/internal/api/handlers/get_availability"
	getBookingHandler "github.com/peppertree17/booking-service/internal/api/handlers/get_booking"
	importCalendarHandler "github.com/peppertree17/booking-service/internal/api/handlers/import_calendar"
	listBookingsHandler "github.com/peppertree17/booking-service/internal/api/handlers/list_bookings"
	listRatesHandler "github.com/peppertree17/booking-service/internal/api/handlers/list_rates"
	updateBookingStatusHandler "github.com/peppertree17/booking-service/internal/api/handlers/update_booking_status"
	updatePaymentStatusHandler "github.com/peppertree17/booking-service/internal/api/handlers/update_payment_status"
	upsertRateHandler "github.com/peppertree17/booking-service/internal/api/handlers/upsert_rate"
	"github.com/peppertree17/booking-service/internal/api/middleware"
	"github.com/peppertree17/booking-service/internal/config"
	bookingRepo "github.com/peppertree17/booking-service/internal/infra/storage/booking"
	rateRepo "github.com/peppertree17/booking-service/internal/infra/storage/rate"
	"github.com/peppertree17/booking-service/internal/integrations/mailer"
	bookingsService "github.com/peppertree17/booking-service/internal/service/bookings"
	ratesService "github.com/peppertree17/booking-service/internal/service/rates"
	computeRateUC "github.com/peppertree17/booking-service/internal/usecase/compute_rate"
	createBookingUC "github.com/peppertree17/booking-service/internal/usecase/create_booking"
	exportCalendarUC "github.com/peppertree17/booking-service/internal/usecase/export_calendar"
	getAvailabilityUC "github.com/peppertree17/booking-service/internal/usecase/get_availability"
	importCalendarUC "github.com/peppertree17/booking-service/internal/usecase/import_calendar"
	"github.com/peppertree17/booking-service/pkg/authtoken"
	"github.com/peppertree17/booking-service/pkg/logger"
	"github.com/peppertree17/booking-service/pkg/metrics"
	"github.com/peppertree17/booking-service/pkg/txmanager"
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

	log.Info("Starting booking-service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Инициализируем репозитории и transaction manager
	bookingRepository := bookingRepo.NewRepository(db)
	rateRepository := rateRepo.NewRepository(db)
	txMgr := txmanager.New(db)

	// Почтовый клиент уведомлений
	mailClient := mailer.NewClient(mailer.Config{
		Host:       cfg.Mail.Host,
		Port:       cfg.Mail.Port,
		Username:   cfg.Mail.Username,
		Password:   cfg.Mail.Password,
		From:       cfg.Mail.From,
		OwnerEmail: cfg.Mail.OwnerEmail,
		Enabled:    cfg.Mail.Enabled,
	}, log)
	log.Info("Mail client initialized (enabled=%v, host=%s)", cfg.Mail.Enabled, cfg.Mail.Host)

	// Инициализируем сервисы
	ratesSvc := ratesService.NewService(rateRepository, txMgr, log)
	bookingsSvc := bookingsService.NewService(bookingRepository, mailClient, txMgr, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		rateRepository,
		mailClient,
		txMgr,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(bookingRepository, log)
	computeRateUseCase := computeRateUC.NewUseCase(rateRepository, log)
	exportCalendarUseCase := exportCalendarUC.NewUseCase(bookingRepository, exportCalendarUC.Config{
		CalendarName: cfg.Calendar.Name,
		Description:  cfg.Calendar.Description,
		Timezone:     cfg.Calendar.Timezone,
		UIDDomain:    cfg.Calendar.UIDDomain,
	}, log)
	importCalendarUseCase := importCalendarUC.NewUseCase(
		bookingRepository,
		importCalendarUC.NewHTTPFetcher(),
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	computeRate := computeRateHandler.NewHandler(computeRateUseCase, log)
	listPublicRates := listRatesHandler.NewHandler(ratesSvc, log, false)
	exportCalendar := exportCalendarHandler.NewHandler(exportCalendarUseCase, log)

	getBooking := getBookingHandler.NewHandler(bookingsSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingsSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingsSvc, log)
	updatePaymentStatus := updatePaymentStatusHandler.NewHandler(bookingsSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingsSvc, log)
	dashboardStats := dashboardStatsHandler.NewHandler(bookingsSvc, log)
	listAdminRates := listRatesHandler.NewHandler(ratesSvc, log, true)
	upsertRate := upsertRateHandler.NewHandler(ratesSvc, log)
	deactivateRate := deactivateRateHandler.NewHandler(ratesSvc, log)
	importCalendar := importCalendarHandler.NewHandler(importCalendarUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Health check
	api.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	// Создание заявки на бронирование с сайта
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Занятость по месяцу для календаря на сайте
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Расчет стоимости проживания
	api.HandleFunc("/rates/calculate", computeRate.Handle).Methods(http.MethodPost)

	// Активные тарифы
	api.HandleFunc("/rates", listPublicRates.Handle).Methods(http.MethodGet)

	// iCal-фид занятости для внешних платформ
	api.HandleFunc("/calendar/bookings.ics", exportCalendar.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (bearer-токен, только staff)
	// ============================================================

	verifier := authtoken.NewVerifier(cfg.Auth.JWTSecret)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth(verifier, log))

	// --- Бронирования ---
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/bookings/{bookingId}/payment", updatePaymentStatus.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

	// --- Тарифы ---
	admin.HandleFunc("/rates", listAdminRates.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/rates", upsertRate.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/rates/{rateId}", deactivateRate.Handle).Methods(http.MethodDelete)

	// --- Календарь и дашборд ---
	admin.HandleFunc("/calendar/import", importCalendar.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/dashboard/stats", dashboardStats.Handle).Methods(http.MethodGet)

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
