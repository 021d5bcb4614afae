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

	approveReviewHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/approve_review"
	cancelBookingHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/cancel_booking"
	completeBookingHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/complete_booking"
	completePaymentHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/complete_payment"
	confirmBookingHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/create_booking"
	createTourHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/create_tour"
	failPaymentHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/fail_payment"
	getAvailableSpotsHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/get_available_spots"
	getBookingHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/get_booking"
	getBookingPaymentsHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/get_booking_payments"
	getTourHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/get_tour"
	getTourBookingsHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/get_tour_bookings"
	getTourReviewsHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/get_tour_reviews"
	getUserBookingsHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/get_user_bookings"
	listToursHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/list_tours"
	recordPaymentHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/record_payment"
	submitReviewHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/submit_review"
	updateTourHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/update_tour"
	"github.com/m04kA/SMC-TourBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-TourBookingService/internal/config"
	bookingRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/payment"
	reviewRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/review"
	tourRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/tour"
	notifyServiceClient "github.com/m04kA/SMC-TourBookingService/internal/integrations/notifyservice"
	bookingsService "github.com/m04kA/SMC-TourBookingService/internal/service/bookings"
	paymentsService "github.com/m04kA/SMC-TourBookingService/internal/service/payments"
	reviewsService "github.com/m04kA/SMC-TourBookingService/internal/service/reviews"
	toursService "github.com/m04kA/SMC-TourBookingService/internal/service/tours"
	completePaymentUC "github.com/m04kA/SMC-TourBookingService/internal/usecase/complete_payment"
	createBookingUC "github.com/m04kA/SMC-TourBookingService/internal/usecase/create_booking"
	getAvailableSpotsUC "github.com/m04kA/SMC-TourBookingService/internal/usecase/get_available_spots"
	submitReviewUC "github.com/m04kA/SMC-TourBookingService/internal/usecase/submit_review"
	"github.com/m04kA/SMC-TourBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TourBookingService/pkg/logger"
	"github.com/m04kA/SMC-TourBookingService/pkg/metrics"
	"github.com/m04kA/SMC-TourBookingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-TourBookingService/pkg/txmanager"
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

	log.Info("Starting SMC-TourBookingService...")
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

	// Инициализируем клиента сервиса уведомлений
	notifier := notifyServiceClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)
	if notifier.Enabled() {
		log.Info("NotifyService client initialized (url=%s, timeout=%ds)", cfg.Notifier.URL, cfg.Notifier.Timeout)
	} else {
		log.Info("NotifyService client disabled, lifecycle events will only be logged")
	}

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		tourRepository    *tourRepo.Repository
		bookingRepository *bookingRepo.Repository
		paymentRepository *paymentRepo.Repository
		reviewRepository  *reviewRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		tourRepository = tourRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		reviewRepository = reviewRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		tourRepository = tourRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		paymentRepository = paymentRepo.NewRepository(db)
		reviewRepository = reviewRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	tourSvc := toursService.NewService(tourRepository, bookingRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, tourRepository, paymentRepository, notifier, log)
	paymentSvc := paymentsService.NewService(paymentRepository, bookingRepository, log)
	reviewSvc := reviewsService.NewService(reviewRepository, tourRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		tourRepository,
		notifier,
		txMgr,
		log,
	)
	getAvailableSpotsUseCase := getAvailableSpotsUC.NewUseCase(
		bookingRepository,
		tourRepository,
		txMgr,
		log,
	)
	completePaymentUseCase := completePaymentUC.NewUseCase(
		paymentRepository,
		bookingRepository,
		notifier,
		txMgr,
		log,
	)
	submitReviewUseCase := submitReviewUC.NewUseCase(reviewRepository, bookingRepository, log)

	// Инициализируем handlers
	createTour := createTourHandler.NewHandler(tourSvc, log)
	updateTour := updateTourHandler.NewHandler(tourSvc, log)
	getTour := getTourHandler.NewHandler(tourSvc, log)
	listTours := listToursHandler.NewHandler(tourSvc, log)
	getAvailableSpots := getAvailableSpotsHandler.NewHandler(getAvailableSpotsUseCase, log)

	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getTourBookings := getTourBookingsHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)

	recordPayment := recordPaymentHandler.NewHandler(paymentSvc, log)
	getBookingPayments := getBookingPaymentsHandler.NewHandler(paymentSvc, log)
	completePayment := completePaymentHandler.NewHandler(completePaymentUseCase, log)
	failPayment := failPaymentHandler.NewHandler(paymentSvc, log)

	submitReview := submitReviewHandler.NewHandler(submitReviewUseCase, log)
	getTourReviews := getTourReviewsHandler.NewHandler(reviewSvc, log)
	approveReview := approveReviewHandler.NewHandler(reviewSvc, log)

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

	// Каталог туров
	api.HandleFunc("/tours", listTours.Handle).Methods(http.MethodGet)
	api.HandleFunc("/tours/{tourId}", getTour.Handle).Methods(http.MethodGet)

	// Остаток мест в туре
	api.HandleFunc("/tours/{tourId}/available-spots", getAvailableSpots.Handle).Methods(http.MethodGet)

	// Отзывы по туру
	api.HandleFunc("/tours/{tourId}/reviews", getTourReviews.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Туры (для организаторов) ---
	protected.HandleFunc("/tours", createTour.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/tours/{tourId}", updateTour.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/tours/{tourId}/bookings", getTourBookings.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Платежи ---
	protected.HandleFunc("/bookings/{bookingId}/payments", recordPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/payments", getBookingPayments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/payments/{paymentId}/complete", completePayment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/payments/{paymentId}/fail", failPayment.Handle).Methods(http.MethodPatch)

	// --- Отзывы ---
	protected.HandleFunc("/reviews", submitReview.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reviews/{reviewId}/approve", approveReview.Handle).Methods(http.MethodPatch)

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
