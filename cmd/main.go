package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	createBookingHandler "github.com/m04kA/SMC-RageRoomService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-RageRoomService/internal/api/handlers/get_available_slots"
	getBusinessHoursHandler "github.com/m04kA/SMC-RageRoomService/internal/api/handlers/get_business_hours"
	healthHandler "github.com/m04kA/SMC-RageRoomService/internal/api/handlers/health"
	sendContactMessageHandler "github.com/m04kA/SMC-RageRoomService/internal/api/handlers/send_contact_message"
	"github.com/m04kA/SMC-RageRoomService/internal/api/middleware"
	"github.com/m04kA/SMC-RageRoomService/internal/config"
	"github.com/m04kA/SMC-RageRoomService/internal/infra/slotlock"
	"github.com/m04kA/SMC-RageRoomService/internal/integrations/googlecalendar"
	"github.com/m04kA/SMC-RageRoomService/internal/integrations/notifier"
	sendgridClient "github.com/m04kA/SMC-RageRoomService/internal/integrations/sendgrid"
	twilioClient "github.com/m04kA/SMC-RageRoomService/internal/integrations/twilio"
	"github.com/m04kA/SMC-RageRoomService/internal/service/businesshours"
	createBookingUC "github.com/m04kA/SMC-RageRoomService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-RageRoomService/internal/usecase/get_available_slots"
	sendContactMessageUC "github.com/m04kA/SMC-RageRoomService/internal/usecase/send_contact_message"
	"github.com/m04kA/SMC-RageRoomService/pkg/logger"
	"github.com/m04kA/SMC-RageRoomService/pkg/metrics"
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

	log.Info("Starting %s booking service...", cfg.Business.Name)
	log.Info("Configuration loaded (timezone=%s, calendar=%s, max_party_size=%d, advance_booking_days=%d)",
		cfg.Location(), cfg.Calendar.ID, cfg.Booking.MaxPartySize, cfg.Booking.AdvanceBookingDays)

	// Инициализируем метрики (если включены); nil *Metrics - no-op
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Google Calendar: сервисный аккаунт
	keyJSON, err := googlecalendar.LoadServiceAccountKey(cfg.Calendar.ServiceAccountKey, cfg.Calendar.ServiceAccountKeyFile)
	if err != nil {
		log.Fatal("Failed to load Google service account key: %v", err)
	}
	calendarTimeout := time.Duration(cfg.Calendar.Timeout) * time.Second
	calendarHTTP, err := googlecalendar.NewServiceAccountHTTPClient(context.Background(), keyJSON, calendarTimeout)
	if err != nil {
		log.Fatal("Failed to create Google Calendar HTTP client: %v", err)
	}
	calendarClient := googlecalendar.NewClient(calendarHTTP, googlecalendar.Options{
		BaseURL:      cfg.Calendar.BaseURL,
		CalendarID:   cfg.Calendar.ID,
		BusinessName: cfg.Business.Name,
		Location:     cfg.Location(),
	}, metricsCollector, log)
	log.Info("Google Calendar client initialized (calendar=%s, timeout=%s)", cfg.Calendar.ID, calendarTimeout)

	// Блокировка слотов между инстансами (опционально)
	var locker createBookingUC.SlotLocker
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			// Блокировка best effort: бронирование продолжит работать и без Redis
			log.Warn("Redis is not reachable at %s, slot locks will be skipped until it recovers: %v", cfg.Redis.Addr, err)
		} else {
			log.Info("Redis slot locks enabled (addr=%s, prefix=%s)", cfg.Redis.Addr, cfg.Redis.KeyPrefix)
		}
		cancel()

		locker = slotlock.NewRedisLocker(rdb, cfg.Redis.KeyPrefix, log)
	} else {
		log.Info("Redis slot locks disabled")
	}

	// Уведомления о бронировании
	bookingNotifier := notifier.New(time.Duration(cfg.Booking.NotificationTimeout)*time.Second, metricsCollector, log)

	// Почта: форма обратной связи и подтверждения
	var mailer sendContactMessageUC.Mailer
	if cfg.SendGridEnabled() {
		sg := sendgridClient.NewClient(cfg.SendGrid.APIKey, sendgridClient.Options{
			FromEmail:    cfg.SendGrid.FromEmail,
			FromName:     cfg.SendGrid.FromName,
			ContactTo:    cfg.Contact.To,
			BusinessName: cfg.Business.Name,
		}, log)
		mailer = sg

		if cfg.SendGrid.BookingConfirmations {
			bookingNotifier.Register("email", sg)
		}
		log.Info("SendGrid enabled (from=%s, booking_confirmations=%t)", cfg.SendGrid.FromEmail, cfg.SendGrid.BookingConfirmations)
	} else {
		log.Warn("SendGrid is not configured: contact form messages will be rejected")
	}

	if cfg.Twilio.Enabled {
		sms := twilioClient.NewClient(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, twilioClient.Options{
			FromNumber:   cfg.Twilio.FromNumber,
			CountryCode:  cfg.Twilio.CountryCode,
			BusinessName: cfg.Business.Name,
		}, log)
		bookingNotifier.Register("sms", sms)
		log.Info("Twilio SMS confirmations enabled (from=%s)", cfg.Twilio.FromNumber)
	}

	// Инициализируем сервисы
	hoursSvc := businesshours.NewService(cfg.WeeklySchedule())

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		hoursSvc,
		calendarClient,
		cfg.Location(),
		cfg.Booking.AdvanceBookingDays,
		metricsCollector,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		hoursSvc,
		calendarClient,
		locker,
		bookingNotifier,
		createBookingUC.Options{
			Location:           cfg.Location(),
			MaxPartySize:       cfg.Booking.MaxPartySize,
			AdvanceBookingDays: cfg.Booking.AdvanceBookingDays,
			LockTTL:            time.Duration(cfg.Booking.LockTTL) * time.Second,
		},
		metricsCollector,
		log,
	)

	sendContactMessageUseCase := sendContactMessageUC.NewUseCase(mailer, log)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	sendContactMessage := sendContactMessageHandler.NewHandler(sendContactMessageUseCase, log)
	getBusinessHours := getBusinessHoursHandler.NewHandler(hoursSvc, getBusinessHoursHandler.Options{
		Timezone:           cfg.Location().String(),
		MaxGroupSize:       cfg.Booking.MaxPartySize,
		AdvanceBookingDays: cfg.Booking.AdvanceBookingDays,
	}, log)
	health := healthHandler.NewHandler(cfg.Business.Name)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api").Subrouter()

	// ============================================================
	// READ ROUTES
	// ============================================================

	// Свободные слоты на дату
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Часы работы и шаблоны слотов
	api.HandleFunc("/hours", getBusinessHours.Handle).Methods(http.MethodGet)

	// ============================================================
	// MUTATING ROUTES (rate limit по IP)
	// ============================================================

	mutating := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(
			cfg.RateLimit.RequestsPerMinute,
			cfg.RateLimit.Burst,
			cfg.RateLimit.TrustForwardedFor,
			log,
		)
		mutating.Use(limiter.Middleware)
		log.Info("Rate limit enabled: %d req/min, burst %d, trust_forwarded_for=%t",
			cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, cfg.RateLimit.TrustForwardedFor)
	}

	// Создание бронирования
	mutating.HandleFunc("/book", createBooking.Handle).Methods(http.MethodPost)

	// Форма обратной связи
	mutating.HandleFunc("/contact", sendContactMessage.Handle).Methods(http.MethodPost)

	// CORS для фронтенда
	cors := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins(cfg.CORS.AllowedOrigins),
		gorillaHandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", middleware.RequestIDHeader}),
		gorillaHandlers.ExposedHeaders([]string{middleware.RequestIDHeader}),
	)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      cors(r),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s (allowed origins: %v)", addr, cfg.CORS.AllowedOrigins)
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

	// Дожидаемся отправки уже запущенных подтверждений
	log.Info("Waiting for pending notifications (channels: %v)...", bookingNotifier.Channels())
	bookingNotifier.Wait()

	log.Info("Server stopped gracefully")
}
