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

	addRoomHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/add_room"
	adjustCheckInHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/adjust_checkin"
	adjustCheckOutHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/adjust_checkout"
	earlyFeeHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/apply_early_checkin_fee"
	lifecycleHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/booking_lifecycle"
	changeRoomHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/change_room"
	createBookingHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/get_booking"
	getGuestBookingsHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/get_guest_bookings"
	holdsHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/holds"
	invoiceLinksHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/invoice_links"
	invoicesHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/invoices"
	listBookingsHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/list_bookings"
	pricesHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/prices"
	promotionHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/promotion"
	removeRoomHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/remove_room"
	repriceHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/reprice_booking"
	chargesHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/service_charges"
	settingsHandler "github.com/m04kA/SMC-HotelService/internal/api/handlers/settings"
	"github.com/m04kA/SMC-HotelService/internal/api/middleware"
	"github.com/m04kA/SMC-HotelService/internal/config"
	bookingRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/booking"
	chargeRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/charge"
	holdRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/hold"
	housekeepingRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/housekeeping"
	invoiceRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/invoice"
	priceRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/price"
	promotionRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/promotion"
	roomRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/room"
	settingsRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/settings"
	usageRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/usage"
	guestServiceClient "github.com/m04kA/SMC-HotelService/internal/integrations/guestservice"
	"github.com/m04kA/SMC-HotelService/internal/migration"
	availabilityService "github.com/m04kA/SMC-HotelService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-HotelService/internal/service/bookings"
	chargesService "github.com/m04kA/SMC-HotelService/internal/service/charges"
	holdsService "github.com/m04kA/SMC-HotelService/internal/service/holds"
	invoicesService "github.com/m04kA/SMC-HotelService/internal/service/invoices"
	ledgerService "github.com/m04kA/SMC-HotelService/internal/service/ledger"
	lifecycleService "github.com/m04kA/SMC-HotelService/internal/service/lifecycle"
	pricingService "github.com/m04kA/SMC-HotelService/internal/service/pricing"
	promotionsService "github.com/m04kA/SMC-HotelService/internal/service/promotions"
	recalcService "github.com/m04kA/SMC-HotelService/internal/service/recalc"
	settingsService "github.com/m04kA/SMC-HotelService/internal/service/settings"
	addRoomUC "github.com/m04kA/SMC-HotelService/internal/usecase/add_room"
	adjustCheckInUC "github.com/m04kA/SMC-HotelService/internal/usecase/adjust_checkin"
	adjustCheckOutUC "github.com/m04kA/SMC-HotelService/internal/usecase/adjust_checkout"
	earlyFeeUC "github.com/m04kA/SMC-HotelService/internal/usecase/apply_early_checkin_fee"
	changeRoomUC "github.com/m04kA/SMC-HotelService/internal/usecase/change_room"
	createBookingUC "github.com/m04kA/SMC-HotelService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/SMC-HotelService/internal/usecase/get_availability"
	removeRoomUC "github.com/m04kA/SMC-HotelService/internal/usecase/remove_room"
	repriceUC "github.com/m04kA/SMC-HotelService/internal/usecase/reprice_booking"
	"github.com/m04kA/SMC-HotelService/pkg/clock"
	"github.com/m04kA/SMC-HotelService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HotelService/pkg/logger"
	"github.com/m04kA/SMC-HotelService/pkg/metrics"
	"github.com/m04kA/SMC-HotelService/pkg/txmanager"
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

	log.Info("Starting SMC-HotelService...")
	log.Info("Configuration loaded from config.toml")

	defaults, err := cfg.Hotel.Settings()
	if err != nil {
		log.Fatal("Invalid hotel configuration: %v", err)
	}
	log.Info("Hotel policy defaults: timezone=%s, deposit_rate=%s, check_in=%s, check_out=%s",
		defaults.Location, defaults.DepositRate, defaults.StandardCheckIn, defaults.StandardCheckOut)

	// Инициализируем метрики (если включены). nil-коллектор безопасно принимают все сервисы.
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

	// Применяем миграции схемы
	if cfg.Migrations.Enabled {
		if err := migration.Run(db, log); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	// Инициализируем интеграционных клиентов
	guestClient := guestServiceClient.NewClient(
		cfg.GuestService.URL,
		time.Duration(cfg.GuestService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (GuestService=%s timeout=%ds)",
		cfg.GuestService.URL, cfg.GuestService.Timeout)

	// Обёртка БД: с метриками запросов или без
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)
	timeProvider := clock.Real{}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	usageRepository := usageRepo.NewRepository(wrappedDB, defaults.Location)
	chargeRepository := chargeRepo.NewRepository(wrappedDB)
	roomRepository := roomRepo.NewRepository(wrappedDB)
	priceRepository := priceRepo.NewRepository(wrappedDB)
	promotionRepository := promotionRepo.NewRepository(wrappedDB)
	invoiceRepository := invoiceRepo.NewRepository(wrappedDB)
	holdRepository := holdRepo.NewRepository(wrappedDB)
	housekeepingRepository := housekeepingRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	settingsSvc := settingsService.NewService(settingsRepository, chargeRepository, defaults, log)
	pricingSvc := pricingService.NewService(priceRepository, roomRepository, settingsSvc, log)
	availabilitySvc := availabilityService.NewService(
		roomRepository,
		usageRepository,
		holdRepository,
		metricsCollector,
		log,
	)
	recalcSvc := recalcService.NewService(
		bookingRepository,
		usageRepository,
		chargeRepository,
		promotionRepository,
		invoiceRepository,
		settingsSvc,
		metricsCollector,
		log,
	)
	ledgerSvc := ledgerService.NewService(
		usageRepository,
		chargeRepository,
		invoiceRepository,
		roomRepository,
		pricingSvc,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		usageRepository,
		chargeRepository,
		promotionRepository,
		invoiceRepository,
		txMgr,
		log,
	)
	chargeSvc := chargesService.NewService(
		bookingRepository,
		usageRepository,
		chargeRepository,
		recalcSvc,
		txMgr,
		log,
	)
	promotionSvc := promotionsService.NewService(
		bookingRepository,
		promotionRepository,
		invoiceRepository,
		settingsSvc,
		recalcSvc,
		txMgr,
		timeProvider,
		log,
	)
	holdSvc := holdsService.NewService(holdRepository, invoiceRepository, availabilitySvc, txMgr, log)
	invoiceSvc := invoicesService.NewService(
		invoiceRepository,
		bookingRepository,
		holdRepository,
		recalcSvc,
		metricsCollector,
		txMgr,
		timeProvider,
		log,
	)
	lifecycleSvc := lifecycleService.NewService(
		bookingRepository,
		usageRepository,
		roomRepository,
		invoiceRepository,
		housekeepingRepository,
		availabilitySvc,
		recalcSvc,
		metricsCollector,
		txMgr,
		timeProvider,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		roomRepository,
		holdRepository,
		guestClient,
		settingsSvc,
		availabilitySvc,
		ledgerSvc,
		recalcSvc,
		txMgr,
		log,
	)
	addRoomUseCase := addRoomUC.NewUseCase(
		bookingRepository,
		roomRepository,
		settingsSvc,
		availabilitySvc,
		ledgerSvc,
		recalcSvc,
		txMgr,
		log,
	)
	removeRoomUseCase := removeRoomUC.NewUseCase(bookingRepository, settingsSvc, ledgerSvc, recalcSvc, txMgr, log)
	changeRoomUseCase := changeRoomUC.NewUseCase(
		bookingRepository,
		roomRepository,
		settingsSvc,
		availabilitySvc,
		ledgerSvc,
		recalcSvc,
		txMgr,
		log,
	)
	adjustCheckInUseCase := adjustCheckInUC.NewUseCase(
		bookingRepository,
		settingsSvc,
		availabilitySvc,
		ledgerSvc,
		recalcSvc,
		txMgr,
		log,
	)
	adjustCheckOutUseCase := adjustCheckOutUC.NewUseCase(
		bookingRepository,
		settingsSvc,
		availabilitySvc,
		ledgerSvc,
		recalcSvc,
		txMgr,
		log,
	)
	repriceUseCase := repriceUC.NewUseCase(bookingRepository, settingsSvc, ledgerSvc, recalcSvc, txMgr, log)
	earlyFeeUseCase := earlyFeeUC.NewUseCase(
		bookingRepository,
		chargeRepository,
		settingsSvc,
		ledgerSvc,
		recalcSvc,
		txMgr,
		timeProvider,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(availabilitySvc, settingsSvc, txMgr, log)

	// Инициализируем handlers
	loc := defaults.Location

	createBooking := createBookingHandler.NewHandler(createBookingUseCase, settingsSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, loc, log)
	getGuestBookings := getGuestBookingsHandler.NewHandler(bookingSvc, log)
	addRoom := addRoomHandler.NewHandler(addRoomUseCase, log)
	removeRoom := removeRoomHandler.NewHandler(removeRoomUseCase, log)
	changeRoom := changeRoomHandler.NewHandler(changeRoomUseCase, settingsSvc, log)
	adjustCheckIn := adjustCheckInHandler.NewHandler(adjustCheckInUseCase, settingsSvc, log)
	adjustCheckOut := adjustCheckOutHandler.NewHandler(adjustCheckOutUseCase, settingsSvc, log)
	reprice := repriceHandler.NewHandler(repriceUseCase, log)
	earlyFee := earlyFeeHandler.NewHandler(earlyFeeUseCase, loc, log)
	lifecycle := lifecycleHandler.NewHandler(lifecycleSvc, loc, log)
	charges := chargesHandler.NewHandler(chargeSvc, log)
	promotion := promotionHandler.NewHandler(promotionSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, settingsSvc, log)
	prices := pricesHandler.NewHandler(pricingSvc, settingsSvc, log)
	invoices := invoicesHandler.NewHandler(invoiceSvc, log)
	invoiceLinks := invoiceLinksHandler.NewHandler(invoiceSvc, log)
	holds := holdsHandler.NewHandler(holdSvc, settingsSvc, log)
	settings := settingsHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободная ёмкость и цены
	api.HandleFunc("/room-types/{roomTypeId}/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/don-gia/resolve", prices.Resolve).Methods(http.MethodGet)
	api.HandleFunc("/don-gia/calendar", prices.Calendar).Methods(http.MethodGet)

	// Уведомление платёжной системы об оплате
	api.HandleFunc("/invoices/{invoiceId}/payments", invoices.Pay).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/guests/{guestId}/bookings", getGuestBookings.Handle).Methods(http.MethodGet)

	// --- Комнаты и даты проживания ---
	protected.HandleFunc("/bookings/{bookingId}/items", addRoom.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/rooms/{roomId}", removeRoom.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{bookingId}/change-room", changeRoom.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/adjust-checkin", adjustCheckIn.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/adjust-checkout", adjustCheckOut.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/reprice", reprice.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/apply-early-checkin-fee", earlyFee.Handle).Methods(http.MethodPost)

	// --- Жизненный цикл ---
	protected.HandleFunc("/bookings/{bookingId}/confirm", lifecycle.Confirm).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/checkin", lifecycle.CheckIn).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/checkout", lifecycle.CheckOut).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/cancel", lifecycle.Cancel).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/no-show", lifecycle.NoShow).Methods(http.MethodPost)

	// --- Услуги и акции ---
	protected.HandleFunc("/bookings/{bookingId}/services", charges.Add).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/services/{roomId}/{lineNo}/{serviceId}/{chargeNo}",
		charges.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/services/{roomId}/{lineNo}/{serviceId}/{chargeNo}",
		charges.Remove).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{bookingId}/promotion", promotion.Apply).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/promotion", promotion.Remove).Methods(http.MethodDelete)

	// --- Счета ---
	protected.HandleFunc("/invoices", invoices.Create).Methods(http.MethodPost)
	protected.HandleFunc("/invoices/{invoiceId}", invoices.Get).Methods(http.MethodGet)
	protected.HandleFunc("/invoices/{invoiceId}/issue", invoices.Issue).Methods(http.MethodPost)
	protected.HandleFunc("/invoices/{invoiceId}/void", invoices.Void).Methods(http.MethodPost)
	protected.HandleFunc("/invoice-links", invoiceLinks.Link).Methods(http.MethodPost)
	protected.HandleFunc("/invoice-links/{invoiceId}/{bookingId}", invoiceLinks.Unlink).Methods(http.MethodDelete)
	protected.HandleFunc("/invoice-links/{invoiceId}/recalc", invoiceLinks.Recalculate).Methods(http.MethodPost)

	// --- Удержания ---
	protected.HandleFunc("/holds", holds.Create).Methods(http.MethodPost)
	protected.HandleFunc("/holds/{holdId}", holds.Release).Methods(http.MethodDelete)

	// --- Политика отеля ---
	protected.HandleFunc("/settings", settings.Get).Methods(http.MethodGet)
	protected.HandleFunc("/settings", settings.Update).Methods(http.MethodPut)

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
