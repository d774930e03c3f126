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
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	cancelBookingHandler "github.com/m04kA/RiverRun-BookingService/internal/api/handlers/cancel_booking"
	cartsHandler "github.com/m04kA/RiverRun-BookingService/internal/api/handlers/carts"
	catalogHandler "github.com/m04kA/RiverRun-BookingService/internal/api/handlers/catalog"
	couponsHandler "github.com/m04kA/RiverRun-BookingService/internal/api/handlers/coupons"
	createBookingHandler "github.com/m04kA/RiverRun-BookingService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/RiverRun-BookingService/internal/api/handlers/get_booking"
	getBookingQRHandler "github.com/m04kA/RiverRun-BookingService/internal/api/handlers/get_booking_qr"
	listBookingsHandler "github.com/m04kA/RiverRun-BookingService/internal/api/handlers/list_bookings"
	listSlotsHandler "github.com/m04kA/RiverRun-BookingService/internal/api/handlers/list_slots"
	manualSlotsHandler "github.com/m04kA/RiverRun-BookingService/internal/api/handlers/manual_slots"
	scanBookingHandler "github.com/m04kA/RiverRun-BookingService/internal/api/handlers/scan_booking"
	scheduleRulesHandler "github.com/m04kA/RiverRun-BookingService/internal/api/handlers/schedule_rules"
	settingsHandler "github.com/m04kA/RiverRun-BookingService/internal/api/handlers/settings"
	"github.com/m04kA/RiverRun-BookingService/internal/api/middleware"
	"github.com/m04kA/RiverRun-BookingService/internal/config"
	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	cartStore "github.com/m04kA/RiverRun-BookingService/internal/infra/cache/cart"
	activityRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/activity"
	bookingRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/booking"
	categoryRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/category"
	couponRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/coupon"
	ruleRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/rule"
	settingsRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/settings"
	slotRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/slot"
	staffRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/staff"
	ticketRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/ticket"
	paymentServiceClient "github.com/m04kA/RiverRun-BookingService/internal/integrations/paymentservice"
	userServiceClient "github.com/m04kA/RiverRun-BookingService/internal/integrations/userservice"
	bookingsService "github.com/m04kA/RiverRun-BookingService/internal/service/bookings"
	cartService "github.com/m04kA/RiverRun-BookingService/internal/service/cart"
	catalogService "github.com/m04kA/RiverRun-BookingService/internal/service/catalog"
	couponsService "github.com/m04kA/RiverRun-BookingService/internal/service/coupons"
	settingsService "github.com/m04kA/RiverRun-BookingService/internal/service/settings"
	slotsService "github.com/m04kA/RiverRun-BookingService/internal/service/slots"
	createBookingUC "github.com/m04kA/RiverRun-BookingService/internal/usecase/create_booking"
	createScheduleRuleUC "github.com/m04kA/RiverRun-BookingService/internal/usecase/create_schedule_rule"
	generateScheduleRulesUC "github.com/m04kA/RiverRun-BookingService/internal/usecase/generate_schedule_rules"
	listSlotsUC "github.com/m04kA/RiverRun-BookingService/internal/usecase/list_slots"
	"github.com/m04kA/RiverRun-BookingService/pkg/dbmetrics"
	"github.com/m04kA/RiverRun-BookingService/pkg/logger"
	"github.com/m04kA/RiverRun-BookingService/pkg/metrics"
	"github.com/m04kA/RiverRun-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/RiverRun-BookingService/pkg/txmanager"
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

	log.Info("Starting RiverRun-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Метрики. nil-коллектор безопасен: все методы *metrics.Metrics проверяют получателя
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Подключаемся к Redis (корзины)
	redisClient := redis.NewClient(&redis.Options{
		Addr:        cfg.Redis.Addr(),
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		PoolSize:    cfg.Redis.PoolSize,
		DialTimeout: time.Duration(cfg.Redis.DialTimeout) * time.Second,
	})
	defer redisClient.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), time.Duration(cfg.Redis.DialTimeout)*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		pingCancel()
		log.Fatal("Failed to ping redis: %v", err)
	}
	pingCancel()
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr(), cfg.Redis.DB)

	carts := cartStore.NewStore(redisClient, time.Duration(cfg.Cart.TTLMinutes)*time.Minute)

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)

	// Без платёжного сервиса онлайн-оплата не проверяется
	var paymentVerifier createBookingUC.PaymentVerifier
	if cfg.PaymentService.Enabled {
		paymentVerifier = paymentServiceClient.NewClient(
			cfg.PaymentService.URL,
			time.Duration(cfg.PaymentService.Timeout)*time.Second,
			log,
		)
	}
	log.Info("Integration clients initialized (UserService=%s timeout=%ds, PaymentService enabled=%t)",
		cfg.UserService.URL, cfg.UserService.Timeout, cfg.PaymentService.Enabled)

	// Репозитории работают либо через обёртку с метриками, либо напрямую через *sql.DB
	var (
		executor dbmetrics.DBExecutor
		txMgr    *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		executor = wrappedDB
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		executor = db
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	activityRepository := activityRepo.NewRepository(executor)
	bookingRepository := bookingRepo.NewRepository(executor)
	categoryRepository := categoryRepo.NewRepository(executor)
	couponRepository := couponRepo.NewRepository(executor)
	ruleRepository := ruleRepo.NewRepository(executor)
	settingsRepository := settingsRepo.NewRepository(executor)
	slotRepository := slotRepo.NewRepository(executor)
	staffRepository := staffRepo.NewRepository(executor)
	ticketRepository := ticketRepo.NewRepository(executor)

	// Инициализируем сервисы
	qrCodec := bookingsService.NewQRCodec(cfg.Booking.QRSecret)

	slotEngine := slotsService.NewEngine(
		ruleRepository,
		slotRepository,
		activityRepository,
		bookingRepository,
		metricsCollector,
		log,
	)
	bookingSvc := bookingsService.NewService(bookingRepository, qrCodec, log)
	cartSvc := cartService.NewService(
		carts,
		slotEngine,
		ticketRepository,
		couponRepository,
		settingsRepository,
		log,
	)
	catalogSvc := catalogService.NewService(
		activityRepository,
		categoryRepository,
		staffRepository,
		ticketRepository,
		log,
	)
	couponSvc := couponsService.NewService(couponRepository, log)
	settingsSvc := settingsService.NewService(settingsRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		slotEngine,
		ticketRepository,
		couponRepository,
		settingsRepository,
		carts,
		userClient,
		paymentVerifier,
		qrCodec,
		metricsCollector,
		txMgr,
		log,
	)
	listSlotsUseCase := listSlotsUC.NewUseCase(slotEngine, carts, txMgr, log)
	createRuleUseCase := createScheduleRuleUC.NewUseCase(activityRepository, ruleRepository, txMgr, log)
	generateRulesUseCase := generateScheduleRulesUC.NewUseCase(
		activityRepository,
		staffRepository,
		createRuleUseCase,
		log,
	)

	// Инициализируем handlers
	listSlots := listSlotsHandler.NewHandler(listSlotsUseCase, log)
	manualSlots := manualSlotsHandler.NewHandler(slotEngine, log)
	scheduleRules := scheduleRulesHandler.NewHandler(slotEngine, createRuleUseCase, generateRulesUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	scanBooking := scanBookingHandler.NewHandler(bookingSvc, log)
	getBookingQR := getBookingQRHandler.NewHandler(bookingSvc, log)
	cartsH := cartsHandler.NewHandler(cartSvc, log)
	catalog := catalogHandler.NewHandler(catalogSvc, log)
	couponsH := couponsHandler.NewHandler(couponSvc, log)
	settings := settingsHandler.NewHandler(settingsSvc, log)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	limited := func(h http.HandlerFunc) http.Handler {
		return limiter.Limit(h)
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.OptionalAuth)

	// Слоты на дату; X-User-ID нужен, чтобы учесть собственную корзину
	public.HandleFunc("/slots", listSlots.Handle).Methods(http.MethodGet)

	// Каталог
	public.HandleFunc("/activities", catalog.ListActivities).Methods(http.MethodGet)
	public.HandleFunc("/activities/{activityId}", catalog.GetActivity).Methods(http.MethodGet)
	public.HandleFunc("/categories", catalog.ListCategories).Methods(http.MethodGet)
	public.HandleFunc("/staff", catalog.ListStaff).Methods(http.MethodGet)
	public.HandleFunc("/tickets", catalog.ListTickets).Methods(http.MethodGet)

	// Проверка купона и ставка налога для витрины
	public.HandleFunc("/coupons/code/{code}", couponsH.GetByCode).Methods(http.MethodGet)
	public.HandleFunc("/settings", settings.Get).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Корзина ---
	protected.Handle("/carts", limited(cartsH.Create)).Methods(http.MethodPost)
	protected.HandleFunc("/carts/{cartToken}", cartsH.Get).Methods(http.MethodGet)
	protected.Handle("/carts/{cartToken}/items", limited(cartsH.AddItem)).Methods(http.MethodPost)
	protected.HandleFunc("/carts/{cartToken}/items/{itemId}", cartsH.RemoveItem).Methods(http.MethodDelete)
	protected.HandleFunc("/carts/{cartToken}/coupon", cartsH.ApplyCoupon).Methods(http.MethodPut)
	protected.HandleFunc("/carts/{cartToken}/coupon", cartsH.RemoveCoupon).Methods(http.MethodDelete)

	// --- Бронирования ---
	// Оформление заказа (покупатель или продажа на кассе)
	protected.Handle("/bookings", limited(createBooking.Handle)).Methods(http.MethodPost)

	// Список: покупатель видит только свои, персонал все
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)

	// Сканирование на входе
	staffOnly := protected.PathPrefix("").Subrouter()
	staffOnly.Use(middleware.RequireRole(domain.RoleAdmin, domain.RoleStaff))
	staffOnly.HandleFunc("/bookings/scan", scanBooking.HandleByPayload).Methods(http.MethodPost)
	staffOnly.HandleFunc("/bookings/{bookingId}/scan", scanBooking.HandleByID).Methods(http.MethodPost)

	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/qr", getBookingQR.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES
	// ============================================================

	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireRole(domain.RoleAdmin))

	admin.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Расписание ---
	admin.HandleFunc("/slots", manualSlots.Create).Methods(http.MethodPost)
	admin.HandleFunc("/slots/{slotId}", manualSlots.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/schedule-rules", scheduleRules.List).Methods(http.MethodGet)
	admin.HandleFunc("/schedule-rules", scheduleRules.Create).Methods(http.MethodPost)
	admin.HandleFunc("/schedule-rules/bulk", scheduleRules.Generate).Methods(http.MethodPost)
	admin.HandleFunc("/schedule-rules/{ruleId}", scheduleRules.Delete).Methods(http.MethodDelete)

	// --- Каталог ---
	admin.HandleFunc("/activities", catalog.CreateActivity).Methods(http.MethodPost)
	admin.HandleFunc("/activities/{activityId}", catalog.UpdateActivity).Methods(http.MethodPut)
	admin.HandleFunc("/activities/{activityId}", catalog.DeleteActivity).Methods(http.MethodDelete)
	admin.HandleFunc("/categories", catalog.CreateCategory).Methods(http.MethodPost)
	admin.HandleFunc("/categories/{categoryId}", catalog.DeleteCategory).Methods(http.MethodDelete)
	admin.HandleFunc("/staff", catalog.CreateStaff).Methods(http.MethodPost)
	admin.HandleFunc("/staff/{staffId}", catalog.UpdateStaff).Methods(http.MethodPut)
	admin.HandleFunc("/staff/{staffId}", catalog.DeleteStaff).Methods(http.MethodDelete)
	admin.HandleFunc("/tickets", catalog.CreateTicket).Methods(http.MethodPost)
	admin.HandleFunc("/tickets/{ticketId}", catalog.DeleteTicket).Methods(http.MethodDelete)

	// --- Купоны и настройки ---
	admin.HandleFunc("/coupons", couponsH.List).Methods(http.MethodGet)
	admin.HandleFunc("/coupons", couponsH.Create).Methods(http.MethodPost)
	admin.HandleFunc("/coupons/{couponId}", couponsH.SetActive).Methods(http.MethodPatch)
	admin.HandleFunc("/coupons/{couponId}", couponsH.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/settings", settings.Update).Methods(http.MethodPut)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", middleware.HeaderUserID, middleware.HeaderUserRole},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: true,
	}).Handler(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
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
