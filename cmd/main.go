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
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/SMC-DartsBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-DartsBookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-DartsBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-DartsBookingService/internal/api/handlers/get_booking"
	getLoyaltyHandler "github.com/m04kA/SMC-DartsBookingService/internal/api/handlers/get_loyalty"
	getMyOffersHandler "github.com/m04kA/SMC-DartsBookingService/internal/api/handlers/get_my_offers"
	getSettingsHandler "github.com/m04kA/SMC-DartsBookingService/internal/api/handlers/get_settings"
	getTournamentsHandler "github.com/m04kA/SMC-DartsBookingService/internal/api/handlers/get_tournaments"
	getUserBookingsHandler "github.com/m04kA/SMC-DartsBookingService/internal/api/handlers/get_user_bookings"
	getWeekBookingsHandler "github.com/m04kA/SMC-DartsBookingService/internal/api/handlers/get_week_bookings"
	loginHandler "github.com/m04kA/SMC-DartsBookingService/internal/api/handlers/login"
	manageOffersHandler "github.com/m04kA/SMC-DartsBookingService/internal/api/handlers/manage_offers"
	manageTournamentsHandler "github.com/m04kA/SMC-DartsBookingService/internal/api/handlers/manage_tournaments"
	manageUsersHandler "github.com/m04kA/SMC-DartsBookingService/internal/api/handlers/manage_users"
	quotePriceHandler "github.com/m04kA/SMC-DartsBookingService/internal/api/handlers/quote_price"
	registerTournamentHandler "github.com/m04kA/SMC-DartsBookingService/internal/api/handlers/register_tournament"
	updateSettingsHandler "github.com/m04kA/SMC-DartsBookingService/internal/api/handlers/update_settings"
	"github.com/m04kA/SMC-DartsBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-DartsBookingService/internal/config"
	"github.com/m04kA/SMC-DartsBookingService/internal/domain"
	"github.com/m04kA/SMC-DartsBookingService/internal/infra/storage/snapshot"
	"github.com/m04kA/SMC-DartsBookingService/internal/ledger"
	bookingsService "github.com/m04kA/SMC-DartsBookingService/internal/service/bookings"
	loyaltyService "github.com/m04kA/SMC-DartsBookingService/internal/service/loyalty"
	offersService "github.com/m04kA/SMC-DartsBookingService/internal/service/offers"
	settingsService "github.com/m04kA/SMC-DartsBookingService/internal/service/settings"
	tournamentsService "github.com/m04kA/SMC-DartsBookingService/internal/service/tournaments"
	usersService "github.com/m04kA/SMC-DartsBookingService/internal/service/users"
	cancelBookingUC "github.com/m04kA/SMC-DartsBookingService/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/SMC-DartsBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-DartsBookingService/internal/usecase/get_available_slots"
	quotePriceUC "github.com/m04kA/SMC-DartsBookingService/internal/usecase/quote_price"
	"github.com/m04kA/SMC-DartsBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DartsBookingService/pkg/logger"
	"github.com/m04kA/SMC-DartsBookingService/pkg/metrics"
	"github.com/m04kA/SMC-DartsBookingService/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-DartsBookingService...")
	log.Info("Configuration loaded from %s", configPath)

	loc, err := cfg.Venue.Location()
	if err != nil {
		log.Fatal("Failed to load venue timezone: %v", err)
	}

	// Инициализируем метрики (если включены). С nil коллектором запись метрик - no-op.
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var (
		kv    snapshot.KeyValue
		txMgr TxManager
	)

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		kv = snapshot.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)

	default:
		log.Warn("Using in-memory snapshot storage: data is lost on restart")
		kv = snapshot.NewMemoryRepository()
		txMgr = txmanager.NewLockingManager()
	}

	store := snapshot.NewStore(kv)

	bookingLedger := ledger.New(loc, ledger.WithCancellationCutoff(cfg.Venue.CancellationCutoff()))

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(store, loc, log)
	settingsSvc := settingsService.NewService(store, txMgr, loc, log)
	offersSvc := offersService.NewService(store, txMgr, cfg.Venue.OfferValidityDays, log)
	loyaltySvc := loyaltyService.NewService(store, loc, log)
	tournamentsSvc := tournamentsService.NewService(
		store,
		txMgr,
		metricsCollector,
		cfg.Venue.TournamentHours,
		cfg.Venue.PrizeValidityDays,
		log,
	)
	usersSvc := usersService.NewService(store, txMgr, log)

	// Учетная запись администратора из конфигурации
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)
	err = usersSvc.EnsureAdmin(startupCtx, domain.User{
		ID:    cfg.Admin.ID,
		Name:  cfg.Admin.Name,
		Email: cfg.Admin.Email,
		Role:  domain.RoleAdmin,
	})
	cancelStartup()
	if err != nil {
		log.Fatal("Failed to ensure admin account: %v", err)
	}

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		store,
		bookingLedger,
		txMgr,
		metricsCollector,
		loc,
		cfg.Venue.BookingHorizonDays,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		store,
		bookingLedger,
		txMgr,
		metricsCollector,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(store, loc, cfg.Venue.BookingHorizonDays, log)
	quotePriceUseCase := quotePriceUC.NewUseCase(store, log)

	// Инициализируем handlers
	login := loginHandler.NewHandler(usersSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	quotePrice := quotePriceHandler.NewHandler(quotePriceUseCase, log)
	getTournaments := getTournamentsHandler.NewHandler(tournamentsSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getMyOffers := getMyOffersHandler.NewHandler(offersSvc, log)
	getLoyalty := getLoyaltyHandler.NewHandler(loyaltySvc, log)
	registerTournament := registerTournamentHandler.NewHandler(tournamentsSvc, log)
	getWeekBookings := getWeekBookingsHandler.NewHandler(bookingSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)
	manageOffers := manageOffersHandler.NewHandler(offersSvc, log)
	manageTournaments := manageTournamentsHandler.NewHandler(tournamentsSvc, log)
	manageUsers := manageUsersHandler.NewHandler(usersSvc, log)

	auth := middleware.NewAuth(store, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (пользователь опционален)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	public.Use(auth.Optional)

	public.HandleFunc("/auth/login", login.Handle).Methods(http.MethodPost)
	public.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)
	public.HandleFunc("/bookings/grid", getAvailableSlots.Handle).Methods(http.MethodGet)
	public.HandleFunc("/bookings/quote", quotePrice.Handle).Methods(http.MethodPost)
	public.HandleFunc("/tournaments", getTournaments.List).Methods(http.MethodGet)
	public.HandleFunc("/tournaments/{tournamentId}", getTournaments.Get).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth.Required)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{appointmentId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{appointmentId}", cancelBooking.Handle).Methods(http.MethodDelete)

	// --- Личный кабинет ---
	protected.HandleFunc("/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/me/offers", getMyOffers.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/me/loyalty", getLoyalty.Handle).Methods(http.MethodGet)

	// --- Турниры ---
	protected.HandleFunc("/tournaments/{tournamentId}/registration", registerTournament.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(auth.Required, middleware.RequireAdmin)

	admin.HandleFunc("/bookings", getWeekBookings.Handle).Methods(http.MethodGet)

	// --- Настройки площадки ---
	admin.HandleFunc("/settings", updateSettings.Update).Methods(http.MethodPut)
	admin.HandleFunc("/settings/discount-tiers", updateSettings.UpdateDiscountTiers).Methods(http.MethodPut)
	admin.HandleFunc("/settings/machines", updateSettings.AddMachine).Methods(http.MethodPost)
	admin.HandleFunc("/settings/machines/{machineId}", updateSettings.RemoveMachine).Methods(http.MethodDelete)
	admin.HandleFunc("/settings/blocked-dates", updateSettings.AddBlockedDate).Methods(http.MethodPost)
	admin.HandleFunc("/settings/blocked-dates/{date}", updateSettings.RemoveBlockedDate).Methods(http.MethodDelete)
	admin.HandleFunc("/settings/loyalty", updateSettings.UpdateLoyalty).Methods(http.MethodPut)

	// --- Специальные предложения ---
	admin.HandleFunc("/offers", manageOffers.Templates).Methods(http.MethodGet)
	admin.HandleFunc("/offers", manageOffers.CreateTemplate).Methods(http.MethodPost)
	admin.HandleFunc("/offers/{offerId}", manageOffers.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/offers/{offerId}/send", manageOffers.SendTemplate).Methods(http.MethodPost)
	admin.HandleFunc("/offers/{offerId}/recipients", manageOffers.Recipients).Methods(http.MethodGet)

	// --- Турниры ---
	admin.HandleFunc("/tournaments", manageTournaments.Create).Methods(http.MethodPost)
	admin.HandleFunc("/tournaments/{tournamentId}", manageTournaments.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/tournaments/{tournamentId}/participants/{participantId}/seed",
		manageTournaments.UpdateSeed).Methods(http.MethodPut)
	admin.HandleFunc("/tournaments/{tournamentId}/auto-seed", manageTournaments.AutoSeed).Methods(http.MethodPost)
	admin.HandleFunc("/tournaments/{tournamentId}/start", manageTournaments.Start).Methods(http.MethodPost)
	admin.HandleFunc("/tournaments/{tournamentId}/matches/{matchId}/winner",
		manageTournaments.Advance).Methods(http.MethodPut)
	admin.HandleFunc("/tournaments/{tournamentId}/prizes", manageTournaments.DistributePrizes).Methods(http.MethodPost)

	// --- Пользователи ---
	admin.HandleFunc("/users", manageUsers.List).Methods(http.MethodGet)
	admin.HandleFunc("/users/{userId}/blocked", manageUsers.SetBlocked).Methods(http.MethodPut)

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
