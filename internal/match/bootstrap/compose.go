// ============================================================================
// BOOTSTRAP (Compose Root)
// ============================================================================
//
// Точка сборки Match Service:
// 1. Инфраструктура: RabbitMQ (+ топология), опционально PostgreSQL, JWT
// 2. Stores: in-memory либо PostgreSQL (STORE_BACKEND)
// 3. Bootstrap-загрузка riders/businesses ДО старта consumer-а
// 4. Use Cases + EventRouter
// 5. AMQP consumer (сердце сервиса) + ops HTTP сервер + WS hub
//
// Все зависимости создаются здесь и передаются в конструкторы —
// реализацию store можно подменить (memory ↔ postgres) без изменения
// бизнес-логики.
//
// ============================================================================

package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	inamqp "github.com/vismithaN/advertisement/internal/match/adapter/in/in_amqp"
	"github.com/vismithaN/advertisement/internal/match/adapter/in/transport"
	outamqp "github.com/vismithaN/advertisement/internal/match/adapter/out/out_amqp"
	outws "github.com/vismithaN/advertisement/internal/match/adapter/out/out_ws"
	"github.com/vismithaN/advertisement/internal/match/adapter/out/repo"
	"github.com/vismithaN/advertisement/internal/match/application/ports/out"
	"github.com/vismithaN/advertisement/internal/match/application/usecase"
	"github.com/vismithaN/advertisement/internal/match/loader"
	"github.com/vismithaN/advertisement/internal/shared/auth"
	"github.com/vismithaN/advertisement/internal/shared/config"
	db_conn "github.com/vismithaN/advertisement/internal/shared/db"
	"github.com/vismithaN/advertisement/internal/shared/logger"
	"github.com/vismithaN/advertisement/internal/shared/mq"
	"github.com/vismithaN/advertisement/internal/shared/ws"
)

// Run запускает Match Service со всеми его компонентами.
// Блокирует до отмены ctx.
func Run(ctx context.Context, cfg config.Config, log *logger.Logger) {
	log.Info(logger.Entry{Action: "match_service_starting", Message: "initializing match service"})

	// ========================================================================
	// СЛОЙ 1: ИНФРАСТРУКТУРА
	// ========================================================================

	mqConn, err := mq.NewRabbitMQ(ctx, cfg.RabbitMQ, log)
	if err != nil {
		log.Fatal(logger.Entry{
			Action:  "rabbitmq_connection_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}
	defer mqConn.Close()

	if err := mq.SetupTopology(mqConn, log); err != nil {
		log.Fatal(logger.Entry{
			Action:  "rabbitmq_topology_setup_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	// ========================================================================
	// СЛОЙ 2: STORES (keyed state)
	// ========================================================================

	var profiles out.ProfileStore
	var catalog out.CatalogStore

	switch cfg.Ops.StoreBackend {
	case "postgres":
		dbPool, err := db_conn.NewPool(ctx, cfg.Database, log)
		if err != nil {
			log.Fatal(logger.Entry{
				Action:  "db_connection_failed",
				Message: err.Error(),
				Error:   &logger.ErrObj{Msg: err.Error()},
			})
		}
		defer db_conn.Close(dbPool, log)

		if err := db_conn.Migrate(ctx, dbPool); err != nil {
			log.Fatal(logger.Entry{
				Action:  "db_migration_failed",
				Message: err.Error(),
				Error:   &logger.ErrObj{Msg: err.Error()},
			})
		}

		profiles = repo.NewProfilePgRepository(dbPool, log)
		catalog = repo.NewCatalogPgRepository(dbPool, log)

	default:
		profiles = repo.NewMemoryProfileStore()
		catalog = repo.NewMemoryCatalogStore()
	}

	// ========================================================================
	// СЛОЙ 3: BOOTSTRAP-ДАННЫЕ
	// ========================================================================
	// Каталог и стартовые профили грузятся ДО первого live-события.

	boot := loader.NewLoader(profiles, catalog, log)
	if err := boot.Load(ctx, cfg.Data.RidersFile, cfg.Data.BusinessesFile); err != nil {
		log.Fatal(logger.Entry{
			Action:  "bootstrap_load_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	// ========================================================================
	// СЛОЙ 4: WEBSOCKET HUB (ops-фид матчей)
	// ========================================================================

	hub := ws.NewHub(jwtService.ExtractSubject, log)
	go hub.Run(ctx)

	// ========================================================================
	// СЛОЙ 5: PUBLISHERS / NOTIFIERS
	// ========================================================================

	adPublisher := outamqp.NewAdEventPublisher(mqConn, log)
	matchNotifier := outws.NewMatchFeedNotifier(hub, log)

	// ========================================================================
	// СЛОЙ 6: USE CASES + ROUTER
	// ========================================================================

	statusUC := usecase.NewUpdateRiderStatusService(profiles, log)
	interestUC := usecase.NewUpdateRiderInterestService(profiles, log)
	requestUC := usecase.NewHandleRideRequestService(profiles, catalog, adPublisher, matchNotifier, log)

	router := usecase.NewEventRouter(statusUC, interestUC, requestUC, log)

	// ========================================================================
	// СЛОЙ 7: CONSUMER (сердце сервиса)
	// ========================================================================

	consumer := inamqp.NewEventConsumer(mqConn, router, log)
	go func() {
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			// Неизвестный тип события или потеря канала — unrecoverable
			log.Fatal(logger.Entry{
				Action:  "event_consumer_failed",
				Message: err.Error(),
				Error:   &logger.ErrObj{Msg: err.Error()},
			})
		}
	}()

	// ========================================================================
	// СЛОЙ 8: OPS HTTP СЕРВЕР
	// ========================================================================

	httpHandler := transport.NewHTTPHandler(profiles, catalog, hub, log)
	mux := http.NewServeMux()
	httpHandler.RegisterRoutes(mux, transport.OpsAuthMiddleware(jwtService, log))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Ops.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info(logger.Entry{
			Action:  "ops_http_listening",
			Message: server.Addr,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(logger.Entry{
				Action:  "ops_http_failed",
				Message: err.Error(),
				Error:   &logger.ErrObj{Msg: err.Error()},
			})
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)

	log.Info(logger.Entry{Action: "match_service_stopped", Message: "shutdown complete"})
}
