package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	stan "github.com/nats-io/stan.go"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/example/akura-order-service/internal/adapter/cache"
	"github.com/example/akura-order-service/internal/adapter/docsink"
	"github.com/example/akura-order-service/internal/adapter/httpapi"
	"github.com/example/akura-order-service/internal/adapter/natsstan"
	"github.com/example/akura-order-service/internal/adapter/repo"
	"github.com/example/akura-order-service/internal/config"
	"github.com/example/akura-order-service/internal/domain"
	"github.com/example/akura-order-service/internal/receipt"
	"github.com/example/akura-order-service/internal/usecase"
)

const serviceName = "akura-order-service"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zlog.With().Str("service", serviceName).Logger()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		logger.Fatal().Err(err).Msg("db connect")
	}
	defer pool.Close()

	if err := repo.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("init schema")
	}
	orderRepo := repo.NewPostgresOrderRepo(pool)

	var orderCache domain.OrderCache
	if cfg.Redis.Addr != "" {
		rdb := goredis.NewClient(&goredis.Options{Addr: cfg.Redis.Addr})
		orderCache = cache.NewRedisOrderCache(rdb, logger)
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("using redis cache")
	} else {
		orderCache = cache.NewMemoryOrderCache()
	}

	if err := (usecase.LoadCache{Repo: orderRepo, Cache: orderCache}).Execute(ctx); err != nil {
		logger.Fatal().Err(err).Msg("warm cache")
	}

	pubClientID := cfg.Stan.ClientID
	if pubClientID == "" {
		pubClientID = fmt.Sprintf("akura-pub-%d", time.Now().UnixNano())
	}
	sc, err := stan.Connect(cfg.Stan.ClusterID, pubClientID, stan.NatsURL(cfg.Stan.URL))
	if err != nil {
		logger.Fatal().Err(err).Msg("stan connect")
	}
	defer sc.Close()
	events := &natsstan.Publisher{Conn: sc, Subject: cfg.Stan.EventSubject}

	ingest := usecase.ProcessIncomingOrder{Repo: orderRepo, Cache: orderCache}
	sub := &natsstan.Subscriber{
		ClusterID: cfg.Stan.ClusterID,
		URL:       cfg.Stan.URL,
		Subject:   cfg.Stan.Subject,
		Durable:   cfg.Stan.Durable,
		Log:       logger,
	}
	go func() {
		err := sub.Subscribe(ctx, func(hCtx context.Context, raw []byte) error {
			if err := ingest.Execute(hCtx, raw); err != nil {
				return err
			}
			httpapi.OrdersProcessed.Inc()
			var o domain.Order
			if err := json.Unmarshal(raw, &o); err == nil && !o.TotalsConsistent() {
				logger.Warn().Str("order_id", o.OrderID).Msg("order totals inconsistent")
			}
			return nil
		})
		if err != nil {
			logger.Error().Err(err).Msg("stan subscribe")
		}
	}()

	var sink domain.DocumentSink = docsink.Discard{}
	if cfg.Receipts.Dir != "" {
		sink = &docsink.ArchiveSink{Dir: cfg.Receipts.Dir}
	}
	renderer := receipt.Renderer{Brand: cfg.Receipts.Brand}

	server := httpapi.NewServer(httpapi.Deps{
		Get:     usecase.GetOrderByID{Cache: orderCache},
		List:    usecase.ListOrders{Cache: orderCache},
		Update:  usecase.UpdateOrderStatus{Repo: orderRepo, Cache: orderCache, Events: events},
		Receipt: usecase.GenerateReceipt{Cache: orderCache, Renderer: renderer},
		Sink:    sink,
		Log:     logger,
	})

	srv := &http.Server{Addr: cfg.Addr, Handler: server.Router}
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("http listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	_ = srv.Shutdown(shutdownCtx)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
