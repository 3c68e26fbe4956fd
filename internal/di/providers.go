package di

import (
	"context"
	"fmt"
	"time"

	"StockPulse/internal/domain/repository"
	domservice "StockPulse/internal/domain/service"
	"StockPulse/internal/handler/api"
	mid "StockPulse/internal/middleware"
	internalrepo "StockPulse/internal/repository"
	"StockPulse/internal/service/stream"
	"StockPulse/internal/service/yahoo"
	"StockPulse/internal/services/forecast"
	"StockPulse/internal/usecase"
	"StockPulse/pkg/cache"
	pkgch "StockPulse/pkg/clickhouse"
	"StockPulse/pkg/config"
	xhttp "StockPulse/pkg/http"
	pkgkafka "StockPulse/pkg/kafka"
	applogger "StockPulse/pkg/logger"
	"StockPulse/pkg/metrics"
	"StockPulse/pkg/queue"
	"StockPulse/pkg/server"

	"github.com/redis/go-redis/v9"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache creates the cache service: Redis-backed layered cache when
// enabled, in-process memory cache otherwise.
func ProvideCache(cfg *config.Config, l *applogger.Logger) cache.Service {
	if cfg.Cache.Redis.Enabled {
		opts := []cache.RedisOption{
			cache.WithRedisAddr(cfg.Cache.Redis.Addr),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
		}
		if cfg.Cache.Redis.KeyPrefix != "" {
			opts = append(opts, cache.WithRedisPrefix(cfg.Cache.Redis.KeyPrefix))
		}
		rc, err := cache.NewRedisCache(opts...)
		if err == nil {
			return cache.NewLayeredCache(rc, cache.WithLayeredMemorySize(512))
		}
		l.Warn("redis cache unavailable, using memory cache", applogger.Error(err))
	}
	return cache.NewMemoryCache()
}

// ProvideMarketData creates the Yahoo Finance market data client.
func ProvideMarketData(cfg *config.Config, l *applogger.Logger) repository.MarketData {
	opts := []yahoo.ClientOption{yahoo.WithLogger(l)}
	if cfg.Yahoo.BaseURL != "" {
		opts = append(opts, yahoo.WithBaseURL(cfg.Yahoo.BaseURL))
	}
	if cfg.Yahoo.Timeout > 0 || cfg.Yahoo.UserAgent != "" {
		hopts := []xhttp.ClientOption{}
		if cfg.Yahoo.Timeout > 0 {
			hopts = append(hopts, xhttp.WithTimeout(cfg.Yahoo.Timeout))
		}
		if cfg.Yahoo.UserAgent != "" {
			hopts = append(hopts, xhttp.WithUserAgent(cfg.Yahoo.UserAgent))
		}
		opts = append(opts, yahoo.WithHTTPClient(xhttp.NewClient(hopts...)))
	}
	return yahoo.New(opts...)
}

// ProvideForecaster creates the prediction engine.
func ProvideForecaster(cfg *config.Config, l *applogger.Logger) domservice.Forecaster {
	eng := forecast.New(forecast.Config{
		Lookback:      cfg.Forecast.Lookback,
		TrainFraction: cfg.Forecast.TrainFraction,
	})
	eng.SetLogger(l)
	return eng
}

// ProvideAnalysisUseCase creates the cached read-path use case.
func ProvideAnalysisUseCase(
	market repository.MarketData,
	c cache.Service,
	m repository.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.AnalysisUseCase {
	return usecase.NewAnalysisUseCase(market, c, m, l, usecase.AnalysisTTLs{
		History: cfg.Cache.HistoryTTL,
		Quote:   cfg.Cache.QuoteTTL,
		Profile: cfg.Cache.ProfileTTL,
	})
}

// ProvideForecastUseCase creates the forecast use case.
func ProvideForecastUseCase(
	analysis *usecase.AnalysisUseCase,
	forecaster domservice.Forecaster,
	c cache.Service,
	m repository.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.ForecastUseCase {
	return usecase.NewForecastUseCase(analysis, forecaster, c, m, l, cfg.Forecast.CacheTTL)
}

// ProvideClickHouseClient creates a ClickHouse client when the tick
// backend needs one; returns nil otherwise.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !needsClickHouse(cfg) {
		return nil, nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, pkgch.TickSchema(cfg.ClickHouse.Database, "ticks")); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

func needsClickHouse(cfg *config.Config) bool {
	return cfg.Backend.Type == "clickhouse" || cfg.Kafka.Consumer.GroupID != ""
}

// ProvideKafkaProducer creates a Kafka producer when the tick backend is
// Kafka; returns nil otherwise.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if cfg.Backend.Type != "kafka" {
		return nil, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideTickStorage creates the ClickHouse tick storage repository.
func ProvideTickStorage(chClient *pkgch.Client, cfg *config.Config) repository.Storage {
	if chClient == nil {
		return nil
	}
	return internalrepo.NewClickHouseStorage(chClient.DB(), cfg.ClickHouse.Database+".ticks")
}

// ProvideTickPublisher creates the Kafka tick publisher repository.
func ProvideTickPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
}

// ProvideKafkaConsumer creates a Kafka consumer configured from YAML.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if cfg.Kafka.Consumer.GroupID == "" {
		return nil, nil
	}

	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithFetchBytes(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideKafkaTicksHandler registers the handler for the ticks topic.
func ProvideKafkaTicksHandler(store repository.Storage, m repository.Metrics, cfg *config.Config) *usecase.KafkaTicksHandler {
	if store == nil {
		return nil
	}
	return usecase.NewKafkaTicksHandler(cfg.Kafka.Topic, store, m)
}

// ProvideTickStream creates the WebSocket tick stream.
func ProvideTickStream(cfg *config.Config, l *applogger.Logger) repository.TickStream {
	if cfg.Backend.Type == "none" || cfg.Stream.WebSocketURL == "" {
		return nil
	}
	return stream.New(
		l,
		cfg.Stream.APIKey,
		cfg.Stream.WebSocketURL,
		cfg.Stream.Symbols,
		cfg.Stream.ReconnectDelay,
		cfg.Stream.PingInterval,
	)
}

// ProvideTickProcessor creates the tick processor use case.
func ProvideTickProcessor(
	pub repository.Publisher,
	store repository.Storage,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.TickProcessor {
	return usecase.NewTickProcessor(pub, store, m, cfg.Backend.Type)
}

// ProvideTickCollector creates the tick collector with the realtime
// pipeline between the WebSocket feed and the backend.
func ProvideTickCollector(
	ts repository.TickStream,
	processor *usecase.TickProcessor,
	m repository.Metrics,
) *usecase.TickCollector {
	if ts == nil {
		return nil
	}
	pipe := mid.NewRealtimePipeline(processor, m,
		mid.WithMaxRPS(50),
		mid.WithBufferSize(2000),
	)
	return usecase.NewTickCollector(ts, processor, m, pipe)
}

// ProvideStocksHandler creates the HTTP handler for the API routes.
func ProvideStocksHandler(
	l *applogger.Logger,
	analysis *usecase.AnalysisUseCase,
	forecasts *usecase.ForecastUseCase,
	store repository.Storage,
) *api.StocksHandler {
	h := api.NewStocksHandler(l, analysis, forecasts)
	if store != nil {
		h.SetStorageHealth(store)
		h.SetTicks(usecase.NewTicksUseCase(store))
	}
	return h
}

// ProvideWarmup creates the Redis-backed warmup queue and its scheduler.
// Warmup needs Redis; it is skipped when disabled or when Redis is not
// configured.
func ProvideWarmup(
	cfg *config.Config,
	l *applogger.Logger,
	forecasts *usecase.ForecastUseCase,
	c cache.Service,
) (*queue.RedisQueue, *usecase.WarmupScheduler) {
	if !cfg.Warmup.Enabled || cfg.Cache.Redis.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.Redis.Addr,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
	})

	job := usecase.NewWarmupJob(forecasts, l)
	q := NewWarmupQueue(l, client, job, cfg.Warmup.Queue)
	sched := usecase.NewWarmupScheduler(q, c, cfg.Warmup.Symbols, "", cfg.Warmup.Interval, l)
	return q, sched
}

// NewWarmupQueue builds the queue with a small worker pool; forecast
// precompute is IO-bound on the upstream provider, so concurrency stays
// low to avoid rate limits.
func NewWarmupQueue(l *applogger.Logger, client *redis.Client, job queue.Job, name string) *queue.RedisQueue {
	opts := []queue.RedisQueueOption{}
	if name != "" {
		opts = append(opts, queue.WithKeyPrefix(name))
	}
	q := queue.NewRedisQueue(l, &queue.QueueConfig{
		Workers:    2,
		QueueSize:  100,
		RetryLimit: 3,
		RetryDelay: 30 * time.Second,
	}, client, queue.ModeProducerConsumer, opts...)
	q.RegisterJob(job)
	return q
}

// ProvideApp assembles the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	collector *usecase.TickCollector,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaTicksHandler,
	chClient *pkgch.Client,
	handler *api.StocksHandler,
	warmupQ *queue.RedisQueue,
	warmupSched *usecase.WarmupScheduler,
) *server.App {
	var mh pkgkafka.MessageHandler
	if kh != nil {
		mh = kh
	}
	app := server.New(cfg, l, collector, consumer, mh, chClient)
	app.SetHTTPHandler(handler)
	app.SetWarmup(warmupQ, warmupSched)
	if collector != nil {
		app.TickProc = collector.Processor()
	}
	return app
}
