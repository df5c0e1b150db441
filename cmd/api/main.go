package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bankbot/config"
	_ "bankbot/docs" // Swagger docs
	bankRepo "bankbot/internal/bank/repository/sqldb"
	bankUC "bankbot/internal/bank/usecase"
	"bankbot/internal/dialogue"
	tgDelivery "bankbot/internal/dialogue/delivery/telegram"
	"bankbot/internal/dialogue/repository"
	memorySession "bankbot/internal/dialogue/repository/memory"
	redisSession "bankbot/internal/dialogue/repository/redis"
	dialogueUC "bankbot/internal/dialogue/usecase"
	"bankbot/internal/httpserver"
	"bankbot/internal/middleware"
	"bankbot/internal/nlu/entity"
	"bankbot/internal/nlu/intent"
	"bankbot/internal/router"
	"bankbot/pkg/datemath"
	"bankbot/pkg/llmprovider"
	"bankbot/pkg/log"
	"bankbot/pkg/telegram"
)

// @title       Banking Assistant API
// @description FAQ and transaction chatbot: intent classification, entity extraction and guided banking flows.
// @version     1
// @host        localhost:8080
// @schemes     http
// @securityDefinitions.apikey AdminToken
// @in          header
// @name        X-Admin-Token
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting banking assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Account and chat log store
	db, err := bankRepo.Open(ctx, bankRepo.Config{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		logger.Error(ctx, "Failed to open database: ", err)
		return
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := bankRepo.Migrate(ctx, db, cfg.Database.Driver); err != nil {
			logger.Error(ctx, "Failed to migrate database: ", err)
			return
		}
	}

	bankUseCase := bankUC.New(bankRepo.New(db, cfg.Database.Driver, logger), logger)
	if cfg.Database.Seed {
		if err := seedAccounts(ctx, bankUseCase, logger); err != nil {
			logger.Error(ctx, "Failed to seed accounts: ", err)
			return
		}
	}

	// 4. NLU
	timezone := cfg.NLU.Timezone
	dateParser, dtErr := datemath.NewParser(timezone)
	if dtErr != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", timezone, dtErr)
		dateParser, _ = datemath.NewParser("UTC")
	}
	extractor := entity.New(dateParser)

	classifier := intent.New(logger, intent.Options{
		IntentsPath:   cfg.NLU.IntentsPath,
		ModelDir:      cfg.NLU.ModelDir,
		HighThreshold: cfg.NLU.HighThreshold,
		NoiseFloor:    cfg.NLU.NoiseFloor,
		Vectorizer: intent.VectorizerOptions{
			NgramMax:    cfg.NLU.NgramMax,
			MaxFeatures: cfg.NLU.MaxFeatures,
		},
		Model: intent.ModelOptions{
			C:            cfg.NLU.C,
			MaxIter:      cfg.NLU.MaxIter,
			LearningRate: cfg.NLU.LearningRate,
		},
	})
	if cfg.NLU.TrainOnStart {
		out, err := classifier.Train(ctx)
		if err != nil {
			logger.Warnf(ctx, "Initial training failed, greetings and fallback only: %v", err)
		} else {
			logger.Infof(ctx, "Classifier trained: version=%s intents=%d examples=%d features=%d",
				out.Version, out.Intents, out.Examples, out.Features)
		}
	}

	nluRouter := router.New(logger, classifier, extractor)

	// 5. Language model fallback (optional)
	var llm dialogueUC.LLM
	providers, warnings, err := llmprovider.InitializeProviders(&cfg.LLM)
	for _, w := range warnings {
		logger.Warn(ctx, w)
	}
	switch {
	case errors.Is(err, llmprovider.ErrNoProvidersConfigured):
		logger.Warn(ctx, "No LLM provider configured, unclassified questions get an apology")
	case err != nil:
		logger.Warnf(ctx, "LLM fallback disabled: %v", err)
	default:
		llm = llmprovider.NewManager(providers, &llmprovider.Config{
			FallbackEnabled: cfg.LLM.FallbackEnabled,
			RetryAttempts:   cfg.LLM.RetryAttempts,
			RetryDelay:      parseDuration(ctx, logger, "llm.retry_delay", cfg.LLM.RetryDelay, time.Second),
			MaxTotalTimeout: parseDuration(ctx, logger, "llm.max_total_timeout", cfg.LLM.MaxTotalTimeout, time.Minute),
			Temperature:     cfg.Dialogue.LLMTemperature,
		}, logger)
		logger.Infof(ctx, "LLM fallback ready with %d provider(s)", len(providers))
	}

	// 6. Session store
	readyChecks := map[string]httpserver.ReadyCheck{
		"database": func(ctx context.Context) error { return pingDB(ctx, db) },
	}

	var sessions repository.Repository
	if cfg.Redis.Enabled {
		rdb, err := redisSession.NewClient(ctx, redisSession.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logger.Error(ctx, "Failed to connect to Redis: ", err)
			return
		}
		defer rdb.Close()
		sessions = redisSession.New(rdb, cfg.Dialogue.SessionTTL, logger)
		readyChecks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		logger.Infof(ctx, "Sessions stored in Redis at %s", cfg.Redis.Addr)
	} else {
		sessions = memorySession.New(cfg.Dialogue.SessionCapacity, cfg.Dialogue.SessionTTL)
		logger.Info(ctx, "Sessions stored in memory")
	}

	// 7. Dialogue
	dialogueUseCase := dialogueUC.New(logger, sessions, bankUseCase, nluRouter, llm, dialogue.Config{
		DefaultUsername: cfg.Dialogue.DefaultUsername,
		SystemPrompt:    cfg.Dialogue.LLMSystemPrompt,
		Confidences: dialogue.Confidences{
			QuickMatch:  cfg.Dialogue.QuickMatchConfidence,
			Flow:        cfg.Dialogue.FlowConfidence,
			Keyword:     cfg.Dialogue.KeywordConfidence,
			LLMFallback: cfg.Dialogue.LLMFallbackConfidence,
		},
	})

	// 8. Telegram channel (optional)
	var telegramHandler tgDelivery.Handler
	if cfg.Telegram.BotToken != "" {
		bot := telegram.NewBot(cfg.Telegram.BotToken)
		telegramHandler = tgDelivery.New(logger, dialogueUseCase, bot, cfg.Telegram.WebhookSecret)
		registerWebhook(ctx, logger, bot, cfg.Telegram)
	} else {
		logger.Warn(ctx, "Telegram channel skipped: TELEGRAM_BOT_TOKEN is missing")
	}

	// 9. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		ShutdownTimeout: cfg.HTTPServer.ShutdownTimeout,
		Middleware:      middleware.New(logger, cfg.Admin.Token, cfg.RateLimit.RequestsPerMin),
		ReadyChecks:     readyChecks,
		DialogueUC:      dialogueUseCase,
		BankUC:          bankUseCase,
		Router:          nluRouter,
		Classifier:      classifier,
		Extractor:       extractor,
		TelegramHandler: telegramHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 10. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

func pingDB(ctx context.Context, db *sql.DB) error {
	return db.PingContext(ctx)
}

// parseDuration reads an optional duration setting, logging and using def
// when it is missing or malformed.
func parseDuration(ctx context.Context, l log.Logger, key, value string, def time.Duration) time.Duration {
	if value == "" {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		l.Warnf(ctx, "Invalid %s %q, using %s: %v", key, value, def, err)
		return def
	}
	return d
}

// registerWebhook points Telegram at this service, discovering the public
// URL through a local ngrok API when none is configured.
func registerWebhook(ctx context.Context, l log.Logger, bot *telegram.Bot, cfg config.TelegramConfig) {
	webhookURL := cfg.WebhookURL
	if webhookURL == "" && cfg.TunnelAPIURL != "" {
		publicURL, err := detectTunnelURL(ctx, cfg.TunnelAPIURL)
		if err != nil {
			l.Warnf(ctx, "Could not detect tunnel URL: %v", err)
		} else {
			webhookURL = publicURL + "/webhook/telegram"
			l.Infof(ctx, "Auto-detected tunnel URL: %s", webhookURL)
		}
	}

	if webhookURL == "" {
		l.Warn(ctx, "Telegram webhook URL not set, updates will not be delivered")
		return
	}

	if err := bot.SetWebhook(ctx, webhookURL, cfg.WebhookSecret); err != nil {
		l.Warnf(ctx, "Failed to set Telegram webhook: %v", err)
		return
	}
	l.Infof(ctx, "Telegram webhook registered at %s", webhookURL)
}
