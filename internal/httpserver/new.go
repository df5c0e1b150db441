package httpserver

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"bankbot/internal/bank"
	"bankbot/internal/dialogue"
	tgDelivery "bankbot/internal/dialogue/delivery/telegram"
	"bankbot/internal/middleware"
	nluHTTP "bankbot/internal/nlu/delivery/http"
	"bankbot/internal/router"
	"bankbot/pkg/log"
)

const defaultShutdownTimeout = 10 * time.Second

// ReadyCheck reports whether a backing service can take traffic.
type ReadyCheck func(ctx context.Context) error

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin             *gin.Engine
	l               log.Logger
	port            int
	mode            string
	environment     string
	shutdownTimeout time.Duration
	mw              middleware.Middleware
	readyChecks     map[string]ReadyCheck

	// Domains
	dialogueUC      dialogue.UseCase
	bankUC          bank.UseCase
	router          router.Router
	classifier      nluHTTP.Classifier
	extractor       nluHTTP.Extractor
	telegramHandler tgDelivery.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger          log.Logger
	Port            int
	Mode            string
	Environment     string
	ShutdownTimeout time.Duration
	Middleware      middleware.Middleware
	ReadyChecks     map[string]ReadyCheck

	DialogueUC dialogue.UseCase
	BankUC     bank.UseCase
	Router     router.Router
	Classifier nluHTTP.Classifier
	Extractor  nluHTTP.Extractor

	// Optional
	TelegramHandler tgDelivery.Handler
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		shutdownTimeout: cfg.ShutdownTimeout,
		mw:              cfg.Middleware,
		readyChecks:     cfg.ReadyChecks,
		dialogueUC:      cfg.DialogueUC,
		bankUC:          cfg.BankUC,
		router:          cfg.Router,
		classifier:      cfg.Classifier,
		extractor:       cfg.Extractor,
		telegramHandler: cfg.TelegramHandler,
	}
	if srv.shutdownTimeout <= 0 {
		srv.shutdownTimeout = defaultShutdownTimeout
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.dialogueUC == nil {
		return errors.New("dialogue usecase is required")
	}
	if srv.bankUC == nil {
		return errors.New("bank usecase is required")
	}
	if srv.router == nil || srv.classifier == nil || srv.extractor == nil {
		return errors.New("router, classifier and extractor are required")
	}
	return nil
}

// Handler exposes the gin engine, mainly for tests.
func (srv HTTPServer) Handler() *gin.Engine {
	return srv.gin
}
