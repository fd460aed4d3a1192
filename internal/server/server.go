package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LimJunBeom/junbeom-sre-gcp-project/internal/config"
	"github.com/LimJunBeom/junbeom-sre-gcp-project/internal/infrastructure/messenger"
	publichttp "github.com/LimJunBeom/junbeom-sre-gcp-project/internal/interfaces/http/public"
	"github.com/LimJunBeom/junbeom-sre-gcp-project/internal/survey/application"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// Store は Server が依存する永続化バックエンド。Mongo / メモリの両実装が満たす。
type Store interface {
	Surveys() application.SurveyRepository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Server は HTTP サーバーのライフサイクルを管理し、各ハンドラへ依存注入するコンポジションルート。
type Server struct {
	logger               *logrus.Logger
	store                Store
	surveyCommandService application.SurveyCommandService
	surveyQueryService   application.SurveyQueryService
	notifier             application.SubmissionNotifier
	publicHandler        *publichttp.Handler
	addr                 string
	allowedOrigins       []string
	staticDir            string
	serviceName          string
	serviceVersion       string
	requestTimeout       time.Duration
	resultsDefaultLimit  int
	resultsMaxLimit      int
}

// New は Config と Store を受け取り、アプリケーションサービスとハンドラを組み立てた Server を返す。
func New(cfg config.Config, store Store) *Server {
	logger := cfg.ServerLog
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	srv := &Server{
		logger:              logger,
		store:               store,
		addr:                cfg.Addr,
		allowedOrigins:      append([]string(nil), cfg.AllowedOrigins...),
		staticDir:           cfg.StaticDir,
		serviceName:         cfg.ServiceName,
		serviceVersion:      cfg.ServiceVersion,
		requestTimeout:      cfg.RequestTimeout,
		resultsDefaultLimit: cfg.ResultsDefaultLimit,
		resultsMaxLimit:     cfg.ResultsMaxLimit,
	}

	surveyRepo := store.Surveys()
	srv.surveyCommandService = application.NewSurveyCommandService(surveyRepo)
	srv.surveyQueryService = application.NewSurveyQueryService(surveyRepo)

	// 通知が無効な場合は nil インターフェースのままにしておく。
	if notifier := messenger.NewNotifier(messenger.Config{
		Endpoint:           cfg.MessengerEndpoint,
		DiscordDestination: cfg.DiscordDestination,
		SlackDestination:   cfg.SlackDestination,
		ResultsBaseURL:     cfg.ResultsBaseURL,
		Timeout:            cfg.MessengerTimeout,
	}); notifier != nil {
		srv.notifier = notifier
	}

	srv.publicHandler = publichttp.NewHandler(publichttp.Config{
		Logger:              srv.logger,
		SurveyCommands:      srv.surveyCommandService,
		SurveyQueries:       srv.surveyQueryService,
		Notifier:            srv.notifier,
		RequestTimeout:      srv.requestTimeout,
		ResultsDefaultLimit: srv.resultsDefaultLimit,
		ResultsMaxLimit:     srv.resultsMaxLimit,
		ServiceVersion:      srv.serviceVersion,
	})

	return srv
}

// Router はミドルウェアと全ルートを組み立てた http.Handler を返す。
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(s.logger))
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/health", s.healthHandler())
	router.Get("/healthz", s.readinessHandler())

	s.publicHandler.Register(router)

	s.registerStatic(router)
	return router
}

// Run はHTTPサーバーを起動し、シグナル受信まで待機する。
func (s *Server) Run() error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Infof("HTTP サーバー起動: http://%s", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	return waitForShutdown(httpServer, errChan, s)
}

// shutdown は送信中の通知を待ってから、ストアをタイムアウト付きで切断する。
func (s *Server) shutdown(ctx context.Context) {
	drainCtx, cancelDrain := context.WithTimeout(ctx, 5*time.Second)
	defer cancelDrain()
	if err := s.publicHandler.WaitNotifications(drainCtx); err != nil {
		s.logger.WithError(err).Warn("通知の完了待ちがタイムアウトしました")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.store.Close(shutdownCtx); err != nil {
		s.logger.WithError(err).Warn("ストア切断時にエラー")
	}
}

// waitForShutdown は ListenAndServe の終了と OS シグナルを監視し、graceful shutdown を実現する。
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var runErr error
	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr = err
		}
	case sig := <-sigChan:
		srv.logger.Infof("シグナル %s を受信。サーバー停止処理を開始します。", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.WithError(err).Warn("サーバー停止時にエラー")
		}
	}

	srv.shutdown(context.Background())
	return runErr
}
