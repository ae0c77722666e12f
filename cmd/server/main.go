package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shamanth-8/stocksenti/internal/analysis"
	"github.com/Shamanth-8/stocksenti/internal/bot"
	"github.com/Shamanth-8/stocksenti/internal/cache"
	"github.com/Shamanth-8/stocksenti/internal/classifier"
	"github.com/Shamanth-8/stocksenti/internal/config"
	"github.com/Shamanth-8/stocksenti/internal/db"
	"github.com/Shamanth-8/stocksenti/internal/domain"
	"github.com/Shamanth-8/stocksenti/internal/handler"
	"github.com/Shamanth-8/stocksenti/internal/job"
	"github.com/Shamanth-8/stocksenti/internal/provider"
	"github.com/Shamanth-8/stocksenti/internal/repository"
	"github.com/Shamanth-8/stocksenti/internal/service"
	"github.com/Shamanth-8/stocksenti/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/Shamanth-8/stocksenti/docs"
)

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	initPostgresFunc       = db.InitPostgres
	initRedisFunc          = cache.InitRedis
	initTracerFunc         = tracing.InitTracer
	newReportRepoFunc      = repository.NewReportRepository
	newAnalysisServiceFunc = service.NewAnalysisService
	newWatchlistPollerFunc = job.NewWatchlistPoller
	startPollerFunc        = func(p *job.WatchlistPoller, ctx context.Context) { go p.Start(ctx) }
	startTelegramBotFunc   = bot.StartTelegramBot
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           StockSenti API
// @version         1.0
// @description     News retrieval and sentiment aggregation for stocks.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	initPostgresFunc(ctx, cfg.DatabaseURL)
	initRedisFunc(ctx, cfg.RedisURL)

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	var store service.ReportStore
	if db.Pool != nil {
		reportRepo := newReportRepoFunc(db.Pool, tracer)
		if err := reportRepo.RunMigrations(ctx); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
		store = reportRepo
	}

	// Providers are nil without their credential; the pipeline reports
	// PROVIDER_UNAVAILABLE for runs that prefer a missing one.
	var symbols analysis.SymbolSearcher
	var companyNews analysis.CompanyNewsSource
	finnhub := provider.NewFinnhubProvider(cfg.FinnhubAPIKey, tracer)
	if finnhub != nil {
		symbols = finnhub
		companyNews = finnhub
	}
	var keywordNews analysis.KeywordNewsSource
	newsapi := provider.NewNewsAPIProvider(cfg.NewsAPIKey, tracer)
	if newsapi != nil {
		keywordNews = newsapi
	}

	var model classifier.Classifier
	if hf := classifier.NewHuggingFaceClassifier(cfg.HFAPIToken, cfg.HFModelID, tracer); hf != nil {
		model = hf
	} else if oa := classifier.NewOpenAIClassifier(cfg.OpenAIAPIKey, cfg.OpenAIModel); oa != nil {
		log.Println("HF_API_TOKEN not set, classifying through OpenAI")
		model = oa
	}

	regions := analysis.NewRegionTable(cfg.RegionCompanies)
	pipeline := analysis.NewPipeline(tracer, symbols, companyNews, keywordNews, model, regions)

	analysisService := newAnalysisServiceFunc(tracer, pipeline, store, cache.Client,
		time.Duration(cfg.CacheTTLSecs)*time.Second)

	watchProvider, err := domain.ParseProvider(cfg.WatchlistProvider)
	if err != nil {
		log.Printf("invalid WATCHLIST_PROVIDER %q, using finnhub", cfg.WatchlistProvider)
		watchProvider = domain.ProviderFinnhub
	}
	poller := newWatchlistPollerFunc(tracer, analysisService, cfg.Watchlist, watchProvider,
		cfg.DefaultMaxArticles, cfg.DefaultLookbackDays, cfg.WatchlistPollSecs)
	startPollerFunc(poller, ctx)

	startTelegramBotFunc(cfg.TelegramBotToken, bot.Options{
		Analyzer:     analysisService,
		Regions:      regions,
		MaxArticles:  cfg.DefaultMaxArticles,
		LookbackDays: cfg.DefaultLookbackDays,
		HasFinnhub:   finnhub != nil,
		HasNewsAPI:   newsapi != nil,
	})

	h := newHandlerFunc(tracer, analysisService, cfg.DefaultMaxArticles, cfg.DefaultLookbackDays)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("stocksenti"))

	h.RegisterRoutes(r, cfg.APIKey)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
