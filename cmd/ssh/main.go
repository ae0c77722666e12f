package main

import (
	"context"
	"fmt"
	"log"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"github.com/Shamanth-8/stocksenti/internal/analysis"
	"github.com/Shamanth-8/stocksenti/internal/cache"
	"github.com/Shamanth-8/stocksenti/internal/classifier"
	"github.com/Shamanth-8/stocksenti/internal/config"
	"github.com/Shamanth-8/stocksenti/internal/db"
	"github.com/Shamanth-8/stocksenti/internal/provider"
	"github.com/Shamanth-8/stocksenti/internal/repository"
	"github.com/Shamanth-8/stocksenti/internal/service"
	"github.com/Shamanth-8/stocksenti/internal/tui"
	"github.com/Shamanth-8/stocksenti/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/joho/godotenv"
	gossh "golang.org/x/crypto/ssh"
)

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	initPostgresFunc       = db.InitPostgres
	initRedisFunc          = cache.InitRedis
	initTracerFunc         = tracing.InitTracer
	newReportRepoFunc      = repository.NewReportRepository
	newAnalysisServiceFunc = service.NewAnalysisService
	newWishServerFunc      = wish.NewServer
	setupSignalNotify      = ossignal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
)

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

	var symbols analysis.SymbolSearcher
	var companyNews analysis.CompanyNewsSource
	if finnhub := provider.NewFinnhubProvider(cfg.FinnhubAPIKey, tracer); finnhub != nil {
		symbols = finnhub
		companyNews = finnhub
	}
	var keywordNews analysis.KeywordNewsSource
	if newsapi := provider.NewNewsAPIProvider(cfg.NewsAPIKey, tracer); newsapi != nil {
		keywordNews = newsapi
	}

	var model classifier.Classifier
	if hf := classifier.NewHuggingFaceClassifier(cfg.HFAPIToken, cfg.HFModelID, tracer); hf != nil {
		model = hf
	} else if oa := classifier.NewOpenAIClassifier(cfg.OpenAIAPIKey, cfg.OpenAIModel); oa != nil {
		model = oa
	}

	regions := analysis.NewRegionTable(cfg.RegionCompanies)
	pipeline := analysis.NewPipeline(tracer, symbols, companyNews, keywordNews, model, regions)
	analysisService := newAnalysisServiceFunc(tracer, pipeline, store, cache.Client,
		time.Duration(cfg.CacheTTLSecs)*time.Second)

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.SSHPort)

	srv, err := newWishServerFunc(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(cfg.SSHHostKeyPath),
		wish.WithPublicKeyAuth(func(ctx ssh.Context, key ssh.PublicKey) bool {
			log.Printf("SSH session: user=%s fingerprint=%s", ctx.User(), gossh.FingerprintSHA256(key))
			return true
		}),
		wish.WithMiddleware(
			bubbletea.Middleware(func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
				appModel := tui.NewAppModel(tui.Services{
					Analyzer:     analysisService,
					MaxArticles:  cfg.DefaultMaxArticles,
					LookbackDays: cfg.DefaultLookbackDays,
					Username:     s.User(),
				})
				pty, _, _ := s.Pty()
				appModel.SetSize(pty.Window.Width, pty.Window.Height)

				return appModel, []tea.ProgramOption{tea.WithAltScreen()}
			}),
			logging.Middleware(),
		),
	)
	if err != nil {
		log.Fatalf("failed to create SSH server: %v", err)
	}

	if srv != nil {
		go func() {
			log.Printf("SSH server listening on %s", addr)
			if err := srv.ListenAndServe(); err != nil {
				log.Printf("SSH server stopped: %v", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down SSH server...")

	cancel()

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("SSH server shutdown error: %v", err)
		}
	}

	log.Println("SSH server exited")
}
