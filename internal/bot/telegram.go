package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Shamanth-8/stocksenti/internal/analysis"
	"github.com/Shamanth-8/stocksenti/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// Analyzer is the slice of the analysis service the bot needs.
type Analyzer interface {
	Analyze(ctx context.Context, req domain.FetchRequest) (domain.Report, error)
}

// Options carries everything the bot needs beyond its token.
type Options struct {
	Analyzer     Analyzer
	Regions      *analysis.RegionTable
	MaxArticles  int
	LookbackDays int

	// HasFinnhub and HasNewsAPI tell the bot which providers it may route to.
	HasFinnhub bool
	HasNewsAPI bool
}

const helpText = `I read recent news headlines for a company and score their sentiment.

Commands:
/analyze <company> - run a sentiment analysis
/examples - companies to try
/help - this message

You can also just send a company name.`

const examplesText = `Try:
Apple
Tesla
Microsoft
Reliance Industries
Infosys`

// StartTelegramBot launches the bot in the background. An empty token skips
// startup so the rest of the service still runs.
func StartTelegramBot(token string, opts Options) {
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}

	b.Handle("/start", func(c tele.Context) error {
		return c.Send("Hi! Send me a company name and I'll tell you how the news feels about it.\n\n" + helpText)
	})

	b.Handle("/help", func(c tele.Context) error {
		return c.Send(helpText)
	})

	b.Handle("/examples", func(c tele.Context) error {
		return c.Send(examplesText)
	})

	b.Handle("/analyze", func(c tele.Context) error {
		company := strings.TrimSpace(strings.Join(c.Args(), " "))
		if company == "" {
			return c.Send("Usage: /analyze <company>\nExample: /analyze Apple")
		}
		return runAnalysis(c, opts, company)
	})

	b.Handle(tele.OnText, func(c tele.Context) error {
		company := strings.TrimSpace(c.Text())
		if company == "" || strings.HasPrefix(company, "/") {
			return c.Send(helpText)
		}
		return runAnalysis(c, opts, company)
	})

	log.Println("Telegram bot started")
	go b.Start()
}

func runAnalysis(c tele.Context, opts Options, company string) error {
	provider, ok := pickProvider(company, opts)
	if !ok {
		return c.Send("No news provider is configured. Set FINNHUB_API_KEY or NEWSAPI_KEY.")
	}

	if err := c.Send(fmt.Sprintf("Analyzing news for %s via %s...", company, provider)); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	report, err := opts.Analyzer.Analyze(ctx, domain.FetchRequest{
		Company:      company,
		Provider:     provider,
		MaxArticles:  opts.MaxArticles,
		LookbackDays: opts.LookbackDays,
	})
	if err != nil {
		return c.Send(fmt.Sprintf("Analysis for %s failed: %v", company, err))
	}

	return c.Send(renderReport(company, report))
}

// pickProvider routes known non-US issuers to keyword search, everything else
// to symbol-based lookup, constrained to the providers actually configured.
func pickProvider(company string, opts Options) (domain.Provider, bool) {
	preferNewsAPI := opts.Regions != nil && opts.Regions.Matches(company)

	switch {
	case preferNewsAPI && opts.HasNewsAPI:
		return domain.ProviderNewsAPI, true
	case opts.HasFinnhub:
		return domain.ProviderFinnhub, true
	case opts.HasNewsAPI:
		return domain.ProviderNewsAPI, true
	default:
		return "", false
	}
}

func renderReport(company string, report domain.Report) string {
	if report.Reason != domain.ReasonOK {
		return renderDegraded(company, report.Reason)
	}

	result := report.Result
	var sb strings.Builder
	fmt.Fprintf(&sb, "News sentiment for %s", company)
	if report.Symbol != "" {
		fmt.Fprintf(&sb, " (%s)", report.Symbol)
	}
	fmt.Fprintf(&sb, "\n\nVerdict: %s (avg confidence %.0f%%)\n", result.DominantLabel, result.AverageConfidence*100)
	fmt.Fprintf(&sb, "Articles: %d\n", result.Total)
	fmt.Fprintf(&sb, "  Positive: %d (%.0f%%)\n", result.Counts.Positive, result.Percentage(domain.SentimentPositive)*100)
	fmt.Fprintf(&sb, "  Negative: %d (%.0f%%)\n", result.Counts.Negative, result.Percentage(domain.SentimentNegative)*100)
	fmt.Fprintf(&sb, "  Neutral: %d (%.0f%%)\n", result.Counts.Neutral, result.Percentage(domain.SentimentNeutral)*100)

	if result.TopPositive != nil {
		fmt.Fprintf(&sb, "\nMost positive:\n%s\n", result.TopPositive.Title)
	}
	if result.TopNegative != nil {
		fmt.Fprintf(&sb, "\nMost negative:\n%s\n", result.TopNegative.Title)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderDegraded(company string, reason domain.ReasonCode) string {
	switch reason {
	case domain.ReasonSymbolUnresolved:
		return fmt.Sprintf("I couldn't resolve %q to a stock symbol. Try the full company name, or /examples.", company)
	case domain.ReasonProviderUnavailable:
		return "That news provider isn't configured right now."
	case domain.ReasonProviderError:
		return fmt.Sprintf("The news provider had an error while fetching %s. Try again in a bit.", company)
	case domain.ReasonNoResults:
		return fmt.Sprintf("No recent news found for %s.", company)
	default:
		return fmt.Sprintf("Analysis for %s came back empty (%s).", company, reason)
	}
}
