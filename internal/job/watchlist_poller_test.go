package job

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Shamanth-8/stocksenti/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

type stubAnalyzer struct {
	mu        sync.Mutex
	companies []string
}

func (s *stubAnalyzer) Analyze(ctx context.Context, req domain.FetchRequest) (domain.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies = append(s.companies, req.Company)
	return domain.Report{Reason: domain.ReasonOK, State: domain.StateDone}, nil
}

func (s *stubAnalyzer) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.companies)
}

func TestNewWatchlistPollerInterval(t *testing.T) {
	tracer := trace.NewNoopTracerProvider().Tracer("test")
	poller := NewWatchlistPoller(tracer, &stubAnalyzer{}, []string{"Apple"}, domain.ProviderFinnhub, 10, 7, 2)
	if poller.pollInterval != 2*time.Second {
		t.Fatalf("expected 2s interval, got %v", poller.pollInterval)
	}
}

func TestWatchlistPollerStart(t *testing.T) {
	t.Parallel()

	tracer := trace.NewNoopTracerProvider().Tracer("test")
	stub := &stubAnalyzer{}
	poller := NewWatchlistPoller(tracer, stub, []string{"Apple", "Tesla"}, domain.ProviderFinnhub, 10, 7, 1)

	ctx, cancel := context.WithCancel(context.Background())
	go poller.Start(ctx)

	eventually(t, func() bool { return stub.calls() > 0 })
	cancel()
}

func TestWatchlistPollerEmptyListReturns(t *testing.T) {
	tracer := trace.NewNoopTracerProvider().Tracer("test")
	poller := NewWatchlistPoller(tracer, &stubAnalyzer{}, nil, domain.ProviderFinnhub, 10, 7, 1)

	done := make(chan struct{})
	go func() {
		poller.Start(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not return for an empty watchlist")
	}
}

func TestAnalyzeNextRoundRobin(t *testing.T) {
	tracer := trace.NewNoopTracerProvider().Tracer("test")
	stub := &stubAnalyzer{}
	poller := NewWatchlistPoller(tracer, stub, []string{"Apple", "Tesla"}, domain.ProviderFinnhub, 10, 7, 1)

	idx := 0
	poller.analyzeNext(context.Background(), &idx)
	poller.analyzeNext(context.Background(), &idx)
	poller.analyzeNext(context.Background(), &idx)

	want := []string{"Apple", "Tesla", "Apple"}
	for i, company := range want {
		if stub.companies[i] != company {
			t.Fatalf("unexpected round-robin order: %+v", stub.companies)
		}
	}
}

func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(100 * time.Millisecond)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met")
}
