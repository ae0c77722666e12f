package provider

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
)

func newTestNewsAPI(t *testing.T, rt roundTripFunc) *NewsAPIProvider {
	t.Helper()
	p := NewNewsAPIProvider("test-key", trace.NewNoopTracerProvider().Tracer("test"))
	p.baseURL = "http://example"
	p.client = &http.Client{Transport: rt}
	return p
}

func TestNewNewsAPIProviderRequiresKey(t *testing.T) {
	if p := NewNewsAPIProvider("", trace.NewNoopTracerProvider().Tracer("test")); p != nil {
		t.Fatal("expected nil provider without an API key")
	}
}

func TestNewsAPISearchMapsAndSorts(t *testing.T) {
	t.Parallel()

	p := newTestNewsAPI(t, func(req *http.Request) (*http.Response, error) {
		if !strings.Contains(req.URL.Path, "/everything") {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		if req.Header.Get("X-Api-Key") != "test-key" {
			t.Fatal("missing API key header")
		}
		q := req.URL.Query()
		if q.Get("language") != "en" || q.Get("sortBy") != "publishedAt" {
			t.Fatalf("unexpected query params: %v", q)
		}
		return jsonResponse(http.StatusOK, `{
			"status": "ok",
			"totalResults": 3,
			"articles": [
				{"source": {"name": "Old Wire"}, "title": "Older story", "description": "d1", "url": "https://x/1", "publishedAt": "2026-08-18T08:00:00Z"},
				{"source": {"name": "Fresh Wire"}, "title": "Newest story", "description": "d2", "url": "https://x/2", "publishedAt": "2026-08-20T09:30:00Z"},
				{"source": {"name": "Ghost"}, "title": "", "description": "dropped", "url": "https://x/3", "publishedAt": "2026-08-19T00:00:00Z"}
			]
		}`), nil
	})

	articles, err := p.Search(context.Background(), `"Apple" OR "Apple stock"`, time.Now().AddDate(0, 0, -7), 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected untitled row dropped, got %d", len(articles))
	}
	if articles[0].Title != "Newest story" {
		t.Fatalf("expected newest first, got %q", articles[0].Title)
	}
	if articles[0].SourceName != "Fresh Wire" {
		t.Fatalf("unexpected source mapping: %+v", articles[0])
	}
	if articles[0].PublishedAt.IsZero() {
		t.Fatal("expected parsed publishedAt")
	}
}

func TestNewsAPISearchCapsAtMaxItems(t *testing.T) {
	t.Parallel()

	p := newTestNewsAPI(t, func(req *http.Request) (*http.Response, error) {
		var sb strings.Builder
		sb.WriteString(`{"status": "ok", "articles": [`)
		for i := 0; i < 10; i++ {
			if i > 0 {
				sb.WriteString(",")
			}
			sb.WriteString(`{"source": {"name": "s"}, "title": "t", "url": "u", "publishedAt": "2026-08-20T09:30:00Z"}`)
		}
		sb.WriteString("]}")
		return jsonResponse(http.StatusOK, sb.String()), nil
	})

	articles, err := p.Search(context.Background(), "Apple", time.Now(), 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 6 {
		t.Fatalf("expected cap at 6, got %d", len(articles))
	}
}

func TestNewsAPISearchErrorStatus(t *testing.T) {
	t.Parallel()

	p := newTestNewsAPI(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"status": "error", "code": "rateLimited", "message": "too many requests"}`), nil
	})

	if _, err := p.Search(context.Background(), "Apple", time.Now(), 20); err == nil {
		t.Fatal("expected error for non-ok status")
	}

	p = newTestNewsAPI(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusUnauthorized, `{"status": "error"}`), nil
	})
	if _, err := p.Search(context.Background(), "Apple", time.Now(), 20); err == nil {
		t.Fatal("expected error on 401")
	}
}
