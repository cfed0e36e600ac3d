package chi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	logpkg "github.com/kailas-cloud/docq/internal/logger"
)

func TestJSONRecoverer(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	h := JSONRecoverer(zap.New(core))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	if got := decodeError(t, rr).Code; got != CodeInternalError {
		t.Errorf("code = %q, want %q", got, CodeInternalError)
	}
	if logs.FilterMessage("panic recovered").Len() != 1 {
		t.Error("expected one panic log line")
	}
}

func TestWideEventMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	var inner *zap.Logger
	h := chiMiddleware.RequestID(WideEventMiddleware(zap.New(core))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			inner = logpkg.FromContext(r.Context())
			w.WriteHeader(http.StatusTeapot)
		}),
	))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/collections/a/records?limit=1", http.NoBody))

	reqID := rr.Header().Get("X-Request-ID")
	if reqID == "" {
		t.Fatal("expected X-Request-ID header")
	}
	if inner == nil {
		t.Fatal("expected a request logger in context")
	}

	entries := logs.FilterMessage("http_request").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 access line, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] != reqID {
		t.Errorf("request_id = %v, want %s", fields["request_id"], reqID)
	}
	if fields["status"] != int64(http.StatusTeapot) {
		t.Errorf("status = %v, want 418", fields["status"])
	}
	if fields["query"] != "limit=1" {
		t.Errorf("query = %v", fields["query"])
	}
}
