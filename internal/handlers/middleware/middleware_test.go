package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/usermanager/internal/domain/ports"
)

// recordingLogger guarda as mensagens registradas
type recordingLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *recordingLogger) record(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, level+":"+msg)
}

func (l *recordingLogger) Info(msg string, _ ...any)  { l.record("info", msg) }
func (l *recordingLogger) Error(msg string, _ ...any) { l.record("error", msg) }
func (l *recordingLogger) Debug(msg string, _ ...any) { l.record("debug", msg) }
func (l *recordingLogger) Warn(msg string, _ ...any)  { l.record("warn", msg) }
func (l *recordingLogger) With(_ ...any) ports.Logger { return l }

func (l *recordingLogger) has(entry string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e == entry {
			return true
		}
	}
	return false
}

func okHandler(c *gin.Context) { c.String(http.StatusOK, "ok") }

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("bloqueia após o burst por IP", func(t *testing.T) {
		logger := &recordingLogger{}
		rejected := 0
		rl := NewRateLimiter(1, 2, logger, func(c *gin.Context) {
			rejected++
			c.JSON(http.StatusTooManyRequests, gin.H{"title": "Too many requests"})
		})

		router := gin.New()
		router.Use(rl.Handler())
		router.GET("/", okHandler)

		codes := make([]int, 3)
		for i := range codes {
			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			router.ServeHTTP(w, req)
			codes[i] = w.Code
		}

		if codes[0] != 200 || codes[1] != 200 || codes[2] != 429 {
			t.Errorf("esperava [200 200 429], obteve %v", codes)
		}
		if rejected != 1 {
			t.Errorf("esperava 1 rejeição, obteve %d", rejected)
		}
		if !logger.has("warn:rate limit exceeded") {
			t.Error("esperava log de rate limit")
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("outro IP deveria ter seu próprio bucket, obteve %d", w.Code)
		}
	})

	t.Run("rps zero desliga a limitação", func(t *testing.T) {
		rl := NewRateLimiter(0, 1, &recordingLogger{}, nil)
		router := gin.New()
		router.Use(rl.Handler())
		router.GET("/", okHandler)

		for i := 0; i < 10; i++ {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
			if w.Code != http.StatusOK {
				t.Fatalf("requisição %d: esperava 200, obteve %d", i, w.Code)
			}
		}
	})

	t.Run("cleanup remove visitantes ociosos", func(t *testing.T) {
		rl := NewRateLimiter(5, 5, &recordingLogger{}, nil)
		current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		rl.now = func() time.Time { return current }

		for i := 0; i < 3; i++ {
			rl.getLimiter(fmt.Sprintf("10.0.0.%d", i))
		}
		current = current.Add(10 * time.Minute)
		rl.getLimiter("10.0.0.0")

		if removed := rl.Cleanup(5 * time.Minute); removed != 2 {
			t.Errorf("esperava remover 2, removeu %d", removed)
		}
		if len(rl.visitors) != 1 {
			t.Errorf("esperava 1 visitante restante, obteve %d", len(rl.visitors))
		}
	})
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDContextKey))
	})

	t.Run("gera id quando ausente", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
		id := w.Header().Get(RequestIDHeader)
		if id == "" || w.Body.String() != id {
			t.Errorf("esperava id gerado e propagado, header=%q corpo=%q", id, w.Body.String())
		}
	})

	t.Run("propaga id recebido", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		router.ServeHTTP(w, req)
		if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
			t.Errorf("esperava 'abc-123', obteve '%s'", got)
		}
	})
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := &recordingLogger{}
	router := gin.New()
	router.Use(RequestLogger(logger))
	router.GET("/ok", okHandler)
	router.GET("/bad", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	router.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/ok", "/bad", "/boom"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", path, nil))
	}

	for _, entry := range []string{"info:request handled", "warn:request rejected", "error:request failed"} {
		if !logger.has(entry) {
			t.Errorf("esperava entrada '%s', obteve %v", entry, logger.entries)
		}
	}
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := &recordingLogger{}
	router := gin.New()
	router.Use(Recovery(logger, func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"title": "Internal server error"})
	}))
	router.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/panic", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("esperava status 500, obteve %d", w.Code)
	}
	if !logger.has("error:panic recovered") {
		t.Error("esperava log do panic")
	}
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("libera origem configurada", func(t *testing.T) {
		router := gin.New()
		router.Use(CORS([]string{"http://localhost:3000"}))
		router.GET("/", okHandler)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		router.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
			t.Errorf("esperava origem liberada, obteve '%s'", got)
		}
	})

	t.Run("rejeita origem desconhecida", func(t *testing.T) {
		router := gin.New()
		router.Use(CORS([]string{"http://localhost:3000"}))
		router.GET("/", okHandler)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Origin", "http://evil.example")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("esperava status 403, obteve %d", w.Code)
		}
	})

	t.Run("preflight responde sem chegar ao handler", func(t *testing.T) {
		router := gin.New()
		router.Use(CORS([]string{"*"}))
		router.GET("/", okHandler)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("OPTIONS", "/", nil)
		req.Header.Set("Origin", "http://any.example")
		req.Header.Set("Access-Control-Request-Method", "GET")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("esperava status 204, obteve %d", w.Code)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("esperava '*', obteve '%s'", got)
		}
	})
}
