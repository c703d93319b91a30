package handler

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"estateportal/internal/config"
	"estateportal/internal/service"

	"github.com/gin-gonic/gin"
)

func newAIRouter(t *testing.T, apiKey string, upstreamStatus int, upstreamBody string) (*gin.Engine, *int32) {
	t.Helper()
	var calls int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(upstreamStatus)
		_, _ = w.Write([]byte(upstreamBody))
	}))
	t.Cleanup(upstream.Close)

	cfg := &config.OpenAIConfig{APIKey: apiKey, APIBase: upstream.URL, ChatModel: "gpt-4o-mini", Enabled: apiKey != ""}
	h := NewAIHandler(service.NewCompletionGateway(service.NewOpenAIClient(cfg)))

	r := gin.New()
	r.GET("/ai/status", h.Status)
	r.POST("/ai/validate-key", h.ValidateKey)
	r.POST("/ai/complete", h.Complete)
	r.POST("/ai/analyze", h.Analyze)
	return r, &calls
}

func TestAIHandler_Status(t *testing.T) {
	r, _ := newAIRouter(t, "", http.StatusOK, "")
	w := doJSON(t, r, http.MethodGet, "/ai/status", nil)

	var resp struct {
		Configured bool   `json:"configured"`
		Message    string `json:"message"`
		Timestamp  string `json:"timestamp"`
	}
	decode(t, w, &resp)
	if w.Code != http.StatusOK || resp.Configured || resp.Timestamp == "" {
		t.Errorf("status = %d %+v", w.Code, resp)
	}
}

func TestAIHandler_Complete(t *testing.T) {
	okBody := `{"choices":[{"message":{"role":"assistant","content":"Lekki is popular."}}]}`

	tests := []struct {
		name      string
		apiKey    string
		status    int
		body      interface{}
		wantCode  int
		wantKind  string
		wantCalls int32
	}{
		{name: "success", apiKey: "sk-test", status: http.StatusOK, body: map[string]any{"prompt": "Tell me about Lekki"}, wantCode: http.StatusOK, wantCalls: 1},
		{name: "missing key", apiKey: "", status: http.StatusOK, body: map[string]any{"prompt": "hi"}, wantCode: http.StatusServiceUnavailable, wantKind: "configuration_missing"},
		{name: "empty prompt", apiKey: "sk-test", status: http.StatusOK, body: map[string]any{"prompt": ""}, wantCode: http.StatusBadRequest, wantKind: "input_validation"},
		{name: "string context", apiKey: "sk-test", status: http.StatusOK, body: map[string]any{"prompt": "hi", "context": "lekki"}, wantCode: http.StatusBadRequest, wantKind: "input_validation"},
		{name: "array context", apiKey: "sk-test", status: http.StatusOK, body: map[string]any{"prompt": "hi", "context": []int{1, 2}}, wantCode: http.StatusBadRequest, wantKind: "input_validation"},
		{name: "object context", apiKey: "sk-test", status: http.StatusOK, body: map[string]any{"prompt": "hi", "context": map[string]any{"area": "Lekki"}}, wantCode: http.StatusOK, wantCalls: 1},
		{name: "upstream 401", apiKey: "sk-test", status: http.StatusUnauthorized, body: map[string]any{"prompt": "hi"}, wantCode: http.StatusUnauthorized, wantKind: "authentication_rejected", wantCalls: 1},
		{name: "upstream 429", apiKey: "sk-test", status: http.StatusTooManyRequests, body: map[string]any{"prompt": "hi"}, wantCode: http.StatusTooManyRequests, wantKind: "quota_exceeded", wantCalls: 1},
		{name: "upstream 500", apiKey: "sk-test", status: http.StatusInternalServerError, body: map[string]any{"prompt": "hi"}, wantCode: http.StatusBadGateway, wantKind: "upstream_failure", wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstreamBody := okBody
			if tt.status != http.StatusOK {
				upstreamBody = `{"error":{"message":"secret upstream detail"}}`
			}
			r, calls := newAIRouter(t, tt.apiKey, tt.status, upstreamBody)
			w := doJSON(t, r, http.MethodPost, "/ai/complete", tt.body)

			if w.Code != tt.wantCode {
				t.Fatalf("code = %d, want %d (%s)", w.Code, tt.wantCode, w.Body.String())
			}
			if atomic.LoadInt32(calls) != tt.wantCalls {
				t.Errorf("upstream calls = %d, want %d", *calls, tt.wantCalls)
			}

			var resp map[string]string
			decode(t, w, &resp)
			if tt.wantKind == "" {
				if resp["text"] != "Lekki is popular." {
					t.Errorf("text = %q", resp["text"])
				}
				return
			}
			if resp["kind"] != tt.wantKind {
				t.Errorf("kind = %q, want %q", resp["kind"], tt.wantKind)
			}
			if resp["error"] == "" || resp["error"] == "secret upstream detail" {
				t.Errorf("error message = %q", resp["error"])
			}
		})
	}
}

func TestAIHandler_ValidateKey(t *testing.T) {
	r, calls := newAIRouter(t, "", http.StatusUnauthorized, `{"error":"nope"}`)

	w := doJSON(t, r, http.MethodPost, "/ai/validate-key", map[string]any{"apiKey": "not-a-real-key"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad prefix code = %d", w.Code)
	}
	w = doJSON(t, r, http.MethodPost, "/ai/validate-key", map[string]any{"apiKey": 42})
	if w.Code != http.StatusBadRequest {
		t.Errorf("non-string key code = %d", w.Code)
	}
	if atomic.LoadInt32(calls) != 0 {
		t.Fatalf("invalid keys should not reach upstream")
	}

	w = doJSON(t, r, http.MethodPost, "/ai/validate-key", map[string]any{"apiKey": "sk-wrong"})
	var resp struct {
		Valid   bool   `json:"valid"`
		Message string `json:"message"`
	}
	decode(t, w, &resp)
	if w.Code != http.StatusOK || resp.Valid || resp.Message == "" {
		t.Errorf("rejected key = %d %+v", w.Code, resp)
	}
	if atomic.LoadInt32(calls) != 1 {
		t.Errorf("calls = %d, want 1", *calls)
	}
}

func TestAIHandler_AnalyzeEmpty(t *testing.T) {
	r, calls := newAIRouter(t, "sk-test", http.StatusOK, "{}")
	w := doJSON(t, r, http.MethodPost, "/ai/analyze", map[string]any{"properties": []any{}})

	var resp map[string]string
	decode(t, w, &resp)
	if w.Code != http.StatusOK || resp["analysis"] != "No properties provided for analysis" {
		t.Errorf("analyze = %d %v", w.Code, resp)
	}
	if atomic.LoadInt32(calls) != 0 {
		t.Error("empty analysis should not call upstream")
	}
}
