package api

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T, cfg Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg.SilentDB = true
	server, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	t.Cleanup(func() { server.Close() })
	router, err := server.Router()
	if err != nil {
		t.Fatalf("router: %v", err)
	}
	return router
}

func validFormValues() url.Values {
	values := url.Values{}
	values.Set("age", "59")
	values.Set("sex", "1")
	values.Set("bmi", "32")
	values.Set("bp", "101")
	values.Set("s1", "157")
	values.Set("s2", "93.2")
	values.Set("s3", "38")
	values.Set("s4", "4")
	values.Set("s5", "4.8598")
	values.Set("s6", "87")
	return values
}

func postForm(router *gin.Engine, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestFormPage(t *testing.T) {
	router := newTestRouter(t, Config{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, name := range []string{"age", "sex", "bmi", "bp", "s1", "s2", "s3", "s4", "s5", "s6"} {
		if !strings.Contains(body, `name="`+name+`"`) {
			t.Fatalf("form missing field %q", name)
		}
	}
	if strings.Contains(body, "Estimated outcome") {
		t.Fatal("fresh form should not show a prediction")
	}
}

func TestFormPredict(t *testing.T) {
	router := newTestRouter(t, Config{})

	w := postForm(router, validFormValues())
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Estimated outcome") {
		t.Fatalf("expected a prediction, got: %s", body)
	}
	if !strings.Contains(body, "-2912.0639") {
		t.Fatalf("expected reference prediction in body, got: %s", body)
	}
	if strings.Contains(body, `class="error"`) {
		t.Fatal("unexpected error block on success")
	}
}

func TestFormPredictMissingField(t *testing.T) {
	router := newTestRouter(t, Config{})

	values := validFormValues()
	values.Del("bmi")
	w := postForm(router, values)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if strings.Contains(body, "Estimated outcome") {
		t.Fatal("expected no prediction")
	}
	if !strings.Contains(body, "bmi") || !strings.Contains(body, `class="error"`) {
		t.Fatalf("expected error naming bmi, got: %s", body)
	}
}

func TestFormPredictModelUnavailable(t *testing.T) {
	router := newTestRouter(t, Config{
		ModelPath: filepath.Join(t.TempDir(), "absent.json"),
	})

	// Every request after the failed load reports the same fixed outcome.
	for i := 0; i < 3; i++ {
		w := postForm(router, validFormValues())
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		body := w.Body.String()
		if strings.Contains(body, "Estimated outcome") {
			t.Fatal("expected no prediction while model unavailable")
		}
		if !strings.Contains(body, "could not be loaded") {
			t.Fatalf("expected unavailable message, got: %s", body)
		}
	}
}

func postJSON(router *gin.Engine, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/predict", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonForm() map[string]string {
	return map[string]string{
		"age": "59", "sex": "1", "bmi": "32", "bp": "101",
		"s1": "157", "s2": "93.2", "s3": "38", "s4": "4",
		"s5": "4.8598", "s6": "87",
	}
}

func TestPredictJSON(t *testing.T) {
	router := newTestRouter(t, Config{})

	w := postJSON(router, jsonForm())
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var payload PredictResponse
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if math.Abs(payload.Prediction-(-2912.0639335269043)) > 1e-6 {
		t.Fatalf("unexpected prediction %v", payload.Prediction)
	}
}

func TestPredictJSONValidation(t *testing.T) {
	router := newTestRouter(t, Config{})

	tests := []struct {
		name     string
		mutate   func(map[string]string)
		wantText string
	}{
		{"missing", func(m map[string]string) { delete(m, "bp") }, "bp"},
		{"empty", func(m map[string]string) { m["s4"] = "" }, "s4"},
		{"not numeric", func(m map[string]string) { m["age"] = "abc" }, "age"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			form := jsonForm()
			tc.mutate(form)
			w := postJSON(router, form)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			var payload map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if !strings.Contains(payload["error"], tc.wantText) {
				t.Fatalf("error %q does not mention %q", payload["error"], tc.wantText)
			}
		})
	}
}

func TestPredictJSONModelUnavailable(t *testing.T) {
	router := newTestRouter(t, Config{
		ModelPath: filepath.Join(t.TempDir(), "absent.json"),
	})

	w := postJSON(router, jsonForm())
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestHealthAndConfig(t *testing.T) {
	router := newTestRouter(t, Config{})

	req := httptest.NewRequest(http.MethodGet, "/api/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("healthz: expected 200, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/config", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("config: expected 200, got %d", w.Code)
	}
	var cfg ConfigResponse
	if err := json.Unmarshal(w.Body.Bytes(), &cfg); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if cfg.FeatureCount != 10 {
		t.Fatalf("expected 10 features, got %d", cfg.FeatureCount)
	}
	if len(cfg.Fields) != 10 || cfg.Fields[0].Name != "age" {
		t.Fatalf("unexpected fields: %+v", cfg.Fields)
	}
	if !cfg.ModelLoaded {
		t.Fatal("expected model loaded")
	}
	if cfg.HistoryEnabled {
		t.Fatal("history should be disabled without a db path")
	}
}

func TestPredictionHistory(t *testing.T) {
	router := newTestRouter(t, Config{
		DBPath: filepath.Join(t.TempDir(), "history.db"),
	})

	if w := postJSON(router, jsonForm()); w.Code != http.StatusOK {
		t.Fatalf("predict: expected 200, got %d", w.Code)
	}
	if w := postForm(router, validFormValues()); w.Code != http.StatusOK {
		t.Fatalf("form predict: expected 200, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/predictions?limit=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("predictions: expected 200, got %d", w.Code)
	}
	var payload PredictionsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(payload.Items) != 2 {
		t.Fatalf("expected 2 history items, got %d", len(payload.Items))
	}
	if len(payload.Items[0].Features) != 10 {
		t.Fatalf("expected 10 stored features, got %d", len(payload.Items[0].Features))
	}
}

func TestPredictionHistoryDisabled(t *testing.T) {
	router := newTestRouter(t, Config{})

	req := httptest.NewRequest(http.MethodGet, "/api/predictions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var payload PredictionsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(payload.Items) != 0 {
		t.Fatalf("expected empty history, got %d items", len(payload.Items))
	}
}
