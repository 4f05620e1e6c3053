package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/retrocalc/internal/repository/store"
	"github.com/mamadbah2/retrocalc/internal/server/handlers"
	"github.com/mamadbah2/retrocalc/internal/service/animation"
	"github.com/mamadbah2/retrocalc/internal/service/calculator"
	"github.com/mamadbah2/retrocalc/internal/service/history"
)

func newTestEngine(t *testing.T) http.Handler {
	t.Helper()

	records := store.NewRecordStore(store.NewMemoryKV(), store.DefaultKey, nil)
	calc := calculator.NewService(nil, records, nil, 0, nil)
	hist := history.NewService(records, 10, nil)
	anim := animation.NewService(0, nil)

	return New(Handlers{
		Calculator: handlers.NewCalculatorHandler(calc, nil),
		History:    handlers.NewHistoryHandler(hist, nil),
		Animation:  handlers.NewAnimationHandler(anim, nil),
		Screens:    handlers.NewScreenHandler(calc, hist, anim),
	}, nil)
}

func do(t *testing.T, h http.Handler, method, path, session, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if session != "" {
		req.Header.Set(handlers.SessionHeader, session)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestRouter_Healthz(t *testing.T) {
	w := do(t, newTestEngine(t), http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRouter_MintsSessionID(t *testing.T) {
	engine := newTestEngine(t)

	w := do(t, engine, http.MethodGet, "/api/calculator", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(handlers.SessionHeader))

	w = do(t, engine, http.MethodGet, "/api/calculator", "abc", "")
	assert.Equal(t, "abc", w.Header().Get(handlers.SessionHeader))
}

func TestRouter_CalculateAndBrowseHistory(t *testing.T) {
	engine := newTestEngine(t)

	w := do(t, engine, http.MethodPost, "/api/calculator/input", "s1", `{"input":"3+5*2"}`)
	require.Equal(t, http.StatusOK, w.Code)
	state := decode(t, w)
	assert.Equal(t, float64(13), state["result"])
	steps := state["steps"].([]any)
	require.NotEmpty(t, steps)
	last := steps[len(steps)-1].(map[string]any)
	assert.Equal(t, "result", last["type"])
	assert.Equal(t, "13", last["value"])

	w = do(t, engine, http.MethodGet, "/api/history", "s2", "")
	require.Equal(t, http.StatusOK, w.Code)
	records := decode(t, w)["records"].([]any)
	require.Len(t, records, 1)
	assert.Equal(t, "3+5*2", records[0].(map[string]any)["expression"])

	w = do(t, engine, http.MethodPost, "/api/history/keys", "s2", `{"key":"Escape"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/", decode(t, w)["navigate"])

	w = do(t, engine, http.MethodGet, "/history", "s2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, w.Body.String(), "3+5*2")
}

func TestRouter_EvaluationErrorIsState(t *testing.T) {
	w := do(t, newTestEngine(t), http.MethodPost, "/api/calculator/input", "s1", `{"input":"8/0"}`)
	require.Equal(t, http.StatusOK, w.Code)
	state := decode(t, w)
	assert.Equal(t, "Division by zero", state["error"])
	assert.Nil(t, state["result"])
}

func TestRouter_ModeKeys(t *testing.T) {
	engine := newTestEngine(t)

	w := do(t, engine, http.MethodPost, "/api/calculator/keys", "s1", `{"key":"F2"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "menu", decode(t, w)["mode"])

	w = do(t, engine, http.MethodGet, "/", "s1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Mode: MENU")
}

func TestRouter_BadPayloads(t *testing.T) {
	engine := newTestEngine(t)

	w := do(t, engine, http.MethodPost, "/api/calculator/keys", "s1", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, engine, http.MethodPost, "/api/calculator/input", "s1", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, engine, http.MethodPut, "/api/animation/operation", "s1", `{"operation":"modulo"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], "unknown operation")
}

func TestRouter_Animation(t *testing.T) {
	engine := newTestEngine(t)

	w := do(t, engine, http.MethodPut, "/api/animation/operation", "s1", `{"operation":"division"}`)
	require.Equal(t, http.StatusOK, w.Code)
	frame := decode(t, w)
	assert.Equal(t, "division", frame["operation"])
	assert.Equal(t, true, frame["playing"])

	w = do(t, engine, http.MethodPost, "/api/animation/keys", "s1", `{"key":" "}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["playing"])

	w = do(t, engine, http.MethodGet, "/animation", "s1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Space: resume")
}
