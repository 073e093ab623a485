package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"

	"github.com/aristath/taxboard/internal/domain"
	"github.com/aristath/taxboard/internal/modules/dashboard"
	"github.com/aristath/taxboard/internal/modules/sessions"
	"github.com/aristath/taxboard/internal/modules/sorting"
)

type staticLedgers struct{ ledger *domain.Ledger }

func (s staticLedgers) Current() (*domain.Ledger, error) {
	if s.ledger == nil {
		return nil, domain.ErrNoLedger
	}
	return s.ledger, nil
}

func testLedger() *domain.Ledger {
	return &domain.Ledger{
		Global: domain.GlobalSummary{YearsList: domain.YearList{"2022", "2023"}},
		Years: map[string]domain.YearData{
			"2022": {Sales: []domain.Sale{{Date: "10-02-2022", Product: "A", PnL: 5}}},
			"2023": {Sales: []domain.Sale{
				{Date: "10-02-2023", Product: "B", PnL: -20},
				{Date: "11-03-2023", Product: "C", PnL: 40},
			}},
		},
	}
}

func newRouter(l *domain.Ledger) (*chi.Mux, *sessions.Store) {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	store := sessions.NewStore(staticLedgers{ledger: l}, time.Hour, log)
	router := chi.NewRouter()
	router.Route("/api", NewHandler(store, log).RegisterRoutes)
	return router, store
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createSession(t *testing.T, router http.Handler) CreateResponse {
	t.Helper()
	rec := do(t, router, http.MethodPost, "/api/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp CreateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func decodeFrame(t *testing.T, rec *httptest.ResponseRecorder) dashboard.Frame {
	t.Helper()
	var f dashboard.Frame
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
	return f
}

func TestHandleCreate(t *testing.T) {
	router, store := newRouter(testLedger())

	resp := createSession(t, router)

	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, dashboard.ScopeGlobal, resp.Frame.Scope.Kind)
	assert.Equal(t, []string{"2023", "2022"}, resp.Frame.Picker.Options)
	assert.Equal(t, 1, store.Len())
}

func TestHandleCreate_NoLedger(t *testing.T) {
	router, _ := newRouter(nil)

	rec := do(t, router, http.MethodPost, "/api/sessions", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "ledger not loaded")
}

func TestHandleIntents(t *testing.T) {
	router, _ := newRouter(testLedger())
	id := createSession(t, router).SessionID
	base := "/api/sessions/" + id

	rec := do(t, router, http.MethodPost, base+"/scope", `{"scope":"year","year":"2023"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	f := decodeFrame(t, rec)
	assert.Equal(t, "2023", f.Scope.Year)
	assert.Equal(t, "/download/2023", f.Download)
	require.NotNil(t, f.Sales)
	assert.Equal(t, "C", f.Sales.Rows[0].Product)

	rec = do(t, router, http.MethodPost, base+"/sort", `{"view":"sales","key":"pnl"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	f = decodeFrame(t, rec)
	assert.Equal(t, sorting.Config{Key: "pnl", Direction: sorting.Desc}, f.Sales.Sort)
	assert.Equal(t, "C", f.Sales.Rows[0].Product)

	rec = do(t, router, http.MethodPost, base+"/sort", `{"view":"sales","key":"pnl"}`)
	f = decodeFrame(t, rec)
	assert.Equal(t, "B", f.Sales.Rows[0].Product)

	rec = do(t, router, http.MethodPost, base+"/chart-point", `{"index":0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2022", decodeFrame(t, rec).Scope.Year)

	rec = do(t, router, http.MethodGet, base+"/frame", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2022", decodeFrame(t, rec).Scope.Year)

	rec = do(t, router, http.MethodPost, base+"/scope", `{"scope":"global"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeFrame(t, rec).Scope.IsGlobal())
}

func TestHandleIntents_Errors(t *testing.T) {
	router, _ := newRouter(testLedger())
	id := createSession(t, router).SessionID
	base := "/api/sessions/" + id

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"unknown session", http.MethodGet, "/api/sessions/nope/frame", "", http.StatusNotFound},
		{"unknown year", http.MethodPost, base + "/scope", `{"scope":"year","year":"1999"}`, http.StatusNotFound},
		{"year missing", http.MethodPost, base + "/scope", `{"scope":"year"}`, http.StatusBadRequest},
		{"bad scope", http.MethodPost, base + "/scope", `{"scope":"decade"}`, http.StatusBadRequest},
		{"bad body", http.MethodPost, base + "/scope", `{`, http.StatusBadRequest},
		{"index missing", http.MethodPost, base + "/chart-point", `{}`, http.StatusBadRequest},
		{"index out of range", http.MethodPost, base + "/chart-point", `{"index":9}`, http.StatusNotFound},
		{"unknown view", http.MethodPost, base + "/sort", `{"view":"x","key":"pnl"}`, http.StatusBadRequest},
		{"key missing", http.MethodPost, base + "/sort", `{"view":"sales"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, tt.method, tt.path, tt.body)

			assert.Equal(t, tt.status, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestHandleDelete(t *testing.T) {
	router, store := newRouter(testLedger())
	id := createSession(t, router).SessionID

	rec := do(t, router, http.MethodDelete, "/api/sessions/"+id, "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, store.Len())
}

func TestHandleWebsocket(t *testing.T) {
	router, _ := newRouter(testLedger())
	srv := httptest.NewServer(router)
	defer srv.Close()
	id := createSession(t, router).SessionID

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/sessions/" + id + "/ws"
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	send := func(msg string) Reply {
		require.NoError(t, conn.Write(ctx, websocket.MessageText, []byte(msg)))
		_, data, err := conn.Read(ctx)
		require.NoError(t, err)
		var reply Reply
		require.NoError(t, json.Unmarshal(data, &reply))
		return reply
	}

	reply := send(`{"type":"scope","scope":"year","year":"2023"}`)
	require.NotNil(t, reply.Frame)
	assert.Equal(t, http.StatusOK, reply.Status)
	assert.Equal(t, "2023", reply.Frame.Scope.Year)

	reply = send(`{"type":"sort","view":"sales","key":"pnl"}`)
	require.NotNil(t, reply.Frame)
	assert.Equal(t, "pnl", reply.Frame.Sales.Sort.Key)

	reply = send(`{"type":"scope","scope":"year","year":"1999"}`)
	assert.Equal(t, http.StatusNotFound, reply.Status)
	assert.Contains(t, reply.Error, "unknown year")
	require.NotNil(t, reply.Frame)
	assert.Equal(t, "2023", reply.Frame.Scope.Year)

	reply = send(`not json`)
	assert.Equal(t, http.StatusBadRequest, reply.Status)

	reply = send(`{"type":"frame"}`)
	assert.Equal(t, http.StatusOK, reply.Status)
}

func TestHandleWebsocket_UnknownSession(t *testing.T) {
	router, _ := newRouter(testLedger())

	rec := do(t, router, http.MethodGet, "/api/sessions/nope/ws", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
