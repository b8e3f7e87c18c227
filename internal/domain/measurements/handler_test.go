package measurements

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"withings-health-sync/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, repo Repository, src Source) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	r.Use(middleware.AuthContext(nil))
	RegisterRoutes(r, newTestService(repo, src, nil, time.Unix(5000, 0)))
	return r
}

func do(h http.Handler, method, path, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if userID != "" {
		req.Header.Set("X-Debug-User-ID", userID)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func seededRepo(t *testing.T) *fakeRepo {
	t.Helper()
	repo := newFakeRepo()
	require.NoError(t, repo.SaveGroups(context.Background(), []MeasurementGroup{
		grp(1, 100, Measurement{Type: TypeWeight, Value: 70}),
		grp(2, 200, Measurement{Type: TypeWeight, Value: 72}, Measurement{Type: TypeHeight, Value: 1.8}),
	}))
	return repo
}

func TestHandlers_RequireUser(t *testing.T) {
	h := newTestRouter(t, newFakeRepo(), &fakeSource{})
	for _, p := range []string{"/measurements", "/measurements/latest", "/measurements/latest.pdf", "/measurements/export.xlsx"} {
		assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodGet, p, "").Code, p)
	}
	assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodPost, "/sync", "").Code)
}

func TestListHandler(t *testing.T) {
	h := newTestRouter(t, seededRepo(t), &fakeSource{})

	rec := do(h, http.MethodGet, "/measurements?types=height", "u1")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out []measurementGroupResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, int64(2), out[0].ID)
	assert.Equal(t, "real", out[0].Category)
	assert.Equal(t, []measurementResponse{{TypeCode: 4, Type: "height", Value: 1.8}}, out[0].Measurements)

	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodGet, "/measurements?from=ayer", "u1").Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodGet, "/measurements?types=999", "u1").Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodGet, "/measurements?types=,", "u1").Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodGet, "/measurements/latest?types=%20,%20,", "u1").Code)
	assert.Equal(t, http.StatusBadRequest,
		do(h, http.MethodGet, "/measurements?from=2024-01-02T00:00:00Z&to=2024-01-01T00:00:00Z", "u1").Code)
}

func TestLatestHandler(t *testing.T) {
	h := newTestRouter(t, seededRepo(t), &fakeSource{})

	rec := do(h, http.MethodGet, "/measurements/latest", "u1")
	require.Equal(t, http.StatusOK, rec.Code)

	var out map[string]float64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, map[string]float64{"weight": 72, "height": 1.8}, out)

	rec = do(h, http.MethodGet, "/measurements/latest.pdf?types=weight", "u1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))

	rec = do(h, http.MethodGet, "/measurements/export.xlsx", "u1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "measurements.xlsx")
}

func TestSyncHandler(t *testing.T) {
	repo := newFakeRepo()
	src := &fakeSource{groups: []MeasurementGroup{grp(3, 300, Measurement{Type: TypeWeight, Value: 71})}}
	h := newTestRouter(t, repo, src)

	rec := do(h, http.MethodPost, "/sync", "u1")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out syncResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 1, out.Groups)
	assert.Equal(t, TriggerManual, out.Trigger)
	assert.Equal(t, time.Unix(5000, 0).UTC(), out.Until.UTC())

	src.err = context.DeadlineExceeded
	assert.Equal(t, http.StatusBadGateway, do(h, http.MethodPost, "/sync", "u1").Code)
}

func TestParseTypeList(t *testing.T) {
	got, err := ParseTypeList(" 1, heart_rate ,,Fat_Ratio")
	require.NoError(t, err)
	assert.Equal(t, []MeasurementType{TypeWeight, TypeHeartRate, TypeFatRatio}, got)

	for _, in := range []string{",", " , ,", ""} {
		got, err := ParseTypeList(in)
		assert.ErrorIs(t, err, ErrInvalidInput, in)
		assert.Nil(t, got, in)
	}

	_, err = ParseTypeList("weight,nope")
	assert.Error(t, err)
}
