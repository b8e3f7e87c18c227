package router_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"withings-health-sync/internal/adapters/withings"
	"withings-health-sync/internal/router"
)

// fakeWithings responde como la API de Withings para las acciones usadas.
func fakeWithings(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path + "?" + r.PostForm.Get("action") {
		case "/measure?getmeas":
			_, _ = io.WriteString(w, `{"status":0,"body":{"measuregrps":[
				{"grpid":1,"attrib":0,"date":1700000000,"category":1,"deviceid":"scale-1","model":6,
				 "measures":[{"value":70000,"type":1,"unit":-3}]},
				{"grpid":2,"attrib":0,"date":1700003600,"category":1,"deviceid":"scale-1","model":6,
				 "measures":[{"value":71500,"type":1,"unit":-3},{"value":180,"type":4,"unit":-2}]}
			]}}`)
		case "/v2/user?getdevice":
			_, _ = io.WriteString(w, `{"status":0,"body":{"devices":[
				{"type":"Scale","battery":"high","model":"Body Cardio","model_id":6,"timezone":"Europe/Madrid",
				 "last_session_date":1700000000,"deviceid":"scale-1","hash_deviceid":"h-1"}
			]}}`)
		case "/v2/user?getgoals":
			_, _ = io.WriteString(w, `{"status":0,"body":{"goals":{"steps":10000,"sleep":28800}}}`)
		default:
			_, _ = io.WriteString(w, `{"status":503,"error":"Invalid params"}`)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	upstream := fakeWithings(t)

	client, err := withings.NewClient(withings.Config{BaseURL: upstream.URL})
	if err != nil {
		t.Fatalf("new withings client: %v", err)
	}
	client.Authenticate("token")
	t.Cleanup(func() { _ = client.Close() })

	ts := httptest.NewServer(router.NewRouter(router.Options{Withings: client}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_SyncThenQuery(t *testing.T) {
	ts := newServer(t)
	userID := "user-1"

	// 1) Sin usuario => 401
	{
		st, _ := doReq(t, ts.URL, "GET", "/measurements/latest", "")
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without user, got %d", st)
		}
	}

	// 2) Antes de sincronizar no hay datos
	{
		st, body := doReq(t, ts.URL, "GET", "/measurements", userID)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list, got %d body=%s", st, string(body))
		}
		var groups []map[string]any
		_ = json.Unmarshal(body, &groups)
		if len(groups) != 0 {
			t.Fatalf("expected no groups before sync, got %d", len(groups))
		}
	}

	// 3) Sync
	{
		st, body := doReq(t, ts.URL, "POST", "/sync", userID)
		if st != http.StatusOK {
			t.Fatalf("expected 200 sync, got %d body=%s", st, string(body))
		}
		var resp struct {
			Groups int `json:"groups"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Groups != 2 {
			t.Fatalf("expected 2 synced groups, got %d body=%s", resp.Groups, string(body))
		}
	}

	// 4) Latest: gana el grupo más reciente
	{
		st, body := doReq(t, ts.URL, "GET", "/measurements/latest", userID)
		if st != http.StatusOK {
			t.Fatalf("expected 200 latest, got %d body=%s", st, string(body))
		}
		var latest map[string]float64
		_ = json.Unmarshal(body, &latest)
		if latest["weight"] != 71.5 || latest["height"] != 1.8 {
			t.Fatalf("unexpected latest values: %s", string(body))
		}
	}

	// 5) List filtrado por tipo
	{
		st, body := doReq(t, ts.URL, "GET", "/measurements?types=height", userID)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list, got %d body=%s", st, string(body))
		}
		var groups []struct {
			ID int64 `json:"id"`
		}
		_ = json.Unmarshal(body, &groups)
		if len(groups) != 1 || groups[0].ID != 2 {
			t.Fatalf("expected only group 2, got %s", string(body))
		}
	}
}

func TestHTTP_DevicesAndGoals(t *testing.T) {
	ts := newServer(t)

	st, body := doReq(t, ts.URL, "GET", "/devices", "user-1")
	if st != http.StatusOK {
		t.Fatalf("expected 200 devices, got %d body=%s", st, string(body))
	}
	var devs []struct {
		Model    string `json:"model"`
		DeviceID string `json:"device_id"`
	}
	_ = json.Unmarshal(body, &devs)
	if len(devs) != 1 || devs[0].Model != "Body Cardio" || devs[0].DeviceID != "scale-1" {
		t.Fatalf("unexpected devices: %s", string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/goals", "user-1")
	if st != http.StatusOK {
		t.Fatalf("expected 200 goals, got %d body=%s", st, string(body))
	}
	var goals struct {
		Steps        *int     `json:"steps"`
		SleepSeconds *int     `json:"sleep_seconds"`
		WeightKg     *float64 `json:"weight_kg"`
	}
	_ = json.Unmarshal(body, &goals)
	if goals.Steps == nil || *goals.Steps != 10000 || goals.SleepSeconds == nil || goals.WeightKg != nil {
		t.Fatalf("unexpected goals: %s", string(body))
	}
}

func TestHTTP_HealthAndMetrics(t *testing.T) {
	ts := newServer(t)

	if st, _ := doReq(t, ts.URL, "GET", "/health", ""); st != http.StatusOK {
		t.Fatalf("expected 200 health, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/metrics", ""); st != http.StatusOK {
		t.Fatalf("expected 200 metrics, got %d", st)
	}
}

func doReq(t *testing.T, baseURL, method, path, userID string) (int, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, baseURL+path, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if userID != "" {
		req.Header.Set("X-Debug-User-ID", userID)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}
