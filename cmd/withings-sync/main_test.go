package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"withings-health-sync/internal/config"
	"withings-health-sync/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upstream(t *testing.T) (*httptest.Server, func() []string) {
	t.Helper()
	var (
		mu    sync.Mutex
		forms []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		mu.Lock()
		forms = append(forms, r.PostForm.Encode())
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"status":0,"body":{"measuregrps":[
			{"grpid":5,"attrib":0,"date":1700000100,"category":1,"measures":[{"value":120,"type":10,"unit":0}]}
		]}}`)
	}))
	t.Cleanup(srv.Close)
	return srv, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), forms...)
	}
}

func testConfig() config.Config {
	return config.Config{WithingsToken: "tok", Timeout: time.Second}
}

func TestRun_Sync(t *testing.T) {
	srv, forms := upstream(t)
	var out bytes.Buffer

	err := run(context.Background(), testConfig(), logger.Nop(), []string{"sync", "-base-url", srv.URL}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "groups=1")
	require.Len(t, forms(), 1)
	assert.Contains(t, forms()[0], "lastupdate=0")
}

func TestRun_NotifyReplay(t *testing.T) {
	srv, forms := upstream(t)
	var out bytes.Buffer

	err := run(context.Background(), testConfig(), logger.Nop(), []string{
		"notify", "-base-url", srv.URL,
		"-form", "userid=1&appli=4&startdate=1700000000&enddate=1700000600",
	}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "category=pressure")
	require.Len(t, forms(), 1)
	assert.Contains(t, forms()[0], "startdate=1700000000")
	assert.Contains(t, forms()[0], "meastypes=9%2C10%2C11%2C54")
}

func TestRun_Errors(t *testing.T) {
	var out bytes.Buffer
	ctx := context.Background()

	assert.Error(t, run(ctx, testConfig(), logger.Nop(), nil, &out))
	assert.Error(t, run(ctx, testConfig(), logger.Nop(), []string{"dance"}, &out))
	assert.Error(t, run(ctx, testConfig(), logger.Nop(), []string{"notify", "-form", "appli=16"}, &out))
}
