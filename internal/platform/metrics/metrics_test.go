package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserve_BeforeInitIsNoop(t *testing.T) {
	// sin Init los vectores son nil y no debe haber panic
	if upstreamRequests != nil {
		t.Skip("metrics already initialised by another test")
	}
	ObserveUpstream("getmeas", ResultSuccess, time.Millisecond)
	ObserveSync("manual", ResultError, time.Millisecond)
	AddSyncedGroups(3)
	IncExport("xlsx", ResultSuccess)
}

func TestObserve_AfterInit(t *testing.T) {
	Init()
	Init()

	before := testutil.ToFloat64(upstreamRequests.WithLabelValues("getdevice", ResultError))
	ObserveUpstream("getdevice", Result(errors.New("x")), 20*time.Millisecond)
	after := testutil.ToFloat64(upstreamRequests.WithLabelValues("getdevice", ResultError))
	assert.Equal(t, before+1, after)

	g0 := testutil.ToFloat64(syncGroups)
	AddSyncedGroups(4)
	AddSyncedGroups(-1)
	assert.Equal(t, g0+4, testutil.ToFloat64(syncGroups))

	assert.Equal(t, ResultSuccess, Result(nil))
}
