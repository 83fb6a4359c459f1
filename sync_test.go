package timesync

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunRetryExhaustion(t *testing.T) {
	cfg := &Config{Servers: []string{"stub"}, TimeoutMs: 10, Retries: 3}
	clk := &fakeClock{priv: true}

	calls := 0
	mgr := &SyncMgr{
		cfg: cfg,
		clk: clk,
		query: func(server string, timeout time.Duration) (*QueryResult, error) {
			calls++
			return nil, ErrTimeout
		},
	}
	require.Equal(t, 2, mgr.Run())
	require.Equal(t, 3, calls)
	require.Empty(t, clk.calls)
}

func TestRunApplies(t *testing.T) {
	base := msInYear(2030)
	q := &QueryResult{
		LocalSendMs: base,
		LocalRecvMs: base + 100,
		RemoteMs:    base + 2000,
	}
	cfg := &Config{Servers: []string{"stub"}, TimeoutMs: 10, Retries: 3}
	clk := &fakeClock{priv: true}
	mgr := &SyncMgr{
		cfg: cfg,
		clk: clk,
		query: func(server string, timeout time.Duration) (*QueryResult, error) {
			return q, nil
		},
	}
	require.Equal(t, 0, mgr.Run())
	require.Equal(t, []int64{q.RemoteMs + 50}, clk.calls)
}

func TestRunPolicyRejectionNotRetried(t *testing.T) {
	// reply far in the past: offset is huge, year check rejects
	base := time.Now().UnixMilli()
	q := &QueryResult{
		LocalSendMs: base,
		LocalRecvMs: base + 100,
		RemoteMs:    msInYear(2020),
	}
	cfg := &Config{Servers: []string{"stub"}, TimeoutMs: 10, Retries: 5}
	clk := &fakeClock{priv: true}
	calls := 0
	mgr := &SyncMgr{
		cfg: cfg,
		clk: clk,
		query: func(server string, timeout time.Duration) (*QueryResult, error) {
			calls++
			return q, nil
		},
	}
	require.Equal(t, 1, mgr.Run())
	require.Equal(t, 1, calls)
	require.Empty(t, clk.calls)
}

func TestRunSkipsNegligibleOffset(t *testing.T) {
	base := msInYear(2030)
	q := &QueryResult{
		LocalSendMs: base,
		LocalRecvMs: base + 100,
		RemoteMs:    base + 150, // offset 100ms
	}
	cfg := &Config{Servers: []string{"stub"}, TimeoutMs: 10, Retries: 3}
	clk := &fakeClock{priv: true}
	mgr := &SyncMgr{
		cfg: cfg,
		clk: clk,
		query: func(server string, timeout time.Duration) (*QueryResult, error) {
			return q, nil
		},
	}
	require.Equal(t, 0, mgr.Run())
	require.Empty(t, clk.calls)
}

func TestRunTriesEachServerPerAttempt(t *testing.T) {
	cfg := &Config{Servers: []string{"a", "b"}, TimeoutMs: 10, Retries: 2}
	var seen []string
	mgr := &SyncMgr{
		cfg: cfg,
		clk: &fakeClock{},
		query: func(server string, timeout time.Duration) (*QueryResult, error) {
			seen = append(seen, server)
			return nil, ErrTimeout
		},
	}
	require.Equal(t, 2, mgr.Run())
	require.Equal(t, []string{"a", "b", "a", "b"}, seen)
}

func TestRunComputeOverflowBurnsAttempt(t *testing.T) {
	q := &QueryResult{LocalSendMs: math.MaxInt64, LocalRecvMs: math.MaxInt64}
	cfg := &Config{Servers: []string{"stub"}, TimeoutMs: 10, Retries: 2}
	calls := 0
	mgr := &SyncMgr{
		cfg: cfg,
		clk: &fakeClock{},
		query: func(server string, timeout time.Duration) (*QueryResult, error) {
			calls++
			return q, nil
		},
	}
	require.Equal(t, 2, mgr.Run())
	require.Equal(t, 2, calls)
}
