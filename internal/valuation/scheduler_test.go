package valuation

import (
	"context"
	"errors"
	"testing"
	"time"

	ptestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/vehicle-valuator/internal/metrics"
	storeMocks "github.com/donaldgifford/vehicle-valuator/internal/store/mocks"
)

func TestNewScheduler_RegistersEntries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		cache     time.Duration
		audit     time.Duration
		retention time.Duration
		wantCount int
		wantCache bool
		wantAudit bool
	}{
		{name: "both jobs", cache: time.Hour, audit: 24 * time.Hour, retention: 90 * 24 * time.Hour, wantCount: 2, wantCache: true, wantAudit: true},
		{name: "no retention", cache: time.Hour, audit: 24 * time.Hour, wantCount: 1, wantCache: true},
		{name: "cache disabled", audit: time.Hour, retention: time.Hour, wantCount: 1, wantAudit: true},
		{name: "nothing", wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ms := storeMocks.NewMockStore(t)
			sched, err := NewScheduler(ms, tt.cache, tt.audit, tt.retention, quietLogger())
			require.NoError(t, err)

			assert.Len(t, sched.Entries(), tt.wantCount)
			assert.Equal(t, tt.wantCache, sched.cachePruneEntryID != 0)
			assert.Equal(t, tt.wantAudit, sched.auditPruneEntryID != 0)
		})
	}
}

func TestScheduler_StartStop(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	sched, err := NewScheduler(ms, time.Hour, 24*time.Hour, time.Hour, quietLogger())
	require.NoError(t, err)

	sched.Start()
	ctx := sched.Stop()
	<-ctx.Done()
}

func TestScheduler_RunJob_Success(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	sched, err := NewScheduler(ms, 0, 0, 0, quietLogger())
	require.NoError(t, err)

	ms.EXPECT().
		AcquireSchedulerLock(mock.Anything, "test-job", sched.holder, 5*time.Minute).
		Return(true, nil).Once()
	ms.EXPECT().InsertJobRun(mock.Anything, "test-job").Return("run-1", nil).Once()
	ms.EXPECT().CompleteJobRun(mock.Anything, "run-1", "succeeded", "", 7).Return(nil).Once()
	ms.EXPECT().ReleaseSchedulerLock(mock.Anything, "test-job", sched.holder).Return(nil).Once()

	called := false
	err = sched.runJob(context.Background(), "test-job", 5*time.Minute, func(context.Context) (int, error) {
		called = true
		return 7, nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestScheduler_RunJob_Failure(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	sched, err := NewScheduler(ms, 0, 0, 0, quietLogger())
	require.NoError(t, err)

	jobErr := errors.New("relation does not exist")

	ms.EXPECT().AcquireSchedulerLock(mock.Anything, "fail-job", mock.Anything, mock.Anything).Return(true, nil).Once()
	ms.EXPECT().InsertJobRun(mock.Anything, "fail-job").Return("run-2", nil).Once()
	ms.EXPECT().CompleteJobRun(mock.Anything, "run-2", "failed", jobErr.Error(), 0).Return(nil).Once()
	ms.EXPECT().ReleaseSchedulerLock(mock.Anything, "fail-job", mock.Anything).Return(nil).Once()

	before := ptestutil.ToFloat64(metrics.SchedulerJobFailuresTotal.WithLabelValues("fail-job"))

	err = sched.runJob(context.Background(), "fail-job", time.Minute, func(context.Context) (int, error) {
		return 0, jobErr
	})
	require.ErrorIs(t, err, jobErr)

	after := ptestutil.ToFloat64(metrics.SchedulerJobFailuresTotal.WithLabelValues("fail-job"))
	assert.InDelta(t, 1.0, after-before, 0.001)
}

func TestScheduler_RunJob_LockHeldElsewhere(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	sched, err := NewScheduler(ms, 0, 0, 0, quietLogger())
	require.NoError(t, err)

	ms.EXPECT().AcquireSchedulerLock(mock.Anything, "busy-job", mock.Anything, mock.Anything).Return(false, nil).Once()

	err = sched.runJob(context.Background(), "busy-job", time.Minute, func(context.Context) (int, error) {
		t.Fatal("job must not run without the lock")
		return 0, nil
	})
	require.NoError(t, err)
}

func TestScheduler_RunJob_LockError(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	sched, err := NewScheduler(ms, 0, 0, 0, quietLogger())
	require.NoError(t, err)

	ms.EXPECT().
		AcquireSchedulerLock(mock.Anything, "job", mock.Anything, mock.Anything).
		Return(false, errors.New("connection reset")).Once()

	err = sched.runJob(context.Background(), "job", time.Minute, func(context.Context) (int, error) {
		return 0, nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "acquiring lock for job")
}

func TestScheduler_Prune(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	retention := 30 * 24 * time.Hour
	sched, err := NewScheduler(ms, 0, 0, retention, quietLogger())
	require.NoError(t, err)

	ms.EXPECT().PruneListingCache(mock.Anything).Return(4, nil).Once()
	ms.EXPECT().PruneValuations(mock.Anything, retention).Return(0, errors.New("timeout")).Once()

	n, err := sched.PruneCache(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	_, err = sched.PruneAudit(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pruning audit records")
}

type countingPruner struct{ calls int }

func (c *countingPruner) PruneListingCache(context.Context) (int, error) {
	c.calls++
	return 3, nil
}

func TestScheduler_WithCachePruner(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	p := &countingPruner{}
	sched, err := NewScheduler(ms, time.Hour, 0, 0, quietLogger(), WithCachePruner(p))
	require.NoError(t, err)

	n, err := sched.PruneCache(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 1, p.calls)
}
