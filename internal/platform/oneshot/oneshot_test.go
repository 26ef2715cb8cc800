package oneshot

import (
	"context"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"
)

// recorder collects fired ids with the instant they fired at.
type recorder struct {
	mu    sync.Mutex
	fired map[int64]time.Time
}

func newRecorder() *recorder {
	return &recorder{fired: make(map[int64]time.Time)}
}

func (r *recorder) handle(_ context.Context, id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.fired[id] = time.Now()
}

func (r *recorder) get(id int64) (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	at, ok := r.fired[id]

	return at, ok
}

// TestLocal_RegisterExactFiresOnce fires at the requested instant and forgets the registration.
func TestLocal_RegisterExactFiresOnce(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		rec := newRecorder()
		svc := NewLocal(rec.handle, true)

		at := time.Now().Add(time.Hour)
		require.NoError(t, svc.RegisterExact(context.Background(), at, 1))

		pending, ok := svc.Pending(1)
		require.True(t, ok)
		require.Equal(t, at, pending)

		time.Sleep(59 * time.Minute)
		synctest.Wait()

		_, fired := rec.get(1)
		require.False(t, fired)

		time.Sleep(time.Minute)
		synctest.Wait()

		firedAt, fired := rec.get(1)
		require.True(t, fired)
		require.True(t, at.Equal(firedAt))
		require.Zero(t, svc.Len())
	})
}

// TestLocal_ExactNotPermitted refuses exact registrations when disabled.
func TestLocal_ExactNotPermitted(t *testing.T) {
	t.Parallel()

	svc := NewLocal(func(context.Context, int64) {}, false)
	require.ErrorIs(t, svc.RegisterExact(context.Background(), time.Now(), 1), ErrExactNotPermitted)
	require.Zero(t, svc.Len())
}

// TestLocal_InexactAlignsToWindow fires at the next window boundary.
func TestLocal_InexactAlignsToWindow(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		rec := newRecorder()
		svc := NewLocal(rec.handle, false)

		at := time.Now().Add(90 * time.Second)
		require.NoError(t, svc.RegisterInexact(context.Background(), at, time.Minute, 7))

		pending, ok := svc.Pending(7)
		require.True(t, ok)
		require.False(t, pending.Before(at))
		require.Less(t, pending.Sub(at), time.Minute)

		time.Sleep(3 * time.Minute)
		synctest.Wait()

		firedAt, fired := rec.get(7)
		require.True(t, fired)
		require.True(t, pending.Equal(firedAt))
	})
}

// TestLocal_ReplaceAndCancel keeps only the latest registration per id.
func TestLocal_ReplaceAndCancel(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		rec := newRecorder()
		svc := NewLocal(rec.handle, true)
		ctx := context.Background()

		require.NoError(t, svc.RegisterExact(ctx, time.Now().Add(time.Minute), 1))
		require.NoError(t, svc.RegisterExact(ctx, time.Now().Add(time.Hour), 1))
		require.Equal(t, 1, svc.Len())

		time.Sleep(2 * time.Minute)
		synctest.Wait()

		_, fired := rec.get(1)
		require.False(t, fired, "replaced registration must not fire")

		require.NoError(t, svc.RegisterExact(ctx, time.Now().Add(time.Minute), 2))
		require.True(t, svc.Cancel(2))
		require.False(t, svc.Cancel(2))

		svc.Close()
		require.ErrorIs(t, svc.RegisterExact(ctx, time.Now(), 3), ErrClosed)

		time.Sleep(2 * time.Hour)
		synctest.Wait()

		_, fired = rec.get(1)
		require.False(t, fired)

		_, fired = rec.get(2)
		require.False(t, fired)
	})
}

// TestAlignUp covers boundaries and non-positive windows.
func TestAlignUp(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, time.October, 18, 7, 0, 0, 0, time.UTC)

	require.Equal(t, base, AlignUp(base, time.Minute))
	require.Equal(t, base.Add(time.Minute), AlignUp(base.Add(time.Second), time.Minute))
	require.Equal(t, base.Add(5*time.Minute), AlignUp(base.Add(4*time.Minute), 5*time.Minute))
	require.Equal(t, base.Add(time.Second), AlignUp(base.Add(time.Second), 0))
}
