package screen

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestState_WatchStartsWithCurrentAndConflates(t *testing.T) {
	req := require.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	st := NewState(0)
	st.Update(func(int) int { return 1 })

	ch := st.Watch(ctx)
	req.Equal(1, <-ch)

	for i := 2; i <= 5; i++ {
		n := i
		st.Update(func(int) int { return n })
	}
	// only the newest record is kept for a lagging watcher
	req.Equal(5, <-ch)
	req.Equal(5, st.Get())

	cancel()
	select {
	case _, ok := <-ch:
		req.False(ok)
	case <-time.After(2 * time.Second):
		t.Fatal("watch channel not closed after cancel")
	}
}

func TestState_UpdateReturnsNewRecord(t *testing.T) {
	type rec struct {
		Items []string
	}
	req := require.New(t)
	st := NewState(rec{Items: []string{"a"}})

	before := st.Get()
	after := st.Update(func(r rec) rec {
		r.Items = append([]string{}, r.Items...)
		r.Items = append(r.Items, "b")
		return r
	})

	req.Equal([]string{"a"}, before.Items)
	req.Equal([]string{"a", "b"}, after.Items)
}

func TestScope_CloseWaitsForRuns(t *testing.T) {
	req := require.New(t)
	s := newScope(context.Background())

	finished := make(chan struct{})
	s.launch(func(ctx context.Context) {
		<-ctx.Done()
		close(finished)
	})
	stop := s.launch(func(ctx context.Context) { <-ctx.Done() })
	stop()

	s.close()
	select {
	case <-finished:
	default:
		req.Fail("close returned before the run finished")
	}
}
