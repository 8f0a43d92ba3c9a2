package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordscramble/internal/round"
)

func TestMemory_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	sess := NewSession(round.New(nil))

	require.NoError(t, st.Save(ctx, sess))
	got, err := st.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)
	assert.Equal(t, 1, st.Len())

	require.NoError(t, st.Delete(ctx, sess.ID))
	_, err = st.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewSession_UniqueIDs(t *testing.T) {
	a := NewSession(round.New(nil))
	b := NewSession(round.New(nil))
	assert.NotEqual(t, a.ID, b.ID)
}

func TestMemory_Sweep(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	stale := NewSession(round.New(nil))
	stale.touch(time.Now().Add(-time.Hour))
	fresh := NewSession(round.New(nil))
	require.NoError(t, st.Save(ctx, stale))
	require.NoError(t, st.Save(ctx, fresh))

	assert.Equal(t, 1, st.Sweep(ctx, 30*time.Minute))

	_, err := st.Get(ctx, stale.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.Get(ctx, fresh.ID)
	assert.NoError(t, err)
}

func TestSession_DoSerializesSubmissions(t *testing.T) {
	dict := round.DictionaryFunc(func(ctx context.Context, word, locale string) (bool, error) {
		time.Sleep(time.Millisecond)
		return true, nil
	})
	st := round.New(dict, round.WithPicker(func(n int) int { return 0 }))
	_, err := st.StartRound([]string{"listen"})
	require.NoError(t, err)
	sess := NewSession(st)

	var wg sync.WaitGroup
	accepted := make(chan string, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = sess.Do(func(st *round.State) error {
				res, err := st.Submit(context.Background(), "silent")
				if err == nil && res.Outcome == round.OutcomeAccepted {
					accepted <- res.Word
				}
				return err
			})
		}()
	}
	wg.Wait()
	close(accepted)

	assert.Len(t, accepted, 1)
	_ = sess.Do(func(st *round.State) error {
		assert.Equal(t, 12, st.Score())
		return nil
	})
}

func TestMemory_SweepDoesNotWaitOnBusySession(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	busy := NewSession(round.New(nil))
	other := NewSession(round.New(nil))
	require.NoError(t, st.Save(ctx, busy))
	require.NoError(t, st.Save(ctx, other))

	entered := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = busy.Do(func(*round.State) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered
	defer close(release)

	swept := make(chan int, 1)
	go func() { swept <- st.Sweep(ctx, time.Hour) }()

	select {
	case n := <-swept:
		assert.Zero(t, n)
	case <-time.After(time.Second):
		t.Fatal("Sweep blocked on a session inside Do")
	}

	got := make(chan error, 1)
	go func() {
		_, err := st.Get(ctx, other.ID)
		got <- err
	}()
	select {
	case err := <-got:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Get blocked while another session was busy")
	}
}
