package session

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sua7dev/qr-generator/download"
)

func newTestStore(ttl time.Duration) *Store {
	packager := download.NewPackagerWith(
		func() int { return 4321 },
		func() time.Time { return time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC) },
	)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewStore(ttl, Reducer{DefaultText: defaultURL}, packager, log)
}

func TestStore_CreateAndGet(t *testing.T) {
	st := newTestStore(time.Minute)

	sess, err := st.Create()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.ID == "" {
		t.Fatal("session ID should not be empty")
	}
	if sess.Filename != "QR 4321 03-02-2024.png" {
		t.Errorf("unexpected filename %q", sess.Filename)
	}
	if sess.State != Default(defaultURL) {
		t.Errorf("new session should hold the default state, got %+v", sess.State)
	}

	got, ok := st.Get(sess.ID)
	if !ok {
		t.Fatal("created session should be found")
	}
	if got.ID != sess.ID {
		t.Errorf("expected %s, got %s", sess.ID, got.ID)
	}
	if st.Len() != 1 {
		t.Errorf("expected 1 session, got %d", st.Len())
	}
}

func TestStore_SaveKeepsFilename(t *testing.T) {
	st := newTestStore(time.Minute)
	sess, _ := st.Create()

	sess.State.Text = "changed"
	st.Save(sess)

	got, _ := st.Get(sess.ID)
	if got.State.Text != "changed" {
		t.Errorf("expected saved text, got %q", got.State.Text)
	}
	if got.Filename != sess.Filename {
		t.Errorf("filename should not change, got %q", got.Filename)
	}
}

func TestStore_Isolation(t *testing.T) {
	st := newTestStore(time.Minute)
	a, _ := st.Create()
	b, _ := st.Create()

	a.State.Style.ModuleSize = 20
	st.Save(a)

	got, _ := st.Get(b.ID)
	if got.State.Style.ModuleSize != 8 {
		t.Errorf("other session must not see the change, got %d", got.State.Style.ModuleSize)
	}
}

func TestStore_Expiry(t *testing.T) {
	st := newTestStore(time.Minute)
	now := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return now }

	old, _ := st.Create()
	now = now.Add(45 * time.Second)
	fresh, _ := st.Create()
	now = now.Add(30 * time.Second)

	if _, ok := st.Get(old.ID); ok {
		t.Error("session idle past ttl should be gone")
	}
	if _, ok := st.Get(fresh.ID); !ok {
		t.Error("session within ttl should be found")
	}

	now = now.Add(2 * time.Minute)
	if n := st.Cleanup(); n != 1 {
		t.Errorf("expected 1 removed session, got %d", n)
	}
	if st.Len() != 0 {
		t.Errorf("expected empty store, got %d", st.Len())
	}
}

func TestStore_GetUnknown(t *testing.T) {
	st := newTestStore(time.Minute)
	if _, ok := st.Get("missing"); ok {
		t.Error("unknown session should not be found")
	}
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestStore_CleanupLoop(t *testing.T) {
	var logs lockedBuffer
	log := slog.New(slog.NewTextHandler(&logs, nil))
	packager := download.NewPackagerWith(
		func() int { return 1234 },
		func() time.Time { return time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC) },
	)
	st := NewStore(20*time.Millisecond, Reducer{DefaultText: defaultURL}, packager, log)

	for i := 0; i < 3; i++ {
		if _, err := st.Create(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	st.StartCleanupLoop(ctx, 5*time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for st.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("idle sessions were not evicted, %d remain", st.Len())
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	deadline = time.Now().Add(2 * time.Second)
	for !strings.Contains(logs.String(), "session cleanup loop stopped") {
		if time.Now().After(deadline) {
			t.Fatal("cleanup loop did not stop after cancellation")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
