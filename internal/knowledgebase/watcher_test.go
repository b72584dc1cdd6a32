package knowledgebase

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirok/internal/inference/models"
	dErrors "dirok/pkg/domain-errors"
)

type reloads struct {
	mu  sync.Mutex
	kbs []*models.KnowledgeBase
}

func (r *reloads) record(_ context.Context, kb *models.KnowledgeBase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kbs = append(r.kbs, kb)
	return nil
}

func (r *reloads) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.kbs)
}

func (r *reloads) last() *models.KnowledgeBase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.kbs[len(r.kbs)-1]
}

func copyFixture(t *testing.T, name, dst string) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(dst, data, 0o600))
}

func startWatcher(t *testing.T, path string, r *reloads) {
	t.Helper()
	w, err := NewWatcher(path, r.record, WithDebounce(50*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
	})

	select {
	case <-w.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never became ready")
	}
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.yaml")
	copyFixture(t, "kb.yaml", path)

	r := &reloads{}
	startWatcher(t, path, r)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	extra := "\n  - {id: R04, symptom: G02, disease: P7, mb: 0.5, md: 0.2}\n"
	require.NoError(t, os.WriteFile(path, append(data, extra...), 0o600))

	require.Eventually(t, func() bool { return r.count() > 0 }, 5*time.Second, 20*time.Millisecond)
	_, _, rules := r.last().Counts()
	assert.Equal(t, 4, rules)
}

func TestWatcher_InvalidFileKeepsPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.yaml")
	copyFixture(t, "kb.yaml", path)

	r := &reloads{}
	startWatcher(t, path, r)

	copyFixture(t, "unknown_disease.yaml", path)
	time.Sleep(300 * time.Millisecond)
	assert.Zero(t, r.count())

	copyFixture(t, "kb.yaml", path)
	require.Eventually(t, func() bool { return r.count() == 1 }, 5*time.Second, 20*time.Millisecond)
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kb.yaml")
	copyFixture(t, "kb.yaml", path)

	r := &reloads{}
	startWatcher(t, path, r)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o600))
	time.Sleep(300 * time.Millisecond)
	assert.Zero(t, r.count())
}

func TestNewWatcher_Validation(t *testing.T) {
	_, err := NewWatcher("", func(context.Context, *models.KnowledgeBase) error { return nil })
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

	_, err = NewWatcher("kb.yaml", nil)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}
