package jobs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"drivedash/config"
	"drivedash/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	mu       sync.Mutex
	fail     map[string]bool
	uploaded []string
	folders  []*string
	inFlight atomic.Int32
	peak     atomic.Int32
	delay    time.Duration
}

func (f *fakeUploader) Upload(ctx context.Context, src models.UploadSource, folderID *string) (models.Item, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(f.delay)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.folders = append(f.folders, folderID)
	if f.fail[src.Name] {
		return nil, errors.New("boom")
	}
	f.uploaded = append(f.uploaded, src.Name)
	return models.File{ItemMeta: models.ItemMeta{ID: src.Name, Name: src.Name}}, nil
}

func sources(names ...string) []models.UploadSource {
	out := make([]models.UploadSource, len(names))
	for i, n := range names {
		out[i] = models.UploadSource{Name: n, Size: 1}
	}
	return out
}

func TestAggregatePartialFailure(t *testing.T) {
	up := &fakeUploader{fail: map[string]bool{"2.txt": true}}
	res := NewBatchUploader(config.UploadAggregate, up, 0).UploadBatch(context.Background(), sources("1.txt", "2.txt", "3.txt"), nil)

	require.Error(t, res.Err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 1, res.Failed)
	assert.Nil(t, res.Results)
	assert.ElementsMatch(t, []string{"1.txt", "3.txt"}, up.uploaded)
}

func TestPerFileReportsEveryFile(t *testing.T) {
	up := &fakeUploader{fail: map[string]bool{"b": true}}
	res := NewBatchUploader(config.UploadPerFile, up, 0).UploadBatch(context.Background(), sources("a", "b"), nil)

	require.Error(t, res.Err)
	require.Len(t, res.Results, 2)
	assert.Equal(t, "a", res.Results[0].Name)
	assert.NoError(t, res.Results[0].Err)
	assert.Error(t, res.Results[1].Err)
}

func TestBatchTagsFolder(t *testing.T) {
	up := &fakeUploader{}
	folder := "F1"
	res := NewBatchUploader(config.UploadAggregate, up, 0).UploadBatch(context.Background(), sources("a", "b"), &folder)
	require.NoError(t, res.Err)
	for _, f := range up.folders {
		require.NotNil(t, f)
		assert.Equal(t, "F1", *f)
	}
}

func TestBatchConcurrency(t *testing.T) {
	names := []string{"a", "b", "c", "d", "e", "f"}

	unbounded := &fakeUploader{delay: 20 * time.Millisecond}
	NewBatchUploader(config.UploadAggregate, unbounded, 0).UploadBatch(context.Background(), sources(names...), nil)
	assert.Greater(t, unbounded.peak.Load(), int32(1))

	capped := &fakeUploader{delay: 5 * time.Millisecond}
	NewBatchUploader(config.UploadAggregate, capped, 2).UploadBatch(context.Background(), sources(names...), nil)
	assert.LessOrEqual(t, capped.peak.Load(), int32(2))
	assert.Len(t, capped.uploaded, len(names))
}

type flipChecker struct{ expired atomic.Bool }

func (f *flipChecker) Expired() bool { return f.expired.Load() }

func TestSessionWatcherFiresOncePerExpiry(t *testing.T) {
	checker := &flipChecker{}
	fired := 0
	w := NewSessionWatcher(checker, time.Minute, func() { fired++ })

	assert.False(t, w.Check())
	checker.expired.Store(true)
	assert.True(t, w.Check())
	assert.False(t, w.Check())
	assert.Equal(t, 1, fired)

	checker.expired.Store(false)
	w.Check()
	checker.expired.Store(true)
	assert.True(t, w.Check())
	assert.Equal(t, 2, fired)
}

func TestSessionWatcherStart(t *testing.T) {
	checker := &flipChecker{}
	checker.expired.Store(true)
	done := make(chan struct{})
	w := NewSessionWatcher(checker, 10*time.Millisecond, func() { close(done) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher never fired")
	}
}
