package jobs

import (
	"context"
	"fmt"

	"drivedash/config"
	"drivedash/metrics"
	"drivedash/models"
	"drivedash/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Uploader sends a single file.
type Uploader interface {
	Upload(ctx context.Context, src models.UploadSource, folderID *string) (models.Item, error)
}

// UploadResult is the outcome of one file in a batch.
type UploadResult struct {
	Name string
	Item models.Item
	Err  error
}

// BatchResult is the outcome of a batch. Err is non-nil when any file
// failed; files that did upload stay uploaded. Results is only filled by
// strategies that report per file.
type BatchResult struct {
	Total   int
	Failed  int
	Results []UploadResult
	Err     error
}

// BatchUploader uploads every file of a batch concurrently and waits for
// all of them.
type BatchUploader interface {
	UploadBatch(ctx context.Context, files []models.UploadSource, folderID *string) BatchResult
}

// NewBatchUploader returns the uploader for strategy. limit caps in-flight
// uploads; 0 means no cap.
func NewBatchUploader(strategy config.UploadStrategy, up Uploader, limit int) BatchUploader {
	base := batchRunner{up: up, limit: limit}
	if strategy == config.UploadPerFile {
		return &PerFileUploader{batchRunner: base}
	}
	return &AggregateUploader{batchRunner: base}
}

type batchRunner struct {
	up    Uploader
	limit int
}

// run starts one upload per file. The group has no shared context, so a
// failing file never cancels its siblings.
func (r batchRunner) run(ctx context.Context, files []models.UploadSource, folderID *string) ([]UploadResult, error) {
	var g errgroup.Group
	if r.limit > 0 {
		g.SetLimit(r.limit)
	}

	results := make([]UploadResult, len(files))

	for i, src := range files {
		g.Go(func() error {
			item, err := r.up.Upload(ctx, src, folderID)
			metrics.RecordUpload(src.Size, err == nil)

			results[i] = UploadResult{Name: src.Name, Item: item, Err: err}

			if err != nil {
				utils.LogWarning("upload failed", zap.String("file", src.Name), zap.Error(err))
				return fmt.Errorf("upload %s: %w", src.Name, err)
			}
			return nil
		})
	}

	err := g.Wait()
	return results, err
}

func countFailed(results []UploadResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// AggregateUploader reports the batch as a whole: success, or the first
// failure.
type AggregateUploader struct {
	batchRunner
}

func (u *AggregateUploader) UploadBatch(ctx context.Context, files []models.UploadSource, folderID *string) BatchResult {
	results, err := u.run(ctx, files, folderID)
	return BatchResult{Total: len(files), Failed: countFailed(results), Err: err}
}

// PerFileUploader also returns the outcome of every file.
type PerFileUploader struct {
	batchRunner
}

func (u *PerFileUploader) UploadBatch(ctx context.Context, files []models.UploadSource, folderID *string) BatchResult {
	results, err := u.run(ctx, files, folderID)
	return BatchResult{Total: len(files), Failed: countFailed(results), Results: results, Err: err}
}
