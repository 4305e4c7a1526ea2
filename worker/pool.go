package worker // import "github.com/seowoojae/shelfd/worker"

import (
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/seowoojae/shelfd/log"
	"github.com/seowoojae/shelfd/model"
	"github.com/seowoojae/shelfd/storage"
	"github.com/seowoojae/shelfd/store"
)

type Pool struct {
	queue chan model.Job
}

func (p *Pool) Push(job model.Job) {
	p.queue <- job
}

// NewPool creates a pool of background cover mirror workers.
func NewPool(store *store.Store, covers *storage.CoverStore, size int) *Pool {
	workerPool := &Pool{
		queue: make(chan model.Job),
	}

	client := &http.Client{Timeout: 30 * time.Second}
	for i := 0; i < size; i++ {
		worker := &coverMirrorWorker{id: i, store: store, covers: covers, client: client}
		go worker.Run(workerPool.queue)
	}
	return workerPool
}

type coverMirrorWorker struct {
	id     int
	store  *store.Store
	covers *storage.CoverStore
	client *http.Client
}

// Run downloads covers and stores local webp copies. Failures only mark the
// job; the book keeps serving the remote thumbnail URL.
func (w *coverMirrorWorker) Run(c <-chan model.Job) {
	log.Debug("Cover mirror worker is running", zap.Int("worker_id", w.id))

	for job := range c {
		log.Debug("Job received by worker",
			zap.Int("worker_id", w.id),
			zap.Int("book_id", job.BookID))

		if err := w.store.SetJobStatus(job.ID, model.JobStatusRunning); err != nil {
			log.Error("Failed to mark job running", zap.Error(err))
		}

		if err := w.mirror(job); err != nil {
			log.Warn("Failed to mirror cover",
				zap.Int("book_id", job.BookID),
				zap.String("cover_url", job.CoverURL),
				zap.Error(err))
			if err := w.store.SetJobStatus(job.ID, model.JobStatusFailed); err != nil {
				log.Error("Failed to mark job failed", zap.Error(err))
			}
			continue
		}

		if err := w.store.SetHasLocalCover(job.BookID, true); err != nil {
			log.Error("Failed to flag local cover", zap.Error(err))
		}
		if err := w.store.SetJobStatus(job.ID, model.JobStatusDone); err != nil {
			log.Error("Failed to mark job done", zap.Error(err))
		}

		log.Debug("Cover mirrored",
			zap.Int("worker_id", w.id),
			zap.Int("book_id", job.BookID))
	}
}

func (w *coverMirrorWorker) mirror(job model.Job) error {
	resp, err := w.client.Get(job.CoverURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status %d fetching cover", resp.StatusCode)
	}
	return w.covers.Save(job.BookID, resp.Body)
}
