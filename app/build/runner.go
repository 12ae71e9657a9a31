package build

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/verdantkitchen/recipe-press/app/recipe"
	"github.com/verdantkitchen/recipe-press/app/site"
)

// PageWriter renders and writes one record's page.
type PageWriter interface {
	WritePage(rec *recipe.Record) (string, error)
}

var _ PageWriter = (*site.Builder)(nil)

// Result summarizes a batch run. A batch never aborts on a record
// failure; failures are collected here and reported at the end.
type Result struct {
	Built  int
	Failed int
	Errors []error
}

// Runner renders pages for many records across a worker pool. Records
// render independently against the read-only loaded collection, so
// workers share no mutable state.
type Runner struct {
	repo        *recipe.Repository
	writer      PageWriter
	workerCount int
}

func NewRunner(repo *recipe.Repository, writer PageWriter, workerCount int) *Runner {
	if workerCount < 1 {
		workerCount = 1
	}
	return &Runner{
		repo:        repo,
		writer:      writer,
		workerCount: workerCount,
	}
}

// RunAll builds pages for every loaded record.
func (r *Runner) RunAll() Result {
	records := r.repo.All()
	slugs := make([]string, 0, len(records))
	for _, rec := range records {
		slugs = append(slugs, rec.Slug)
	}
	return r.Run(slugs)
}

// Run builds pages for the given slugs, distributing tasks across the
// worker pool and collecting per-record errors.
func (r *Runner) Run(slugs []string) Result {
	taskQueue := make(chan Task, len(slugs))
	results := make(chan error, len(slugs))

	var wg sync.WaitGroup
	for i := 0; i < r.workerCount; i++ {
		wg.Add(1)
		go r.worker(i, taskQueue, results, &wg)
	}

	for _, slug := range slugs {
		taskQueue <- NewTask(slug)
	}
	close(taskQueue)

	wg.Wait()
	close(results)

	var result Result
	for err := range results {
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, err)
		} else {
			result.Built++
		}
	}

	return result
}

func (r *Runner) worker(id int, taskQueue <-chan Task, results chan<- error, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range taskQueue {
		task.Start()
		results <- r.execute(task)
		slog.Debug("Build task finished", "worker", id, "task", task.ID, "slug", task.Slug, "duration", task.Duration())
	}
}

func (r *Runner) execute(task Task) error {
	rec, err := r.repo.GetBySlug(task.Slug)
	if err != nil {
		return fmt.Errorf("build %s: %w", task.Slug, err)
	}

	if _, err := r.writer.WritePage(rec); err != nil {
		return fmt.Errorf("build %s: %w", task.Slug, err)
	}

	return nil
}
