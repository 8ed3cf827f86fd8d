package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lysyi3m/news-map/app/news"
	"github.com/lysyi3m/news-map/app/region"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

const taskTimeout = 5 * time.Minute

type Scheduler struct {
	configCache *region.ConfigCache
	regionRepo  RegionWriter
	warmer      Warmer
	warmLimit   int
	interval    time.Duration
	workerCount int
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	taskQueue   chan TaskInterface
}

// NewScheduler builds a worker pool. A zero interval disables periodic
// cache warm-up; enqueued tasks still run.
func NewScheduler(configCache *region.ConfigCache, regionRepo RegionWriter, warmer Warmer,
	interval time.Duration, workerCount int, warmLimit int) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		configCache: configCache,
		regionRepo:  regionRepo,
		warmer:      warmer,
		warmLimit:   warmLimit,
		interval:    interval,
		workerCount: max(workerCount, 1),
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, 300),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	if s.interval <= 0 {
		slog.Debug("Cache warm-up disabled")
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.enqueueWarmTasks()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueueWarmTasks()
			}
		}
	}()
}

// Stop cancels running tasks and waits for workers to exit.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
	}

	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

// ReloadRegion re-reads one region file and enqueues a store sync
// followed by a cache warm-up for it.
func (s *Scheduler) ReloadRegion(regionID string) ([]TaskInterface, error) {
	regionConfig, err := s.configCache.LoadConfig(regionID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload region config: %w", err)
	}

	syncTask := NewSyncRegionConfigTask(regionConfig, s.regionRepo)
	if err := s.EnqueueTask(syncTask); err != nil {
		return nil, fmt.Errorf("failed to enqueue sync task: %w", err)
	}

	enqueued := []TaskInterface{syncTask}
	if s.warmer == nil {
		return enqueued, nil
	}

	warmTask := NewWarmRegionTask(regionID, s.warmLimit, s.warmer)
	if err := s.EnqueueTask(warmTask); err != nil {
		return enqueued, fmt.Errorf("failed to enqueue warm task: %w", err)
	}

	return append(enqueued, warmTask), nil
}

func (s *Scheduler) enqueueWarmTasks() {
	regionConfigs := s.configCache.GetConfigs()
	if len(regionConfigs) == 0 {
		slog.Debug("No region configurations found")
		return
	}

	slog.Debug("Scheduling cache warm-up", "regions", len(regionConfigs))

	for _, regionConfig := range regionConfigs {
		warmTask := NewWarmRegionTask(regionConfig.ID, s.warmLimit, s.warmer)
		if err := s.EnqueueTask(warmTask); err != nil {
			slog.Warn("Failed to enqueue WarmRegionTask", "region", regionConfig.ID, "error", err)
		}
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task := <-s.taskQueue:
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, taskTimeout)
	defer cancel()

	err := task.Execute(taskCtx)
	if err == nil {
		return
	}

	slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", err)

	if errors.Is(err, news.ErrRegionNotFound) || errors.Is(err, context.Canceled) {
		return
	}

	if !task.CanRetry() {
		slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		return
	}

	task.IncrementRetryCount()
	retryDelay := min(time.Duration(1<<uint(task.GetRetryCount()-1))*time.Second, 30*time.Second)

	slog.Warn("Task retry scheduled", "type", string(task.GetType()), "region", task.GetRegionID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

	go func() {
		timer := time.NewTimer(retryDelay)
		defer timer.Stop()

		select {
		case <-s.ctx.Done():
			slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
		case <-timer.C:
			if retryErr := s.EnqueueTask(task); retryErr != nil {
				slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", retryErr)
			}
		}
	}()
}
