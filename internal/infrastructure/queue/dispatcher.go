package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/streamvault/streaming-api/internal/api/metrics"
	"github.com/streamvault/streaming-api/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher routes playback progress beacons to a fixed set of workers using
// consistent hashing on the playback ID, guaranteeing per-playback ordering.
type Dispatcher struct {
	workers []chan ports.PlaybackProgressEvent
	service ports.PlaybackService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.PlaybackService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.PlaybackProgressEvent, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.PlaybackProgressEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a beacon to the worker responsible for its playback.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event ports.PlaybackProgressEvent) {
	idx := d.shardIndex(event.PlaybackID)
	d.workers[idx] <- event
	metrics.PlaybackEventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// EnqueueBatch enqueues multiple beacons preserving per-playback ordering.
func (d *Dispatcher) EnqueueBatch(events []ports.PlaybackProgressEvent) {
	for _, e := range events {
		d.Enqueue(e)
	}
}

// shardIndex maps a playback ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(playbackID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(playbackID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.PlaybackProgressEvent) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			start := time.Now()
			result := "ok"
			if err := d.service.ApplyProgressEvent(ctx, event); err != nil {
				result = "error"
				d.log.Error().Err(err).
					Str("playback_id", event.PlaybackID).
					Int("worker_id", id).
					Msg("progress beacon processing failed")
			}
			metrics.PlaybackEventsProcessedTotal.WithLabelValues(result).Inc()
			metrics.PlaybackEventDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
			metrics.PlaybackEventsQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
		}
	}
}
