package metrics

import (
	"time"

	"github.com/ghostwallet/hunter/internal/domain/model"
	obserrors "github.com/ghostwallet/hunter/internal/observability/errors"
	"github.com/ghostwallet/hunter/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// JobMetric captures details about a job lifecycle event for metric emission.
type JobMetric struct {
	Kind       string
	Transition string
	Result     string
	Duration   time.Duration
	Err        error
}

// EmitJobLifecycle emits standardised job lifecycle metrics.
func EmitJobLifecycle(sink statsd.Sink, in JobMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"kind":       in.Kind,
		"transition": in.Transition,
		"result":     in.Result,
	}

	if in.Err != nil && in.Result == ResultError {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("job.transition", 1, tags)

	if in.Duration > 0 {
		sink.Timing("job.duration", in.Duration, CloneTags(tags))
	}
}

// EmitBatchSummary emits end-of-batch counters and rates from a status snapshot.
func EmitBatchSummary(sink statsd.Sink, report model.StatusReport) {
	if sink == nil {
		return
	}

	sink.Count("batch.jobs.completed", int64(report.Completed), nil)
	sink.Count("batch.jobs.failed", int64(report.Failed), nil)
	sink.Gauge("batch.success_rate", report.SuccessRate, nil)
	sink.Gauge("batch.processing_rate", report.ProcessingRate, nil)
	sink.Timing("batch.elapsed", time.Duration(report.ElapsedSeconds*float64(time.Second)), nil)
}

// CloneTags creates a shallow copy of a tag map, filtering out empty keys.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
