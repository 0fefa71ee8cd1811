package tasks

import (
	"context"
	"encoding/json"
	"time"

	"parking-lot-api/internal/logging"

	"github.com/hibiken/asynq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
)

var (
	tracer        = otel.Tracer("parking-lot-worker")
	meter         = otel.Meter("parking-lot-worker")
	jobsCompleted metric.Int64Counter
	jobsFailed    metric.Int64Counter
	jobsDuration  metric.Float64Histogram
)

func init() {
	var err error

	jobsCompleted, err = meter.Int64Counter(
		"jobs.completed",
		metric.WithDescription("Total number of jobs completed successfully"),
	)
	if err != nil {
		logging.Logger().Error().Err(err).Msg("failed to create jobs completed counter")
	}

	jobsFailed, err = meter.Int64Counter(
		"jobs.failed",
		metric.WithDescription("Total number of jobs failed"),
	)
	if err != nil {
		logging.Logger().Error().Err(err).Msg("failed to create jobs failed counter")
	}

	jobsDuration, err = meter.Float64Histogram(
		"jobs.duration_ms",
		metric.WithDescription("Job processing duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		logging.Logger().Error().Err(err).Msg("failed to create jobs duration histogram")
	}
}

type ReceiptPayload struct {
	TicketID     uint              `json:"ticket_id"`
	Plate        string            `json:"plate"`
	TotalFee     float64           `json:"total_fee"`
	TraceContext map[string]string `json:"trace_context"`
}

// HandleReceipt delivers the check-out receipt for a closed ticket. Delivery
// here is a log line; a real deployment would hand the payload to a printer
// or an SMS gateway.
func HandleReceipt(ctx context.Context, task *asynq.Task) error {
	start := time.Now()

	var payload ReceiptPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		recordJobMetrics(ctx, "receipt:ticket", false, time.Since(start))
		return err
	}

	parentCtx := otel.GetTextMapPropagator().Extract(
		context.Background(),
		propagation.MapCarrier(payload.TraceContext),
	)

	ctx, span := tracer.Start(parentCtx, "job.receipt")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("ticket.id", int64(payload.TicketID)),
		attribute.String("vehicle.plate", payload.Plate),
		attribute.String("job.type", "receipt:ticket"),
	)

	logging.Info(ctx).
		Uint("ticket_id", payload.TicketID).
		Str("plate", payload.Plate).
		Float64("total_fee", payload.TotalFee).
		Msg("receipt delivered")

	span.SetStatus(codes.Ok, "receipt processed")
	span.SetAttributes(attribute.Bool("job.success", true))

	recordJobMetrics(ctx, "receipt:ticket", true, time.Since(start))

	return nil
}

func recordJobMetrics(ctx context.Context, jobType string, success bool, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("job.type", jobType),
	}

	if success {
		if jobsCompleted != nil {
			jobsCompleted.Add(ctx, 1, metric.WithAttributes(attrs...))
		}
	} else {
		if jobsFailed != nil {
			jobsFailed.Add(ctx, 1, metric.WithAttributes(attrs...))
		}
	}

	if jobsDuration != nil {
		jobsDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	}
}
