package jobs

import (
	"context"
	"encoding/json"

	"parking-lot-api/internal/logging"

	"github.com/hibiken/asynq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
)

const (
	TypeReceipt  = "receipt:ticket"
	DefaultQueue = "default"
)

var (
	tracer       = otel.Tracer("parking-lot-api")
	meter        = otel.Meter("parking-lot-api")
	jobsEnqueued metric.Int64Counter
)

type ReceiptPayload struct {
	TicketID     uint              `json:"ticket_id"`
	Plate        string            `json:"plate"`
	TotalFee     float64           `json:"total_fee"`
	TraceContext map[string]string `json:"trace_context"`
}

type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr string) (*Client, error) {
	client := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})

	var err error
	jobsEnqueued, err = meter.Int64Counter(
		"jobs.enqueued",
		metric.WithDescription("Total number of jobs enqueued"),
	)
	if err != nil {
		logging.Logger().Error().Err(err).Msg("failed to create jobs enqueued counter")
	}

	return &Client{client: client}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// EnqueueReceipt queues the receipt notification for a closed ticket.
func (c *Client) EnqueueReceipt(ctx context.Context, ticketID uint, plate string, totalFee float64) error {
	ctx, span := tracer.Start(ctx, "job.enqueue.receipt")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("ticket.id", int64(ticketID)),
		attribute.String("vehicle.plate", plate),
		attribute.String("job.type", TypeReceipt),
	)

	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	payload := ReceiptPayload{
		TicketID:     ticketID,
		Plate:        plate,
		TotalFee:     totalFee,
		TraceContext: carrier,
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TypeReceipt, payloadBytes)
	info, err := c.client.EnqueueContext(ctx, task)
	if err != nil {
		span.RecordError(err)
		return err
	}

	if jobsEnqueued != nil {
		jobsEnqueued.Add(ctx, 1, metric.WithAttributes(
			attribute.String("job.type", TypeReceipt),
		))
	}

	span.SetAttributes(
		attribute.String("job.id", info.ID),
		attribute.String("job.queue", info.Queue),
	)

	logging.Info(ctx).
		Str("job_id", info.ID).
		Str("job_type", TypeReceipt).
		Uint("ticket_id", ticketID).
		Msg("job enqueued")

	return nil
}
