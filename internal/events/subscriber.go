package events

import (
	"context"
	"fmt"

	"jobsweep/internal/processor"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Handler struct {
	logger    *zap.Logger
	nc        *nats.Conn
	tracer    trace.Tracer
	processor *processor.RecordProcessor
	sub       *nats.Subscription
}

func NewHandler(logger *zap.Logger, nc *nats.Conn, tracer trace.Tracer, recordProcessor *processor.RecordProcessor) *Handler {
	return &Handler{
		logger:    logger,
		nc:        nc,
		tracer:    tracer,
		processor: recordProcessor,
	}
}

func (h *Handler) RegisterSubscriptions(lc fx.Lifecycle) error {
	sub, err := h.nc.QueueSubscribe(ScrapedJobsSubject, "processing-service", h.handleRecord)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", ScrapedJobsSubject, err)
	}

	h.sub = sub
	h.logger.Info("Registered NATS subscriptions")

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return h.sub.Unsubscribe()
		},
	})

	return nil
}

func (h *Handler) handleRecord(msg *nats.Msg) {
	ctx, span := h.tracer.Start(context.Background(), "handleRecord")
	defer span.End()

	if err := h.processor.ProcessRecord(ctx, msg.Data); err != nil {
		h.logger.Error("Failed to process job record",
			zap.Error(err),
			zap.String("subject", msg.Subject),
		)
		return
	}

	h.logger.Debug("Processed job record",
		zap.String("subject", msg.Subject),
	)
}
