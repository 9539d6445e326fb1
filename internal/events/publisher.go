package events

import (
	"context"
	"encoding/json"
	"time"

	"jobsweep/internal/config"
	apperrors "jobsweep/internal/errors"
	"jobsweep/internal/models"
	"jobsweep/internal/telemetry"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("jobsweep/events")

const (
	// ScrapedJobsSubject carries every newly scraped posting, one message
	// per record, for the processing service to normalize and store.
	ScrapedJobsSubject = "jobs.scraped"
)

type Publisher interface {
	PublishRecord(ctx context.Context, record *models.Record) error
	Close()
}

type natsPublisher struct {
	conn   *nats.Conn
	logger *zap.Logger
}

func NewPublisher(logger *zap.Logger, config *config.Config) (Publisher, error) {
	opts := []nats.Option{
		nats.Timeout(config.NATSConnTimeout),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	}

	conn, err := nats.Connect(config.NATSURL, opts...)
	if err != nil {
		return nil, apperrors.Internal("connecting to NATS", err)
	}

	return &natsPublisher{
		conn:   conn,
		logger: logger,
	}, nil
}

func (p *natsPublisher) PublishRecord(ctx context.Context, record *models.Record) error {
	_, span := tracer.Start(ctx, "PublishRecord")
	defer span.End()

	data, err := json.Marshal(record)
	if err != nil {
		span.RecordError(err)
		return apperrors.Internal("marshaling job record", err)
	}

	span.SetAttributes(
		telemetry.String("nats.subject", ScrapedJobsSubject),
		telemetry.Int("message.size", len(data)),
	)

	if err := p.conn.Publish(ScrapedJobsSubject, data); err != nil {
		span.RecordError(err)
		p.logger.Error("failed to publish job record",
			zap.String("job_id", record.JobID),
			zap.Error(err))
		return apperrors.Internal("publishing to NATS", err)
	}

	p.logger.Debug("published job record",
		zap.String("job_id", record.JobID),
		zap.String("subject", ScrapedJobsSubject))
	return nil
}

func (p *natsPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
