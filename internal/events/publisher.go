package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/errors"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/models"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/telemetry"
)

var tracer = telemetry.GetTracer("mingus/events")

const (
	ScoredPostingSubject   = "jobs.scored"
	SearchCompletedSubject = "search.completed"
)

// SearchCompletedEvent summarizes one finished search for downstream
// consumers (notification senders, analytics backfills).
type SearchCompletedEvent struct {
	CriteriaHash      string             `json:"criteria_hash"`
	Field             models.CareerField `json:"field"`
	Postings          int                `json:"postings"`
	DegradedProviders []string           `json:"degraded_providers,omitempty"`
	TopScore          float64            `json:"top_score"`
	CompletedAt       time.Time          `json:"completed_at"`
}

// Publisher emits search lifecycle events.
type Publisher interface {
	PublishScoredPosting(ctx context.Context, posting models.JobPosting) error
	PublishSearchCompleted(ctx context.Context, event SearchCompletedEvent) error
	Close()
}

type natsPublisher struct {
	conn   *nats.Conn
	logger *zap.Logger
}

func NewPublisher(natsURL string, connTimeout time.Duration, logger *zap.Logger) (Publisher, error) {
	opts := []nats.Option{
		nats.Timeout(connTimeout),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	}

	conn, err := nats.Connect(natsURL, opts...)
	if err != nil {
		return nil, errors.Internal("connecting to NATS", err)
	}

	return &natsPublisher{
		conn:   conn,
		logger: logger,
	}, nil
}

func (p *natsPublisher) PublishScoredPosting(ctx context.Context, posting models.JobPosting) error {
	_, span := tracer.Start(ctx, "PublishScoredPosting")
	defer span.End()

	data, err := json.Marshal(posting)
	if err != nil {
		span.RecordError(err)
		return errors.Internal("marshaling scored posting", err)
	}

	span.SetAttributes(
		telemetry.String("nats.subject", ScoredPostingSubject),
		telemetry.Int("message.size", len(data)),
	)

	if err := p.conn.Publish(ScoredPostingSubject, data); err != nil {
		span.RecordError(err)
		p.logger.Error("failed to publish scored posting",
			zap.String("fingerprint", posting.Fingerprint),
			zap.Error(err))
		return errors.Internal("publishing to NATS", err)
	}

	p.logger.Debug("published scored posting",
		zap.String("fingerprint", posting.Fingerprint),
		zap.Float64("score", posting.Score))
	return nil
}

func (p *natsPublisher) PublishSearchCompleted(ctx context.Context, event SearchCompletedEvent) error {
	_, span := tracer.Start(ctx, "PublishSearchCompleted")
	defer span.End()

	data, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		return errors.Internal("marshaling search event", err)
	}

	if err := p.conn.Publish(SearchCompletedSubject, data); err != nil {
		span.RecordError(err)
		return errors.Internal("publishing to NATS", err)
	}

	p.logger.Debug("published search completed event",
		zap.String("criteria_hash", event.CriteriaHash),
		zap.Int("postings", event.Postings))
	return nil
}

func (p *natsPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
