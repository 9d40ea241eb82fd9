package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hetulpatel/MantleCoop/internal/eligibility"
	"github.com/hetulpatel/MantleCoop/internal/queue"
)

// Submitter runs one session-aware eligibility check.
type Submitter interface {
	Submit(ctx context.Context, sub eligibility.Submission) eligibility.Outcome
}

// Processor answers check requests and publishes their results.
type Processor struct {
	service Submitter
	results queue.Writer
	now     func() time.Time
}

func NewProcessor(service Submitter, results queue.Writer) *Processor {
	return &Processor{service: service, results: results, now: time.Now}
}

func (p *Processor) Handle(ctx context.Context, req *queue.CheckRequest) error {
	if req == nil {
		return fmt.Errorf("nil request")
	}
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	out := p.service.Submit(ctx, req.Submission())
	res := queue.NewCheckResult(*req, out, p.now())

	if err := queue.PublishResults(ctx, p.results, res); err != nil {
		return fmt.Errorf("publish result %s: %w", req.RequestID, err)
	}
	return nil
}
