package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/hetulpatel/MantleCoop/internal/eligibility"
)

// Writer is the subset of *kafka.Writer the publishers need.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// CheckRequest asks a worker to run one eligibility check.
type CheckRequest struct {
	RequestID      string            `json:"requestId"`
	SessionID      string            `json:"sessionId,omitempty"`
	AccountHistory string            `json:"accountHistory"`
	Previous       eligibility.State `json:"previous"`
}

// Submission converts the request into the service input.
func (r CheckRequest) Submission() eligibility.Submission {
	return eligibility.Submission{
		SessionID:      r.SessionID,
		Previous:       r.Previous,
		AccountHistory: r.AccountHistory,
	}
}

// CheckResult is the outcome of one CheckRequest.
type CheckResult struct {
	RequestID   string            `json:"requestId"`
	SessionID   string            `json:"sessionId,omitempty"`
	Sequence    int64             `json:"sequence"`
	Stale       bool              `json:"stale"`
	State       eligibility.State `json:"state"`
	CompletedAt time.Time         `json:"completedAt"`
}

// NewCheckResult pairs an outcome with the request it answers.
func NewCheckResult(req CheckRequest, out eligibility.Outcome, completed time.Time) CheckResult {
	return CheckResult{
		RequestID:   req.RequestID,
		SessionID:   req.SessionID,
		Sequence:    out.Sequence,
		Stale:       out.Stale,
		State:       out.State,
		CompletedAt: completed.UTC(),
	}
}

// PublishRequests writes requests keyed by session so one session's
// submissions land on the same partition. Missing request ids are filled in.
func PublishRequests(ctx context.Context, writer Writer, reqs ...CheckRequest) ([]string, error) {
	if writer == nil || len(reqs) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(reqs))
	msgs := make([]kafka.Message, 0, len(reqs))
	for _, req := range reqs {
		if req.RequestID == "" {
			req.RequestID = uuid.NewString()
		}
		payload, err := json.Marshal(req)
		if err != nil {
			return nil, fmt.Errorf("marshal request %s: %w", req.RequestID, err)
		}
		key := req.SessionID
		if key == "" {
			key = req.RequestID
		}
		ids = append(ids, req.RequestID)
		msgs = append(msgs, kafka.Message{Key: []byte(key), Value: payload})
	}
	if err := writer.WriteMessages(ctx, msgs...); err != nil {
		return nil, err
	}
	return ids, nil
}

// PublishResults writes results keyed by request id.
func PublishResults(ctx context.Context, writer Writer, results ...CheckResult) error {
	if writer == nil || len(results) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(results))
	for _, res := range results {
		payload, err := json.Marshal(res)
		if err != nil {
			return fmt.Errorf("marshal result %s: %w", res.RequestID, err)
		}
		msgs = append(msgs, kafka.Message{Key: []byte(res.RequestID), Value: payload})
	}
	return writer.WriteMessages(ctx, msgs...)
}
