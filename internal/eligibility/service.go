package eligibility

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hetulpatel/MantleCoop/internal/eligibility/metrics"
	"github.com/hetulpatel/MantleCoop/internal/hashutil"
)

// Inferer asks the inference boundary for a decision on a validated request.
type Inferer interface {
	Infer(ctx context.Context, req Request) (Decision, error)
}

// InfererFunc adapts a function to Inferer.
type InfererFunc func(ctx context.Context, req Request) (Decision, error)

func (f InfererFunc) Infer(ctx context.Context, req Request) (Decision, error) {
	return f(ctx, req)
}

// Config wires the service collaborators.
type Config struct {
	Inferer   Inferer
	Sequences SequenceStore
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
}

// Service runs eligibility checks. It holds no per-request state; every
// call is independent.
type Service struct {
	inferer   Inferer
	sequences SequenceStore
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewService creates a service.
func NewService(cfg Config) (*Service, error) {
	if cfg.Inferer == nil {
		return nil, fmt.Errorf("eligibility: inferer is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		inferer:   cfg.Inferer,
		sequences: cfg.Sequences,
		metrics:   cfg.Metrics,
		logger:    logger.With(zap.String("component", "eligibility")),
	}, nil
}

// Evaluate validates the history and, if accepted, makes exactly one
// inference call. Errors are *ValidationError or *InferenceError.
func (s *Service) Evaluate(ctx context.Context, accountHistory string) (Decision, error) {
	req, err := Validate(accountHistory)
	if err != nil {
		return Decision{}, err
	}

	start := time.Now()
	decision, err := s.inferer.Infer(ctx, req)
	s.metrics.ObserveInferenceLatency(time.Since(start))
	if err != nil {
		return Decision{}, &InferenceError{Message: MsgInference, Err: err}
	}
	if strings.TrimSpace(decision.Reason) == "" {
		return Decision{}, &InferenceError{Message: MsgInference, Err: errors.New("decision has no reason")}
	}
	return decision, nil
}

// Check runs one eligibility check and projects it onto the caller state.
// Failures are reported inside the returned state.
func (s *Service) Check(ctx context.Context, prev State, accountHistory string) State {
	decision, err := s.Evaluate(ctx, accountHistory)
	s.record(accountHistory, decision, err)
	return Project(prev, accountHistory, decision, err)
}

// Submit runs Check and tags the result with a per-session submission
// number. Sequence bookkeeping failures never block the check itself.
func (s *Service) Submit(ctx context.Context, sub Submission) Outcome {
	var seq int64
	tracked := sub.SessionID != "" && s.sequences != nil
	if tracked {
		n, err := s.sequences.Next(ctx, sub.SessionID)
		if err != nil {
			s.logger.Warn("sequence allocation failed", zap.String("session_id", sub.SessionID), zap.Error(err))
			tracked = false
		} else {
			seq = n
		}
	}

	out := Outcome{
		State:    s.Check(ctx, sub.Previous, sub.AccountHistory),
		Sequence: seq,
	}
	if !tracked {
		return out
	}

	latest, err := s.sequences.Latest(ctx, sub.SessionID)
	if err != nil {
		s.logger.Warn("sequence lookup failed", zap.String("session_id", sub.SessionID), zap.Error(err))
		return out
	}
	if latest > seq {
		out.Stale = true
		s.metrics.IncrementStale()
		s.logger.Info("superseded result",
			zap.String("session_id", sub.SessionID),
			zap.Int64("sequence", seq),
			zap.Int64("latest", latest),
		)
	}
	return out
}

func (s *Service) record(accountHistory string, decision Decision, err error) {
	fp := hashutil.Fingerprint(accountHistory)
	switch {
	case err == nil:
		outcome := metrics.OutcomeIneligible
		if decision.IsEligible {
			outcome = metrics.OutcomeEligible
		}
		s.metrics.IncrementOutcome(outcome)
		s.logger.Info("eligibility decided", zap.String("history_fp", fp), zap.Bool("eligible", decision.IsEligible))
	case IsValidation(err):
		s.metrics.IncrementOutcome(metrics.OutcomeValidationError)
		s.logger.Debug("eligibility request rejected", zap.String("history_fp", fp), zap.Int("length", len(strings.TrimSpace(accountHistory))))
	default:
		s.metrics.IncrementOutcome(metrics.OutcomeInferenceError)
		s.logger.Error("eligibility inference failed", zap.String("history_fp", fp), zap.Error(err))
	}
}
