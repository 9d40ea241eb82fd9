package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hetulpatel/MantleCoop/internal/eligibility"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func TestPublishRequests_KeysBySession(t *testing.T) {
	w := &recordingWriter{}
	ids, err := PublishRequests(context.Background(), w,
		CheckRequest{RequestID: "r1", SessionID: "member-1", AccountHistory: "history"},
		CheckRequest{AccountHistory: "anonymous"},
	)
	require.NoError(t, err)
	require.Len(t, ids, 2)
	require.Len(t, w.msgs, 2)

	assert.Equal(t, "r1", ids[0])
	assert.Equal(t, "member-1", string(w.msgs[0].Key))
	assert.NotEmpty(t, ids[1])
	assert.Equal(t, ids[1], string(w.msgs[1].Key))

	var decoded CheckRequest
	require.NoError(t, json.Unmarshal(w.msgs[1].Value, &decoded))
	assert.Equal(t, ids[1], decoded.RequestID)
	assert.Equal(t, "anonymous", decoded.AccountHistory)
}

func TestPublishResults(t *testing.T) {
	w := &recordingWriter{}
	eligible := true
	completed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))
	res := NewCheckResult(
		CheckRequest{RequestID: "r1", SessionID: "member-1"},
		eligibility.Outcome{
			State:    eligibility.State{AccountHistory: "history", IsEligible: &eligible, Reason: "ok"},
			Sequence: 4,
			Stale:    true,
		},
		completed,
	)

	require.NoError(t, PublishResults(context.Background(), w, res))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "r1", string(w.msgs[0].Key))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &body))
	assert.Equal(t, "r1", body["requestId"])
	assert.Equal(t, "member-1", body["sessionId"])
	assert.Equal(t, float64(4), body["sequence"])
	assert.Equal(t, true, body["stale"])
	assert.Equal(t, "2026-03-01T11:00:00Z", body["completedAt"])
	state := body["state"].(map[string]any)
	assert.Equal(t, true, state["isEligible"])
	assert.Equal(t, "ok", state["reason"])
	assert.NotContains(t, state, "error")
}

func TestPublish_NoopAndErrors(t *testing.T) {
	ids, err := PublishRequests(context.Background(), nil, CheckRequest{})
	assert.NoError(t, err)
	assert.Nil(t, ids)
	assert.NoError(t, PublishResults(context.Background(), &recordingWriter{}))

	cause := errors.New("broker down")
	_, err = PublishRequests(context.Background(), &recordingWriter{err: cause}, CheckRequest{AccountHistory: "x"})
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, PublishResults(context.Background(), &recordingWriter{err: cause}, CheckResult{RequestID: "r"}), cause)
}

func TestCheckRequest_Submission(t *testing.T) {
	req := CheckRequest{SessionID: "s", AccountHistory: "h", Previous: eligibility.State{Error: "e"}}
	assert.Equal(t, eligibility.Submission{SessionID: "s", AccountHistory: "h", Previous: eligibility.State{Error: "e"}}, req.Submission())
}
