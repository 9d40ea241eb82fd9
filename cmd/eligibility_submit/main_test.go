package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hetulpatel/MantleCoop/internal/eligibility"
	"github.com/hetulpatel/MantleCoop/internal/queue"
)

func TestTracker_Resolve(t *testing.T) {
	tr := newTracker()
	tr.track("r1", "r2")
	eligible := true

	_, ok := tr.resolve(queue.CheckResult{RequestID: "other"}, true)
	assert.False(t, ok)

	_, ok = tr.resolve(queue.CheckResult{RequestID: "r1", Sequence: 1, Stale: true}, false)
	assert.False(t, ok)

	line, ok := tr.resolve(queue.CheckResult{
		RequestID: "r2",
		Sequence:  2,
		State:     eligibility.State{AccountHistory: "h", IsEligible: &eligible, Reason: "Consistent payment history"},
	}, false)
	assert.True(t, ok)
	assert.Equal(t, "[#2] eligible: Consistent payment history", line)
	assert.Equal(t, "h", tr.latest(eligibility.State{}).AccountHistory)

	_, ok = tr.resolve(queue.CheckResult{RequestID: "r2"}, false)
	assert.False(t, ok)
}

func TestTracker_ShowStale(t *testing.T) {
	tr := newTracker()
	tr.track("r1")

	line, ok := tr.resolve(queue.CheckResult{RequestID: "r1", Sequence: 1, Stale: true, State: eligibility.State{Error: "boom"}}, true)
	assert.True(t, ok)
	assert.Equal(t, "[stale #1] error: boom", line)
	assert.Equal(t, eligibility.State{Reason: "fallback"}, tr.latest(eligibility.State{Reason: "fallback"}))
}

func TestDescribe(t *testing.T) {
	no := false
	assert.Equal(t, "not eligible: Recent overdrafts", describe(eligibility.State{IsEligible: &no, Reason: "Recent overdrafts"}))
	assert.Equal(t, "no result", describe(eligibility.State{}))
}
