package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hetulpatel/MantleCoop/internal/config"
	"github.com/hetulpatel/MantleCoop/internal/eligibility"
	"github.com/hetulpatel/MantleCoop/internal/kafka"
	"github.com/hetulpatel/MantleCoop/internal/logging"
	"github.com/hetulpatel/MantleCoop/internal/queue"
)

// eligibility_submit publishes one check request per stdin line and prints
// the matching results from the result topic.
func main() {
	session := flag.String("session", "", "session id (default: random per run)")
	showStale := flag.Bool("show-stale", false, "print results superseded by a newer submission")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("[eligibility-submit] config: %v", err)
	}
	logging.Init(cfg.Log.Level, cfg.Log.Format)
	defer logging.Sync()

	sessionID := *session
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	brokers := cfg.Kafka.BrokerList()

	waitCtx, cancel := context.WithTimeout(ctx, 45*time.Second)
	if err := kafka.WaitForBroker(waitCtx, brokers); err != nil {
		logging.Fatalf("[eligibility-submit] wait for broker: %v", err)
	}
	cancel()

	writer := kafka.NewWriter(brokers, cfg.Kafka.RequestTopic)
	defer writer.Close()
	reader := kafka.NewReader(brokers, cfg.Kafka.ResultTopic, "eligibility-submit-"+uuid.NewString())
	defer reader.Close()

	tracker := newTracker()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			msg, err := reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logging.Errorf("[eligibility-submit] read error: %v", err)
				time.Sleep(time.Second)
				continue
			}
			var res queue.CheckResult
			if err := json.Unmarshal(msg.Value, &res); err != nil {
				logging.Errorf("[eligibility-submit] unmarshal error: %v", err)
				continue
			}
			if line, ok := tracker.resolve(res, *showStale); ok {
				fmt.Printf("\n%s\n> ", line)
			}
		}
	}()

	fmt.Printf("Session %s: one account history per line, 'exit' to quit.\n", sessionID)
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		text := scanner.Text()
		if trimmed := strings.TrimSpace(text); strings.EqualFold(trimmed, "exit") || strings.EqualFold(trimmed, "quit") {
			break
		}

		ids, err := queue.PublishRequests(ctx, writer, queue.CheckRequest{
			SessionID:      sessionID,
			AccountHistory: text,
			Previous:       tracker.latest(eligibility.State{}),
		})
		if err != nil {
			logging.Errorf("[eligibility-submit] publish error: %v", err)
			continue
		}
		tracker.track(ids...)
		fmt.Printf("sent %s\n", strings.Join(ids, ","))
	}

	stop()
	wg.Wait()
}

type tracker struct {
	mu      sync.Mutex
	pending map[string]struct{}
	state   *eligibility.State
}

func newTracker() *tracker {
	return &tracker{pending: make(map[string]struct{})}
}

func (t *tracker) track(ids ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, id := range ids {
		t.pending[id] = struct{}{}
	}
}

// resolve reports a result for a request this run sent. Current results
// become the state sent with the next submission.
func (t *tracker) resolve(res queue.CheckResult, showStale bool) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.pending[res.RequestID]; !ok {
		return "", false
	}
	delete(t.pending, res.RequestID)

	if res.Stale {
		if !showStale {
			return "", false
		}
		return fmt.Sprintf("[stale #%d] %s", res.Sequence, describe(res.State)), true
	}
	state := res.State
	t.state = &state
	return fmt.Sprintf("[#%d] %s", res.Sequence, describe(res.State)), true
}

func (t *tracker) latest(fallback eligibility.State) eligibility.State {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == nil {
		return fallback
	}
	return *t.state
}

func describe(s eligibility.State) string {
	switch {
	case s.Error != "":
		return "error: " + s.Error
	case s.HasDecision() && *s.IsEligible:
		return "eligible: " + s.Reason
	case s.HasDecision():
		return "not eligible: " + s.Reason
	default:
		return "no result"
	}
}
