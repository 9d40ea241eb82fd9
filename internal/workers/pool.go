package workers

import (
	"context"
	"encoding/json"
	"sync"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/hetulpatel/MantleCoop/internal/kafka"
	"github.com/hetulpatel/MantleCoop/internal/logging"
	"github.com/hetulpatel/MantleCoop/internal/queue"
)

type Handler func(context.Context, *queue.CheckRequest) error

// MessageReader is the subset of *kafka.Reader a consumer loop needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafkago.Message, error)
}

func Run(ctx context.Context, brokers []string, topic, group string, workerCount int, handler Handler) {
	if workerCount <= 0 {
		workerCount = 1
	}

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			reader := kafka.NewReader(brokers, topic, group)
			defer reader.Close()
			logging.Debugf("[worker %d] consuming %s as %s", id, topic, group)
			consume(ctx, reader, handler)
		}(i)
	}

	<-ctx.Done()
	wg.Wait()
}

func consume(ctx context.Context, reader MessageReader, handler Handler) {
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logging.Errorf("worker read error: %v", err)
			continue
		}

		var req queue.CheckRequest
		if err := json.Unmarshal(msg.Value, &req); err != nil {
			logging.Errorf("worker unmarshal error (offset %d): %v", msg.Offset, err)
			continue
		}

		if handler != nil {
			if err := handler(ctx, &req); err != nil {
				logging.Errorf("worker handler error (request %s): %v", req.RequestID, err)
			}
		}
	}
}
