package consumer

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Harishez/data-voyage-visualizer/internal/config"
	"github.com/Harishez/data-voyage-visualizer/internal/queue"
	"github.com/Harishez/data-voyage-visualizer/internal/repository"
)

const (
	receiveMaxMessages = 10
	receiveWaitSeconds = 20
	stageBufferSize    = 100
)

// Consumer runs the receive, parse and write stages that move raw events from SQS into storage
type Consumer struct {
	receiver    *Receiver
	parser      *ParserStage
	batchWriter *BatchWriter
	log         *zap.Logger
}

// NewConsumer creates a new consumer
func NewConsumer(cfg config.Consumer, queueConsumer queue.QueueConsumer, repo repository.EventRepository, log *zap.Logger) *Consumer {
	receiver := NewReceiver(queueConsumer, ReceiverConfig{
		MaxMessages:     receiveMaxMessages,
		WaitTimeSeconds: receiveWaitSeconds,
		ErrorBackoff:    time.Duration(cfg.ErrorBackoffMs) * time.Millisecond,
	}, log)

	parser := NewParserStage(queueConsumer, NewJSONEventParser(), log)

	batchWriter := NewBatchWriter(repo, BatchWriterConfig{
		MaxBatchSize: cfg.BatchSizeMax,
		FlushTimeout: time.Duration(cfg.BatchTimeoutSec) * time.Second,
	}, log)

	return &Consumer{
		receiver:    receiver,
		parser:      parser,
		batchWriter: batchWriter,
		log:         log,
	}
}

// Start runs the stages until ctx is done and all of them have drained
func (c *Consumer) Start(ctx context.Context) error {
	messages := make(chan types.Message, stageBufferSize)
	envelopes := make(chan *Envelope, stageBufferSize)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		c.receiver.Start(gctx, messages)
		return nil
	})
	g.Go(func() error {
		c.parser.Start(gctx, messages, envelopes)
		return nil
	})
	g.Go(func() error {
		c.batchWriter.Start(gctx, envelopes)
		return nil
	})

	c.log.Info("Consumer pipeline started")
	err := g.Wait()
	c.log.Info("Consumer pipeline stopped")
	return err
}
