// Package kafka consumes render jobs from a Kafka topic so the service
// can run as a fleet of workers behind a job producer.
package kafka

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/IBM/sarama"

	"geofacts/script"
)

// JobHandler processes one render job. Returning an error leaves the
// message unmarked so the job is retried.
type JobHandler func(ctx context.Context, job script.Job) error

// Config holds the consumer settings.
type Config struct {
	Brokers []string
	Topic   string
	GroupID string
	Handler JobHandler
}

// Consumer wraps a sarama consumer group delivering render jobs.
type Consumer struct {
	group   sarama.ConsumerGroup
	topic   string
	groupID string
	handler JobHandler
	ready   chan bool
}

// NewConsumer creates a consumer group member for render jobs.
func NewConsumer(cfg Config) (*Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, saramaConfig)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		group:   group,
		topic:   cfg.Topic,
		groupID: cfg.GroupID,
		handler: cfg.Handler,
		ready:   make(chan bool),
	}, nil
}

// Start begins consuming and returns once the group session is ready.
func (c *Consumer) Start(ctx context.Context) error {
	handler := &groupHandler{consumer: c, ready: c.ready}

	go func() {
		for {
			if err := c.group.Consume(ctx, []string{c.topic}, handler); err != nil {
				if err == context.Canceled {
					log.Println("Kafka consumer context canceled")
					return
				}
				log.Printf("Error from Kafka consumer: %v", err)
			}
			if ctx.Err() != nil {
				return
			}
			handler.ready = make(chan bool)
		}
	}()

	<-c.ready
	log.Printf("✅ Kafka consumer started (group: %s, topic: %s)", c.groupID, c.topic)

	go func() {
		for err := range c.group.Errors() {
			log.Printf("❌ Kafka consumer error: %v", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the consumer.
func (c *Consumer) Close() error {
	log.Println("Closing Kafka consumer...")
	return c.group.Close()
}

// RunWithGracefulShutdown consumes until SIGINT/SIGTERM.
func RunWithGracefulShutdown(cfg Config) error {
	consumer, err := NewConsumer(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Start(ctx); err != nil {
		return err
	}

	sigchan := make(chan os.Signal, 1)
	signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)
	<-sigchan

	log.Println("Shutdown signal received")
	cancel()
	return consumer.Close()
}

// groupHandler implements sarama.ConsumerGroupHandler.
type groupHandler struct {
	consumer *Consumer
	ready    chan bool
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error {
	close(h.ready)
	return nil
}

func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}

			log.Printf("📥 Received render job: partition=%d, offset=%d", message.Partition, message.Offset)

			var job script.Job
			if err := json.Unmarshal(message.Value, &job); err != nil {
				// Malformed payloads are marked so they never block the
				// partition.
				log.Printf("❌ Failed to unmarshal render job: %v", err)
				session.MarkMessage(message, "")
				continue
			}

			job.ApplyDefaults()
			if err := job.Validate(); err != nil {
				log.Printf("⚠️  Skipping invalid job %s: %v", job.ID, err)
				session.MarkMessage(message, "")
				continue
			}

			if err := h.consumer.handler(session.Context(), job); err != nil {
				// Leave unmarked so the job is retried after rebalance.
				log.Printf("❌ Failed to process job %s: %v", job.ID, err)
				continue
			}

			log.Printf("✅ Completed render job: %s", job.ID)
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}
