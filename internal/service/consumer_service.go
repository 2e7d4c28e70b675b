package service

import (
	"context"

	"admin-chatbot-be/internal/pkg/logger"
	"admin-chatbot-be/internal/repository/unitofwork"
	"admin-chatbot-be/pkg/rag/audit"

	"github.com/ThreeDotsLabs/watermill/message"
)

// maxDeliveries bounds redelivery of a record the store keeps rejecting.
const maxDeliveries = 3

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the diagnostics topic fed by audit.AsyncRecorder
// and writes each record to the chatbot store.
type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
	failures   map[string]int
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		uowFactory: uowFactory,
		logger:     log,
		failures:   make(map[string]int),
	}
}

// Consume subscribes and returns; messages are handled on a background
// goroutine that exits when the subscription channel closes.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	env, err := audit.DecodeEnvelope(msg.Payload)
	if err != nil {
		cs.logger.Error("CONSUMER", "Dropping undecodable diagnostics record", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	recorder := audit.NewSyncRecorder(uow.RetrievedContextRepository(), uow.AuditLogRepository(), cs.logger)

	if err := recorder.Apply(context.WithoutCancel(ctx), env); err != nil {
		cs.failures[msg.UUID]++
		if cs.failures[msg.UUID] >= maxDeliveries {
			cs.logger.Error("CONSUMER", "Giving up on diagnostics record", map[string]interface{}{
				"message_id": msg.UUID,
				"kind":       env.Kind,
				"error":      err.Error(),
			})
			delete(cs.failures, msg.UUID)
			msg.Ack()
			return
		}
		msg.Nack()
		return
	}

	delete(cs.failures, msg.UUID)
	cs.logger.Debug("CONSUMER", "Diagnostics record stored", map[string]interface{}{
		"message_id": msg.UUID,
		"kind":       env.Kind,
	})
	msg.Ack()
}
