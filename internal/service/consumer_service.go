package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"ai-medassist-be/internal/dto"
	"ai-medassist-be/internal/websocket"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService subscribes to the OCR progress topic and forwards each
// event to the websocket hub, which handles per-user and cross-instance
// delivery.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	wsHub     *websocket.Hub
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	wsHub *websocket.Hub,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		wsHub:     wsHub,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.OcrProgressMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal progress message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.wsHub.SendProgress(payload.UserId, payload)
	msg.Ack()
}
