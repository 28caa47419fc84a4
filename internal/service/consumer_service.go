// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ai-interviewer-be/internal/dto"
	"ai-interviewer-be/internal/entity"
	"ai-interviewer-be/internal/repository/contract"
	"ai-interviewer-be/internal/repository/unitofwork"
	"ai-interviewer-be/pkg/embedding"
	"ai-interviewer-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	sessionStore      contract.SessionStore
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	sessionStore contract.SessionStore,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		sessionStore:      sessionStore,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
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
	var payload dto.PublishEmbedCvMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing CV embedding for session: %s", payload.SessionId)

	// ChunkSize: 1500 chars (approx 375 tokens), Overlap: 200 chars
	chunks := utils.SplitText(payload.Content, 1500, 200)
	log.Printf("[INFO] CV content split into %d chunks", len(chunks))

	var newEmbeddings []*entity.CvEmbedding
	for i, chunk := range chunks {
		res, err := cs.embeddingProvider.Generate(chunk, "RETRIEVAL_DOCUMENT")
		if err != nil {
			log.Printf("[ERROR] Failed to generate embedding for chunk %d of session %s: %v", i, payload.SessionId, err)
			msg.Nack() // Nack for retriable errors
			return
		}

		newEmbeddings = append(newEmbeddings, &entity.CvEmbedding{
			Id:             uuid.New(),
			SessionId:      payload.SessionId,
			Document:       chunk,
			EmbeddingValue: res.Embedding.Values,
			ChunkIndex:     i,
			CreatedAt:      time.Now(),
		})
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	// Re-uploads replace the previous index wholesale.
	if err := uow.CvEmbeddingRepository().DeleteBySessionId(ctx, payload.SessionId); err != nil {
		log.Printf("[ERROR] Failed to delete old embeddings: %v", err)
		msg.Nack()
		return
	}

	if err := uow.CvEmbeddingRepository().CreateBulk(ctx, newEmbeddings); err != nil {
		log.Printf("[ERROR] Failed to create embeddings: %v", err)
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit embeddings: %v", err)
		msg.Nack()
		return
	}

	cs.markSessionIndexed(ctx, payload.SessionId)

	log.Printf("[INFO] Stored %d embeddings for session %s", len(newEmbeddings), payload.SessionId)
	msg.Ack()
}

// markSessionIndexed flips the session's index flag so the engine starts
// consulting the CV index on the next retrieval decision.
func (cs *consumerService) markSessionIndexed(ctx context.Context, sessionId uuid.UUID) {
	session, found, err := cs.sessionStore.Get(ctx, sessionId)
	if err != nil || !found {
		log.Printf("[WARN] Session %s not found while marking CV index ready", sessionId)
		return
	}
	session.HasCVIndex = true
	if err := cs.sessionStore.Save(ctx, session); err != nil {
		log.Printf("[WARN] Failed to save session %s after indexing: %v", sessionId, err)
	}
}
