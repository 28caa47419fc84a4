package dto

import "github.com/google/uuid"

// PublishEmbedCvMessage is the payload queued for the embedding worker
// after a CV upload is accepted.
type PublishEmbedCvMessage struct {
	SessionId uuid.UUID `json:"session_id"`
	Content   string    `json:"content"`
}
