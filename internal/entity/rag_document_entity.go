package entity

import (
	"time"

	"github.com/google/uuid"
)

type RagDocument struct {
	Id        uuid.UUID
	Title     string
	Source    string
	Content   string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

type RagEmbedding struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	Content    string
	Embedding  []float32
	ChunkIndex int
	CreatedAt  time.Time
}

// ScoredChunk is a similarity-search hit.
type ScoredChunk struct {
	Content       string
	DocumentTitle string
	Similarity    float64
}
