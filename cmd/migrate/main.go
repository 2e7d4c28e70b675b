package main

import (
	"log"

	"admin-chatbot-be/internal/config"
	"admin-chatbot-be/internal/model"
	"admin-chatbot-be/pkg/database"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: CHATBOT_DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Step 1: Setting up extensions...")
	for _, sql := range []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	} {
		if err := db.Exec(sql).Error; err != nil {
			log.Fatalf("Error: %s: %v", sql, err)
		}
	}

	log.Println("Step 2: Running AutoMigrate...")
	models := []interface{}{
		&model.AdminSession{},
		&model.ChatHistory{},
		&model.RetrievedContext{},
		&model.AuditLog{},
		&model.RagDocument{},
		&model.RagEmbedding{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("Step 3: Creating indexes...")
	for _, sql := range []string{
		`CREATE INDEX IF NOT EXISTS idx_rag_embeddings_embedding ON rag_embeddings USING hnsw (embedding vector_cosine_ops);`,
		`CREATE INDEX IF NOT EXISTS idx_chat_history_session_created ON chat_history (session_id, created_at DESC);`,
	} {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to create index: %v", err)
		}
	}

	log.Println("Success: chatbot schema is up to date")
}
