package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-blog-api/config"
	"github.com/oksasatya/go-blog-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	username := "demo"
	email := "demo@example.com"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	if _, err := db.Exec(`
		INSERT INTO users (username, email, password)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO UPDATE SET password = EXCLUDED.password
	`, username, email, hash); err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: username=%s email=%s password=%s\n", username, email, password)

	var postID int64
	if err := db.QueryRow(`
		INSERT INTO entities (kind, title, body, username)
		VALUES ('post', 'Hello World', 'This is the seeded demo post.', $1)
		RETURNING id
	`, username).Scan(&postID); err != nil {
		log.Fatalf("failed to seed post: %v", err)
	}
	fmt.Printf("seeded post: id=%d\n", postID)

	if _, err := db.Exec(`
		INSERT INTO entities (kind, body, username, parent_id)
		VALUES ('comment', 'First!', $1, $2)
	`, username, postID); err != nil {
		log.Fatalf("failed to seed comment: %v", err)
	}
	fmt.Println("seeded comment on demo post")
}
