package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/redditor-labs/redditor/internal/conf"
	"github.com/redditor-labs/redditor/reddit"
)

func main() {
	_ = godotenv.Load()

	cfg := conf.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if len(os.Args) < 3 {
		fmt.Println("Usage: send-reply <thing_id> <text>")
		fmt.Println("  thing_id is a fullname like t3_abc123 (post) or t1_def456 (comment)")
		os.Exit(1)
	}

	thingID := os.Args[1]
	text := os.Args[2]

	client, err := reddit.NewClient(
		cfg.Reddit.ClientID,
		cfg.Reddit.ClientSecret,
		cfg.Reddit.Username,
		cfg.Reddit.Password,
		cfg.Reddit.UserAgent,
	)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if err := client.SubmitComment(context.Background(), thingID, text); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Reply sent successfully!")
}
