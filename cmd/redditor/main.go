package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/redditor-labs/redditor/anthropic"
	"github.com/redditor-labs/redditor/internal/biz"
	"github.com/redditor-labs/redditor/internal/conf"
	"github.com/redditor-labs/redditor/internal/data"
	"github.com/redditor-labs/redditor/internal/server"
	"github.com/redditor-labs/redditor/internal/service"
	"github.com/redditor-labs/redditor/openaichat"
	"github.com/redditor-labs/redditor/reddit"
)

func main() {
	checkOnly := flag.Bool("check", false, "print the configuration report and exit")
	flag.Parse()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, using environment variables")
	}

	cfg := conf.LoadFromEnv()

	if *checkOnly {
		fmt.Print(cfg.Report())
		if err := cfg.Validate(); err != nil {
			fmt.Printf("\nConfiguration invalid: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("\nConfiguration is valid")
		return
	}

	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	redditClient, err := reddit.NewClient(
		cfg.Reddit.ClientID,
		cfg.Reddit.ClientSecret,
		cfg.Reddit.Username,
		cfg.Reddit.Password,
		cfg.Reddit.UserAgent,
	)
	if err != nil {
		log.Fatalf("failed to create reddit client: %v", err)
	}

	var openaiClient *openaichat.Client
	if cfg.OpenAI.APIKey != "" {
		openaiClient = openaichat.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
		log.Info("openai provider enabled")
	}

	var anthropicClient *anthropic.Client
	if cfg.Anthropic.APIKey != "" {
		anthropicClient = anthropic.NewClient(cfg.Anthropic.APIKey, cfg.Anthropic.Model)
		log.Info("anthropic provider enabled")
	}

	ctx := context.Background()

	repos, err := data.NewRepositories(ctx, redditClient, openaiClient, anthropicClient, cfg.ToAgentConfig(), data.StoreOptions{
		Backend:       cfg.Store.Backend,
		RedisAddr:     cfg.Store.RedisAddr,
		RedisPassword: cfg.Store.RedisPassword,
		RedisDB:       cfg.Store.RedisDB,
		DBPath:        cfg.Store.DBPath,
	})
	if err != nil {
		log.Fatalf("failed to create repositories: %v", err)
	}

	usecases := biz.NewUsecases(repos, cfg.ToPromptConfig())

	agentSvc := service.NewAgentService(usecases.Trigger)

	statsRunner := service.NewStatsRunner(repos.Store, time.Duration(cfg.Server.StatsIntervalMins)*time.Minute)
	statsRunner.Start()

	srv := server.NewServer(agentSvc, repos.Store, cfg.Server.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Info("shutting down...")
		statsRunner.Stop()
		srv.Stop()
	}()

	agentCfg := cfg.ToAgentConfig()
	log.Infof("starting redditor agent (keyword=%q, provider=%s)",
		cfg.Agent.TriggerKeyword, agentCfg.EffectiveProvider())
	if err := srv.Start(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
