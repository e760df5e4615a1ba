package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vidscribe/vidscribe/internal/server"
	"github.com/vidscribe/vidscribe/pkg/agent"
	"github.com/vidscribe/vidscribe/pkg/config"
	"github.com/vidscribe/vidscribe/pkg/language"
	"github.com/vidscribe/vidscribe/pkg/messaging"
	"github.com/vidscribe/vidscribe/pkg/pipeline"
	"github.com/vidscribe/vidscribe/pkg/providers"
	"github.com/vidscribe/vidscribe/pkg/runtime"
	"github.com/vidscribe/vidscribe/pkg/transcript"
	"github.com/vidscribe/vidscribe/pkg/translation"
)

const (
	translationAgentID   = "translation_agent"
	researchAgentID      = "research_agent"
	documentationAgentID = "doc_agent"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vidscribe",
		Short: "Vidscribe processes YouTube transcripts through language detection, translation, and documentation agents.",
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the agent runtime",
		RunE:  runServe,
	}

	processCmd := &cobra.Command{
		Use:   "process [youtube-url]",
		Short: "Process a single video and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runProcess,
	}

	for _, envFile := range []string{
		".env",
		"../../.env",
		"../../../.env",
	} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(processCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app is the fully wired system: broker, agents, pipeline, runtime.
type app struct {
	cfg       *config.Config
	broker    *messaging.Broker
	runtime   *runtime.Runtime
	processor *pipeline.Processor
}

func buildApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	setupLogging(cfg.LogLevel)

	broker := messaging.NewBroker(messaging.WithQueueCapacity(cfg.QueueCapacity))

	var llm providers.Completer
	switch strings.ToLower(cfg.LLMProvider) {
	case "gemini":
		gemini, err := providers.Gemini(ctx)
		if err != nil {
			return nil, fmt.Errorf("creating gemini provider: %w", err)
		}
		llm = gemini
	default:
		llm = providers.OpenAi(ctx)
	}

	var sarvamOpts []translation.SarvamOption
	if cfg.SarvamURL != "" {
		sarvamOpts = append(sarvamOpts, translation.WithSarvamURL(cfg.SarvamURL))
	}
	var googleOpts []translation.GoogleOption
	if cfg.GoogleTranslateURL != "" {
		googleOpts = append(googleOpts, translation.WithGoogleURL(cfg.GoogleTranslateURL))
	}
	router := translation.NewRouter(
		translation.NewSarvamClient(cfg.SarvamKey, sarvamOpts...),
		translation.NewGoogleClient(cfg.GoogleKey, googleOpts...),
	)

	translator := agent.NewTranslationAgent(translationAgentID, broker, language.NewDetector(), router)
	researcher := agent.NewResearchAgent(researchAgentID, broker, llm, cfg.LLMModel)
	documenter := agent.NewDocumentationAgent(documentationAgentID, broker, llm, cfg.LLMModel, researchAgentID)
	translator.SetPollTimeout(cfg.PollTimeout)
	researcher.SetPollTimeout(cfg.PollTimeout)
	documenter.SetPollTimeout(cfg.PollTimeout)

	// The documentation agent observes research and translation replies, and
	// both specialists observe the documentation agent's requests.
	subscriptions := [][2]string{
		{documentationAgentID, researchAgentID},
		{researchAgentID, documentationAgentID},
		{documentationAgentID, translationAgentID},
		{translationAgentID, documentationAgentID},
	}
	for _, sub := range subscriptions {
		if err := broker.Subscribe(sub[0], sub[1]); err != nil {
			return nil, fmt.Errorf("subscribing %s to %s: %w", sub[0], sub[1], err)
		}
	}

	rt := runtime.New()
	if err := rt.Add(translator, researcher, documenter); err != nil {
		return nil, err
	}

	processor := pipeline.NewProcessor(transcript.NewClient(), translator, documenter)

	return &app{
		cfg:       cfg,
		broker:    broker,
		runtime:   rt,
		processor: processor,
	}, nil
}

func setupLogging(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.broker.Reset()

	if err := a.runtime.Start(ctx); err != nil {
		return err
	}

	srv := server.New(a.processor, func() any { return a.runtime.GetState() })
	httpSrv := srv.Run(a.cfg.ListenAddr)
	slog.Info("listening", "addr", a.cfg.ListenAddr)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown failed", "error", err)
	}

	cancel()
	a.runtime.Wait()
	return nil
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.broker.Reset()

	if err := a.runtime.Start(ctx); err != nil {
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	go func() {
		<-sigChan
		cancel()
	}()

	summary, err := a.processor.ProcessVideo(ctx, args[0])
	if err != nil {
		return fmt.Errorf("processing video: %w", err)
	}

	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	cancel()
	a.runtime.Wait()
	return nil
}
