package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"thirdcoast.systems/trendscout/cmd/web/internal/web"
	"thirdcoast.systems/trendscout/cmd/web/visitor"
	"thirdcoast.systems/trendscout/internal/config"
	"thirdcoast.systems/trendscout/internal/insight"
	"thirdcoast.systems/trendscout/internal/llm"
	"thirdcoast.systems/trendscout/internal/pipeline"
	"thirdcoast.systems/trendscout/internal/search"
	"thirdcoast.systems/trendscout/internal/trends"
	"thirdcoast.systems/trendscout/internal/youtube"
	"thirdcoast.systems/trendscout/pkg/utils/language"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Starting web service")

	conf, err := config.LoadConfig(ctx)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	yt, err := youtube.NewClient(ctx, youtube.Options{
		APIKey:            conf.YouTube.APIKey,
		RegionCode:        conf.YouTube.RegionCode,
		RelevanceLanguage: conf.YouTube.RelevanceLanguage,
		RequestsPerSecond: conf.YouTube.RequestsPerSecond,
		Timeout:           conf.YouTube.Timeout,
	})
	if err != nil {
		slog.Error("failed to create youtube client", "error", err)
		os.Exit(1)
	}

	gen, err := llm.New(ctx, llm.Config{
		Provider:   conf.LLM.Provider,
		Model:      conf.LLM.Model,
		OpenAIKey:  conf.LLM.OpenAIKey,
		OpenAIBase: conf.LLM.OpenAIBaseURL,
		GeminiKey:  conf.LLM.GeminiKey,
		Timeout:    conf.LLM.Timeout,
	})
	if err != nil {
		slog.Error("failed to create llm provider", "error", err)
		os.Exit(1)
	}

	lang, err := language.Parse(conf.LLM.ContentLanguage)
	if err != nil {
		slog.Error("invalid content language", "error", err)
		os.Exit(1)
	}

	insights := insight.NewService(gen, lang)
	slog.Info("Generating content", "language", insights.Language().Name(), "provider", conf.LLM.Provider)

	hub := pipeline.NewHub(pipeline.Deps{
		Comments:     yt,
		Insights:     insights,
		CommentLimit: conf.CommentLimit,
	}, conf.PipelineIdleAfter)
	go hub.Run(ctx, time.Minute)

	e, err := web.NewWebserver(ctx, web.Services{
		Search:         search.NewService(yt, conf.YouTube.SearchBatch),
		Comments:       yt,
		Insights:       insights,
		Trends:         trends.NewService(yt, nil),
		Pipelines:      hub,
		Visitors:       visitor.NewManager(conf.SessionSecret),
		CommentLimit:   conf.CommentLimit,
		AllowedOrigins: conf.AllowedOrigins,
	})
	if err != nil {
		slog.Error("failed to create webserver", "error", err)
		os.Exit(1)
	}

	addr := ":" + strconv.Itoa(conf.WebServerPort)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)
	}()

	slog.Info("Listening", "addr", addr)
	if err := e.Start(addr); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		// Echo returns an error on Shutdown; treat it as normal if context is done.
		if ctx.Err() != nil {
			return
		}
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
