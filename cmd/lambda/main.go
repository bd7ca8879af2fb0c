// Package main is the entry point for the translate proxy Lambda function.
package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/goccy/go-json"
	"github.com/joho/godotenv"

	"github.com/satisfiyworld/translate-proxy/internal/config"
	"github.com/satisfiyworld/translate-proxy/internal/handler"
	"github.com/satisfiyworld/translate-proxy/internal/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	h := handler.New(cfg, logger)

	lambda.Start(func(ctx context.Context, event json.RawMessage) (any, error) {
		// Warmup detection (MUST be first - before any other processing)
		if warmup, ok := IsWarmupEvent(event); ok {
			return HandleWarmup(ctx, warmup)
		}

		var req events.APIGatewayProxyRequest
		if err := json.Unmarshal(event, &req); err != nil {
			return nil, err
		}

		return h.Handle(ctx, req)
	})
}
