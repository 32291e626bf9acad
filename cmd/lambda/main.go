// Package main is the entry point for the match API Lambda function.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"go.uber.org/zap"

	"github.com/pricofy/football-api/internal/app"
	"github.com/pricofy/football-api/internal/config"
	"github.com/pricofy/football-api/internal/logger"
)

// function serves raw Lambda events.
type function struct {
	proxy  *chiadapter.ChiLambda
	warmer *Warmer
	log    *zap.Logger
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	a, err := app.New(context.Background(), cfg, zl)
	if err != nil {
		zl.Fatal("failed to initialize application", zap.Error(err))
	}

	fn := &function{
		proxy:  chiadapter.New(a.Router),
		warmer: NewWarmer(lambdasdk.NewFromConfig(a.AWS), os.Getenv("AWS_LAMBDA_FUNCTION_NAME"), zl),
		log:    zl,
	}
	lambda.Start(fn.handleRequest)
}

func (f *function) handleRequest(ctx context.Context, event json.RawMessage) (any, error) {
	// Warmup detection (MUST be first - before any other processing)
	if warmup, ok := IsWarmupEvent(event); ok {
		return f.warmer.Handle(ctx, warmup)
	}

	var req events.APIGatewayProxyRequest
	if err := json.Unmarshal(event, &req); err != nil {
		f.log.Error("failed to parse API Gateway event", zap.Error(err))
		return nil, fmt.Errorf("failed to parse event: %w", err)
	}

	return f.proxy.ProxyWithContext(ctx, req)
}
