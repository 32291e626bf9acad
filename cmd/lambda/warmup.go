// Package main contains the Lambda warmup handler for preventing cold starts.
// Scheduled events trigger this handler periodically to keep instances warm.
package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// WarmupSource identifies warmup events
	WarmupSource = "warmup"

	// WarmupDelay ensures instances overlap to create true concurrency
	WarmupDelay = 75 * time.Millisecond
)

// WarmupEvent is the scheduled event payload for warmup
type WarmupEvent struct {
	Source      string `json:"source"`
	Concurrency int    `json:"concurrency"`
}

// WarmupResponse is the response returned by warmup operations
type WarmupResponse struct {
	Status          string `json:"status"`
	InstancesWarmed int    `json:"instancesWarmed"`
}

// Invoker is the subset of the Lambda client used for self-invocation.
type Invoker interface {
	Invoke(ctx context.Context, params *lambdasdk.InvokeInput, optFns ...func(*lambdasdk.Options)) (*lambdasdk.InvokeOutput, error)
}

// Warmer answers warmup events and fans out to extra instances.
type Warmer struct {
	client       Invoker
	functionName string
	delay        time.Duration
	log          *zap.Logger
}

// NewWarmer creates a Warmer that self-invokes functionName.
func NewWarmer(client Invoker, functionName string, log *zap.Logger) *Warmer {
	return &Warmer{client: client, functionName: functionName, delay: WarmupDelay, log: log}
}

// IsWarmupEvent checks if the event is a warmup event
func IsWarmupEvent(event json.RawMessage) (*WarmupEvent, bool) {
	var probe struct {
		Source      string `json:"source"`
		Concurrency *int   `json:"concurrency"`
	}
	if err := json.Unmarshal(event, &probe); err != nil {
		return nil, false
	}
	if probe.Source != WarmupSource {
		return nil, false
	}

	warmup := &WarmupEvent{Source: probe.Source}
	if probe.Concurrency != nil && *probe.Concurrency > 0 {
		warmup.Concurrency = *probe.Concurrency
	}
	return warmup, true
}

// Handle processes a warmup event and optionally self-invokes to maintain
// multiple warm instances.
func (w *Warmer) Handle(ctx context.Context, warmup *WarmupEvent) (map[string]any, error) {
	instancesWarmed := 1 // This instance counts as 1

	if warmup.Concurrency > 0 {
		if err := w.selfInvoke(ctx, warmup.Concurrency); err != nil {
			w.log.Warn("warmup self-invocation failed", zap.Int("concurrency", warmup.Concurrency), zap.Error(err))
		} else {
			instancesWarmed += warmup.Concurrency
		}
	}

	// Brief delay to ensure instances overlap
	time.Sleep(w.delay)

	w.log.Debug("warmup complete", zap.Int("instancesWarmed", instancesWarmed))
	return map[string]any{
		"statusCode": 200,
		"body": WarmupResponse{
			Status:          "warm",
			InstancesWarmed: instancesWarmed,
		},
	}, nil
}

// selfInvoke invokes this function count times asynchronously.
func (w *Warmer) selfInvoke(ctx context.Context, count int) error {
	// Children get concurrency 0 so they do not invoke further
	payload, err := json.Marshal(WarmupEvent{Source: WarmupSource})
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < count; i++ {
		g.Go(func() error {
			_, err := w.client.Invoke(ctx, &lambdasdk.InvokeInput{
				FunctionName:   aws.String(w.functionName),
				InvocationType: types.InvocationTypeEvent,
				Payload:        payload,
			})
			return err
		})
	}
	return g.Wait()
}
