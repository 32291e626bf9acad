// Package app builds the match API from its configuration.
package app

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/translate"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pricofy/football-api/internal/api"
	"github.com/pricofy/football-api/internal/config"
	"github.com/pricofy/football-api/internal/handler"
	"github.com/pricofy/football-api/internal/store"
	"github.com/pricofy/football-api/internal/translator"
	"github.com/pricofy/football-api/internal/validate"
)

// App holds the wired dependencies of one process.
type App struct {
	Config  *config.Config
	AWS     aws.Config
	Handler *handler.Handler
	Router  *chi.Mux
}

// New loads the AWS configuration and builds the store, translator,
// handlers and router selected by cfg.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s, err := newStore(cfg, awsCfg)
	if err != nil {
		return nil, err
	}
	tr, err := newTranslator(cfg, awsCfg)
	if err != nil {
		return nil, err
	}

	h := handler.New(s, tr, validate.New(), log, handler.WithSourceLanguage(cfg.SourceLanguage))

	log.Info("application initialized",
		zap.String("environment", cfg.Environment),
		zap.String("store", cfg.StoreBackend),
		zap.String("translator", cfg.TranslatorBackend),
	)

	return &App{
		Config:  cfg,
		AWS:     awsCfg,
		Handler: h,
		Router:  api.NewRouter(h, log),
	}, nil
}

func newStore(cfg *config.Config, awsCfg aws.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case config.StoreMemory:
		return store.NewMemory(), nil
	case config.StoreDynamoDB:
		client := store.NewDynamoClient(awsCfg, cfg.DynamoDBEndpoint)
		return store.NewDynamo(client, cfg.TableName, cfg.SortKey), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}

func newTranslator(cfg *config.Config, awsCfg aws.Config) (translator.Translator, error) {
	switch cfg.TranslatorBackend {
	case config.TranslatorAmazon:
		return translator.NewAmazon(translate.NewFromConfig(awsCfg)), nil
	case config.TranslatorLambda:
		return translator.NewLambdaFleet(lambdasdk.NewFromConfig(awsCfg), cfg.TranslatorFunctionPrefix), nil
	}
	return nil, fmt.Errorf("unknown translator backend %q", cfg.TranslatorBackend)
}
