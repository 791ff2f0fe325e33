// Package app wires configuration into the concrete service graph. The
// embedding client, label index connection, and LLM client are created
// once here and live for the process lifetime.
package app

import (
	"context"
	"fmt"

	"autolabel/internal/ads"
	"autolabel/internal/canonical"
	"autolabel/internal/classifier"
	"autolabel/internal/config"
	"autolabel/internal/embedding"
	"autolabel/internal/pipeline"
	"autolabel/internal/rules"
	"autolabel/internal/store"
	"autolabel/internal/store/primary"
	"autolabel/internal/store/vector"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
)

type App struct {
	Config *config.Config

	AdsDetector   ads.Detector
	RuleEngine    *rules.Engine
	Classifier    *classifier.LLMClassifier
	Embedder      *embedding.FallbackService
	LabelIndex    store.LabelIndex
	PrimaryStore  *primary.StoreImpl
	Catalog       *canonical.Catalog
	Canonicalizer *canonical.Canonicalizer
	Pipeline      *pipeline.Pipeline

	JobStore  store.JobStore
	JobClient store.JobClient
}

func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()
	app := &App{Config: cfg}

	app.initAdsDetector()
	if err := app.initClassifier(); err != nil {
		return nil, err
	}
	app.initEmbedding(ctx)
	if err := app.initLabelIndex(ctx); err != nil {
		app.cleanupPartialInit()
		return nil, err
	}
	if err := app.initPrimaryStore(ctx); err != nil {
		app.cleanupPartialInit()
		return nil, err
	}
	app.initJobClient()
	app.initPipeline()

	log.Info("application initialization complete")
	return app, nil
}

func (a *App) initAdsDetector() {
	if a.Config.Ads.URL == "" {
		log.Warn("no ads service configured, the classified-ad rule will never fire")
		a.AdsDetector = ads.NoopDetector{}
		return
	}
	a.AdsDetector = ads.NewHTTPDetector(a.Config.Ads.URL)
}

func (a *App) initClassifier() error {
	cfg := a.Config
	if cfg.LLM.APIKey == "" {
		return fmt.Errorf("LLM API key is required but not set (llm.api_key / OPENAI_API_KEY)")
	}
	clientConfig := openai.DefaultConfig(cfg.LLM.APIKey)
	if cfg.LLM.BaseURL != "" {
		clientConfig.BaseURL = cfg.LLM.BaseURL
	}
	client := openai.NewClientWithConfig(clientConfig)

	prompt, err := config.LoadPromptContent(cfg.LLM.Prompt)
	if err != nil {
		log.Warnf("failed to load classification prompt, using built-in default: %v", err)
		prompt = ""
	}
	a.Classifier = classifier.NewLLMClassifier(client, cfg.LLM.Model, prompt, cfg.LLM.Temperature)
	log.Infof("LLM classifier initialized (model: %s)", cfg.LLM.Model)
	return nil
}

func (a *App) initEmbedding(ctx context.Context) {
	cfg := a.Config
	var providers []embedding.Provider

	if cfg.Embedding.OpenaiApiKey != "" {
		p, err := embedding.NewOpenAIProvider(cfg.Embedding.OpenaiApiKey, cfg.Embedding.Model)
		if err != nil {
			log.Warnf("failed to initialize OpenAI embedding provider: %v", err)
		} else {
			providers = append(providers, p)
		}
	}
	if cfg.Embedding.GoogleApiKey != "" {
		p, err := embedding.NewGeminiProvider(ctx, cfg.Embedding.GoogleApiKey, cfg.Embedding.GeminiModelName)
		if err != nil {
			log.Warnf("failed to initialize Gemini embedding provider: %v", err)
		} else {
			providers = append(providers, p)
		}
	}
	if len(providers) == 0 {
		log.Warn("no embedding providers configured; canonicalization will rely on overrides only")
		return
	}

	svc, err := embedding.NewFallbackService(providers, nil)
	if err != nil && len(providers) > 1 {
		// Mixed dimensions: keep only the primary provider.
		log.Warnf("embedding provider chain rejected (%v), keeping %s only", err, providers[0].Name())
		svc, err = embedding.NewFallbackService(providers[:1], nil)
	}
	if err != nil {
		log.Warnf("failed to initialize embedding service: %v", err)
		return
	}
	a.Embedder = svc
}

func (a *App) initLabelIndex(ctx context.Context) error {
	if a.Config.Database.Vector.DSN == "" {
		log.Warn("no label index DSN configured; canonicalization will rely on overrides only")
		return nil
	}
	idx, err := vector.NewStore(ctx, a.Config.Database.Vector.DSN)
	if err != nil {
		return fmt.Errorf("init label index: %w", err)
	}
	a.LabelIndex = idx
	return nil
}

func (a *App) initPrimaryStore(ctx context.Context) error {
	if a.Config.Database.Primary.DSN == "" {
		log.Warn("no primary store DSN configured; using built-in catalog, async jobs disabled")
		a.Catalog = canonical.DefaultCatalog()
		return nil
	}
	ps, err := primary.NewPrimaryStore(ctx, a.Config.Database.Primary.DSN)
	if err != nil {
		return fmt.Errorf("init primary store: %w", err)
	}
	a.PrimaryStore = ps
	a.JobStore = ps

	entries, err := ps.LoadCatalog(ctx)
	if err != nil {
		log.Warnf("failed to load label catalog, using built-in defaults: %v", err)
		a.Catalog = canonical.DefaultCatalog()
		return nil
	}
	// DB entries overlay the built-in defaults.
	a.Catalog = canonical.MergeCatalog(canonical.DefaultCatalog(), entries)
	log.Infof("label catalog loaded (%d entries)", len(entries))
	return nil
}

func (a *App) initJobClient() {
	if a.Config.Redis.Address == "" || a.JobStore == nil {
		log.Warn("redis or primary store unavailable; async labeling disabled")
		return
	}
	a.JobClient = store.NewAsynqJobClient(a.Config.Redis.Address, a.Config.Redis.Password, a.Config.Redis.DB)
}

func (a *App) initPipeline() {
	a.RuleEngine = rules.NewEngine(a.AdsDetector)

	var emb canonical.Embedder
	if a.Embedder != nil {
		emb = a.Embedder
	}
	var idx canonical.Index
	if a.LabelIndex != nil {
		idx = a.LabelIndex
	}
	a.Canonicalizer = canonical.NewCanonicalizer(emb, idx, a.Catalog)

	a.Pipeline = pipeline.New(
		a.RuleEngine,
		a.Classifier,
		a.Canonicalizer,
		a.Canonicalizer.Catalog(),
		a.Config.Pipeline.Workers,
	)
}

func (a *App) Close() {
	if a.JobClient != nil {
		a.JobClient.Close()
	}
	if a.LabelIndex != nil {
		a.LabelIndex.Close()
	}
	if a.PrimaryStore != nil {
		a.PrimaryStore.Close()
	}
}

func (a *App) cleanupPartialInit() {
	a.Close()
}
