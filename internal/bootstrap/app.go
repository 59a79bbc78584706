package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"google.golang.org/api/option"

	"resume-ai-backend/internal/auth"
	"resume-ai-backend/internal/llm"
	"resume-ai-backend/internal/llm/gemini"
	"resume-ai-backend/internal/llm/openai"
	"resume-ai-backend/internal/records"
	"resume-ai-backend/internal/render"
	"resume-ai-backend/internal/resumes"
	"resume-ai-backend/internal/shared/config"
	"resume-ai-backend/internal/shared/server"
	"resume-ai-backend/internal/shared/storage/db"
	"resume-ai-backend/internal/shared/storage/object"
	gcsstore "resume-ai-backend/internal/shared/storage/object/gcs"
	localstore "resume-ai-backend/internal/shared/storage/object/local"
	s3store "resume-ai-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies, constructed once at startup.
type App struct {
	Config    config.Config
	Router    *gin.Engine
	DB        *sql.DB
	Firestore *firestore.Client
	Store     object.ObjectStore
	Verifier  auth.TokenVerifier
	LLM       llm.Client
	Renderer  render.Renderer
	Recorder  records.Recorder
	Service   *resumes.Service
	Handler   *resumes.Handler
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	fbApp, err := buildFirebase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	verifier, err := buildVerifier(ctx, cfg, fbApp)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg, fbApp)
	if err != nil {
		return nil, err
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	recorder, fsClient, err := buildRecorder(ctx, cfg, fbApp, sqlDB)
	if err != nil {
		return nil, err
	}

	client, err := buildLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}

	renderer := render.NewChromeRenderer(cfg.ChromePath)
	svc := resumes.NewService(verifier, store, client, renderer, recorder, cfg.PipelineTimeout)
	handler := resumes.NewHandler(svc)

	app := &App{
		Config:    cfg,
		DB:        sqlDB,
		Firestore: fsClient,
		Store:     store,
		Verifier:  verifier,
		LLM:       client,
		Renderer:  renderer,
		Recorder:  recorder,
		Service:   svc,
		Handler:   handler,
	}
	app.Router = server.NewRouter(cfg, handler)
	return app, nil
}

// Close releases long-lived connections.
func (a *App) Close() {
	if a.Firestore != nil {
		if err := a.Firestore.Close(); err != nil {
			log.Printf("bootstrap: close firestore: %v", err)
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			log.Printf("bootstrap: close database: %v", err)
		}
	}
}

// buildFirebase initializes the Firebase app when credentials are configured.
// Dev setups without credentials get nil and fall back to local substitutes.
func buildFirebase(ctx context.Context, cfg config.Config) (*firebase.App, error) {
	if strings.TrimSpace(cfg.FirebaseCredentialsFile) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: no firebase credentials; using local substitutes")
			return nil, nil
		}
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_FILE is required in %s", cfg.Env)
	}

	fbCfg := &firebase.Config{
		ProjectID:     cfg.FirebaseProjectID,
		StorageBucket: cfg.FirebaseStorageBucket,
	}
	app, err := firebase.NewApp(ctx, fbCfg, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("init firebase: %w", err)
	}
	return app, nil
}

func buildVerifier(ctx context.Context, cfg config.Config, fbApp *firebase.App) (auth.TokenVerifier, error) {
	if fbApp == nil {
		log.Printf("bootstrap: using static token verifier (dev only)")
		return auth.StaticVerifier{}, nil
	}
	authClient, err := fbApp.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth: %w", err)
	}
	return auth.NewFirebaseVerifier(authClient)
}

func buildStore(ctx context.Context, cfg config.Config, fbApp *firebase.App) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "gcs":
		if fbApp == nil {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: gcs store requested without firebase; using local store")
				return localstore.New(cfg.LocalStoreDir), nil
			}
			return nil, fmt.Errorf("OBJECT_STORE=gcs requires firebase credentials")
		}
		storageClient, err := fbApp.Storage(ctx)
		if err != nil {
			return nil, fmt.Errorf("init firebase storage: %w", err)
		}
		bucket, err := storageClient.Bucket(cfg.FirebaseStorageBucket)
		if err != nil {
			return nil, fmt.Errorf("open storage bucket: %w", err)
		}
		return gcsstore.New(bucket, cfg.FirebaseStorageBucket)
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if cfg.RecordStoreType != "postgres" {
		return nil, nil
	}
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory recorder")
			return nil, nil
		}
		return nil, fmt.Errorf("RECORD_STORE=postgres requires DATABASE_URL")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory recorder: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.Migrate(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}

// buildRecorder selects the record backend. Explicit RECORD_STORE wins;
// otherwise firestore when firebase is configured, else memory in dev.
func buildRecorder(ctx context.Context, cfg config.Config, fbApp *firebase.App, sqlDB *sql.DB) (records.Recorder, *firestore.Client, error) {
	switch cfg.RecordStoreType {
	case "postgres":
		if sqlDB == nil {
			return records.NewMemoryRecorder(), nil, nil
		}
		return &records.PGRecorder{DB: sqlDB}, nil, nil
	case "memory":
		return records.NewMemoryRecorder(), nil, nil
	case "firestore":
		if fbApp == nil {
			return nil, nil, fmt.Errorf("RECORD_STORE=firestore requires firebase credentials")
		}
	default:
		if fbApp == nil {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: no record store configured; using in-memory recorder")
				return records.NewMemoryRecorder(), nil, nil
			}
			return nil, nil, fmt.Errorf("RECORD_STORE is required in %s", cfg.Env)
		}
	}

	fsClient, err := fbApp.Firestore(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("init firestore: %w", err)
	}
	recorder, err := records.NewFirestoreRecorder(fsClient)
	if err != nil {
		fsClient.Close()
		return nil, nil, err
	}
	return recorder, fsClient, nil
}

func buildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		return openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
	case "none":
		log.Printf("bootstrap: no llm provider configured; generation endpoints will fail")
		return llm.PlaceholderClient{}, nil
	default:
		if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: GEMINI_API_KEY empty; generation endpoints will fail")
				return llm.PlaceholderClient{}, nil
			}
			return nil, fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
		}
		return gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel)
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
