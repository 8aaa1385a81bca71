package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-guard/internal/cache"
	"github.com/jonathan/resume-guard/internal/config"
	"github.com/jonathan/resume-guard/internal/debugstore"
	"github.com/jonathan/resume-guard/internal/guard"
	"github.com/jonathan/resume-guard/internal/llm"
	"github.com/jonathan/resume-guard/internal/merge"
	"github.com/jonathan/resume-guard/internal/observability"
	"github.com/jonathan/resume-guard/internal/pipeline"
	"github.com/jonathan/resume-guard/internal/types"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full guarded resume generation pipeline end-to-end",
	Long: `Orchestrates the entire generation process: input guards -> baseline scoring -> bullet rewriting -> composition -> re-scoring -> integrity audit.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values, which override environment variables.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath        string
	runProfile           string
	runJob               string
	runSecondary         string
	runAPIKey            string
	runRedisURL          string
	runDatabaseURL       string
	runRequestID         string
	runOutput            string
	runFileSizeBytes     int64
	runPageCount         int
	runRecentRequests    int
	runMaxFileSizeBytes  int64
	runMaxPages          int
	runMaxRecentRequests int
	runLogLevel          string
	runLogFormat         string
	runVerbose           bool
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runProfile, "profile", "p", "", "Path to candidate profile JSON file")
	runCommand.Flags().StringVarP(&runJob, "job", "j", "", "Path to job profile JSON file")
	runCommand.Flags().StringVarP(&runSecondary, "secondary", "s", "", "Path to secondary network profile JSON file (optional)")
	runCommand.Flags().StringVar(&runRequestID, "request-id", "", "Request id for debug persistence (optional, generated if omitted)")
	runCommand.Flags().StringVarP(&runOutput, "output", "o", "", "Path to write the result JSON (defaults to stdout)")

	runCommand.Flags().Int64Var(&runFileSizeBytes, "file-size", 0, "Size in bytes of the uploaded source document (guard signal)")
	runCommand.Flags().IntVar(&runPageCount, "pages", 0, "Page count of the uploaded source document (guard signal)")
	runCommand.Flags().IntVar(&runRecentRequests, "recent-requests", 0, "Number of requests from this caller in the current window (guard signal)")

	runCommand.Flags().Int64Var(&runMaxFileSizeBytes, "max-file-size", 0, "Maximum accepted document size in bytes")
	runCommand.Flags().IntVar(&runMaxPages, "max-pages", 0, "Maximum accepted document page count")
	runCommand.Flags().IntVar(&runMaxRecentRequests, "max-recent-requests", 0, "Maximum requests per caller per window")

	runCommand.Flags().StringVar(&runLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	runCommand.Flags().StringVar(&runLogFormat, "log-format", "", "Log format: json or console")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print progress events")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	runCommand.Flags().StringVar(&runRedisURL, "redis-url", "", "Redis address for the shared cache (optional, defaults to REDIS_URL env var)")
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL for debug persistence (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Profile == "" {
		return fmt.Errorf("--profile is required (or set 'profile' in the config file)")
	}
	if cfg.Job == "" {
		return fmt.Errorf("--job is required (or set 'job' in the config file)")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("API key is required: pass --api-key or set GEMINI_API_KEY")
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = logger.Sync() }()

	profile, err := loadJSON[types.CandidateProfile](cfg.Profile)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	job, err := loadJSON[types.JobProfile](cfg.Job)
	if err != nil {
		return fmt.Errorf("failed to load job: %w", err)
	}

	// Optional enrichment from a secondary network profile.
	if cfg.Secondary != "" {
		secondary, err := loadJSON[types.SecondaryProfile](cfg.Secondary)
		if err != nil {
			return fmt.Errorf("failed to load secondary profile: %w", err)
		}
		mergeResult := merge.Merge(profile, job, secondary)
		if !mergeResult.Success {
			return fmt.Errorf("secondary profile merge failed integrity checks: %v", mergeResult.Violations)
		}
		profile = mergeResult.Profile
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create generation client: %w", err)
	}
	defer func() { _ = client.Close() }()

	embedder, err := llm.NewGeminiEmbedder(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}
	defer func() { _ = embedder.Close() }()

	var cacheStore cache.Store = cache.NewMemoryStore()
	if cfg.RedisURL != "" {
		redisClient, err := cache.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer func() { _ = redisClient.Close() }()
		cacheStore = cache.NewRedisStore(redisClient, "resumeguard", cache.DefaultRedisTTL)
	}

	var debugStore debugstore.Store = debugstore.NopStore{}
	if cfg.DatabaseURL != "" {
		pg, err := debugstore.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pg.Close()
		debugStore = pg
	}

	requestID := runRequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	orchestrator := &pipeline.Orchestrator{
		Client:   client,
		Embedder: embedder,
		Cache:    cacheStore,
		Debug:    debugStore,
		Guard: guard.New(guard.Limits{
			MaxFileSizeBytes:  cfg.MaxFileSizeBytes,
			MaxPages:          cfg.MaxPages,
			MaxRecentRequests: cfg.MaxRecentRequests,
		}),
		Events:   observability.NewZapSink(logger),
		Recorder: llm.NewRecorder(),
	}

	req := pipeline.Request{
		RequestID:          requestID,
		Profile:            profile,
		Job:                job,
		FileSizeBytes:      runFileSizeBytes,
		PageCount:          runPageCount,
		RecentRequestCount: runRecentRequests,
	}
	if cfg.Verbose {
		req.OnProgress = func(event pipeline.ProgressEvent) {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", event.Stage, event.Message)
		}
	}

	result, err := orchestrator.Run(ctx, req)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintScore("Baseline ATS Score", result.BaselineScore)
		printer.PrintScore("Final ATS Score", result.FinalScore)
		printer.PrintAudit(result.Audit)
		printer.PrintOutcome(result)
	}

	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if runOutput != "" {
		if err := os.WriteFile(runOutput, payload, 0o644); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	} else {
		fmt.Println(string(payload))
	}

	if !result.Success {
		return fmt.Errorf("generation failed: %s", result.Error)
	}
	return nil
}

// resolveConfig merges flag, file, and environment configuration, with flags
// taking the highest precedence.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if runConfigPath != "" {
		loaded, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	if cmd.Flags().Changed("profile") {
		cfg.Profile = runProfile
	}
	if cmd.Flags().Changed("job") {
		cfg.Job = runJob
	}
	if cmd.Flags().Changed("secondary") {
		cfg.Secondary = runSecondary
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("redis-url") {
		cfg.RedisURL = runRedisURL
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}
	if cmd.Flags().Changed("max-file-size") {
		cfg.MaxFileSizeBytes = runMaxFileSizeBytes
	}
	if cmd.Flags().Changed("max-pages") {
		cfg.MaxPages = runMaxPages
	}
	if cmd.Flags().Changed("max-recent-requests") {
		cfg.MaxRecentRequests = runMaxRecentRequests
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = runLogLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = runLogFormat
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}

	cfg = cfg.MergeWithDefaults(config.FromEnv())
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadJSON[T any](path string) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &value, nil
}
