package server

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"skillproof/internal/ai"
	"skillproof/internal/analysis"
	"skillproof/internal/assessment"
	"skillproof/internal/config"
	skillproofErrors "skillproof/internal/errors"
	"skillproof/internal/types"
)

// AnalyzeResumeRequest represents the JSON request body for the analyze-resume endpoint
type AnalyzeResumeRequest struct {
	ResumeText     string   `json:"resumeText"`
	RequiredSkills []string `json:"requiredSkills,omitempty"`
}

// ParseProfileRequest represents the request body for the parse-profile endpoint
type ParseProfileRequest struct {
	ProfileText    string   `json:"profileText"`
	RequiredSkills []string `json:"requiredSkills,omitempty"`
}

// GenerateTestRequest represents the request body for the generate-claim-test endpoint
type GenerateTestRequest struct {
	ResumeText string   `json:"resumeText"`
	CompanyIDs []string `json:"companyIds,omitempty"`
}

// SubmitTestRequest represents the request body for the submit-claim-test endpoint
type SubmitTestRequest struct {
	TestID     string            `json:"testId"`
	Answers    []SubmittedAnswer `json:"answers"`
	CompanyIDs []string          `json:"companyIds,omitempty"`
}

// SubmittedAnswer mirrors types.Answer on the wire
type SubmittedAnswer struct {
	QuestionID     string `json:"questionId"`
	SelectedOption *int   `json:"selectedOption"`
}

// UnmarshalJSON tolerates malformed selectedOption values: anything that is
// not an integral JSON number counts as unanswered instead of failing the
// whole submission.
func (a *SubmittedAnswer) UnmarshalJSON(data []byte) error {
	var raw struct {
		QuestionID     string          `json:"questionId"`
		SelectedOption json.RawMessage `json:"selectedOption"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	a.QuestionID = raw.QuestionID
	a.SelectedOption = nil

	if len(raw.SelectedOption) == 0 {
		return nil
	}

	var value *float64
	if err := json.Unmarshal(raw.SelectedOption, &value); err != nil || value == nil {
		return nil
	}
	if *value != math.Trunc(*value) || *value < math.MinInt32 || *value > math.MaxInt32 {
		return nil
	}

	selected := int(*value)
	a.SelectedOption = &selected
	return nil
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLSConfig config.TLSConfig

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Assessment pipeline
	AIService      *ai.Service
	Catalog        *assessment.Catalog
	CatalogWatcher *assessment.CatalogWatcher
	Store          *assessment.MemoryStore
	Evaluator      *assessment.Evaluator

	// Logger
	Logger *skillproofErrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
// (Refactored to reduce long parameter list in NewServer)
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, logger *skillproofErrors.Logger) (*Server, error) {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	aiService, err := ai.NewService(&appCfg.AI, logger)
	if err != nil {
		return nil, err
	}

	catalog, err := loadCatalog(appCfg, logger)
	if err != nil {
		return nil, err
	}

	store := assessment.NewMemoryStore()

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		AIService:      aiService,
		Catalog:        catalog,
		Store:          store,
		Evaluator:      assessment.NewEvaluator(store, catalog, logger),
		Logger:         logger,
	}, nil
}

// loadCatalog loads the employer catalog from the configured file, falling
// back to the built-in templates when no path is set.
func loadCatalog(appCfg *config.Config, logger *skillproofErrors.Logger) (*assessment.Catalog, error) {
	if appCfg.Catalog.Path == "" {
		return assessment.NewCatalog(), nil
	}
	return assessment.NewCatalogFromFile(appCfg.Catalog.Path, logger)
}

// newGenerator builds a claim-test generator bound to the given extractor.
// A fresh generator is created per request so token usage can be captured.
func (s *Server) newGenerator(extractor assessment.SkillExtractor) *assessment.Generator {
	return assessment.NewGenerator(extractor, s.Store, s.Catalog, s.Logger)
}

// newAnalyzer builds a resume analyzer bound to the given extractor.
func (s *Server) newAnalyzer(extractor analysis.SkillExtractor) *analysis.Analyzer {
	return analysis.NewAnalyzer(extractor, s.Logger)
}

// usageCapturingExtractor wraps the AI service so handlers can feed token
// usage into the observability layer after the operation completes.
type usageCapturingExtractor struct {
	svc   *ai.Service
	usage *ai.TokenUsage
}

func (e *usageCapturingExtractor) ExtractSkills(ctx context.Context, input types.ExtractSkillsInput) (*types.ExtractSkillsOutput, error) {
	output, usage, err := e.svc.ExtractSkillsWithUsage(ctx, input)
	e.usage = usage
	return output, err
}
