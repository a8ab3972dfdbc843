package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"skillproof/internal/extract"
	"skillproof/internal/observability"
	"skillproof/internal/types"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// createAnalyzeResumeHandler wraps the resume analysis handler with observability.
// The endpoint accepts either a JSON body with resumeText or a multipart upload
// with a "resume" PDF file.
func (s *Server) createAnalyzeResumeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("skillproof.api")
		ctx, span := tracer.Start(ctx, "api.analyze_resume")
		defer span.End()

		resumeText, requiredSkills, err := s.readResumeRequest(r)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(resumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume text", "resumeText field or resume file is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(resumeText)),
			attribute.Int("request.required_skills", len(requiredSkills)),
			attribute.String("operation", "analyze_resume"),
		)

		input := types.AnalyzeResumeInput{
			ResumeText:     resumeText,
			RequiredSkills: requiredSkills,
		}

		extractor := &usageCapturingExtractor{svc: s.AIService}
		analyzer := s.newAnalyzer(extractor)

		// Track AI operation with observability and token usage
		metrics := om.GetMetrics()
		var result *types.AnalyzeResumeOutput
		err = metrics.TrackAIOperationWithTokens(ctx, "analyze_resume", func(ctx context.Context) *observability.AIOperationResult {
			output, aiErr := analyzer.AnalyzeResume(ctx, input)
			result = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(extractor.usage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "ai_processing"))
			metrics.RecordBusinessMetric(ctx, "resume_analyzed", false, om,
				attribute.String("error", err.Error()))
			writeAppError(w, "Failed to analyze resume", err)
			return
		}

		// Record success metrics
		metrics.RecordBusinessMetric(ctx, "resume_analyzed", true, om,
			attribute.Int("match.score", result.Score),
			attribute.Int("skills.extracted", len(result.ExtractedSkills)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("match.score", result.Score),
			attribute.Int("skills.extracted", len(result.ExtractedSkills)),
		)

		writeJSONResponse(w, span, result)
	}
}

// readResumeRequest pulls the resume text and required skills out of either
// a multipart upload or a JSON body.
func (s *Server) readResumeRequest(r *http.Request) (string, []string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var req AnalyzeResumeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			return "", nil, err
		}
		return req.ResumeText, req.RequiredSkills, nil
	}

	if err := r.ParseMultipartForm(s.MaxRequestSize); err != nil {
		return "", nil, fmt.Errorf("failed to parse multipart form: %w", err)
	}

	file, _, err := r.FormFile("resume")
	if err != nil {
		return "", nil, fmt.Errorf("resume file is required: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			s.Logger.Warn("Failed to close uploaded file", "error", err)
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	text, err := extract.TextFromPDF(data)
	if err != nil {
		return "", nil, err
	}

	return text, splitSkillList(r.FormValue("requiredSkills")), nil
}

// splitSkillList parses a comma-separated skill list form field
func splitSkillList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var skills []string
	for _, s := range strings.Split(value, ",") {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

// createParseProfileHandler wraps the profile parsing handler with observability
func (s *Server) createParseProfileHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("skillproof.api")
		ctx, span := tracer.Start(ctx, "api.parse_profile")
		defer span.End()

		var req ParseProfileRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.ProfileText) == "" {
			err := fmt.Errorf("missing profile text")
			span.RecordError(err)
			writeErrorResponse(w, "Missing profile text", "profileText field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.profile_length", len(req.ProfileText)),
			attribute.String("operation", "parse_profile"),
		)

		input := types.ParseProfileInput{
			ProfileText:    req.ProfileText,
			RequiredSkills: req.RequiredSkills,
		}

		extractor := &usageCapturingExtractor{svc: s.AIService}
		analyzer := s.newAnalyzer(extractor)

		metrics := om.GetMetrics()
		var result *types.ParseProfileOutput
		err := metrics.TrackAIOperationWithTokens(ctx, "parse_profile", func(ctx context.Context) *observability.AIOperationResult {
			output, aiErr := analyzer.ParseProfile(ctx, input)
			result = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(extractor.usage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "profile_parsed", false, om)
			writeAppError(w, "Failed to parse profile", err)
			return
		}

		metrics.RecordBusinessMetric(ctx, "profile_parsed", true, om,
			attribute.Int("match.score", result.Analysis.Score),
			attribute.Int("profile.years_of_experience", result.Profile.YearsOfExperience))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("match.score", result.Analysis.Score),
		)

		writeJSONResponse(w, span, result)
	}
}

// createGenerateTestHandler wraps the claim-test generation handler with observability
func (s *Server) createGenerateTestHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("skillproof.api")
		ctx, span := tracer.Start(ctx, "api.generate_claim_test")
		defer span.End()

		var req GenerateTestRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.Int("request.company_ids", len(req.CompanyIDs)),
			attribute.String("operation", "generate_claim_test"),
		)

		input := types.GenerateTestInput{
			ResumeText: req.ResumeText,
			CompanyIDs: req.CompanyIDs,
		}

		extractor := &usageCapturingExtractor{svc: s.AIService}
		generator := s.newGenerator(extractor)

		metrics := om.GetMetrics()
		var result *types.GenerateTestOutput
		err := metrics.TrackAIOperationWithTokens(ctx, "generate_claim_test", func(ctx context.Context) *observability.AIOperationResult {
			output, aiErr := generator.Generate(ctx, input)
			result = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(extractor.usage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "test_generated", false, om)
			writeAppError(w, "Failed to generate claim test", err)
			return
		}

		metrics.RecordBusinessMetric(ctx, "test_generated", true, om,
			attribute.Int("test.claimed_skills", len(result.ClaimedSkills)),
			attribute.Int("test.questions", result.QuestionCount))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("test.id", result.TestID),
			attribute.Int("test.questions", result.QuestionCount),
		)

		writeJSONResponse(w, span, result)
	}
}

// createSubmitTestHandler wraps the claim-test submission handler with observability
func (s *Server) createSubmitTestHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("skillproof.api")
		ctx, span := tracer.Start(ctx, "api.submit_claim_test")
		defer span.End()

		var req SubmitTestRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.TestID) == "" {
			err := fmt.Errorf("missing test id")
			span.RecordError(err)
			writeErrorResponse(w, "Missing test id", "testId field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.String("test.id", req.TestID),
			attribute.Int("request.answers", len(req.Answers)),
			attribute.String("operation", "submit_claim_test"),
		)

		answers := make([]types.Answer, 0, len(req.Answers))
		for _, a := range req.Answers {
			answers = append(answers, types.Answer{
				QuestionID:     a.QuestionID,
				SelectedOption: a.SelectedOption,
			})
		}

		input := types.EvaluateTestInput{
			TestID:     req.TestID,
			Answers:    answers,
			CompanyIDs: req.CompanyIDs,
		}

		metrics := om.GetMetrics()
		result, err := s.Evaluator.Evaluate(input)
		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "test_evaluated", false, om)
			writeAppError(w, "Failed to evaluate claim test", err)
			return
		}

		metrics.RecordBusinessMetric(ctx, "test_evaluated", true, om,
			attribute.Int("test.authenticity_score", result.AuthenticityScore),
			attribute.String("test.claim_status", string(result.ClaimStatus)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("test.authenticity_score", result.AuthenticityScore),
			attribute.String("test.claim_status", string(result.ClaimStatus)),
		)

		writeJSONResponse(w, span, result)
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Check if this request was rate limited by examining the response
			// We'll wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// writeJSONResponse encodes a successful response body
func writeJSONResponse(w http.ResponseWriter, span oteltrace.Span, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		span.RecordError(err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
