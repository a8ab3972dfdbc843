package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"skillproof/internal/ai"
	skillproofErrors "skillproof/internal/errors"
)

// getHealthCheckTimeout returns the configured health check timeout
func (s *Server) getHealthCheckTimeout() time.Duration {
	return s.AppConfig.Observability.HealthCheck.Timeout
}

// healthHandler provides a comprehensive health check endpoint including AI model status
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"status":  "healthy",
		"service": "skillproof",
		"version": s.Version,
	}

	// Check AI model availability
	aiStatus := s.checkAIModelHealth()
	response["ai_model"] = aiStatus

	// Check circuit breaker status
	response["circuit_breaker"] = s.AIService.GetCircuitBreakerStats()

	// Check employer catalog status
	response["catalog"] = s.checkCatalogHealth()

	// Determine overall health status
	overallHealthy := true
	if available, exists := aiStatus["available"]; exists {
		if avail, ok := available.(bool); ok && !avail {
			overallHealthy = false
		}
	}

	if s.Catalog.Size() == 0 {
		overallHealthy = false
	}

	if !overallHealthy {
		response["status"] = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode health response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// checkAIModelHealth checks the health of the skill extraction model
func (s *Server) checkAIModelHealth() map[string]any {
	// Use configurable health check timeout
	timeout := s.getHealthCheckTimeout()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	modelInfo, ok := s.AIService.GetModelInfo(ctx).(*ai.ModelInfo)
	if !ok || modelInfo == nil {
		return map[string]any{
			"available": false,
			"error":     "AI model status unavailable",
		}
	}

	status := map[string]any{
		"available": modelInfo.Available,
		"name":      modelInfo.Name,
	}
	if modelInfo.Error != "" {
		status["error"] = modelInfo.Error
	}
	return status
}

// checkCatalogHealth reports the state of the employer catalog
func (s *Server) checkCatalogHealth() map[string]any {
	status := map[string]any{
		"templates": s.Catalog.Size(),
		"source":    "built-in",
	}

	if s.AppConfig.Catalog.Path != "" {
		status["source"] = s.AppConfig.Catalog.Path
	}

	if s.CatalogWatcher != nil {
		status["watching"] = s.CatalogWatcher.IsRunning()
	}

	if s.Catalog.Size() == 0 {
		status["healthy"] = false
		status["message"] = "Employer catalog is empty"
	} else {
		status["healthy"] = true
	}

	return status
}

// statsHandler provides server statistics including rate limiting info
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"service": "skillproof",
		"version": s.Version,
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
		},
		"sessions": map[string]any{
			"active_tests": s.Store.Len(),
		},
		"catalog": map[string]any{
			"templates": s.Catalog.Size(),
		},
	}

	// Add rate limiting stats if enabled
	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{
			"enabled": false,
		}
	}

	// Add configuration info
	if s.RateLimit != nil {
		response["rate_limit_config"] = map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests_per_min": s.RateLimit.RequestsPerMin,
			"burst_capacity":   s.RateLimit.BurstCapacity,
			"by_ip":            s.RateLimit.ByIP,
			"by_api_key":       s.RateLimit.ByAPIKey,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode stats response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// parseJSONRequest parses JSON request body into the provided struct
func parseJSONRequest(r *http.Request, v any) error {
	if r.Header.Get("Content-Type") != "application/json" {
		return fmt.Errorf("content-type must be application/json")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return fmt.Errorf("request body too large (limit is %d bytes)", maxBytesErr.Limit)
		}
		return fmt.Errorf("failed to read request body: %w", err)
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.Printf("Failed to close request body: %v", err)
		}
	}()

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	return nil
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, error, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error:   error,
		Message: message,
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode error response: %v", err)
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}

// writeAppError maps an application error to an HTTP status code
func writeAppError(w http.ResponseWriter, title string, err error) {
	status := http.StatusInternalServerError

	var appErr *skillproofErrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case skillproofErrors.ErrorTypeValidation:
			status = http.StatusBadRequest
		case skillproofErrors.ErrorTypeAssessment:
			status = http.StatusNotFound
		}
	}

	writeErrorResponse(w, title, err.Error(), status)
}
