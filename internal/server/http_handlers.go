package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"resumelens/internal/ai"
)

// getHealthCheckTimeout returns the configured health check timeout
func (s *Server) getHealthCheckTimeout() time.Duration {
	return s.AppConfig.Observability.HealthCheck.Timeout
}

// healthHandler provides a comprehensive health check endpoint including AI model status
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"status":  "healthy",
		"service": "resumelens",
		"version": s.Version,
	}

	// Check AI model availability for all operations
	aiStatus := s.checkAIModelsHealth()
	response["ai_models"] = aiStatus

	// Check circuit breaker status
	response["circuit_breakers"] = s.checkCircuitBreakerHealth()

	// Determine overall health status. Compliance and translation degrade
	// gracefully, so only the analyze model is load-bearing.
	overallHealthy := true
	if info, ok := aiStatus["analyze"]; ok {
		if modelInfo, ok := info.(*ai.ModelInfo); ok && !modelInfo.Available {
			overallHealthy = false
		}
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

// operationServices maps operation names to the AI services created at startup
func (s *Server) operationServices() map[string]*ai.Service {
	if s.Services == nil {
		return nil
	}
	return map[string]*ai.Service{
		"analyze":    s.Services.Analyze,
		"compliance": s.Services.Compliance,
		"translate":  s.Services.Translate,
	}
}

// checkAIModelsHealth checks the health of the AI models used by each operation
func (s *Server) checkAIModelsHealth() map[string]any {
	// Use configurable health check timeout
	timeout := s.getHealthCheckTimeout()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	aiStatus := make(map[string]any)
	for operation, service := range s.operationServices() {
		if service == nil {
			aiStatus[operation] = map[string]any{
				"available": false,
				"error":     "service not initialized",
			}
			continue
		}
		aiStatus[operation] = service.GetModelInfo(ctx)
	}

	return aiStatus
}

// checkCircuitBreakerHealth reports circuit breaker statistics per operation
func (s *Server) checkCircuitBreakerHealth() map[string]any {
	type breakerStats interface {
		GetCircuitBreakerStats() map[string]any
	}

	circuitBreakerStatus := make(map[string]any)
	for operation, service := range s.operationServices() {
		if service == nil {
			continue
		}
		if provider, ok := service.Provider.(breakerStats); ok {
			circuitBreakerStatus[operation] = provider.GetCircuitBreakerStats()
		} else {
			circuitBreakerStatus[operation] = map[string]any{
				"enabled": false,
			}
		}
	}

	return circuitBreakerStatus
}

// statsHandler provides server statistics including rate limiting info
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"service": "resumelens",
		"version": s.Version,
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
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
