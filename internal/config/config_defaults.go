package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// AI Configuration - Global defaults
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("ai.apiKey", "")
	v.SetDefault("ai.maxRetries", 3)
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.useSystemPrompts", true)

	// AI Configuration - Analysis operation defaults
	v.SetDefault("ai.analyze.provider", "gemini")
	v.SetDefault("ai.analyze.model", "")
	v.SetDefault("ai.analyze.timeout", 90*time.Second) // Free-form analysis of a full resume takes longest
	v.SetDefault("ai.analyze.apiKey", "")
	v.SetDefault("ai.analyze.maxRetries", 2)
	v.SetDefault("ai.analyze.temperature", 0.4)
	v.SetDefault("ai.analyze.useSystemPrompts", true)

	// AI Configuration - Compliance operation defaults
	v.SetDefault("ai.compliance.provider", "gemini")
	v.SetDefault("ai.compliance.model", "")
	v.SetDefault("ai.compliance.timeout", 45*time.Second) // Bounded input, structured output
	v.SetDefault("ai.compliance.apiKey", "")
	v.SetDefault("ai.compliance.maxRetries", 2)
	v.SetDefault("ai.compliance.temperature", 0.1) // Low temperature for consistent audit output
	v.SetDefault("ai.compliance.useSystemPrompts", true)

	// AI Configuration - Translate operation defaults
	v.SetDefault("ai.translate.provider", "gemini")
	v.SetDefault("ai.translate.model", "")
	v.SetDefault("ai.translate.timeout", 60*time.Second)
	v.SetDefault("ai.translate.apiKey", "")
	v.SetDefault("ai.translate.maxRetries", 1) // Normalizer degrades quickly rather than stalling the run
	v.SetDefault("ai.translate.temperature", 0.1)
	v.SetDefault("ai.translate.useSystemPrompts", true)

	// Circuit Breaker Configuration defaults for all operations
	v.SetDefault("ai.analyze.circuitBreaker.enabled", true)
	v.SetDefault("ai.analyze.circuitBreaker.maxRequests", 3)
	v.SetDefault("ai.analyze.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("ai.analyze.circuitBreaker.timeout", 60*time.Second)
	v.SetDefault("ai.analyze.circuitBreaker.minRequests", 3)
	v.SetDefault("ai.analyze.circuitBreaker.failureThreshold", 0.6)

	v.SetDefault("ai.compliance.circuitBreaker.enabled", true)
	v.SetDefault("ai.compliance.circuitBreaker.maxRequests", 3)
	v.SetDefault("ai.compliance.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("ai.compliance.circuitBreaker.timeout", 60*time.Second)
	v.SetDefault("ai.compliance.circuitBreaker.minRequests", 3)
	v.SetDefault("ai.compliance.circuitBreaker.failureThreshold", 0.6)

	v.SetDefault("ai.translate.circuitBreaker.enabled", true)
	v.SetDefault("ai.translate.circuitBreaker.maxRequests", 3)
	v.SetDefault("ai.translate.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("ai.translate.circuitBreaker.timeout", 60*time.Second)
	v.SetDefault("ai.translate.circuitBreaker.minRequests", 3)
	v.SetDefault("ai.translate.circuitBreaker.failureThreshold", 0.6)

	// Extraction Configuration
	v.SetDefault("extract.ocrEnabled", true)
	v.SetDefault("extract.ocrLanguages", []string{"eng"})
	v.SetDefault("extract.ocrDPI", 150.0)

	// Report Configuration
	v.SetDefault("report.dir", "reports")
	v.SetDefault("report.fontPath", "")
	v.SetDefault("report.fontName", "NotoSans")

	// Server Configuration
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", 30*time.Second)
	v.SetDefault("server.writeTimeout", 30*time.Second)
	v.SetDefault("server.idleTimeout", 120*time.Second)
	// TLS Configuration defaults
	v.SetDefault("server.tls.mode", "disabled") // disabled, server, mutual
	v.SetDefault("server.tls.certFile", "")
	v.SetDefault("server.tls.keyFile", "")
	v.SetDefault("server.tls.caFile", "")
	v.SetDefault("server.tls.minVersion", "1.2")           // TLS 1.2 minimum
	v.SetDefault("server.tls.cipherSuites", []string{})    // Use Go defaults
	v.SetDefault("server.tls.clientAuthPolicy", "require") // require, request, verify
	v.SetDefault("server.tls.insecureSkipVerify", false)
	v.SetDefault("server.tls.serverName", "")
	// API Authentication defaults
	v.SetDefault("server.apiKeys", []string{})
	// Rate limiting defaults
	v.SetDefault("server.rateLimit.enabled", false)
	v.SetDefault("server.rateLimit.requestsPerMin", 60)
	v.SetDefault("server.rateLimit.burstCapacity", 10)
	v.SetDefault("server.rateLimit.byIP", true)
	v.SetDefault("server.rateLimit.byAPIKey", false)
	v.SetDefault("server.rateLimit.window", time.Minute)

	// App Configuration
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "json")
	v.SetDefault("app.supportedFormats", []string{"json", "text", "markdown"})
	v.SetDefault("app.maxFileSize", 10*1024*1024) // 10MB, resumes arrive as PDFs
	v.SetDefault("app.targetLanguage", "en")
	v.SetDefault("app.languages", []string{"en", "es", "fr", "de"})
	v.SetDefault("app.depths", []string{"Basic", "Detailed", "Comprehensive"})

	// Vault Configuration
	v.SetDefault("vault.enabled", false)
	v.SetDefault("vault.address", "")
	v.SetDefault("vault.token", "")
	v.SetDefault("vault.tokenFile", "")
	v.SetDefault("vault.namespace", "")
	v.SetDefault("vault.secrets.apiKeys", "")
	v.SetDefault("vault.secrets.geminiKey", "")
	v.SetDefault("vault.secrets.tlsCerts", "")

	// Observability Configuration
	v.SetDefault("observability.enabled", true)
	v.SetDefault("observability.serviceName", "resumelens")
	v.SetDefault("observability.serviceVersion", "")  // Will use app version if empty
	v.SetDefault("observability.serviceInstance", "") // Will be auto-generated if empty
	v.SetDefault("observability.consoleOutput", false)
	v.SetDefault("observability.sampleRate", 1.0)

	// Tracing Configuration
	v.SetDefault("observability.tracing.enabled", true)
	v.SetDefault("observability.tracing.sampleRate", 1.0)

	// Metrics Configuration
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.collectionInterval", 15*time.Second)

	// Custom Metrics Configuration
	v.SetDefault("observability.customMetrics.aiOperations.enabled", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackDuration", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackTokenUsage", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackModelInfo", true)
	v.SetDefault("observability.customMetrics.businessMetrics.enabled", true)
	v.SetDefault("observability.customMetrics.businessMetrics.trackSuccessRates", true)
	v.SetDefault("observability.customMetrics.businessMetrics.trackContentSizes", true)
	v.SetDefault("observability.customMetrics.infrastructure.enabled", true)
	v.SetDefault("observability.customMetrics.infrastructure.trackRateLimits", true)

	// Console Configuration
	v.SetDefault("observability.console.enabled", false)
	v.SetDefault("observability.console.prettyPrint", true)

	// Prometheus Configuration
	v.SetDefault("observability.prometheus.enabled", true)
	v.SetDefault("observability.prometheus.endpoint", "/metrics")
	v.SetDefault("observability.prometheus.port", "9090")

	// OTLP Configuration
	v.SetDefault("observability.otlp.enabled", false)
	v.SetDefault("observability.otlp.endpoint", "http://localhost:4318")
	v.SetDefault("observability.otlp.insecure", true)
	v.SetDefault("observability.otlp.headers", map[string]string{})

	// Health Check Configuration
	v.SetDefault("observability.healthCheck.timeout", 15*time.Second)
	v.SetDefault("observability.healthCheck.aiModelCheckTimeout", 10*time.Second)
}
