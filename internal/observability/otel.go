package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"resumelens/internal/config"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ObservabilityConfig holds configuration for observability
type ObservabilityConfig struct {
	ServiceName    string
	ServiceVersion string
	Enabled        bool
	ConsoleOutput  bool
	PrettyPrint    bool
	SampleRate     float64
	Prometheus     PrometheusConfig
}

// PipelineEvent identifies a countable step outcome in an analysis run
type PipelineEvent string

const (
	EventDocumentExtracted     PipelineEvent = "document_extracted"
	EventOCRFallback           PipelineEvent = "ocr_fallback"
	EventExtractionEmpty       PipelineEvent = "extraction_empty"
	EventTranslation           PipelineEvent = "translation"
	EventNormalizationDegraded PipelineEvent = "normalization_degraded"
	EventComplianceDegraded    PipelineEvent = "compliance_degraded"
	EventReportRendered        PipelineEvent = "report_rendered"
	EventReportFailed          PipelineEvent = "report_failed"
)

// Metrics holds all custom metrics for ResumeLens
type Metrics struct {
	// AI operation metrics
	AIProcessingTime metric.Float64Histogram
	AIRequestCount   metric.Int64Counter
	AIErrorCount     metric.Int64Counter
	AITokenUsage     metric.Int64Histogram

	// Pipeline metrics
	DocumentsExtracted metric.Int64Counter
	OCRFallbacks       metric.Int64Counter
	EmptyExtractions   metric.Int64Counter
	Translations       metric.Int64Counter
	DegradedStages     metric.Int64Counter
	ReportsRendered    metric.Int64Counter
	ReportFailures     metric.Int64Counter

	// Rate limiting metrics
	RateLimitHits metric.Int64Counter
}

// ObservabilityManager manages OpenTelemetry setup
type ObservabilityManager struct {
	config           ObservabilityConfig
	fullConfig       *config.Config // Store full config for access to nested settings
	tracerProvider   *trace.TracerProvider
	meterProvider    *sdkmetric.MeterProvider
	metrics          *Metrics
	shutdownFuncs    []func(context.Context) error
	prometheusServer *http.ServeMux
}

// NewObservabilityManager creates a new observability manager
func NewObservabilityManager(obsConfig ObservabilityConfig, fullConfig *config.Config) (*ObservabilityManager, error) {
	if !obsConfig.Enabled {
		return &ObservabilityManager{config: obsConfig, fullConfig: fullConfig}, nil
	}

	om := &ObservabilityManager{
		config:        obsConfig,
		fullConfig:    fullConfig,
		shutdownFuncs: make([]func(context.Context) error, 0),
	}

	if err := om.initTracing(); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if err := om.initMetrics(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	return om, nil
}

// initTracing sets up OpenTelemetry tracing
func (om *ObservabilityManager) initTracing() error {
	var exporter trace.SpanExporter
	var err error

	if om.config.ConsoleOutput {
		// Console exporter for development
		opts := []stdouttrace.Option{}
		if om.config.PrettyPrint {
			opts = append(opts, stdouttrace.WithPrettyPrint())
		}
		exporter, err = stdouttrace.New(opts...)
	} else if om.fullConfig != nil && om.fullConfig.Observability.OTLP.Enabled {
		// OTLP exporter for production
		exporter, err = om.createOTLPExporter()
	} else {
		exporter = &noOpSpanExporter{}
	}

	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := om.createResource()
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
		trace.WithSampler(trace.TraceIDRatioBased(om.config.SampleRate)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	om.tracerProvider = tp
	om.shutdownFuncs = append(om.shutdownFuncs, tp.Shutdown)

	return nil
}

// initMetrics sets up OpenTelemetry metrics
func (om *ObservabilityManager) initMetrics() error {
	readers, err := om.setupMetricReaders()
	if err != nil {
		return err
	}

	res, err := om.createResource()
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	meterProviderOptions := []sdkmetric.Option{
		sdkmetric.WithResource(res),
	}
	for _, reader := range readers {
		meterProviderOptions = append(meterProviderOptions, sdkmetric.WithReader(reader))
	}

	mp := sdkmetric.NewMeterProvider(meterProviderOptions...)

	otel.SetMeterProvider(mp)
	om.meterProvider = mp
	om.shutdownFuncs = append(om.shutdownFuncs, mp.Shutdown)

	return om.initCustomMetrics()
}

// setupMetricReaders sets up all metric readers based on configuration
func (om *ObservabilityManager) setupMetricReaders() ([]sdkmetric.Reader, error) {
	var readers []sdkmetric.Reader

	if err := om.setupConsoleReader(&readers); err != nil {
		return nil, err
	}

	if err := om.setupOTLPReader(&readers); err != nil {
		return nil, err
	}

	if err := om.setupPrometheusReader(&readers); err != nil {
		return nil, err
	}

	// If no readers configured, use manual reader as fallback
	if len(readers) == 0 {
		readers = append(readers, sdkmetric.NewManualReader())
	}

	return readers, nil
}

// setupConsoleReader sets up console metric reader if enabled
func (om *ObservabilityManager) setupConsoleReader(readers *[]sdkmetric.Reader) error {
	if !om.config.ConsoleOutput {
		return nil
	}

	exporter, err := stdoutmetric.New()
	if err != nil {
		return fmt.Errorf("failed to create console metric exporter: %w", err)
	}

	interval := om.getMetricsCollectionInterval()
	*readers = append(*readers, sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval)))
	return nil
}

// setupOTLPReader sets up OTLP metric reader if enabled
func (om *ObservabilityManager) setupOTLPReader(readers *[]sdkmetric.Reader) error {
	if om.fullConfig == nil || !om.fullConfig.Observability.OTLP.Enabled {
		return nil
	}

	otlpReader, err := om.createOTLPMetricsReader()
	if err != nil {
		return fmt.Errorf("failed to create OTLP metrics reader: %w", err)
	}
	if otlpReader != nil {
		*readers = append(*readers, otlpReader)
	}
	return nil
}

// setupPrometheusReader sets up Prometheus metric reader if enabled
func (om *ObservabilityManager) setupPrometheusReader(readers *[]sdkmetric.Reader) error {
	if !om.config.Prometheus.Enabled {
		return nil
	}

	prometheusReader, prometheusMux, err := SetupPrometheusExporter(om.config.Prometheus)
	if err != nil {
		return fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}
	if prometheusReader != nil {
		*readers = append(*readers, prometheusReader)
		om.prometheusServer = prometheusMux

		if err := StartPrometheusServer(prometheusMux, om.config.Prometheus.Port); err != nil {
			return fmt.Errorf("failed to start Prometheus server: %w", err)
		}
	}
	return nil
}

// createResource creates the OpenTelemetry resource
func (om *ObservabilityManager) createResource() (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(om.config.ServiceName),
			semconv.ServiceVersion(om.config.ServiceVersion),
			attribute.String("service.instance.id", om.getServiceInstanceID()),
		),
	)
}

// initCustomMetrics creates all custom metrics for ResumeLens
func (om *ObservabilityManager) initCustomMetrics() error {
	meter := om.meterProvider.Meter(om.config.ServiceName)
	om.metrics = &Metrics{}

	if err := om.createAIMetrics(meter); err != nil {
		return err
	}

	if err := om.createPipelineMetrics(meter); err != nil {
		return err
	}

	return om.createRateLimitMetrics(meter)
}

// createAIMetrics creates AI-related metrics
func (om *ObservabilityManager) createAIMetrics(meter metric.Meter) error {
	var err error

	om.metrics.AIProcessingTime, err = meter.Float64Histogram(
		"resumelens_ai_processing_duration_seconds",
		metric.WithDescription("Time spent processing AI requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create AI processing time metric: %w", err)
	}

	om.metrics.AIRequestCount, err = meter.Int64Counter(
		"resumelens_ai_requests_total",
		metric.WithDescription("Total number of AI requests"),
	)
	if err != nil {
		return fmt.Errorf("failed to create AI request count metric: %w", err)
	}

	om.metrics.AIErrorCount, err = meter.Int64Counter(
		"resumelens_ai_errors_total",
		metric.WithDescription("Total number of AI request errors"),
	)
	if err != nil {
		return fmt.Errorf("failed to create AI error count metric: %w", err)
	}

	om.metrics.AITokenUsage, err = meter.Int64Histogram(
		"resumelens_ai_token_usage_total",
		metric.WithDescription("Token usage for AI requests (input, output, total)"),
		metric.WithUnit("tokens"),
	)
	if err != nil {
		return fmt.Errorf("failed to create AI token usage metric: %w", err)
	}

	return nil
}

// createPipelineMetrics creates analysis pipeline metrics
func (om *ObservabilityManager) createPipelineMetrics(meter metric.Meter) error {
	counters := []struct {
		dest        *metric.Int64Counter
		name        string
		description string
	}{
		{&om.metrics.DocumentsExtracted, "resumelens_documents_extracted_total", "Total number of resume documents processed by extraction"},
		{&om.metrics.OCRFallbacks, "resumelens_ocr_fallbacks_total", "Total number of extractions that fell back to OCR"},
		{&om.metrics.EmptyExtractions, "resumelens_extractions_empty_total", "Total number of extractions that produced no text"},
		{&om.metrics.Translations, "resumelens_translations_total", "Total number of resumes translated to the target language"},
		{&om.metrics.DegradedStages, "resumelens_degraded_stages_total", "Total number of pipeline stages that degraded instead of failing"},
		{&om.metrics.ReportsRendered, "resumelens_reports_rendered_total", "Total number of runs that produced at least one report artifact"},
		{&om.metrics.ReportFailures, "resumelens_report_failures_total", "Total number of runs with at least one failed report format"},
	}

	for _, c := range counters {
		counter, err := meter.Int64Counter(c.name, metric.WithDescription(c.description))
		if err != nil {
			return fmt.Errorf("failed to create %s metric: %w", c.name, err)
		}
		*c.dest = counter
	}

	return nil
}

// createRateLimitMetrics creates rate limiting metrics
func (om *ObservabilityManager) createRateLimitMetrics(meter metric.Meter) error {
	var err error

	om.metrics.RateLimitHits, err = meter.Int64Counter(
		"resumelens_rate_limit_hits_total",
		metric.WithDescription("Total number of rate limit hits"),
	)
	if err != nil {
		return fmt.Errorf("failed to create rate limit hits metric: %w", err)
	}

	return nil
}

// GetMetrics returns the metrics instance
func (om *ObservabilityManager) GetMetrics() *Metrics {
	if om.metrics == nil {
		return &Metrics{} // Return empty metrics if not initialized
	}
	return om.metrics
}

// TrackAIOperation records duration, outcome, and token usage for one AI call
func (om *ObservabilityManager) TrackAIOperation(ctx context.Context, operation string, duration time.Duration, err error, inputTokens, outputTokens int64) {
	if om == nil || om.metrics == nil || om.metrics.AIProcessingTime == nil {
		return
	}
	if !om.aiMetricsEnabled() {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("operation", operation),
		attribute.Bool("success", err == nil),
	}

	if om.fullConfig == nil || om.fullConfig.Observability.CustomMetrics.AIOperations.TrackDuration {
		om.metrics.AIProcessingTime.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	}

	om.metrics.AIRequestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	if err != nil {
		om.metrics.AIErrorCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	}

	om.recordTokenUsage(ctx, attrs, inputTokens, outputTokens)
}

// recordTokenUsage records per-type token usage if tracking is enabled
func (om *ObservabilityManager) recordTokenUsage(ctx context.Context, attrs []attribute.KeyValue, inputTokens, outputTokens int64) {
	if om.metrics.AITokenUsage == nil {
		return
	}
	if inputTokens == 0 && outputTokens == 0 {
		return
	}
	if om.fullConfig != nil && !om.fullConfig.Observability.CustomMetrics.AIOperations.TrackTokenUsage {
		return
	}

	tokenTypes := []struct {
		tokenType string
		value     int64
	}{
		{"input", inputTokens},
		{"output", outputTokens},
		{"total", inputTokens + outputTokens},
	}

	for _, tt := range tokenTypes {
		tokenAttrs := append(attrs, attribute.String("token_type", tt.tokenType))
		om.metrics.AITokenUsage.Record(ctx, tt.value, metric.WithAttributes(tokenAttrs...))
	}
}

// RecordPipelineEvent counts one pipeline step outcome
func (om *ObservabilityManager) RecordPipelineEvent(ctx context.Context, event PipelineEvent) {
	if om == nil || om.metrics == nil {
		return
	}
	if om.fullConfig != nil && !om.fullConfig.Observability.CustomMetrics.BusinessMetrics.Enabled {
		return
	}

	add := func(counter metric.Int64Counter, attrs ...attribute.KeyValue) {
		if counter != nil {
			counter.Add(ctx, 1, metric.WithAttributes(attrs...))
		}
	}

	switch event {
	case EventDocumentExtracted:
		add(om.metrics.DocumentsExtracted)
	case EventOCRFallback:
		add(om.metrics.OCRFallbacks)
	case EventExtractionEmpty:
		add(om.metrics.EmptyExtractions)
	case EventTranslation:
		add(om.metrics.Translations)
	case EventNormalizationDegraded:
		add(om.metrics.DegradedStages, attribute.String("stage", "normalization"))
	case EventComplianceDegraded:
		add(om.metrics.DegradedStages, attribute.String("stage", "compliance"))
	case EventReportRendered:
		add(om.metrics.ReportsRendered)
	case EventReportFailed:
		add(om.metrics.ReportFailures)
	}
}

// TrackRateLimitHit counts one rejected request
func (om *ObservabilityManager) TrackRateLimitHit(ctx context.Context, attrs ...attribute.KeyValue) {
	if om == nil || om.metrics == nil || om.metrics.RateLimitHits == nil {
		return
	}
	// Rate limiting is an infrastructure metric
	if om.fullConfig != nil && !om.fullConfig.Observability.CustomMetrics.Infrastructure.TrackRateLimits {
		return
	}
	om.metrics.RateLimitHits.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// aiMetricsEnabled checks if AI metrics are enabled in the configuration
func (om *ObservabilityManager) aiMetricsEnabled() bool {
	if om.fullConfig == nil {
		return true
	}
	return om.fullConfig.Observability.CustomMetrics.AIOperations.Enabled
}

// HTTPMiddleware returns HTTP middleware with OpenTelemetry instrumentation
func (om *ObservabilityManager) HTTPMiddleware() func(http.Handler) http.Handler {
	if !om.config.Enabled {
		return func(h http.Handler) http.Handler { return h }
	}

	return otelhttp.NewMiddleware(
		om.config.ServiceName,
		otelhttp.WithTracerProvider(om.tracerProvider),
		otelhttp.WithMeterProvider(om.meterProvider),
	)
}

// Tracer returns a tracer for the service
func (om *ObservabilityManager) Tracer(name string) oteltrace.Tracer {
	if !om.config.Enabled {
		return noop.NewTracerProvider().Tracer(name)
	}
	return otel.Tracer(name)
}

// Shutdown gracefully shuts down all observability components
func (om *ObservabilityManager) Shutdown(ctx context.Context) error {
	for _, shutdown := range om.shutdownFuncs {
		if err := shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}

// No-op exporter for when no trace destination is configured
type noOpSpanExporter struct{}

func (n *noOpSpanExporter) ExportSpans(ctx context.Context, spans []trace.ReadOnlySpan) error {
	return nil
}

func (n *noOpSpanExporter) Shutdown(ctx context.Context) error {
	return nil
}

// createOTLPExporter creates an OTLP HTTP trace exporter
func (om *ObservabilityManager) createOTLPExporter() (trace.SpanExporter, error) {
	if om.fullConfig == nil {
		return nil, fmt.Errorf("config not available for OTLP configuration")
	}

	otlpConfig := om.fullConfig.Observability.OTLP

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpointURL(otlpConfig.Endpoint),
	}

	if otlpConfig.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	if len(otlpConfig.Headers) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(otlpConfig.Headers))
	}

	exporter, err := otlptracehttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	return exporter, nil
}

// createOTLPMetricsReader creates an OTLP HTTP metrics reader
func (om *ObservabilityManager) createOTLPMetricsReader() (sdkmetric.Reader, error) {
	if om.fullConfig == nil {
		return nil, fmt.Errorf("config not available for OTLP configuration")
	}

	otlpConfig := om.fullConfig.Observability.OTLP

	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpointURL(otlpConfig.Endpoint),
	}

	if otlpConfig.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	if len(otlpConfig.Headers) > 0 {
		opts = append(opts, otlpmetrichttp.WithHeaders(otlpConfig.Headers))
	}

	exporter, err := otlpmetrichttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
	}

	interval := om.getMetricsCollectionInterval()
	return sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval)), nil
}

// getServiceInstanceID returns the service instance ID from config or a default
func (om *ObservabilityManager) getServiceInstanceID() string {
	if om.fullConfig != nil && om.fullConfig.Observability.ServiceInstance != "" {
		return om.fullConfig.Observability.ServiceInstance
	}
	return "resumelens-1"
}

// getMetricsCollectionInterval returns the configured metrics collection interval
func (om *ObservabilityManager) getMetricsCollectionInterval() time.Duration {
	if om.fullConfig != nil {
		return om.fullConfig.Observability.Metrics.CollectionInterval
	}
	return 15 * time.Second
}
