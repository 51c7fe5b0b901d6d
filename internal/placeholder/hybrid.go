package placeholder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"placeholder-workers/internal/common/logger"
	"placeholder-workers/internal/common/metrics"
)

const detectionTimesWindow = 1000

// PerformanceMetrics is the running aggregate over every detection call
// served by a HybridDetector instance.
type PerformanceMetrics struct {
	TotalDetections  int64            `json:"total_detections"`
	AvgConfidence    float64          `json:"avg_confidence"`
	AvgDetectionTime time.Duration    `json:"avg_detection_time"`
	MethodUsage      map[string]int64 `json:"method_usage"`
}

// HybridDetector runs the full pipeline: migration (through the cache),
// regex detection, and optional per-gap validation with synthesized
// fallback values. Calls are sequential per invocation; the running
// metrics are mutex-guarded so instances can be shared across workers.
type HybridDetector struct {
	migrator    Migrator
	detector    *GapDetector
	fields      *FieldValidator
	synthesizer *FallbackSynthesizer
	log         logger.Logger

	mu              sync.Mutex
	totalDetections int64
	avgConfidence   float64
	detectionTimes  []time.Duration
	methodUsage     map[string]int64
}

func NewHybridDetector(migrator Migrator, detector *GapDetector, log logger.Logger) *HybridDetector {
	return &HybridDetector{
		migrator:    migrator,
		detector:    detector,
		fields:      NewFieldValidator(),
		synthesizer: NewFallbackSynthesizer(),
		log:         log,
		methodUsage: make(map[string]int64),
	}
}

// DetectGaps migrates text to canonical form and reports every
// placeholder gap found in it. When enableValidation is set, each gap
// additionally carries a synthesized candidate value and its validation
// verdict, and the gap confidence is capped by the verdict's score.
func (h *HybridDetector) DetectGaps(ctx context.Context, text string, enableValidation bool) (result *DetectionResult) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			h.log.Error("detecção de lacunas falhou", map[string]interface{}{
				"panic": fmt.Sprintf("%v", r),
			})
			result = h.failedResult([]string{"erro interno durante a detecção de lacunas"}, start)
		}
	}()

	migration := h.migrator.Migrate(ctx, text, false)
	if !migration.Success {
		return h.failedResult(migration.Errors, start)
	}

	gaps := h.detector.Detect(migration.MigratedText)
	h.recordMethod("regex")
	methodUsed := MethodRegex
	level := LevelNone

	if enableValidation {
		level = LevelBasic
		for i := range gaps {
			gap := &gaps[i]
			candidate := h.synthesizer.Synthesize(*gap, gap.Context)
			verdict := h.fields.Validate(*gap, candidate)

			gap.SuggestedValue = candidate
			score := verdict.ValidationScore
			gap.ValidationScore = &score
			if score < gap.Confidence {
				gap.Confidence = score
			}
			if verdict.IsValid {
				gap.DetectionMethod = MethodHybrid
			} else {
				gap.DetectionMethod = MethodFallback
			}
			gap.ValidationLevel = LevelBasic
			gap.Metadata["validation_result"] = verdict
		}
		methodUsed = MethodHybrid
	}

	confidenceAvg := 0.0
	for _, gap := range gaps {
		confidenceAvg += gap.Confidence
	}
	if len(gaps) > 0 {
		confidenceAvg /= float64(len(gaps))
	}

	elapsed := time.Since(start)
	h.recordDetection(confidenceAvg, elapsed)
	metrics.DetectionsTotal.WithLabelValues(string(methodUsed)).Inc()
	metrics.DetectionDuration.WithLabelValues(string(methodUsed)).Observe(elapsed.Seconds())
	metrics.GapsDetected.Observe(float64(len(gaps)))

	return &DetectionResult{
		Gaps:            gaps,
		TotalGaps:       len(gaps),
		ConfidenceAvg:   confidenceAvg,
		DetectionTime:   elapsed,
		MethodUsed:      methodUsed,
		ValidationLevel: level,
		Success:         true,
		Warnings:        migration.Warnings,
		Metadata: map[string]interface{}{
			"detection_id":    uuid.New().String(),
			"format_detected": string(migration.FormatDetected),
		},
	}
}

func (h *HybridDetector) failedResult(errs []string, start time.Time) *DetectionResult {
	return &DetectionResult{
		Gaps:            []DetectedGap{},
		MethodUsed:      MethodFallback,
		ValidationLevel: LevelNone,
		Success:         false,
		Errors:          errs,
		DetectionTime:   time.Since(start),
		Metadata: map[string]interface{}{
			"detection_id": uuid.New().String(),
		},
	}
}

func (h *HybridDetector) recordMethod(method string) {
	h.mu.Lock()
	h.methodUsage[method]++
	h.mu.Unlock()
}

// recordDetection folds one call into the running aggregates using an
// incremental mean so no per-call history beyond the time window is kept.
func (h *HybridDetector) recordDetection(confidenceAvg float64, elapsed time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.totalDetections++
	n := float64(h.totalDetections)
	h.avgConfidence = (h.avgConfidence*(n-1) + confidenceAvg) / n

	h.detectionTimes = append(h.detectionTimes, elapsed)
	if len(h.detectionTimes) > detectionTimesWindow {
		h.detectionTimes = h.detectionTimes[1:]
	}
}

// Metrics returns a snapshot of the running aggregates.
func (h *HybridDetector) Metrics() PerformanceMetrics {
	h.mu.Lock()
	defer h.mu.Unlock()

	var avgTime time.Duration
	if len(h.detectionTimes) > 0 {
		var total time.Duration
		for _, d := range h.detectionTimes {
			total += d
		}
		avgTime = total / time.Duration(len(h.detectionTimes))
	}

	usage := make(map[string]int64, len(h.methodUsage))
	for k, v := range h.methodUsage {
		usage[k] = v
	}
	return PerformanceMetrics{
		TotalDetections:  h.totalDetections,
		AvgConfidence:    h.avgConfidence,
		AvgDetectionTime: avgTime,
		MethodUsage:      usage,
	}
}

// MigrationStatistics exposes the underlying cache counters when the
// configured migrator keeps them.
func (h *HybridDetector) MigrationStatistics() (CacheStats, bool) {
	if s, ok := h.migrator.(interface{ Stats() CacheStats }); ok {
		return s.Stats(), true
	}
	return CacheStats{}, false
}
