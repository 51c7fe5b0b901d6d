// internal/workers/content/detect-gaps/handler.go
package detectgaps

import (
	"context"
	"encoding/json"
	goerrors "errors"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus"

	"placeholder-workers/internal/common/errors"
	"placeholder-workers/internal/common/logger"
	"placeholder-workers/internal/common/metrics"
	"placeholder-workers/internal/placeholder"
)

const (
	TaskType = "detect-gaps"
)

type Handler struct {
	config   *Config
	detector *placeholder.HybridDetector
	errors   *errors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, detector *placeholder.HybridDetector, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		detector: detector,
		errors:   errors.NewErrorHandler(log),
		logger:   log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":             job.Key,
		"processInstanceKey": job.ProcessInstanceKey,
	})

	timer := prometheus.NewTimer(metrics.WorkerJobDuration.WithLabelValues(TaskType))
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.errors.HandleJobError(ctx, client, job, errors.NewDetectionFailedError("parse input: "+err.Error()))
		return nil
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.errors.HandleJobError(ctx, client, job, err)
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode(err)).Inc()
		return nil
	}

	h.completeJob(client, job, output)
	return nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	enableValidation := h.config.EnableValidation
	if input.EnableValidation != nil {
		enableValidation = *input.EnableValidation
	}

	result := h.detector.DetectGaps(ctx, input.TemplateText, enableValidation)
	if !result.Success {
		return nil, errors.NewDetectionFailedError(joinErrors(result.Errors))
	}

	h.logger.Info("gaps detected", map[string]interface{}{
		"totalGaps":     result.TotalGaps,
		"confidenceAvg": result.ConfidenceAvg,
		"methodUsed":    string(result.MethodUsed),
	})

	output := &Output{
		Gaps:            result.Gaps,
		TotalGaps:       result.TotalGaps,
		ConfidenceAvg:   result.ConfidenceAvg,
		DetectionTimeMs: result.DetectionTime.Milliseconds(),
		MethodUsed:      string(result.MethodUsed),
		ValidationLevel: string(result.ValidationLevel),
		Warnings:        result.Warnings,
	}
	if id, ok := result.Metadata["detection_id"].(string); ok {
		output.DetectionID = id
	}
	return output, nil
}

func joinErrors(errs []string) string {
	out := ""
	for i, e := range errs {
		if i > 0 {
			out += "; "
		}
		out += e
	}
	return out
}

func errorCode(err error) string {
	var stdErr *errors.StandardError
	if goerrors.As(err, &stdErr) {
		return string(stdErr.Code)
	}
	return "INTERNAL_ERROR"
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err = cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}
