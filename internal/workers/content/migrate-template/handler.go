// internal/workers/content/migrate-template/handler.go
package migratetemplate

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus"

	"placeholder-workers/internal/common/errors"
	"placeholder-workers/internal/common/logger"
	"placeholder-workers/internal/common/metrics"
	"placeholder-workers/internal/placeholder"
)

const (
	TaskType = "migrate-template"
)

type Handler struct {
	config   *Config
	migrator placeholder.Migrator
	errors   *errors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, migrator placeholder.Migrator, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		migrator: migrator,
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
		h.errors.HandleJobError(ctx, client, job, errors.NewMigrationFailedError("parse input: "+err.Error()))
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
	if strings.TrimSpace(input.TemplateText) == "" {
		return nil, errors.NewEmptyTemplateError()
	}

	result := h.migrator.Migrate(ctx, input.TemplateText, input.Force)
	if !result.Success {
		return nil, errors.NewMigrationValidationFailedError(result.Errors)
	}

	h.logger.Info("template migrated", map[string]interface{}{
		"formatDetected":    string(result.FormatDetected),
		"migrationsApplied": len(result.MigrationsApplied),
		"warnings":          len(result.Warnings),
	})

	return &Output{
		MigratedText:      result.MigratedText,
		FormatDetected:    string(result.FormatDetected),
		MigrationsApplied: result.MigrationsApplied,
		Warnings:          result.Warnings,
		HashBefore:        result.HashBefore,
		HashAfter:         result.HashAfter,
	}, nil
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
