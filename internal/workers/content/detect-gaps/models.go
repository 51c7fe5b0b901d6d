// internal/workers/content/detect-gaps/models.go
package detectgaps

import "placeholder-workers/internal/placeholder"

type Input struct {
	TemplateText string `json:"templateText"`
	// Defaults to the worker's configured value when absent.
	EnableValidation *bool `json:"enableValidation,omitempty"`
}

type Output struct {
	Gaps            []placeholder.DetectedGap `json:"gaps"`
	TotalGaps       int                       `json:"totalGaps"`
	ConfidenceAvg   float64                   `json:"confidenceAvg"`
	DetectionTimeMs int64                     `json:"detectionTimeMs"`
	MethodUsed      string                    `json:"methodUsed"`
	ValidationLevel string                    `json:"validationLevel"`
	Warnings        []string                  `json:"warnings,omitempty"`
	DetectionID     string                    `json:"detectionId,omitempty"`
}
