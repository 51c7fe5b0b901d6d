// internal/workers/content/migrate-template/models.go
package migratetemplate

import "placeholder-workers/internal/placeholder"

type Input struct {
	TemplateText string `json:"templateText"`
	Force        bool   `json:"force,omitempty"`
}

type Output struct {
	MigratedText      string                         `json:"migratedText"`
	FormatDetected    string                         `json:"formatDetected"`
	MigrationsApplied []placeholder.AppliedMigration `json:"migrationsApplied"`
	Warnings          []string                       `json:"warnings,omitempty"`
	HashBefore        string                         `json:"hashBefore"`
	HashAfter         string                         `json:"hashAfter"`
}
