// pkg/registry/schema.go
package registry

// RulesRegistry is the on-disk overlay of rewrite rules merged over the
// built-in rule table at startup.
type RulesRegistry struct {
	Version     string         `json:"version"`
	LastUpdated string         `json:"lastUpdated"`
	Rules       []RegistryRule `json:"rules"`
}

type RegistryRule struct {
	OldFormat         string `json:"oldFormat"`
	NewFormat         string `json:"newFormat"`
	FieldName         string `json:"fieldName"`
	Required          bool   `json:"required"`
	DefaultValue      string `json:"defaultValue,omitempty"`
	MigrationPriority int    `json:"migrationPriority"`
}

// registrySchema validates a registry file before it is trusted: every
// rule needs the two spellings, a field name, and a positive priority.
const registrySchema = `{
  "type": "object",
  "required": ["version", "rules"],
  "properties": {
    "version": {"type": "string"},
    "lastUpdated": {"type": "string"},
    "rules": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["oldFormat", "newFormat", "fieldName", "migrationPriority"],
        "properties": {
          "oldFormat": {"type": "string", "minLength": 1},
          "newFormat": {"type": "string", "pattern": "^\\{[a-z_]+\\}$"},
          "fieldName": {"type": "string", "pattern": "^[a-z_]+$"},
          "required": {"type": "boolean"},
          "defaultValue": {"type": "string"},
          "migrationPriority": {"type": "integer", "minimum": 1}
        }
      }
    }
  }
}`
