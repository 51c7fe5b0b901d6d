// cmd/tools/rules-registry/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"placeholder-workers/pkg/registry"
)

var registryPath string

func main() {
	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	// Add command flags
	oldFormat := addCmd.String("oldFormat", "", "Legacy spelling (e.g., [PALAVRA-CHAVE])")
	newFormat := addCmd.String("newFormat", "", "Canonical spelling (e.g., {primary_keyword})")
	fieldName := addCmd.String("fieldName", "", "Canonical field name (e.g., primary_keyword)")
	required := addCmd.Bool("required", false, "Whether migrated templates must contain the field")
	defaultValue := addCmd.String("defaultValue", "", "Default value for the field")
	priority := addCmd.Int("priority", 100, "Migration priority (lower runs first)")
	addCmd.StringVar(&registryPath, "path", "configs/rules-registry.json", "Path to registry file")

	// Validate command flags
	validateCmd.StringVar(&registryPath, "path", "configs/rules-registry.json", "Path to registry file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add":
		addCmd.Parse(os.Args[2:])
		if *oldFormat == "" || *newFormat == "" || *fieldName == "" {
			fmt.Println("Error: oldFormat, newFormat, and fieldName are required for add.")
			addCmd.Usage()
			os.Exit(1)
		}
		rule := registry.RegistryRule{
			OldFormat:         *oldFormat,
			NewFormat:         *newFormat,
			FieldName:         *fieldName,
			Required:          *required,
			DefaultValue:      *defaultValue,
			MigrationPriority: *priority,
		}
		if err := addRule(rule); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Rule %q -> %q added to %s\n", rule.OldFormat, rule.NewFormat, registryPath)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		reg, err := registry.LoadRegistry(registryPath)
		if err != nil {
			fmt.Printf("Registry invalid: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Registry valid: %d rules (version %s)\n", len(reg.Rules), reg.Version)

	default:
		help()
		os.Exit(1)
	}
}

func addRule(rule registry.RegistryRule) error {
	reg := &registry.RulesRegistry{Version: "1.0.0"}
	if data, err := os.ReadFile(registryPath); err == nil {
		if err := json.Unmarshal(data, reg); err != nil {
			return fmt.Errorf("parse existing registry: %w", err)
		}
	}

	for _, existing := range reg.Rules {
		if existing.OldFormat == rule.OldFormat {
			return fmt.Errorf("rule for %q already exists", rule.OldFormat)
		}
	}

	reg.Rules = append(reg.Rules, rule)
	reg.LastUpdated = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(registryPath, data, 0o644); err != nil {
		return err
	}

	// Re-read through the schema so a bad write never sticks silently.
	_, err = registry.LoadRegistry(registryPath)
	return err
}

func help() {
	fmt.Println("Usage: rules-registry <command> [flags]")
	fmt.Println("Commands:")
	fmt.Println("  add       Add a rewrite rule to the registry")
	fmt.Println("  validate  Schema-validate the registry file")
}
