// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
)

// LoadRegistry reads and schema-validates the rules registry at path.
func LoadRegistry(path string) (*RulesRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := validate(data); err != nil {
		return nil, err
	}
	var reg RulesRegistry
	err = json.Unmarshal(data, &reg)
	return &reg, err
}

func validate(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(registrySchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return err
	}
	if result.Valid() {
		return nil
	}
	msg := "registry validation failed:"
	for _, desc := range result.Errors() {
		msg += fmt.Sprintf(" %s;", desc)
	}
	return fmt.Errorf("%s", msg)
}
