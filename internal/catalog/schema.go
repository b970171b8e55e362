package catalog

import (
	"embed"
	"sync"

	"github.com/osse101/SpaceCases_Go/internal/validation"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

var feedSchemas = map[string]string{
	SchemaItems:      "schemas/items.schema.json",
	SchemaContainers: "schemas/containers.schema.json",
}

var loadFeedValidator = sync.OnceValues(func() (validation.SchemaValidator, error) {
	v := validation.NewSchemaValidator()
	for name, path := range feedSchemas {
		doc, err := schemaFS.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := v.AddSchema(name+".schema.json", doc); err != nil {
			return nil, err
		}
	}
	return v, nil
})

// validateFeed checks a raw feed file against its embedded JSON schema
func validateFeed(data []byte, schema string) error {
	v, err := loadFeedValidator()
	if err != nil {
		return err
	}
	return v.ValidateBytes(data, schema+".schema.json")
}
