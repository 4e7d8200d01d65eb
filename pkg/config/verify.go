package config

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var schema map[string]any
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// every top-level section declared by the schema must be present in the config
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	if props, ok := schemaProperties(schema); ok {
		for section := range props {
			if _, found := configMap[section]; !found {
				return fmt.Errorf("section %q missing from config", section)
			}
		}
	}

	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// schemaProperties finds the Config properties either at the root or under $defs
func schemaProperties(schema map[string]any) (map[string]any, bool) {
	if props, ok := schema["properties"].(map[string]any); ok {
		return props, true
	}
	defs, ok := schema["$defs"].(map[string]any)
	if !ok {
		return nil, false
	}
	cfgDef, ok := defs["Config"].(map[string]any)
	if !ok {
		return nil, false
	}
	props, ok := cfgDef["properties"].(map[string]any)
	return props, ok
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if cfg.Storage.DSN == "" {
		return fmt.Errorf("storage.dsn is required")
	}
	if cfg.Storage.KeywordsKey == cfg.Storage.AuthorsKey {
		return fmt.Errorf("storage.keywords_key and storage.authors_key must differ")
	}
	if cfg.Selectors.Card == "" {
		return fmt.Errorf("selectors.card is required")
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}
