package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"unishark/internal/domain"
	"unishark/internal/errors"
)

// ReadTestConfig reads a selection config file into a generic map. Files ending in .json are decoded as JSON, anything
// else as YAML.
func ReadTestConfig(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStackTraceAndPrefix(err, "reading test config %s", path)
	}

	raw := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &raw)
	default:
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, errors.WithStackTraceAndPrefix(err, "parsing test config %s", path)
	}

	return raw, nil
}

// DecodeTestConfig converts a generic map into a TestConfig. Unknown keys are ignored so that configs carrying
// sections for other tools still load.
func DecodeTestConfig(raw map[string]any) (*domain.TestConfig, error) {
	conf := &domain.TestConfig{}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           conf,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, errors.WithStackTraceAndPrefix(err, "decoding test config")
	}

	return conf, nil
}

// LoadTestConfig reads and decodes the selection config at path
func LoadTestConfig(path string) (*domain.TestConfig, error) {
	raw, err := ReadTestConfig(path)
	if err != nil {
		return nil, err
	}
	return DecodeTestConfig(raw)
}
