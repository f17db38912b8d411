package config

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"

	"amphorank/domain/ranking"
	"amphorank/internal/errors"

	"gopkg.in/yaml.v3"
)

// LoadEngineConfig overlays the YAML file at path onto the default engine
// configuration and validates the result. An empty path returns defaults.
// Unknown keys are rejected.
func LoadEngineConfig(path string) (ranking.EngineConfig, error) {
	cfg := ranking.DefaultEngineConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ranking.EngineConfig{}, errors.IOError(path, err)
	}
	return ParseEngineConfig(data)
}

// ParseEngineConfig overlays YAML bytes onto the defaults and validates.
func ParseEngineConfig(data []byte) (ranking.EngineConfig, error) {
	cfg := ranking.DefaultEngineConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return ranking.EngineConfig{}, errors.WithCode(errors.CodeConfigInvalid,
			errors.Wrap(err, "failed to parse engine configuration"))
	}

	if err := cfg.Validate(); err != nil {
		return ranking.EngineConfig{}, errors.WithCode(errors.CodeConfigInvalid, err)
	}
	return cfg, nil
}

// MarshalEngineConfig renders an engine configuration as YAML.
func MarshalEngineConfig(cfg ranking.EngineConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to encode engine configuration")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to encode engine configuration")
	}
	return buf.Bytes(), nil
}
