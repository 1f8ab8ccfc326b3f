package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for merging.
const (
	keyLanguage = "language"
	keyCache    = "cache"
	keyAPI      = "api"
	keyOutput   = "output"
	keyLogging  = "logging"
)

// knownTopLevelKeys lists the YAML keys that correspond to exported Config fields.
// Keys not in this list are ignored during merge.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var knownTopLevelKeys = map[string]bool{
	keyLanguage: true,
	keyCache:    true,
	keyAPI:      true,
	keyOutput:   true,
	keyLogging:  true,
}

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// the target Config. Sections absent from the file are left unchanged.
// Sections present are decoded over the target's current values, so a file
// that sets only cache.ttl_seconds keeps the default cache.dir.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing config YAML from %s: %w", overlayPath, err)
	}

	// Empty or comment-only file: nothing to merge.
	if len(overlay) == 0 {
		return nil
	}

	logger := GetLogger()
	for key, node := range overlay {
		if !knownTopLevelKeys[key] {
			logger.Debug().Str("key", key).Str("path", overlayPath).Msg("ignoring unknown config key")
			continue
		}

		if err = decodeSection(target, key, &node); err != nil {
			return fmt.Errorf("applying config section %q from %s: %w", key, overlayPath, err)
		}
	}

	return nil
}

// decodeSection decodes one top-level node into the matching field of target.
// The field is only replaced when decoding succeeds.
func decodeSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyLanguage:
		var v string
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Language = v
	case keyCache:
		v := target.Cache
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Cache = v
	case keyAPI:
		v := target.API
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.API = v
	case keyOutput:
		v := target.Output
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Output = v
	case keyLogging:
		v := target.Logging
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Logging = v
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
