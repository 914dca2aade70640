package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/ragdesk/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Missing keys
// leave the corresponding Config field untouched.
type JsonConfig struct {
	Contract  string `json:"contract"`
	SessionDB string `json:"session_db"`
	ChartsDir string `json:"charts_dir"`
	LogLevel  string `json:"log_level"`
	NoColor   *bool  `json:"no_color"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c or -config flag (flagx.ConfigPath). If
// neither is given, no JSON is loaded.
//
// Panics on read or unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.Contract, jc.Contract)
	setString(&cfg.SessionDB, jc.SessionDB)
	setString(&cfg.ChartsDir, jc.ChartsDir)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.NoColor != nil {
		cfg.NoColor = *jc.NoColor
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
