package config

// Config holds runtime settings for the ragdesk client.
//
// Fields:
//   - Contract: backend API shape, "bearer" or "legacy".
//   - SessionDB: path of the SQLite session database.
//   - ChartsDir: directory that receives the rendered chart pages.
//   - LogLevel: debug, info, warn or error.
//   - NoColor: disables terminal colours.
//
// The backend address is fixed (see common.APIURL) and is not configurable.
type Config struct {
	Contract  string
	SessionDB string
	ChartsDir string
	LogLevel  string
	NoColor   bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Contract = "bearer"
	c.SessionDB = "session.db"
	c.ChartsDir = "charts"
	c.LogLevel = "info"
	c.NoColor = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
