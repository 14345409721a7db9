package contract

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/huangsam/ladder/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 3
	MaxPrecision       = 4
	DefaultLogLevel    = "warn"
)

// DefaultInputExtensions lists the file extensions picked up when a directory is given.
var DefaultInputExtensions = []string{".json", ".yaml", ".yml"}

// MethodRaw holds one catalogue entry from the YAML config file.
// Score is a pointer so a missing score can be told apart from zero.
type MethodRaw struct {
	Name     string   `mapstructure:"name"`
	Score    *float64 `mapstructure:"score"`
	Category string   `mapstructure:"category"`
}

// Config holds the runtime configuration.
// This struct is the "final, validated" config.
type Config struct {
	Methods       []schema.Method
	Ladder        []schema.Bracket
	DefaultMethod string

	Factors     []string
	Related     []float64            // Empty means: derive from the selection itself
	Groups      map[string][]float64 // Named derived metrics
	InputSchema string               // Path to a JSON Schema inputs must satisfy

	ResultLimit int
	Excludes    []string
	Explain     bool
	Clamp       bool
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	LogLevel string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Catalogue from the config file ---
	Methods       []MethodRaw          `mapstructure:"methods"`
	Ladder        []schema.Bracket     `mapstructure:"ladder"`
	DefaultMethod string               `mapstructure:"default-method"`
	Groups        map[string][]float64 `mapstructure:"groups"`

	// --- Fields from rootCmd.PersistentFlags() ---
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Precision        int    `mapstructure:"precision"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	InputSchema      string `mapstructure:"input-schema"`
	LogLevel         string `mapstructure:"log-level"`

	// --- Fields from selectCmd.Flags() ---
	Factors string `mapstructure:"factors"`
	Related string `mapstructure:"related"`
	Limit   int    `mapstructure:"limit"`
	Exclude string `mapstructure:"exclude"`
	Explain bool   `mapstructure:"explain"`
	Clamp   bool   `mapstructure:"clamp"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Methods = slices.Clone(c.Methods)
	clone.Ladder = slices.Clone(c.Ladder)
	clone.Factors = slices.Clone(c.Factors)
	clone.Related = slices.Clone(c.Related)
	clone.Excludes = slices.Clone(c.Excludes)
	if c.Groups != nil {
		clone.Groups = make(map[string][]float64, len(c.Groups))
		for name, values := range c.Groups {
			clone.Groups[name] = slices.Clone(values)
		}
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processCatalogue(cfg, input); err != nil {
		return err
	}
	if err := processFactors(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ParseBackend normalizes a backend name. Empty means disabled.
func ParseBackend(s string) (schema.DatabaseBackend, error) {
	if strings.TrimSpace(s) == "" {
		return schema.NoneBackend, nil
	}
	backend := schema.DatabaseBackend(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", s)
	}
	return backend, nil
}

// validateBackendConfig validates the history backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	backend, err := ParseBackend(input.HistoryBackend)
	if err != nil {
		return err
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// validateSimpleInputs processes and validates the presentation and run fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Explain = input.Explain
	cfg.Clamp = input.Clamp
	cfg.Width = input.Width
	cfg.InputSchema = strings.TrimSpace(input.InputSchema)

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", input.Output)
	}

	// --- 3. Log level ---
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(input.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return err
	}

	// --- 4. Excludes Processing ---
	cfg.Excludes = nil
	for p := range strings.SplitSeq(input.Exclude, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			cfg.Excludes = append(cfg.Excludes, trimmed)
		}
	}

	return nil
}

// processCatalogue resolves the method catalogue, ladder and default method.
// Without configured methods the built-in catalogue and ladder apply.
func processCatalogue(cfg *Config, input *ConfigRawInput) error {
	if len(input.Methods) == 0 {
		if len(input.Ladder) > 0 {
			return fmt.Errorf("a ladder was configured without methods; define methods as well")
		}
		cfg.Methods = schema.DefaultMethods()
		cfg.Ladder = schema.DefaultLadder()
		cfg.DefaultMethod = schema.DefaultMethodName
		if input.DefaultMethod != "" {
			cfg.DefaultMethod = strings.TrimSpace(input.DefaultMethod)
		}
		return nil
	}

	// A repeated name replaces the earlier entry in place, so the catalogue
	// matches what the registry holds after last-write-wins registration.
	methods := make([]schema.Method, 0, len(input.Methods))
	position := make(map[string]int, len(input.Methods))
	for i, raw := range input.Methods {
		name := strings.TrimSpace(raw.Name)
		if name == "" {
			return fmt.Errorf("method #%d has no name: %w", i+1, schema.ErrInvalidArgument)
		}
		if raw.Score == nil {
			return fmt.Errorf("method %q has no score: %w", name, schema.ErrInvalidScore)
		}
		score := *raw.Score
		if math.IsNaN(score) || score <= 0 || score > 1 {
			return fmt.Errorf("method %q has score %v: %w", name, score, schema.ErrInvalidScore)
		}
		m := schema.Method{Name: name, Score: score, Category: strings.TrimSpace(raw.Category)}
		if idx, ok := position[name]; ok {
			methods[idx] = m
			continue
		}
		position[name] = len(methods)
		methods = append(methods, m)
	}
	cfg.Methods = methods

	if len(input.Ladder) == 0 {
		return fmt.Errorf("methods were configured without a ladder; define at least one bracket")
	}
	cfg.Ladder = slices.Clone(input.Ladder)

	cfg.DefaultMethod = strings.TrimSpace(input.DefaultMethod)
	if cfg.DefaultMethod == "" {
		cfg.DefaultMethod = lowestScored(methods)
	}
	return nil
}

// lowestScored returns the name of the lowest-scored method, the last one wins ties.
func lowestScored(methods []schema.Method) string {
	name := ""
	lowest := math.Inf(1)
	for _, m := range methods {
		if m.Score <= lowest {
			lowest = m.Score
			name = m.Name
		}
	}
	return name
}

// processFactors parses the factor names, related values and derived groups.
func processFactors(cfg *Config, input *ConfigRawInput) error {
	cfg.Factors = ParseNameList(input.Factors)
	if len(cfg.Factors) == 0 {
		cfg.Factors = slices.Clone(schema.DefaultFactors)
	}

	related, err := ParseFloatList(input.Related)
	if err != nil {
		return fmt.Errorf("invalid --related value: %w", err)
	}
	cfg.Related = related

	cfg.Groups = nil
	if len(input.Groups) > 0 {
		cfg.Groups = make(map[string][]float64, len(input.Groups))
		for _, name := range slices.Sorted(maps.Keys(input.Groups)) {
			values := input.Groups[name]
			if len(values) == 0 {
				return fmt.Errorf("derived group %q has no values: %w", name, schema.ErrInvalidArgument)
			}
			cfg.Groups[name] = slices.Clone(values)
		}
	}
	return nil
}

// ParseNameList splits a comma-separated list, dropping blanks.
func ParseNameList(s string) []string {
	var out []string
	for p := range strings.SplitSeq(s, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// ParseFloatList parses a comma-separated list of finite numbers.
func ParseFloatList(s string) ([]float64, error) {
	var out []float64
	for _, p := range ParseNameList(s) {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("'%s' is not a number", p)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("'%s' is not a finite number", p)
		}
		out = append(out, v)
	}
	return out, nil
}
