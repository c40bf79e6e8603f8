package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port int `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	// Geocoding selects the active strategy and the provider per slot
	Geocoding GeocodingConfig `json:"geocoding" yaml:"geocoding"`

	// ServiceArea is the bounding region all results must fall within
	ServiceArea ServiceAreaConfig `json:"serviceArea" yaml:"serviceArea"`

	// Providers configures the external geodata endpoints
	Providers ProvidersConfig `json:"providers" yaml:"providers"`

	// Closure tunes street geometry resolution and buffering
	Closure ClosureConfig `json:"closure" yaml:"closure"`

	// Matcher configuration for the spatial notification matcher
	Matcher MatcherConfig `json:"matcher" yaml:"matcher"`

	// Notify configuration for match event delivery
	Notify *NotifyConfig `json:"notify" yaml:"notify"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// GeocodingConfig selects the geocoding strategy and provider per slot
type GeocodingConfig struct {
	// Strategy is "batch" or "split"
	Strategy string `json:"strategy" yaml:"strategy"`

	// IntersectionProvider is "routing" or "network" for the split
	// strategy's street endpoint slot
	IntersectionProvider string `json:"intersectionProvider" yaml:"intersectionProvider"`
}

// ServiceAreaConfig defines the bounding region and its reference point
type ServiceAreaConfig struct {
	Name   string  `json:"name" yaml:"name"`
	MinLat float64 `json:"minLat" yaml:"minLat"`
	MinLng float64 `json:"minLng" yaml:"minLng"`
	MaxLat float64 `json:"maxLat" yaml:"maxLat"`
	MaxLng float64 `json:"maxLng" yaml:"maxLng"`

	// Reference point used to disambiguate multiple street crossings
	RefLat float64 `json:"refLat" yaml:"refLat"`
	RefLng float64 `json:"refLng" yaml:"refLng"`
}

// ProvidersConfig configures the external geodata endpoints
type ProvidersConfig struct {
	Geocode     ProviderEndpointConfig    `json:"geocode" yaml:"geocode"`
	Routing     ProviderEndpointConfig    `json:"routing" yaml:"routing"`
	RoadNetwork RoadNetworkProviderConfig `json:"roadNetwork" yaml:"roadNetwork"`
}

// ProviderEndpointConfig is the shared shape of single-endpoint providers
type ProviderEndpointConfig struct {
	Endpoint string        `json:"endpoint" yaml:"endpoint"`
	APIKey   string        `json:"apiKey" yaml:"apiKey"`
	MinDelay time.Duration `json:"minDelay" yaml:"minDelay"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout"`
}

// RoadNetworkProviderConfig configures the mirrored road network endpoints
type RoadNetworkProviderConfig struct {
	Mirrors  []string      `json:"mirrors" yaml:"mirrors"`
	MinDelay time.Duration `json:"minDelay" yaml:"minDelay"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout"`
}

// ClosureConfig tunes street geometry resolution and closure buffering
type ClosureConfig struct {
	// Street-class width table in meters
	BoulevardWidthMeters float64 `json:"boulevardWidthMeters" yaml:"boulevardWidthMeters"`
	SquareWidthMeters    float64 `json:"squareWidthMeters" yaml:"squareWidthMeters"`
	DefaultWidthMeters   float64 `json:"defaultWidthMeters" yaml:"defaultWidthMeters"`

	// Maximum raw segments consumed while stitching one centerline
	SegmentBudget int `json:"segmentBudget" yaml:"segmentBudget"`

	// Maximum distance from the path tip to the next candidate segment
	MatchToleranceMeters float64 `json:"matchToleranceMeters" yaml:"matchToleranceMeters"`

	// Distance at which the path tip counts as having reached the endpoint
	EndToleranceMeters float64 `json:"endToleranceMeters" yaml:"endToleranceMeters"`

	// Buffer width used by the approximate intersection fallback
	BufferToleranceMeters float64 `json:"bufferToleranceMeters" yaml:"bufferToleranceMeters"`

	// Maximum separation accepted by the closest-vertex fallback
	MaxGapMeters float64 `json:"maxGapMeters" yaml:"maxGapMeters"`
}

// MatcherConfig configures the spatial notification matcher
type MatcherConfig struct {
	Interval  time.Duration `json:"interval" yaml:"interval"`
	BatchSize int           `json:"batchSize" yaml:"batchSize"`
}

// NotifyConfig configures match event delivery
type NotifyConfig struct {
	// Endpoint receiving Pub/Sub style push messages with match events
	Endpoint string `json:"endpoint" yaml:"endpoint"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: POSTGRES_SSLMODE -> postgres.sslMode (not postgres.sslmode)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	applyClosureDefaults(&cfg.Closure)
	applyMatcherDefaults(&cfg.Matcher)

	// Build replicas from environment variables (POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, etc.)
	cfg.Postgres.Replicas = buildReplicasFromEnv()

	return cfg, nil
}

func applyClosureDefaults(closure *ClosureConfig) {
	if closure.BoulevardWidthMeters <= 0 {
		closure.BoulevardWidthMeters = 20
	}
	if closure.SquareWidthMeters <= 0 {
		closure.SquareWidthMeters = 25
	}
	if closure.DefaultWidthMeters <= 0 {
		closure.DefaultWidthMeters = 8
	}
	if closure.SegmentBudget <= 0 {
		closure.SegmentBudget = 50
	}
	if closure.MatchToleranceMeters <= 0 {
		closure.MatchToleranceMeters = 150
	}
	if closure.EndToleranceMeters <= 0 {
		closure.EndToleranceMeters = 20
	}
	if closure.BufferToleranceMeters <= 0 {
		closure.BufferToleranceMeters = 30
	}
	if closure.MaxGapMeters <= 0 {
		closure.MaxGapMeters = 300
	}
}

func applyMatcherDefaults(matcher *MatcherConfig) {
	if matcher.Interval <= 0 {
		matcher.Interval = time.Minute
	}
	if matcher.BatchSize <= 0 {
		matcher.BatchSize = 50
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
// Example: POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, POSTGRES_REPLICAS_0_USERNAME, POSTGRES_REPLICAS_0_PASSWORD
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			// No more replicas or incomplete configuration.
			break
		}

		replica := postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		}

		replicas = append(replicas, replica)
	}

	return replicas
}
