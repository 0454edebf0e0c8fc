package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"
	defaultAdminGroup         = "AdminGroup"
	defaultCustomerGroup      = "CustomerGroup"
	defaultCallTimeout        = 15 * time.Second
	defaultBackendTimeout     = 30 * time.Second
	defaultCookieName         = "scooter_ws"
	defaultWorkspaceTTL       = 30 * time.Minute
	defaultMaxWorkspaces      = 1024
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Identity configures the managed identity provider (Cognito user pool)
	Identity *IdentityConfig `json:"identity" yaml:"identity"`

	// Backend configures the rental REST API
	Backend *BackendConfig `json:"backend" yaml:"backend"`

	// Profile configures where the display profile snapshot is kept
	Profile *ProfileConfig `json:"profile" yaml:"profile"`

	// Portal configures visitor workspaces of the web portal
	Portal *PortalConfig `json:"portal" yaml:"portal"`

	// PubSub configuration for auth event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// QRCode configuration for booking access codes
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// IdentityConfig defines the identity provider connection
type IdentityConfig struct {
	Region     string `json:"region" yaml:"region"`
	UserPoolID string `json:"userPoolId" yaml:"userPoolId"`
	ClientID   string `json:"clientId" yaml:"clientId"`

	// Endpoint overrides the provider endpoint (local emulators)
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	AdminGroup    string `json:"adminGroup" yaml:"adminGroup"`
	CustomerGroup string `json:"customerGroup" yaml:"customerGroup"`

	// CallTimeout bounds every sign-in and challenge round trip
	CallTimeout time.Duration `json:"callTimeout" yaml:"callTimeout"`
}

// BackendConfig defines the REST API endpoint
type BackendConfig struct {
	BaseURL string        `json:"baseUrl" yaml:"baseUrl"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// ProfileConfig defines the profile snapshot store
type ProfileConfig struct {
	// Driver is "blob" or "redis"
	Driver    string        `json:"driver" yaml:"driver"`
	BucketURL string        `json:"bucketUrl" yaml:"bucketUrl"`
	TTL       time.Duration `json:"ttl" yaml:"ttl"`
	Redis     struct {
		Addr     string `json:"addr" yaml:"addr"`
		Password string `json:"password" yaml:"password"`
		DB       int    `json:"db" yaml:"db"`
	} `json:"redis" yaml:"redis"`
}

// PortalConfig defines workspace handling for the web portal
type PortalConfig struct {
	CookieName    string        `json:"cookieName" yaml:"cookieName"`
	SecureCookie  bool          `json:"secureCookie" yaml:"secureCookie"`
	WorkspaceTTL  time.Duration `json:"workspaceTtl" yaml:"workspaceTtl"`
	MaxWorkspaces int           `json:"maxWorkspaces" yaml:"maxWorkspaces"`
	RateLimit     struct {
		RPS   float64 `json:"rps" yaml:"rps"`
		Burst int     `json:"burst" yaml:"burst"`
	} `json:"rateLimit" yaml:"rateLimit"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	configFile, found := findConfigFile(currEnv, searchPaths)
	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// IDENTITY_USERPOOLID -> identity.userPoolId
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func findConfigFile(name string, searchPaths []string) (string, bool) {
	for _, path := range searchPaths {
		candidate := filepath.Join(path, name+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}

	return "", false
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults fills optional sections and checks the ones the client cannot run without.
func (cfg *Config) applyDefaults() error {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if cfg.Identity == nil {
		return errors.New("identity section is required")
	}
	if cfg.Identity.AdminGroup == "" {
		cfg.Identity.AdminGroup = defaultAdminGroup
	}
	if cfg.Identity.CustomerGroup == "" {
		cfg.Identity.CustomerGroup = defaultCustomerGroup
	}
	if cfg.Identity.CallTimeout <= 0 {
		cfg.Identity.CallTimeout = defaultCallTimeout
	}

	if cfg.Backend == nil || strings.TrimSpace(cfg.Backend.BaseURL) == "" {
		return errors.New("backend.baseUrl is required")
	}
	if cfg.Backend.Timeout <= 0 {
		cfg.Backend.Timeout = defaultBackendTimeout
	}

	if cfg.Portal == nil {
		cfg.Portal = &PortalConfig{}
	}
	if cfg.Portal.CookieName == "" {
		cfg.Portal.CookieName = defaultCookieName
	}
	if cfg.Portal.WorkspaceTTL <= 0 {
		cfg.Portal.WorkspaceTTL = defaultWorkspaceTTL
	}
	if cfg.Portal.MaxWorkspaces <= 0 {
		cfg.Portal.MaxWorkspaces = defaultMaxWorkspaces
	}

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		matched, next, ok := findExistingSegment(current, segment)
		if !ok {
			canonical = append(canonical, segment)
			current = nil

			continue
		}
		canonical = append(canonical, matched)
		current = next
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
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
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			normalized.WriteRune(unicode.ToLower(r))
		}
	}

	return normalized.String()
}
