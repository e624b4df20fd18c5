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
	defaultPath     = "."
	defaultHTTPPort = 8080

	defaultMaxRequestBodySize = "100KB"

	StoreBackendFirestore = "firestore"
	StoreBackendMemory    = "memory"

	AuthProviderFirebase = "firebase"
	AuthProviderJWT      = "jwt"
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
		// There is no write timeout: event streams stay open indefinitely.
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
		// StreamHeartbeat is the interval of SSE keep-alive comments.
		StreamHeartbeat time.Duration `json:"streamHeartbeat" yaml:"streamHeartbeat"`
	} `json:"http" yaml:"http"`

	// Firebase project used for Firestore, Auth and Cloud Messaging
	Firebase *FirebaseConfig `json:"firebase" yaml:"firebase"`

	// Store selects the document store backend
	Store *StoreConfig `json:"store" yaml:"store"`

	// Auth selects how bearer tokens are verified
	Auth *AuthConfig `json:"auth" yaml:"auth"`

	// PubSub configuration for trek event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// QRCode configuration for destination share codes
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`

	// Notification configuration for push delivery
	Notification *NotificationConfig `json:"notification" yaml:"notification"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// FirebaseConfig defines the Firebase project credentials
type FirebaseConfig struct {
	ProjectID       string `json:"projectId" yaml:"projectId"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`
}

// StoreConfig defines which DocumentStore implementation backs the reactive stores
type StoreConfig struct {
	// Backend is "firestore" or "memory"
	Backend string `json:"backend" yaml:"backend"`
}

// AuthConfig defines bearer token verification
type AuthConfig struct {
	// Provider is "firebase" (Firebase ID tokens) or "jwt" (HS256 dev tokens)
	Provider  string        `json:"provider" yaml:"provider"`
	JWTSecret string        `json:"jwtSecret" yaml:"jwtSecret"`
	TokenTTL  time.Duration `json:"tokenTtl" yaml:"tokenTtl"`
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
	BaseURL              string `json:"baseUrl" yaml:"baseUrl"`
}

// NotificationConfig defines push notification targets
type NotificationConfig struct {
	// NewTrekTopic is the FCM topic announcing newly planned treks
	NewTrekTopic string `json:"newTrekTopic" yaml:"newTrekTopic"`
}

// LoadWithEnv loads .yaml files through koanf and overlays environment variables.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	k := koanf.New(".")

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

	configFile, err := findConfigFile(currEnv, searchPaths)
	if err != nil {
		return nil, err
	}

	if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existing := k.Raw()

	// Flat env names map onto the YAML keys already present,
	// e.g. FIREBASE_PROJECTID -> firebase.projectId.
	if err := k.Load(env.Provider(".", env.Opt{
		TransformFunc: func(key, value string) (string, any) {
			return canonicalizeEnvKey(key, existing), value
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
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

func findConfigFile(currEnv string, searchPaths []string) (string, error) {
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", errors.Errorf("config file %s.yaml not found in any search path", currEnv)
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = defaultHTTPPort
	}
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if cfg.HTTP.StreamHeartbeat <= 0 {
		cfg.HTTP.StreamHeartbeat = 25 * time.Second
	}
	if cfg.Store == nil || strings.TrimSpace(cfg.Store.Backend) == "" {
		cfg.Store = &StoreConfig{Backend: StoreBackendMemory}
	}
	if cfg.Auth == nil || strings.TrimSpace(cfg.Auth.Provider) == "" {
		cfg.Auth = &AuthConfig{Provider: AuthProviderJWT}
	}
	if cfg.Auth.TokenTTL <= 0 {
		cfg.Auth.TokenTTL = 24 * time.Hour
	}
	if cfg.Notification == nil || cfg.Notification.NewTrekTopic == "" {
		cfg.Notification = &NotificationConfig{NewTrekTopic: "new-treks"}
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
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}

	return b.String()
}
