package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"firebase": map[string]any{
			"projectId":       "",
			"credentialsPath": "",
		},
		"pubsub": map[string]any{
			"topicId": "",
		},
		"auth": map[string]any{
			"jwtSecret": "",
		},
		"http": map[string]any{
			"streamHeartbeat": "25s",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "FIREBASE_PROJECTID", want: "firebase.projectId"},
		{envKey: "FIREBASE_CREDENTIALSPATH", want: "firebase.credentialsPath"},
		{envKey: "PUBSUB_TOPICID", want: "pubsub.topicId"},
		{envKey: "AUTH_JWTSECRET", want: "auth.jwtSecret"},
		{envKey: "HTTP_STREAMHEARTBEAT", want: "http.streamHeartbeat"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, defaultHTTPPort, cfg.HTTP.Port)
	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, 25*time.Second, cfg.HTTP.StreamHeartbeat)
	assert.Equal(t, StoreBackendMemory, cfg.Store.Backend)
	assert.Equal(t, AuthProviderJWT, cfg.Auth.Provider)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "new-treks", cfg.Notification.NewTrekTopic)
}

func TestApplyDefaults_KeepsConfiguredValues(t *testing.T) {
	cfg := &Config{
		Store:        &StoreConfig{Backend: StoreBackendFirestore},
		Auth:         &AuthConfig{Provider: AuthProviderFirebase, TokenTTL: time.Hour},
		Notification: &NotificationConfig{NewTrekTopic: "treks"},
	}
	cfg.HTTP.Port = 9000
	applyDefaults(cfg)

	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.Equal(t, StoreBackendFirestore, cfg.Store.Backend)
	assert.Equal(t, AuthProviderFirebase, cfg.Auth.Provider)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "treks", cfg.Notification.NewTrekTopic)
}

func TestLoadWithEnv_ReadsYAMLAndEnvOverride(t *testing.T) {
	t.Setenv("FIREBASE_PROJECTID", "trek-test")

	cfg, err := LoadWithEnv[Config]("config")
	if err != nil {
		t.Fatalf("LoadWithEnv: %v", err)
	}

	assert.Equal(t, "trekmate", cfg.Env.ServiceName)
	assert.Equal(t, "trek-test", cfg.Firebase.ProjectID)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeouts.ReadHeaderTimeout)
}
