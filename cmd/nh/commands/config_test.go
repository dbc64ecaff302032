package commands

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/nerves-hub/nerveshub-go/internal/constants"
	"github.com/nerves-hub/nerveshub-go/pkg/nerveshub"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const testPEM = `-----BEGIN CERTIFICATE-----
dGVzdA==
-----END CERTIFICATE-----
`

func TestReadPEMSetting(t *testing.T) {
	t.Run("inline PEM", func(t *testing.T) {
		data, err := readPEMSetting(testPEM)
		require.NoError(t, err)
		assert.Equal(t, []byte(testPEM), data)
	})

	t.Run("base64 PEM", func(t *testing.T) {
		encoded := base64.StdEncoding.EncodeToString([]byte(testPEM))

		data, err := readPEMSetting(encoded)
		require.NoError(t, err)
		assert.Equal(t, []byte(testPEM), data)
	})

	t.Run("file path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cert.pem")
		require.NoError(t, os.WriteFile(path, []byte(testPEM), 0600))

		data, err := readPEMSetting(path)
		require.NoError(t, err)
		assert.Equal(t, []byte(testPEM), data)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := readPEMSetting("/nonexistent/cert.pem")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading PEM file")
	})
}

func TestResolveCredential(t *testing.T) {
	t.Run("token", func(t *testing.T) {
		credential, err := resolveCredential(&Config{Token: "nh-token"})
		require.NoError(t, err)
		assert.Equal(t, nerveshub.TokenCredential{Token: "nh-token"}, credential)
	})

	t.Run("certificate pair", func(t *testing.T) {
		credential, err := resolveCredential(&Config{Cert: testPEM, Key: testPEM})
		require.NoError(t, err)

		certCredential, ok := credential.(nerveshub.CertificateCredential)
		require.True(t, ok)
		assert.Equal(t, []byte(testPEM), certCredential.CertPEM)
		assert.Equal(t, []byte(testPEM), certCredential.KeyPEM)
	})

	t.Run("certificate wins over token", func(t *testing.T) {
		credential, err := resolveCredential(&Config{Cert: testPEM, Key: testPEM, Token: "nh-token"})
		require.NoError(t, err)
		assert.IsType(t, nerveshub.CertificateCredential{}, credential)
	})

	t.Run("no credential", func(t *testing.T) {
		_, err := resolveCredential(&Config{})
		require.Error(t, err)
		assert.ErrorIs(t, err, constants.ErrNotAuthenticated)
	})
}

func TestBuildClientConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	t.Run("missing organization", func(t *testing.T) {
		viper.Reset()

		_, err := buildClientConfig()
		require.Error(t, err)
		assert.ErrorIs(t, err, constants.ErrNoOrganization)
	})

	t.Run("missing product", func(t *testing.T) {
		viper.Reset()
		viper.Set("org", "acme")

		_, err := buildClientConfig()
		require.Error(t, err)
		assert.ErrorIs(t, err, constants.ErrNoProduct)
	})

	t.Run("token configuration", func(t *testing.T) {
		viper.Reset()
		viper.Set("org", "acme")
		viper.Set("product", "widget")
		viper.Set("token", "nh-token")
		viper.Set("base_url", "https://hub.example.com")

		config, err := buildClientConfig()
		require.NoError(t, err)
		assert.Equal(t, "acme", config.Organization)
		assert.Equal(t, "widget", config.Product)
		assert.Equal(t, "https://hub.example.com", config.BaseURL)
		assert.Equal(t, nerveshub.TokenCredential{Token: "nh-token"}, config.Credential)
		assert.Nil(t, config.CACert)
		assert.False(t, config.Debug)
	})

	t.Run("CA certificate and debug logger", func(t *testing.T) {
		viper.Reset()
		viper.Set("org", "acme")
		viper.Set("product", "widget")
		viper.Set("token", "nh-token")
		viper.Set("ca_cert", testPEM)
		viper.Set("debug", true)

		config, err := buildClientConfig()
		require.NoError(t, err)
		assert.Equal(t, []byte(testPEM), config.CACert)
		assert.True(t, config.Debug)
		assert.NotNil(t, config.Logger)
	})
}

func TestSaveConfigRoundTrip(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Reset()

	configFile := filepath.Join(t.TempDir(), "config.yml")
	viper.SetConfigFile(configFile)

	err := saveConfig(&Config{Organization: "acme", Token: "nh-token"})
	require.NoError(t, err)

	info, err := os.Stat(configFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(constants.ConfigFilePerm), info.Mode().Perm())

	data, err := os.ReadFile(configFile)
	require.NoError(t, err)

	var saved Config
	require.NoError(t, yaml.Unmarshal(data, &saved))
	assert.Equal(t, "acme", saved.Organization)
	assert.Equal(t, "nh-token", saved.Token)
	assert.Empty(t, saved.Product)
}

func TestNewConfigCommand(t *testing.T) {
	cmd := NewConfigCommand()
	assert.Equal(t, "config", cmd.Use)
	assert.Equal(t, "Manage CLI configuration", cmd.Short)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 4)

	commandNames := make([]string, 0, len(subcommands))
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "show")
	assert.Contains(t, commandNames, "set")
	assert.Contains(t, commandNames, "unset")
	assert.Contains(t, commandNames, "clear")
}

func TestSetConfigValue(t *testing.T) {
	t.Cleanup(viper.Reset)

	t.Run("persists the key", func(t *testing.T) {
		viper.Reset()
		viper.Set("output", constants.FormatJSON)

		configFile := filepath.Join(t.TempDir(), "config.yml")
		viper.SetConfigFile(configFile)

		require.NoError(t, setConfigValue("org", "acme"))

		data, err := os.ReadFile(configFile)
		require.NoError(t, err)

		var saved Config
		require.NoError(t, yaml.Unmarshal(data, &saved))
		assert.Equal(t, "acme", saved.Organization)
	})

	t.Run("keeps existing values", func(t *testing.T) {
		viper.Reset()
		viper.Set("output", constants.FormatJSON)

		configFile := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(configFile, []byte("token: nh-token\n"), 0600))
		viper.SetConfigFile(configFile)

		require.NoError(t, setConfigValue("product", "widget"))

		data, err := os.ReadFile(configFile)
		require.NoError(t, err)

		var saved Config
		require.NoError(t, yaml.Unmarshal(data, &saved))
		assert.Equal(t, "nh-token", saved.Token)
		assert.Equal(t, "widget", saved.Product)
	})

	t.Run("refuses token", func(t *testing.T) {
		viper.Reset()

		err := setConfigValue("token", "nh-token")
		require.Error(t, err)
		assert.ErrorIs(t, err, constants.ErrTokenNotConfigKey)
		assert.Contains(t, err.Error(), "nh login")
	})

	t.Run("unknown key", func(t *testing.T) {
		viper.Reset()

		err := setConfigValue("space", "outer")
		require.Error(t, err)
		assert.ErrorIs(t, err, constants.ErrUnknownConfigKey)
	})
}

func TestUnsetConfigValue(t *testing.T) {
	t.Cleanup(viper.Reset)

	t.Run("removes the key", func(t *testing.T) {
		viper.Reset()
		viper.Set("output", constants.FormatJSON)

		configFile := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(configFile, []byte("org: acme\nproduct: widget\n"), 0600))
		viper.SetConfigFile(configFile)

		require.NoError(t, unsetConfigValue("org"))

		data, err := os.ReadFile(configFile)
		require.NoError(t, err)

		var saved Config
		require.NoError(t, yaml.Unmarshal(data, &saved))
		assert.Empty(t, saved.Organization)
		assert.Equal(t, "widget", saved.Product)
	})

	t.Run("refuses token", func(t *testing.T) {
		viper.Reset()

		err := unsetConfigValue("token")
		require.Error(t, err)
		assert.ErrorIs(t, err, constants.ErrTokenNotConfigKey)
		assert.Contains(t, err.Error(), "nh logout")
	})

	t.Run("unknown key", func(t *testing.T) {
		viper.Reset()

		err := unsetConfigValue("space")
		require.Error(t, err)
		assert.ErrorIs(t, err, constants.ErrUnknownConfigKey)
	})
}

func TestVerifyToken(t *testing.T) {
	t.Run("valid token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/users/me", request.URL.Path)
			assert.Equal(t, "Bearer nh-token", request.Header.Get("Authorization"))

			writer.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"data": map[string]string{"name": "jo", "email": "jo@example.com"},
			})
		}))
		defer server.Close()

		user, err := verifyToken(context.Background(), &Config{BaseURL: server.URL, Token: "nh-token"})
		require.NoError(t, err)
		assert.Equal(t, "jo", user.Name)
		assert.Equal(t, "jo@example.com", user.Email)
	})

	t.Run("rejected token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.Header().Set("Content-Type", "application/json")
			writer.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"errors": map[string][]string{"detail": {"invalid token"}},
			})
		}))
		defer server.Close()

		_, err := verifyToken(context.Background(), &Config{BaseURL: server.URL, Token: "bad"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "token verification failed")
		assert.True(t, nerveshub.IsUnauthorized(err))
	})
}
