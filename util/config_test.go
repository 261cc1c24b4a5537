package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// missingEnvFile points the loader away from any real .env in the working
// directory so the tests see only the environment and the defaults.
func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), ".env")
}

func completeConfig() *Config {
	return &Config{
		InstanceID:   "instance-id",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	}
}

func TestConfigValidate_Success(t *testing.T) {
	// Tested code
	err := completeConfig().Validate()

	// Asserts
	assert.Nil(t, err)
}

func TestConfigValidate_Error(t *testing.T) {
	// Mock
	missingInstance := completeConfig()
	missingInstance.InstanceID = ""
	missingClientID := completeConfig()
	missingClientID.ClientID = ""
	missingSecret := completeConfig()
	missingSecret.ClientSecret = ""
	missingAll := &Config{}

	// Tested code
	instanceErr := missingInstance.Validate()
	clientIDErr := missingClientID.Validate()
	secretErr := missingSecret.Validate()
	allErr := missingAll.Validate()

	// Asserts
	assert.NotNil(t, instanceErr)
	assert.Contains(t, instanceErr.Error(), SENTINELHUB_INSTANCE_ID)
	assert.NotNil(t, clientIDErr)
	assert.Contains(t, clientIDErr.Error(), SENTINELHUB_CLIENT_ID)
	assert.NotNil(t, secretErr)
	assert.Contains(t, secretErr.Error(), SENTINELHUB_CLIENT_SECRET)
	assert.NotNil(t, allErr)
}

func TestLoadConfig_Environment(t *testing.T) {
	// Mock
	os.Setenv(SENTINELHUB_INSTANCE_ID, "env-instance")
	os.Setenv(SENTINELHUB_CLIENT_ID, "env-client")
	os.Setenv(SENTINELHUB_CLIENT_SECRET, "env-secret")
	os.Setenv(LOG_LEVEL, "debug")
	defer func() {
		os.Unsetenv(SENTINELHUB_INSTANCE_ID)
		os.Unsetenv(SENTINELHUB_CLIENT_ID)
		os.Unsetenv(SENTINELHUB_CLIENT_SECRET)
		os.Unsetenv(LOG_LEVEL)
	}()

	// Tested code
	config := loadConfig(missingEnvFile(t))

	// Asserts
	assert.Equal(t, "env-instance", config.InstanceID)
	assert.Equal(t, "env-client", config.ClientID)
	assert.Equal(t, "env-secret", config.ClientSecret)
	assert.Equal(t, "debug", config.LogLevel)
	assert.Nil(t, config.Validate())
}

func TestLoadConfig_Defaults(t *testing.T) {
	// Tested code
	config := loadConfig(missingEnvFile(t))

	// Asserts
	assert.Equal(t, 8080, config.Port)
	assert.Equal(t, ":8080", config.PortStr())
	assert.NotEmpty(t, config.ProcessURL)
	assert.NotEmpty(t, config.TokenURL)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	// Mock
	envPath := filepath.Join(t.TempDir(), ".env")
	contents := SENTINELHUB_INSTANCE_ID + "=file-instance\n" +
		SENTINELHUB_CLIENT_ID + "=file-client\n" +
		SENTINELHUB_CLIENT_SECRET + "=file-secret\n"
	assert.Nil(t, os.WriteFile(envPath, []byte(contents), 0600))

	// Tested code
	config := loadConfig(envPath)

	// Asserts
	assert.Equal(t, "file-instance", config.InstanceID)
	assert.Equal(t, "file-client", config.ClientID)
	assert.Equal(t, "file-secret", config.ClientSecret)
	assert.Nil(t, config.Validate())
}
