package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	os.Setenv("botToken", "test-token")
	os.Setenv("PORT", "3001")
	os.Setenv("enviroment", "test")
	os.Setenv("configFile", "testdata.json")
	defer func() {
		os.Unsetenv("botToken")
		os.Unsetenv("PORT")
		os.Unsetenv("enviroment")
		os.Unsetenv("configFile")
	}()

	resetForTesting()

	config, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if config.BotToken != "test-token" {
		t.Errorf("BotToken = %v, want %v", config.BotToken, "test-token")
	}
	if config.Port != "3001" {
		t.Errorf("Port = %v, want %v", config.Port, "3001")
	}
	if config.Environment != "test" {
		t.Errorf("Environment = %v, want %v", config.Environment, "test")
	}
	if config.ConfigFile != "testdata.json" {
		t.Errorf("ConfigFile = %v, want %v", config.ConfigFile, "testdata.json")
	}
}

func TestGetEnv(t *testing.T) {
	os.Setenv("TEST_VAR", "test-value")
	defer os.Unsetenv("TEST_VAR")

	if got := getEnv("TEST_VAR", "default"); got != "test-value" {
		t.Errorf("getEnv() = %v, want %v", got, "test-value")
	}
	if got := getEnv("NON_EXISTENT_VAR", "default"); got != "default" {
		t.Errorf("getEnv() = %v, want %v", got, "default")
	}
}

func TestIsProd(t *testing.T) {
	resetForTesting()
	os.Setenv("enviroment", "prod")
	config, _ := Load()

	if !config.IsProd() {
		t.Error("IsProd() should return true when environment is 'prod'")
	}

	resetForTesting()
	os.Setenv("enviroment", "dev")
	config, _ = Load()

	if config.IsProd() {
		t.Error("IsProd() should return false when environment is not 'prod'")
	}

	os.Unsetenv("enviroment")
}

func TestDefaultValues(t *testing.T) {
	os.Unsetenv("botToken")
	os.Unsetenv("configFile")
	os.Unsetenv("mongodbUrl")
	os.Unsetenv("dbName")
	os.Unsetenv("MQTT_Host")
	os.Unsetenv("MQTT_Port")
	os.Unsetenv("PORT")
	os.Unsetenv("enviroment")

	resetForTesting()
	config, _ := Load()

	if config.ConfigFile != "config.json" {
		t.Errorf("ConfigFile default = %v, want %v", config.ConfigFile, "config.json")
	}
	if config.DBName != "ParangBot" {
		t.Errorf("DBName default = %v, want %v", config.DBName, "ParangBot")
	}
	if config.MQTTPort != "1883" {
		t.Errorf("MQTTPort default = %v, want %v", config.MQTTPort, "1883")
	}
	if config.Port != "3000" {
		t.Errorf("Port default = %v, want %v", config.Port, "3000")
	}
	if config.ArchiveEnabled() {
		t.Error("ArchiveEnabled() should be false without mongodbUrl")
	}
	if config.MQTTEnabled() {
		t.Error("MQTTEnabled() should be false without MQTT_Host")
	}
}
