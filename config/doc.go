// Package config loads service configuration.
//
// It uses Viper to read a config.yml found in the standard locations
// (./cmd/<service>/config.yml, ./config/config.yml, ./config.yml), loads an
// optional .env file with godotenv, and binds every environment variable to
// the nested key variants it could address, so ELEVENLABS_API_KEY populates
// elevenlabs.api_key.
//
// # Usage
//
//	var cfg MyConfig
//	err := config.LoadConfig("scribeproxy", &cfg, config.WithEnvBinding("http.port", "PORT"))
package config
