// Package config loads restclient configuration with Viper.
//
// A YAML file supplies the base values. A .env file and the process
// environment override them: variables carry the RESTCLIENT_ prefix and
// underscores separate path segments, so RESTCLIENT_CLIENT_BASE_URL sets
// client.base_url.
//
// # Usage
//
//	var cfg config.ServiceConfig
//	if err := config.LoadConfig("restclient", &cfg, config.WithConfigFile(path)); err != nil {
//	    return err
//	}
//	cfg.ApplyDefaults()
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package config
