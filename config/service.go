package config

import (
	"github.com/kbukum/restclient/httpclient"
	"github.com/kbukum/restclient/logger"
	"github.com/kbukum/restclient/observability"
	"github.com/kbukum/restclient/validation"
	"github.com/kbukum/restclient/version"
)

// ServiceConfig is the configuration of a program built around one REST
// client. Programs with more settings embed it:
//
//	type MyConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Catalog httpclient.Config `yaml:"catalog" mapstructure:"catalog"`
//	}
type ServiceConfig struct {
	Name        string                     `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string                     `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Version     string                     `yaml:"version" mapstructure:"version"`
	Debug       bool                       `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config              `yaml:"logging" mapstructure:"logging"`
	Client      httpclient.Config          `yaml:"client" mapstructure:"client"`
	Tracing     observability.TracerConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics     observability.MeterConfig  `yaml:"metrics" mapstructure:"metrics"`
}

// ApplyDefaults applies default values to the configuration.
// Embedding structs should call c.ServiceConfig.ApplyDefaults() first.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "restclient"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Version == "" {
		c.Version = version.Get().Version
	}
	if c.Debug && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	c.Logging.ApplyDefaults()

	if c.Client.Name == "" {
		c.Client.Name = c.Name
	}
	c.Client.ApplyDefaults()

	c.Tracing = withTracerDefaults(c.Tracing, c)
	c.Metrics = withMeterDefaults(c.Metrics, c)
}

func withTracerDefaults(t observability.TracerConfig, c *ServiceConfig) observability.TracerConfig {
	d := observability.DefaultTracerConfig(c.Name)
	if t.ServiceName == "" {
		t.ServiceName = d.ServiceName
	}
	if t.ServiceVersion == "" {
		t.ServiceVersion = c.Version
	}
	if t.Environment == "" {
		t.Environment = c.Environment
	}
	if t.Endpoint == "" {
		t.Endpoint = d.Endpoint
	}
	return t
}

func withMeterDefaults(m observability.MeterConfig, c *ServiceConfig) observability.MeterConfig {
	d := observability.DefaultMeterConfig(c.Name)
	if m.ServiceName == "" {
		m.ServiceName = d.ServiceName
	}
	if m.ServiceVersion == "" {
		m.ServiceVersion = c.Version
	}
	if m.Environment == "" {
		m.Environment = c.Environment
	}
	if m.Endpoint == "" {
		m.Endpoint = d.Endpoint
	}
	if m.Interval <= 0 {
		m.Interval = d.Interval
	}
	return m
}

// Validate validates the whole configuration, nested sections included.
func (c *ServiceConfig) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	return c.Client.Validate()
}
