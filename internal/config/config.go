// Package config handles configuration loading for the ONVIF simulator.
//
// Configuration is loaded from a YAML file with support for environment
// variable expansion (${VAR} or $VAR syntax), so credentials can be
// injected at runtime.
//
// # Configuration Sections
//
//   - server: HTTP server settings (port, base path)
//   - device: device description strings returned by GetDeviceInformation
//   - media: media profiles and the RTSP base URI for GetStreamUri
//   - users: credential store (name, password, role)
//   - observability: Prometheus metrics endpoint
//
// # Example Configuration
//
//	server:
//	  port: 8000
//	  basePath: /onvif
//
//	device:
//	  manufacturer: ONVIF Server
//	  model: Go Camera
//
//	users:
//	  - name: admin
//	    password: ${ONVIF_ADMIN_PASSWORD}
//	    role: Administrator
//
// See [Load] for loading configuration from a file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Device  DeviceConfig  `yaml:"device"`
	Media   MediaConfig   `yaml:"media"`
	Users   []User        `yaml:"users"`
	Metrics MetricsConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port     int    `yaml:"port"`
	BasePath string `yaml:"basePath"`
}

// DeviceConfig holds the static device description
type DeviceConfig struct {
	Manufacturer    string `yaml:"manufacturer"`
	Model           string `yaml:"model"`
	FirmwareVersion string `yaml:"firmwareVersion"`
	SerialNumber    string `yaml:"serialNumber"`
	HardwareID      string `yaml:"hardwareId"`
}

// MediaConfig holds media profiles and streaming settings
type MediaConfig struct {
	// RTSPBase is the stream URI prefix; the profile token is appended.
	RTSPBase string    `yaml:"rtspBase"`
	Profiles []Profile `yaml:"profiles"`
}

// Profile describes a media profile
type Profile struct {
	Token string        `yaml:"token"`
	Name  string        `yaml:"name"`
	Video VideoEncoder  `yaml:"video"`
	Audio *AudioEncoder `yaml:"audio,omitempty"`
}

// VideoEncoder holds video encoder settings for a profile
type VideoEncoder struct {
	Encoding  string `yaml:"encoding"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Framerate int    `yaml:"framerate"`
	Bitrate   int    `yaml:"bitrate"`
}

// AudioEncoder holds audio encoder settings for a profile
type AudioEncoder struct {
	Encoding   string `yaml:"encoding"`
	Bitrate    int    `yaml:"bitrate"`
	SampleRate int    `yaml:"sampleRate"`
}

// User is a credential store entry
type User struct {
	Name     string `yaml:"name"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

// MetricsConfig holds observability settings
type MetricsConfig struct {
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills in unset fields with the built-in defaults.
func (c *Config) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if c.Server.BasePath == "" {
		c.Server.BasePath = "/onvif"
	}
	if c.Device.Manufacturer == "" {
		c.Device.Manufacturer = "ONVIF Server"
	}
	if c.Device.Model == "" {
		c.Device.Model = "Go Camera"
	}
	if c.Device.FirmwareVersion == "" {
		c.Device.FirmwareVersion = "1.0.0"
	}
	if c.Device.SerialNumber == "" {
		c.Device.SerialNumber = "ONVIF-001"
	}
	if c.Device.HardwareID == "" {
		c.Device.HardwareID = "HW-001"
	}
	if c.Media.RTSPBase == "" {
		c.Media.RTSPBase = "rtsp://localhost:554/stream"
	}
	if len(c.Media.Profiles) == 0 {
		c.Media.Profiles = []Profile{
			{
				Token: "Profile_1",
				Name:  "Main Stream",
				Video: VideoEncoder{Encoding: "H264", Width: 1920, Height: 1080, Framerate: 30, Bitrate: 4000},
				Audio: &AudioEncoder{Encoding: "AAC", Bitrate: 128, SampleRate: 48000},
			},
			{
				Token: "Profile_2",
				Name:  "Sub Stream",
				Video: VideoEncoder{Encoding: "H264", Width: 640, Height: 480, Framerate: 15, Bitrate: 1000},
			},
		}
	}
	if len(c.Users) == 0 {
		c.Users = []User{
			{Name: "admin", Password: "admin123", Role: "Administrator"},
			{Name: "user", Password: "user123", Role: "User"},
		}
	}
	if c.Metrics.Metrics.Path == "" {
		c.Metrics.Metrics.Path = "/metrics"
	}
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	seen := make(map[string]bool)
	for i, u := range c.Users {
		if u.Name == "" {
			return fmt.Errorf("users[%d].name is required", i)
		}
		if u.Password == "" {
			return fmt.Errorf("user %q has no password", u.Name)
		}
		if seen[u.Name] {
			return fmt.Errorf("duplicate user %q", u.Name)
		}
		seen[u.Name] = true
		switch u.Role {
		case "", "Administrator", "User":
		default:
			return fmt.Errorf("user %q has unknown role %q", u.Name, u.Role)
		}
	}
	tokens := make(map[string]bool)
	for i, p := range c.Media.Profiles {
		if p.Token == "" {
			return fmt.Errorf("media.profiles[%d].token is required", i)
		}
		if tokens[p.Token] {
			return fmt.Errorf("duplicate media profile token %q", p.Token)
		}
		tokens[p.Token] = true
	}
	return nil
}
