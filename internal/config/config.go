package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/UnknownOlympus/iris/internal/models"
	"github.com/spf13/viper"
)

// Supported employee list sources.
const (
	SourceFile     = "file"
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
)

var ErrInvalidSource = errors.New("invalid source configuration")

type Config struct {
	Env       string          // Env is the current environment: local, development, production.
	HTTP      HTTPConfig      // HTTP holds the web server configuration.
	Source    SourceConfig    // Source describes where the employee list is loaded from.
	Postgres  PostgresConfig  // Postgres holds the database configuration for the postgres source.
	Directory DirectoryConfig // Directory holds presentation settings.
	Offices   models.Offices  // Offices is the location key to contact details mapping.
}

// HTTPConfig struct holds the listen settings of the web server.
type HTTPConfig struct {
	Port            int           // Port is the TCP port of the web server.
	ShutdownTimeout time.Duration // ShutdownTimeout bounds the graceful shutdown.
}

// SourceConfig struct holds the location of the employee list.
type SourceConfig struct {
	Kind    string        // Kind is one of file, http, postgres.
	Path    string        // Path is the JSON file used by the file source.
	URL     string        // URL is the JSON document used by the http source.
	Timeout time.Duration // Timeout bounds the single load attempt.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Dbname   string // Dbname is the name of the database.
}

// DirectoryConfig struct holds presentation settings.
type DirectoryConfig struct {
	Location    string // Location is selected before the first user interaction.
	EmailDomain string // EmailDomain is appended to firstname.lastname.
}

type officeEntry struct {
	Key         string `mapstructure:"key"`
	Address     string `mapstructure:"address"`
	PhoneNumber string `mapstructure:"phone_number"`
}

// DefaultOffices returns the built-in office table.
func DefaultOffices() models.Offices {
	return models.Offices{
		"Location 1": {Address: "123 Main St, City, State, ZIP", PhoneNumber: "(123) 456-7890"},
		"Location 2": {Address: "456 Elm St, City, State, ZIP", PhoneNumber: "(123) 456-7891"},
		"Location 3": {Address: "789 Oak St, City, State, ZIP", PhoneNumber: "(123) 456-7892"},
		"Location 4": {Address: "101 Pine St, City, State, ZIP", PhoneNumber: "(123) 456-7893"},
		"Location 5": {Address: "202 Maple St, City, State, ZIP", PhoneNumber: "(123) 456-7894"},
		"Location 6": {Address: "303 Birch St, City, State, ZIP", PhoneNumber: "(123) 456-7895"},
		"Location 7": {Address: "404 Cedar St, City, State, ZIP", PhoneNumber: "(123) 456-7896"},
		"Location 8": {Address: "505 Spruce St, City, State, ZIP", PhoneNumber: "(123) 456-7897"},
		"Location 9": {Address: "606 Willow St, City, State, ZIP", PhoneNumber: "(123) 456-7898"},
	}
}

// MustLoad loads the configuration from the YAML file named by CONFIG_PATH and panics on failure.
// Without CONFIG_PATH only defaults and IRIS_* environment variables are used.
func MustLoad() *Config {
	cfg, err := Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		panic("config error: " + err.Error())
	}

	return cfg
}

// Load reads configPath (optional) and IRIS_* environment overrides.
func Load(configPath string) (*Config, error) {
	vpr := viper.New()

	defShutdownSeconds := 10
	defSourceSeconds := 10
	defPort := 8080

	vpr.SetDefault("env", "local")
	vpr.SetDefault("http.port", defPort)
	vpr.SetDefault("http.shutdown_timeout", time.Duration(defShutdownSeconds)*time.Second)
	vpr.SetDefault("source.kind", SourceFile)
	vpr.SetDefault("source.path", "data/employees.json")
	vpr.SetDefault("source.timeout", time.Duration(defSourceSeconds)*time.Second)
	vpr.SetDefault("postgres.port", "5432")
	vpr.SetDefault("directory.email_domain", "company.com")

	vpr.SetEnvPrefix("IRIS")
	vpr.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vpr.AutomaticEnv()

	if configPath != "" {
		// check if file exists
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file does not exist: %s", configPath)
		}

		vpr.SetConfigFile(configPath)
		if filepath.Ext(configPath) == "" {
			vpr.SetConfigType("yaml")
		}
		if err := vpr.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	offices, err := loadOffices(vpr)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Env: vpr.GetString("env"),
		HTTP: HTTPConfig{
			Port:            vpr.GetInt("http.port"),
			ShutdownTimeout: vpr.GetDuration("http.shutdown_timeout"),
		},
		Source: SourceConfig{
			Kind:    strings.ToLower(vpr.GetString("source.kind")),
			Path:    vpr.GetString("source.path"),
			URL:     vpr.GetString("source.url"),
			Timeout: vpr.GetDuration("source.timeout"),
		},
		Postgres: PostgresConfig{
			Host:     vpr.GetString("postgres.host"),
			Port:     vpr.GetString("postgres.port"),
			User:     vpr.GetString("postgres.user"),
			Password: vpr.GetString("postgres.password"),
			Dbname:   vpr.GetString("postgres.db_name"),
		},
		Directory: DirectoryConfig{
			Location:    vpr.GetString("directory.location"),
			EmailDomain: vpr.GetString("directory.email_domain"),
		},
		Offices: offices,
	}

	if err = cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadOffices reads the offices list. Keys are kept as a list field because
// viper folds map keys to lower case.
func loadOffices(vpr *viper.Viper) (models.Offices, error) {
	if !vpr.IsSet("offices") {
		return DefaultOffices(), nil
	}

	var entries []officeEntry
	if err := vpr.UnmarshalKey("offices", &entries); err != nil {
		return nil, fmt.Errorf("failed to decode offices: %w", err)
	}

	offices := make(models.Offices, len(entries))
	for _, entry := range entries {
		if entry.Key == "" {
			return nil, errors.New("failed to decode offices: office without key")
		}
		offices[entry.Key] = models.Office{Address: entry.Address, PhoneNumber: entry.PhoneNumber}
	}

	return offices, nil
}

func (c *Config) validate() error {
	switch c.Source.Kind {
	case SourceFile:
		if c.Source.Path == "" {
			return fmt.Errorf("%w: source.path is empty", ErrInvalidSource)
		}
	case SourceHTTP:
		if c.Source.URL == "" {
			return fmt.Errorf("%w: source.url is empty", ErrInvalidSource)
		}
	case SourcePostgres:
		if c.Postgres.Host == "" || c.Postgres.Dbname == "" {
			return fmt.Errorf("%w: postgres.host and postgres.db_name are required", ErrInvalidSource)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidSource, c.Source.Kind)
	}

	return nil
}
