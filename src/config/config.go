package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Service    ServiceConfig              `mapstructure:"service"`
	Databases  DatabasesConfig            `mapstructure:"databases"`
	Auth       AuthConfig                 `mapstructure:"auth"`
	Secrets    SecretsConfig              `mapstructure:"secrets"`
	Reminders  RemindersConfig            `mapstructure:"reminders"`
	AssetCodes map[string]AssetCodeConfig `mapstructure:"assetCodes"`
	Reports    ReportsConfig              `mapstructure:"reports"`
	Uploads    UploadsConfig              `mapstructure:"uploads"`
	Dashboard  DashboardConfig            `mapstructure:"dashboard"`
	Logging    LoggingConfig              `mapstructure:"logging"`
}

type ServiceType string

const (
	API    ServiceType = "API"
	WORKER ServiceType = "WORKER"
)

type ServiceConfig struct {
	Type     ServiceType `mapstructure:"type"`
	Port     string      `mapstructure:"port"`
	Timezone string      `mapstructure:"timezone"`
}

type DatabasesConfig struct {
	SQL   SQLConfig   `mapstructure:"sql"`
	Redis RedisConfig `mapstructure:"redis"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Driver           string `mapstructure:"driver"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
	MaxConns         int32  `mapstructure:"maxConns"`
	MinConns         int32  `mapstructure:"minConns"`
}

// DSN returns the connection string, building it from the discrete fields when
// no explicit connection string is configured.
func (c SQLConfig) DSN() string {
	if c.ConnectionString != "" {
		return c.ConnectionString
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.Host, c.Username, c.Password, c.Database, c.Port)
}

type RedisConfig struct {
	Host      string `mapstructure:"host"`
	Port      string `mapstructure:"port"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	Database  int    `mapstructure:"database"`
	TLS       bool   `mapstructure:"tls"`
	KeyPrefix string `mapstructure:"keyPrefix"`
}

type AuthConfig struct {
	JWTSecret     string `mapstructure:"jwtSecret"`
	TokenTTLHours int    `mapstructure:"tokenTTLHours"`
}

type SecretsConfig struct {
	AWSRegion        string `mapstructure:"awsRegion"`
	JWTSecretID      string `mapstructure:"jwtSecretId"`
	DBPasswordSecret string `mapstructure:"dbPasswordSecretId"`
}

type RemindersConfig struct {
	// Moves a recurring month/day that already elapsed this year into next year.
	RollElapsedToNextYear bool   `mapstructure:"rollElapsedToNextYear"`
	STNKIntervalMonths    int    `mapstructure:"stnkIntervalMonths"`
	KIRIntervalMonths     int    `mapstructure:"kirIntervalMonths"`
	ScanCron              string `mapstructure:"scanCron"`
	LeadDays              int    `mapstructure:"leadDays"`
}

type AssetCodeConfig struct {
	Prefix    string `mapstructure:"prefix"`
	PadLength int    `mapstructure:"padLength"`
	MaxNumber int64  `mapstructure:"maxNumber"`
}

type ReportsConfig struct {
	Engine       string `mapstructure:"engine"` // ROD or WKHTMLTOPDF
	TemplatesDir string `mapstructure:"templatesDir"`
	ChromeBin    string `mapstructure:"chromeBin"`
	TimeoutSecs  int    `mapstructure:"timeoutSecs"`
}

type UploadsConfig struct {
	Dir         string `mapstructure:"dir"`
	MaxUploadMB int64  `mapstructure:"maxUploadMB"`
}

type DashboardConfig struct {
	CacheTTLSeconds int `mapstructure:"cacheTTLSeconds"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	ToFile   bool   `mapstructure:"toFile"`
	FilePath string `mapstructure:"filePath"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service.type", string(API))
	v.SetDefault("service.port", "8000")
	v.SetDefault("service.timezone", "Asia/Jakarta")
	v.SetDefault("databases.sql.maxConns", 10)
	v.SetDefault("databases.sql.minConns", 1)
	v.SetDefault("databases.redis.keyPrefix", "fleet:")
	v.SetDefault("auth.tokenTTLHours", 24)
	v.SetDefault("reminders.stnkIntervalMonths", 12)
	v.SetDefault("reminders.kirIntervalMonths", 6)
	v.SetDefault("reminders.scanCron", "0 7 * * *")
	v.SetDefault("reminders.leadDays", 30)
	v.SetDefault("reports.engine", "ROD")
	v.SetDefault("reports.templatesDir", "./templates")
	v.SetDefault("reports.timeoutSecs", 120)
	v.SetDefault("uploads.dir", "./storage/uploads")
	v.SetDefault("uploads.maxUploadMB", 10)
	v.SetDefault("dashboard.cacheTTLSeconds", 60)
	v.SetDefault("logging.level", "info")
	v.SetDefault("assetCodes", map[string]interface{}{
		"VEHICLE":     map[string]interface{}{"prefix": "TRK-", "padLength": 7, "maxNumber": 99999999},
		"CHASSIS":     map[string]interface{}{"prefix": "CHS-", "padLength": 7, "maxNumber": 99999999},
		"EQUIPMENT":   map[string]interface{}{"prefix": "EQP-", "padLength": 7, "maxNumber": 99999999},
		"MAINTENANCE": map[string]interface{}{"prefix": "MNT-", "padLength": 7, "maxNumber": 99999999},
	})
}

// LoadConfig reads appsettings.yaml (or appsettings.<env>.yaml when env is set)
// from path. Values from a .env file and the process environment override the
// file, using FLEET_ prefixed, underscore separated keys.
func LoadConfig(path string, env string) (*Config, error) {
	var cfg Config

	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AddConfigPath(path)
	if env != "" {
		v.SetConfigName("appsettings." + env)
	} else {
		v.SetConfigName("appsettings")
	}
	v.SetConfigType("yaml")
	v.SetEnvPrefix("FLEET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}
	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects sequential code settings that would let a sequence run
// unbounded or produce unpadded codes.
func (c *Config) Validate() error {
	for category, code := range c.AssetCodes {
		if code.Prefix == "" {
			return fmt.Errorf("assetCodes.%s: prefix is required", category)
		}
		if code.PadLength <= 0 {
			return fmt.Errorf("assetCodes.%s: padLength must be positive, got %d", category, code.PadLength)
		}
		if code.MaxNumber <= 0 {
			return fmt.Errorf("assetCodes.%s: maxNumber must be positive, got %d", category, code.MaxNumber)
		}
	}
	return nil
}

// AssetCode returns the code configuration for an asset category.
func (c *Config) AssetCode(category string) (AssetCodeConfig, error) {
	code, ok := c.AssetCodes[strings.ToLower(category)]
	if !ok {
		code, ok = c.AssetCodes[category]
	}
	if !ok {
		return AssetCodeConfig{}, fmt.Errorf("no asset code configuration for %s", category)
	}
	return code, nil
}
