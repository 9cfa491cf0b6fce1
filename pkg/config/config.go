package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config groups the application configuration (read through Viper from env and optional files).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Log     LogConfig
	PDF     PDFConfig
	Storage StorageConfig
	Labels  LabelConfig
	Items   ItemMessageConfig
}

// AppConfig general application settings.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig HTTP server settings.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr returns the listen address (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig logger settings.
type LogConfig struct {
	Level string
}

// Renderer names accepted by PDF_RENDERER.
const (
	RendererMaroto   = "maroto"
	RendererChromedp = "chromedp"
)

// PDFConfig document rendering settings. QuantityUnit and CurrencySymbol are handed
// to the renderer as-is.
type PDFConfig struct {
	QuantityUnit    string
	CurrencySymbol  string
	Renderer        string
	RenderTimeout   time.Duration
	ChromeRemoteURL string // empty = launch a local headless Chrome
	ChromeNoSandbox bool
}

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageFS = "fs"
	StorageS3 = "s3"
)

// StorageConfig document store settings.
type StorageConfig struct {
	Driver   string
	Path     string        // root directory for the fs driver
	CacheTTL time.Duration // 0 disables the read cache
	S3       S3Config
}

// S3Config settings for the s3 driver. Empty credentials fall back to the default AWS chain.
type S3Config struct {
	Bucket          string
	Prefix          string
	Region          string
	Endpoint        string // optional, for S3-compatible services (MinIO, LocalStack)
	AccessKeyID     string
	SecretAccessKey string
}

// LabelConfig controls how field identifiers are turned into labels in error messages.
type LabelConfig struct {
	Abbreviations []string
}

// ItemMessageConfig overrides the line-item failure messages. Empty values keep the
// built-in message.
type ItemMessageConfig struct {
	Empty           string // ITEM_EMPTY_MESSAGE
	InvalidQuantity string // ITEM_QUANTITY_MESSAGE
	InvalidRate     string // ITEM_RATE_MESSAGE
	MissingAmount   string // ITEM_AMOUNT_MESSAGE
	AmountMismatch  string // ITEM_AMOUNT_MISMATCH_MESSAGE
}

// Load reads the configuration from environment variables (and optionally from a file).
// Environment variables win. Expected names: APP_ENV, HTTP_PORT, PDF_STORAGE_PATH, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Optional config file (.env or config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // missing file is fine

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "pdf-generator"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		PDF: PDFConfig{
			QuantityUnit:    getString(v, "ITEM_QUANTITY_UNIT", "Nos"),
			CurrencySymbol:  getString(v, "CURRENCY_FORMAT", "INR"),
			Renderer:        strings.ToLower(getString(v, "PDF_RENDERER", RendererMaroto)),
			RenderTimeout:   time.Duration(getInt(v, "PDF_RENDER_TIMEOUT_SECONDS", 30)) * time.Second,
			ChromeRemoteURL: getString(v, "CHROME_REMOTE_URL", ""),
			ChromeNoSandbox: getBool(v, "CHROME_NO_SANDBOX", false),
		},
		Storage: StorageConfig{
			Driver:   strings.ToLower(getString(v, "STORAGE_DRIVER", StorageFS)),
			Path:     getString(v, "PDF_STORAGE_PATH", "./pdfs"),
			CacheTTL: time.Duration(getInt(v, "STORAGE_CACHE_TTL_MINUTES", 0)) * time.Minute,
			S3: S3Config{
				Bucket:          getString(v, "S3_BUCKET", ""),
				Prefix:          getString(v, "S3_PREFIX", "pdfs"),
				Region:          getString(v, "S3_REGION", "us-east-1"),
				Endpoint:        getString(v, "S3_ENDPOINT", ""),
				AccessKeyID:     getString(v, "S3_ACCESS_KEY_ID", ""),
				SecretAccessKey: getString(v, "S3_SECRET_ACCESS_KEY", ""),
			},
		},
		Labels: LabelConfig{
			Abbreviations: getList(v, "FIELD_ABBREVIATIONS", []string{"gstin"}),
		},
		Items: ItemMessageConfig{
			Empty:           getString(v, "ITEM_EMPTY_MESSAGE", ""),
			InvalidQuantity: getString(v, "ITEM_QUANTITY_MESSAGE", ""),
			InvalidRate:     getString(v, "ITEM_RATE_MESSAGE", ""),
			MissingAmount:   getString(v, "ITEM_AMOUNT_MESSAGE", ""),
			AmountMismatch:  getString(v, "ITEM_AMOUNT_MISMATCH_MESSAGE", ""),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.PDF.Renderer {
	case RendererMaroto, RendererChromedp:
	default:
		return fmt.Errorf("config: PDF_RENDERER %q is not supported (maroto, chromedp)", c.PDF.Renderer)
	}
	switch c.Storage.Driver {
	case StorageFS:
		if c.Storage.Path == "" {
			return fmt.Errorf("config: PDF_STORAGE_PATH is required for the fs driver")
		}
	case StorageS3:
		if c.Storage.S3.Bucket == "" {
			return fmt.Errorf("config: S3_BUCKET is required for the s3 driver")
		}
	default:
		return fmt.Errorf("config: STORAGE_DRIVER %q is not supported (fs, s3)", c.Storage.Driver)
	}
	if c.PDF.RenderTimeout <= 0 {
		return fmt.Errorf("config: PDF_RENDER_TIMEOUT_SECONDS must be positive")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}

// getList reads a comma-separated value.
func getList(v *viper.Viper, key string, def []string) []string {
	if !v.IsSet(key) {
		return def
	}
	var out []string
	for _, p := range strings.Split(v.GetString(key), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
