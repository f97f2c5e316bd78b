package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Upload UploadConfig
	OCR    OCRConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// UploadConfig holds multipart upload limits.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// MaxFileSizeBytes returns the upload cap in bytes.
func (u *UploadConfig) MaxFileSizeBytes() int64 {
	return u.MaxFileSizeMB << 20
}

// TesseractConfig holds the OCR engine knobs. They belong to the
// adapter; the parser is configuration-free.
type TesseractConfig struct {
	DataPath string `mapstructure:"datapath"`
	Language string `mapstructure:"language"`
	PSM      int    `mapstructure:"psm"`
}

// OCRConfig groups engine configuration under the ocr.* key space.
type OCRConfig struct {
	Tesseract TesseractConfig `mapstructure:"tesseract"`
}

// Load reads configuration from environment variables with the BILLSCAN_
// prefix. Dotted keys map to underscores, so ocr.tesseract.psm is set
// via BILLSCAN_OCR_TESSERACT_PSM.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BILLSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 10)

	// Tesseract defaults
	v.SetDefault("ocr.tesseract.datapath", "./tessdata")
	v.SetDefault("ocr.tesseract.language", "vie+eng")
	v.SetDefault("ocr.tesseract.psm", 6)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
