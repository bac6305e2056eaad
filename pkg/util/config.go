package util

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type GridConfig struct {
	MinLat float64 `mapstructure:"min_lat"`
	MinLon float64 `mapstructure:"min_lon"`
	MaxLat float64 `mapstructure:"max_lat"`
	MaxLon float64 `mapstructure:"max_lon"`
	Rows   int     `mapstructure:"rows" validate:"gte=1"`
	Cols   int     `mapstructure:"cols" validate:"gte=1"`
}

// Config is the explicit configuration value handed to the pipeline
// constructor. Nothing in the pipeline reads viper directly.
type Config struct {
	PbfPath         string     `mapstructure:"pbf_path" validate:"required"`
	Profile         string     `mapstructure:"profile" validate:"oneof=bicycle car"`
	SrtmPath        string     `mapstructure:"srtm_path" validate:"required"`
	OutputPath      string     `mapstructure:"output_path" validate:"required"`
	Compress        bool       `mapstructure:"compress"`
	Metrics         []string   `mapstructure:"metrics" validate:"min=1"`
	InternalMetrics []string   `mapstructure:"internal_metrics"`
	Grid            GridConfig `mapstructure:"grid"`
	RandomSeed      uint64     `mapstructure:"random_seed"`
}

func ReadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(configPath)

	v.SetDefault("compress", false)
	v.SetDefault("profile", "bicycle")
	v.SetDefault("metrics", []string{"distance", "height_ascent", "unsuitability"})
	v.SetDefault("grid.rows", 100)
	v.SetDefault("grid.cols", 100)
	v.SetDefault("grid.min_lat", -90.0)
	v.SetDefault("grid.min_lon", -180.0)
	v.SetDefault("grid.max_lat", 90.0)
	v.SetDefault("grid.max_lon", 180.0)
	v.SetDefault("random_seed", 1)

	err := v.ReadInConfig()
	if err != nil {
		return nil, fmt.Errorf("fatal error config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("fatal error config file: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
