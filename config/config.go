// Package config is the shared configuration for the deck generator and
// the preview server, read from a YAML file and the environment.
package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Data   DataConfig   `yaml:"data"`
	Output OutputConfig `yaml:"output"`
	Audio  AudioConfig  `yaml:"audio"`
	Image  ImageConfig  `yaml:"image"`
	Web    WebConfig    `yaml:"web"`
	Log    LogConfig    `yaml:"log"`
}

// DataConfig points at the source material: the graded vocabulary lists
// and the dictionary dump.
type DataConfig struct {
	Dir      string `yaml:"dir"       env:"DATA_DIR"      env-default:"original_data"`
	Dict     string `yaml:"dict"      env:"DATA_DICT"     env-default:"original_data/jmdict-eng-3.6.1.zip"`
	CacheDir string `yaml:"cache_dir" env:"DATA_CACHE_DIR" env-default:".cache"`
}

// OutputConfig holds where generated artifacts land.
type OutputConfig struct {
	Dir string `yaml:"dir" env:"OUTPUT_DIR" env-default:"generated"`
}

// AudioConfig holds the WaniKani pronunciation settings.
type AudioConfig struct {
	Dir       string        `yaml:"dir"        env:"AUDIO_DIR"        env-default:"original_data/wanikani"`
	TokenPath string        `yaml:"token_path" env:"AUDIO_TOKEN_PATH" env-default:"wanikani_token"`
	CachePath string        `yaml:"cache_path" env:"AUDIO_CACHE_PATH" env-default:".cache/wanikani_vocab.json"`
	Delay     time.Duration `yaml:"delay"      env:"AUDIO_DELAY"      env-default:"1s"`
}

// ImageConfig holds card image rendering settings. The font must be able
// to render Japanese.
type ImageConfig struct {
	FontPath string `yaml:"font_path" env:"IMAGE_FONT_PATH"`
	Height   int    `yaml:"height"    env:"IMAGE_HEIGHT" env-default:"300"`
}

// WebConfig holds the preview server settings.
type WebConfig struct {
	Addr     string `yaml:"addr"      env:"WEB_ADDR"      env-default:":8080"`
	CacheDir string `yaml:"cache_dir" env:"WEB_CACHE_DIR"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}
