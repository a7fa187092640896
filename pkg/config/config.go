package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
	File     FileConfig     `mapstructure:"file"`
	Code     CodeConfig     `mapstructure:"code"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

type LogConfig struct {
	Level          string `mapstructure:"level"`
	ProductionMode bool   `mapstructure:"production_mode"`
}

type FileConfig struct {
	StoragePath string `mapstructure:"storage_path"`
}

type CodeConfig struct {
	// 生成的唯一码撞库时的重试次数
	MaxAttempts int `mapstructure:"max_attempts"`
}

var GlobalConfig Config

func Init() error {
	return load("config")
}

// 测试用的配置文件
func InitTest() error {
	return load("config.test")
}

func load(name string) error {
	// 获取项目根目录
	_, b, _, _ := runtime.Caller(0)
	basepath := filepath.Dir(filepath.Dir(filepath.Dir(b)))

	viper.SetConfigName(name)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(filepath.Join(basepath, "config"))

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := viper.Unmarshal(&GlobalConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if GlobalConfig.Code.MaxAttempts <= 0 {
		GlobalConfig.Code.MaxAttempts = 3
	}

	return nil
}
