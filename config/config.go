package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Database struct {
		Host     string `yaml:"host"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		DBName   string `yaml:"dbname"`
		Port     string `yaml:"port"`
		SSLMode  string `yaml:"sslmode"`
	} `yaml:"database"`
	Server struct {
		Port           int      `yaml:"port"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
	Auth struct {
		Secret  string `yaml:"secret"`
		ExpHour int    `yaml:"exp_hour"`
	} `yaml:"auth"`
	Chat struct {
		APIKey           string `yaml:"api_key"`
		BaseURL          string `yaml:"base_url"`
		Model            string `yaml:"model"`
		MaxContextTokens int    `yaml:"max_context_tokens"`
	} `yaml:"chat"`
	Webhook struct {
		DedupTTLMinutes int `yaml:"dedup_ttl_minutes"`
		DedupSoftCap    int `yaml:"dedup_soft_cap"`
	} `yaml:"webhook"`
}

// GlobalConfig is the global configuration instance
var GlobalConfig Config

// DSN generates the PostgreSQL DSN from database config
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Database.Host,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.Port,
		c.Database.SSLMode,
	)
}

// LoadConfig reads and parses the YAML configuration file into GlobalConfig
func LoadConfig(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, &GlobalConfig); err != nil {
		return err
	}

	if GlobalConfig.Database.Host == "" {
		log.Fatal("database.host is required in config.yaml")
	}
	if GlobalConfig.Database.User == "" {
		log.Fatal("database.user is required in config.yaml")
	}
	if GlobalConfig.Database.Password == "" {
		log.Fatal("database.password is required in config.yaml")
	}
	if GlobalConfig.Database.DBName == "" {
		log.Fatal("database.dbname is required in config.yaml")
	}
	if GlobalConfig.Database.Port == "" {
		log.Fatal("database.port is required in config.yaml")
	}
	if GlobalConfig.Database.SSLMode == "" {
		log.Fatal("database.sslmode is required in config.yaml")
	}
	if GlobalConfig.Server.Port < 1 || GlobalConfig.Server.Port > 65535 {
		log.Fatal("server.port must be between 1 and 65535")
	}
	if GlobalConfig.Auth.Secret == "" {
		log.Fatal("auth.secret is required in config.yaml")
	}
	if GlobalConfig.Auth.ExpHour == 0 {
		GlobalConfig.Auth.ExpHour = 24
	}
	if GlobalConfig.Chat.APIKey == "" {
		log.Fatal("chat.api_key is required in config.yaml")
	}
	if GlobalConfig.Chat.Model == "" {
		log.Fatal("chat.model is required in config.yaml")
	}
	if GlobalConfig.Chat.MaxContextTokens == 0 {
		GlobalConfig.Chat.MaxContextTokens = 4096
	}

	return nil
}
