package core

import (
	"fmt"
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var Conf *Config

type (
	DatabaseConfig struct {
		Host       string
		Port       int
		User       string
		Password   string
		Name       string
		DisableTLS bool
	}

	StoreConfig struct {
		Backend string // "file" or "postgres"
		Path    string // file backend: path of the classroom document
		Key     string // postgres backend: well-known document key
	}

	GradingConfig struct {
		URL     string
		Timeout time.Duration
	}

	ServerConfig struct {
		Host string
	}

	Config struct {
		Debug    bool
		TestMode bool
		Env      string
		AppName  string
		Build    string
		WorkDir  string

		BusChannel       string
		DefaultFromEmail mail.Address
		SendgridApiKey   string
		RollbarToken     string

		Server   ServerConfig
		Database DatabaseConfig
		Store    StoreConfig
		Grading  GradingConfig
	}
)

// DSN returns the `postgres://` connection string shared by the document
// store and the LISTEN/NOTIFY change bus.
func (c DatabaseConfig) DSN() string {
	sslMode := "require"
	if c.DisableTLS {
		sslMode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, sslMode)
}

func init() {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Darasa")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("busChannel", "darasa_changed")
	v.SetDefault("storeBackend", "file")
	v.SetDefault("storePath", "darasa.json")
	v.SetDefault("storeKey", "classrooms")
	v.SetDefault("gradingURL", "http://localhost:8090")
	v.SetDefault("gradingTimeout", 30*time.Second)
	v.SetDefault("dbHost", "localhost")
	v.SetDefault("dbPort", 5432)
	v.SetDefault("dbUser", "darasa")
	v.SetDefault("dbName", "darasa")
	v.SetDefault("dbDisableTLS", true)

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	var testMode bool
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		testMode = true
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	Conf = &Config{
		Debug:            v.GetBool("debug"),
		TestMode:         testMode,
		Env:              env,
		AppName:          v.GetString("appName"),
		Build:            v.GetString("build"),
		WorkDir:          Getwd(),
		BusChannel:       v.GetString("busChannel"),
		DefaultFromEmail: mail.Address{Name: v.GetString("appName"), Address: v.GetString("defaultFromEmail")},
		SendgridApiKey:   v.GetString("sendgridApiKey"),
		RollbarToken:     v.GetString("rollbarToken"),
		Server:           ServerConfig{Host: v.GetString("serverHost")},
		Database: DatabaseConfig{
			Host:       v.GetString("dbHost"),
			Port:       v.GetInt("dbPort"),
			User:       v.GetString("dbUser"),
			Password:   v.GetString("dbPassword"),
			Name:       v.GetString("dbName"),
			DisableTLS: v.GetBool("dbDisableTLS"),
		},
		Store: StoreConfig{
			Backend: v.GetString("storeBackend"),
			Path:    v.GetString("storePath"),
			Key:     v.GetString("storeKey"),
		},
		Grading: GradingConfig{
			URL:     v.GetString("gradingURL"),
			Timeout: v.GetDuration("gradingTimeout"),
		},
	}
}
