package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppName  string
	Env      string // DEV (default), TEST, QA, PROD
	Build    string
	Debug    bool
	TestMode bool

	// SchoolDayStart is the wall clock ("15:04" layout) at which a grade's
	// first period starts when a timetable is built.
	SchoolDayStart string

	// NotificationDays caps how many attendance/diary days a single parent
	// notification reports on, most recent first.
	NotificationDays int

	AdminToken string

	DefaultFromEmail mail.Address
	SendgridApiKey   string
	RollbarToken     string

	Server struct {
		Addr            string
		ShutdownTimeout time.Duration
	}
}

func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Shule")
	v.SetDefault("build", "dev")
	v.SetDefault("dayStart", "09:00")
	v.SetDefault("notificationDays", 7)
	v.SetDefault("adminToken", "")
	v.SetDefault("defaultFromName", "School Updates")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("serverAddr", ":8000")
	v.SetDefault("shutdownTimeout", 5*time.Second)

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		AppName:          v.GetString("appName"),
		Env:              env,
		Build:            v.GetString("build"),
		Debug:            v.GetBool("debug"),
		TestMode:         env == "TEST",
		SchoolDayStart:   v.GetString("dayStart"),
		NotificationDays: v.GetInt("notificationDays"),
		AdminToken:       v.GetString("adminToken"),
		DefaultFromEmail: mail.Address{
			Name:    v.GetString("defaultFromName"),
			Address: v.GetString("defaultFromEmail"),
		},
		SendgridApiKey: v.GetString("sendgridApiKey"),
		RollbarToken:   v.GetString("rollbarToken"),
	}
	conf.Server.Addr = v.GetString("serverAddr")
	conf.Server.ShutdownTimeout = v.GetDuration("shutdownTimeout")
	return conf
}
