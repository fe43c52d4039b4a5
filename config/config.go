package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	AdminKey          string `mapstructure:"ADMIN_KEY"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Scheduling.
	ServiceTimezone  string `mapstructure:"SERVICE_TIMEZONE"`
	BusinessOpen     string `mapstructure:"BUSINESS_OPEN"`
	BusinessClose    string `mapstructure:"BUSINESS_CLOSE"`
	SlotIncrementMin int    `mapstructure:"SLOT_INCREMENT_MIN"`
	BufferMin        int    `mapstructure:"BUFFER_MIN"`
	ClosedWeekdays   string `mapstructure:"CLOSED_WEEKDAYS"`
	DefaultDuration  int    `mapstructure:"DEFAULT_DURATION_MIN"`

	// Google Calendar.
	CalendarID            string `mapstructure:"CALENDAR_ID"`
	GoogleCredentialsFile string `mapstructure:"GOOGLE_CREDENTIALS_FILE"`
	CalendarTimeoutSec    int    `mapstructure:"CALENDAR_TIMEOUT_SEC"`
	StoreTimeoutSec       int    `mapstructure:"STORE_TIMEOUT_SEC"`

	// Cloudinary.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
	CloudinaryFolder    string `mapstructure:"CLOUDINARY_FOLDER"`

	// Outgoing mail.
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     string `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	MailFrom     string `mapstructure:"MAIL_FROM"`
	OwnerEmail   string `mapstructure:"OWNER_EMAIL"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	clampTimeouts(&AppConfig)
}

// defaultSourceTimeoutSec applies when a busy-source timeout is zero or negative.
const defaultSourceTimeoutSec = 5

// clampTimeouts replaces non-positive busy-source timeouts; a source must never run unbounded.
func clampTimeouts(c *Config) {
	if c.CalendarTimeoutSec <= 0 {
		log.Printf("CALENDAR_TIMEOUT_SEC=%d is not positive, using %d", c.CalendarTimeoutSec, defaultSourceTimeoutSec)
		c.CalendarTimeoutSec = defaultSourceTimeoutSec
	}
	if c.StoreTimeoutSec <= 0 {
		log.Printf("STORE_TIMEOUT_SEC=%d is not positive, using %d", c.StoreTimeoutSec, defaultSourceTimeoutSec)
		c.StoreTimeoutSec = defaultSourceTimeoutSec
	}
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("ADMIN_KEY", "")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "detailing")

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 1)

	v.SetDefault("SERVICE_TIMEZONE", "America/Halifax")
	v.SetDefault("BUSINESS_OPEN", "08:00")
	v.SetDefault("BUSINESS_CLOSE", "18:00")
	v.SetDefault("SLOT_INCREMENT_MIN", 30)
	v.SetDefault("BUFFER_MIN", 30)
	v.SetDefault("CLOSED_WEEKDAYS", "sunday,monday")
	v.SetDefault("DEFAULT_DURATION_MIN", 60)

	v.SetDefault("CALENDAR_ID", "primary")
	v.SetDefault("GOOGLE_CREDENTIALS_FILE", "")
	v.SetDefault("CALENDAR_TIMEOUT_SEC", defaultSourceTimeoutSec)
	v.SetDefault("STORE_TIMEOUT_SEC", defaultSourceTimeoutSec)

	v.SetDefault("CLOUDINARY_FOLDER", "detailing/services")

	v.SetDefault("SMTP_HOST", "localhost")
	v.SetDefault("SMTP_PORT", "1025")
	v.SetDefault("MAIL_FROM", "bookings@detailing.local")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
