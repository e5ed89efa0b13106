package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Remote marketplace API.
	APIBaseURL string        `mapstructure:"API_BASE_URL"`
	APITimeout time.Duration `mapstructure:"API_TIMEOUT"`

	// Device storage.
	DBURL        string `mapstructure:"DB_URL"`
	DeviceSecret string `mapstructure:"DEVICE_SECRET"`

	// Fallback coordinate when the device has no fix or permission is denied.
	DefaultLatitude  float64 `mapstructure:"DEFAULT_LATITUDE"`
	DefaultLongitude float64 `mapstructure:"DEFAULT_LONGITUDE"`

	GoogleAPIKey     string  `mapstructure:"GOOGLE_API_KEY"`
	PlacesRatePerSec float64 `mapstructure:"PLACES_RATE_PER_SEC"`

	PaymentPollInterval time.Duration `mapstructure:"PAYMENT_POLL_INTERVAL"`
	PaymentPollTimeout  time.Duration `mapstructure:"PAYMENT_POLL_TIMEOUT"`

	ReminderSchedule string        `mapstructure:"REMINDER_SCHEDULE"`
	ReminderLead     time.Duration `mapstructure:"REMINDER_LEAD"`

	TwilioAccountSID     string `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken      string `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioPhoneNumber    string `mapstructure:"TWILIO_PHONE_NUMBER"`
	TwilioWhatsAppNumber string `mapstructure:"TWILIO_WHATSAPP_NUMBER"`

	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("API_BASE_URL", "https://api.salonbook.app/api/v1")
	v.SetDefault("API_TIMEOUT", 10*time.Second)
	v.SetDefault("DB_URL", "host=localhost user=postgres dbname=salonbook_device sslmode=disable")
	v.SetDefault("DEVICE_SECRET", "")
	v.SetDefault("DEFAULT_LATITUDE", 28.6139)
	v.SetDefault("DEFAULT_LONGITUDE", 77.2090)
	v.SetDefault("GOOGLE_API_KEY", "")
	v.SetDefault("PLACES_RATE_PER_SEC", 5)
	v.SetDefault("PAYMENT_POLL_INTERVAL", 15*time.Second)
	v.SetDefault("PAYMENT_POLL_TIMEOUT", 180*time.Second)
	v.SetDefault("REMINDER_SCHEDULE", "0 9 * * *")
	v.SetDefault("REMINDER_LEAD", 24*time.Hour)
	v.SetDefault("TWILIO_ACCOUNT_SID", "")
	v.SetDefault("TWILIO_AUTH_TOKEN", "")
	v.SetDefault("TWILIO_PHONE_NUMBER", "")
	v.SetDefault("TWILIO_WHATSAPP_NUMBER", "")
	v.SetDefault("CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:8081"})
}

// LoadConfig reads .env, an optional config.yaml and the environment, in
// increasing order of precedence.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.APITimeout <= 0 {
		cfg.APITimeout = 10 * time.Second
	}

	AppConfig = cfg
	return cfg, nil
}

func IsProduction() bool {
	return AppConfig.Env == "production"
}
