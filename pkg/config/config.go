package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration values
type Config struct {
	Port           string   `mapstructure:"PORT"`
	Env            string   `mapstructure:"ENV"`
	DatabaseURL    string   `mapstructure:"DATABASE_URL"`
	DataPath       string   `mapstructure:"DATA_PATH"`
	JWTSecret      string   `mapstructure:"JWT_SECRET"`
	APIMasterKey   string   `mapstructure:"API_MASTER_SECRET"`
	AdminUsername  string   `mapstructure:"ADMIN_USERNAME"`
	AdminPassword  string   `mapstructure:"ADMIN_PASSWORD"`
	LogLevel       string   `mapstructure:"LOG_LEVEL"`
	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS"`
}

// AppConfig is the loaded global configuration
var AppConfig Config

// Load initializes viper to read config from env, file, or defaults
func Load() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8000")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("DATA_PATH", "staffing.db")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("ALLOWED_ORIGINS", []string{
		"http://localhost:5173",
		"http://127.0.0.1:5173",
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	})

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// IsProduction checks if the environment is production
func IsProduction() bool {
	return AppConfig.Env == "production"
}
