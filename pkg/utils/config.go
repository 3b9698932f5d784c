package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	AMQP     AMQPConfig
	Staffing StaffingConfig
	Lock     LockConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type AMQPConfig struct {
	// URL empty means event publishing is disabled (log-only publisher).
	URL       string
	QueueName string
}

type StaffingConfig struct {
	// CountPending controls whether pending assignments count toward
	// a schedule's assigned-guide total. Business-decided knob.
	CountPending bool
}

type LockConfig struct {
	// WaitMS bounds how long a writer waits on a schedule lock before
	// the operation is rejected as busy.
	WaitMS int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("AMQP_QUEUE", "guide-assignments")
	viper.SetDefault("STAFFING_COUNT_PENDING", true)
	viper.SetDefault("LOCK_WAIT_MS", 250)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		AMQP: AMQPConfig{
			URL:       viper.GetString("AMQP_URL"),
			QueueName: viper.GetString("AMQP_QUEUE"),
		},
		Staffing: StaffingConfig{
			CountPending: viper.GetBool("STAFFING_COUNT_PENDING"),
		},
		Lock: LockConfig{
			WaitMS: viper.GetInt("LOCK_WAIT_MS"),
		},
	}

	return config, nil
}
