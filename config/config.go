package config

import (
	"log"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var AppConfigInstance *AppConfig

// InitConfig loads config/config.yaml and keeps the instance hot-reloaded.
func InitConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file: %v", err)
	}

	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		if err := viper.Unmarshal(&AppConfigInstance); err != nil {
			log.Printf("loadConfig failed, unmarshal config err: %v", err)
		}
	})

	if err := viper.Unmarshal(&AppConfigInstance); err != nil {
		log.Fatalf("Unable to decode into struct: %v", err)
	}
}

func GetConfig() *AppConfig {
	return AppConfigInstance
}
