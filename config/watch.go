package config

import (
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Watch re-reads the .env file at path whenever it changes and hands the
// fresh configuration to onChange. Only settings that are safe to swap at
// runtime (currently the log level) should be applied by the callback.
func Watch(path string, onChange func(fsnotify.Event, *Config)) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		onChange(e, fromViper(v))
	})
	v.WatchConfig()
}
