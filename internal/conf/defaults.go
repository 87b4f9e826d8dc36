// defaults.go default values for viper configuration
package conf

import (
	"github.com/spf13/viper"
)

// setDefaultConfig sets the default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "eksponent-events")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "logs/events.log")

	viper.SetDefault("import.sourceurl", "https://toolbox.eksponent.com:8030/events.json")
	viper.SetDefault("import.timeout", 30)
	viper.SetDefault("import.pollinterval", 60)
	viper.SetDefault("import.imagedir", "imported-event-images")

	viper.SetDefault("output.sqlite.enabled", true)
	viper.SetDefault("output.sqlite.path", "events.db")
	viper.SetDefault("output.mysql.enabled", false)
	viper.SetDefault("output.mysql.username", "events")
	viper.SetDefault("output.mysql.password", "events")
	viper.SetDefault("output.mysql.host", "localhost")
	viper.SetDefault("output.mysql.port", "3306")
	viper.SetDefault("output.mysql.database", "events")
}
