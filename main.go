package main

import (
	"flag"
	"fmt"
	"os"

	"quick-chat-client/db"
	"quick-chat-client/ui"
	"quick-chat-client/utils"
)

var (
	version = "0.1.0"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("Quick Chat Client v%s\n", version)
		os.Exit(0)
	}

	logger, err := utils.NewLogger(utils.GetLogPath())
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("Starting Quick Chat Client v%s", version)

	// Load or create default configuration
	var config *utils.Config
	var actualConfigPath string
	if *configPath != "" {
		actualConfigPath = *configPath
	} else {
		actualConfigPath, err = utils.EnsureDefaultConfig()
		if err != nil {
			logger.Error("Failed to create default config: %v", err)
			os.Exit(1)
		}
	}

	config, err = utils.LoadConfig(actualConfigPath)
	if err != nil {
		logger.Error("Failed to load config: %v", err)
		os.Exit(1)
	}
	logger.Info("Using config file: %s", actualConfigPath)

	// Open the settings database
	database, err := db.New(config.Data.SettingsDBPath)
	if err != nil {
		logger.Error("Failed to open settings database: %v", err)
		os.Exit(1)
	}
	defer database.Close()

	logger.Info("Settings database: %s", config.Data.SettingsDBPath)

	settings := db.NewSettingsStore(database)

	app := ui.NewApp(config, actualConfigPath, settings, logger)
	defer app.Cleanup()

	logger.Info("Application started")
	app.Run()
	logger.Info("Application stopped")
}
