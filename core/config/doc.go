// Package config provides configuration management for the Venue Manager.
//
// It utilizes Viper for loading configuration from environment variables
// and a .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP lookup server settings (port, API key)
//   - Storage: S3/MinIO credentials for optional table backups
//   - Log: Logging level and format
//   - History: merge-run audit database connection details
//   - Venues: table file locations and the bibliography path
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
