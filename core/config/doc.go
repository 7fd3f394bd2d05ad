// Package config provides configuration management for the sheet-sync service.
//
// It utilizes Viper for loading configuration from environment variables and
// .env files, with defaults declared via struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: MySQL connection details for the sheet store
//   - Storage: S3/MinIO credentials for the bucket-index snapshot cache
//   - Log: Logging level and format
//   - Sheet: Column layout, linked columns, highlight colors
//   - Platform: Remote entity platform endpoint and credentials
//
// The Config value is constructed once at startup and passed by handle into
// every component constructor; components never read configuration ambiently.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
