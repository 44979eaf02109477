package config

import "os"

// InitializeConfig prepares the process-wide services used by the API daemon.
// InfluxDB is optional and only connected when INFLUXDB_URL is set.
func InitializeConfig() error {
	NewLoggerService()

	if len(os.Getenv("INFLUXDB_URL")) > 0 {
		if err := NewInfluxDB(); err != nil {
			return err
		}
	}

	return nil
}

// Getenv returns the value of key or fallback when it is unset.
func Getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && len(v) > 0 {
		return v
	}

	return fallback
}
