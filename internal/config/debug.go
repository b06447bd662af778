package config

import "os"

func IsDebug() bool {
	return os.Getenv("MARVIN_DEBUG") == "1"
}
