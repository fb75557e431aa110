package instance

import "os"

// GetID identifies this process in logs. It prefers SHOPFRONT_INSTANCE_ID, then the platform
// dyno name, then the host name.
func GetID() string {
	for _, key := range []string{"SHOPFRONT_INSTANCE_ID", "DYNO"} {
		if id := os.Getenv(key); id != "" {
			return id
		}
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "local"
}
