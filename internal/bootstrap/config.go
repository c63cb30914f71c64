package bootstrap

import "github.com/ecoyoung/packform/config"

// LoadConfig reads the explicit file when path is set, otherwise the default locations.
func LoadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}
