package config

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

type credentials struct {
	Username string
	Password string
}

// readCredentials loads the [kodi] section of an INI credentials file.
func readCredentials(path string) (credentials, error) {
	file, err := ini.Load(path)
	if err != nil {
		return credentials{}, fmt.Errorf("kodi.credentials_file: load %s: %w", path, err)
	}
	section, err := file.GetSection("kodi")
	if err != nil {
		return credentials{}, fmt.Errorf("kodi.credentials_file: %s has no [kodi] section", path)
	}
	return credentials{
		Username: strings.TrimSpace(section.Key("username").String()),
		Password: section.Key("password").String(),
	}, nil
}
