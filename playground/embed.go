package playground

import (
	"embed"
)

var (
	//go:embed config.json
	embeddedConfig []byte

	//go:embed config.secrets.txt
	embeddedSecrets string

	//go:embed forms.html
	formsHTML string

	//go:embed views
	embeddedViewsFS embed.FS
)

// DefaultConfiguration describes the playground app: two environments sharing
// a base config section, with config and secrets compiled into the binary.
func DefaultConfiguration() *Configuration {
	return &Configuration{
		Envs: map[string][]string{
			"local": {"base", "local"},
			"prod":  {"base", "prod"},
		},
		ConfigFileName:  "config.json",
		SecretsFileName: "config.secrets.txt",
		EmbeddedConfig:  embeddedConfig,
		EmbeddedSecrets: embeddedSecrets,
	}
}
