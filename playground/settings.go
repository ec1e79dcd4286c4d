package playground

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/andreyvit/jsonfix"
	"github.com/andreyvit/plainsecrets"
	"golang.org/x/exp/maps"
	"golang.org/x/time/rate"
)

// Configuration is the static, compiled-in description of the app: which
// environments exist, which config sections they read, and the embedded
// config and secrets payloads.
type Configuration struct {
	Envs map[string][]string

	ConfigFileName  string
	SecretsFileName string

	EmbeddedConfig  []byte
	EmbeddedSecrets string
}

func (ge *Configuration) ValidEnvs() []string {
	envs := maps.Keys(ge.Envs)
	sortStrings(envs)
	return envs
}

type RateLimitSettings struct {
	PerSec rate.Limit
	Burst  int
}

type Settings struct {
	Env           string
	Configuration *Configuration

	LocalOverridesFile string
	KeyringFile        string

	AppName  string
	BindAddr string
	BindPort int

	DataDir   string
	VerboseDB bool

	// GuardAllForms extends duplicate suppression to idempotent-method forms.
	GuardAllForms bool

	SubmitRateLimit          RateLimitSettings
	MaxRateLimitDelayMs      int64
	DisableRateLimits        bool
	JournalRecentDefaultSize int

	AdminToken Token
}

// Token is a secret string; it never prints its value.
type Token string

func (t *Token) Set(s string) error {
	*t = Token(s)
	return nil
}

func (t Token) String() string {
	if t == "" {
		return ""
	}
	return "<redacted>"
}

func (t Token) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

type Secrets map[string]string

func (secrets Secrets) Optional(name string, val interface{ Set(string) error }) bool {
	str := secrets[name]
	if str == "" {
		return false
	}
	err := val.Set(str)
	if err != nil {
		log.Fatalf("** ERROR: invalid value of secret %s: %v", name, err)
	}
	return true
}

func (secrets Secrets) Required(name string, val interface{ Set(string) error }) {
	ok := secrets.Optional(name, val)
	if !ok {
		log.Fatalf("** ERROR: missing secret %s", name)
	}
}

// LoadConfig parses the embedded config for the given env, applies the local
// overrides file if one is configured, and decrypts secrets. Any problem is
// fatal: a process with half-loaded settings is worse than no process.
func LoadConfig(ge *Configuration, env string) *Settings {
	settings := &Settings{Env: env}

	configBySection := make(map[string]json.RawMessage)

	decoder := json.NewDecoder(bytes.NewReader(jsonfix.Bytes(ge.EmbeddedConfig)))
	decoder.DisallowUnknownFields()
	err := decoder.Decode(&configBySection)
	if err != nil {
		log.Fatalf("** %v", fmt.Errorf("%s: %w", ge.ConfigFileName, err))
	}

	for e := range ge.Envs {
		if e == env {
			parseConfigSections(ge, ge.Envs[e], configBySection, settings)
		} else {
			// parse all other sections to ensure we're not surprised after deployment
			parseConfigSections(ge, ge.Envs[e], configBySection, &Settings{})
		}
	}

	if overridesFile := settings.LocalOverridesFile; overridesFile != "" {
		raw, err := os.ReadFile(overridesFile)
		if err != nil {
			if os.IsNotExist(err) {
				log.Fatalf("** %v", fmt.Errorf("LocalOverridesFile %s is missing, create with {} as its contents", overridesFile))
			}
			log.Fatalf("** %v", fmt.Errorf("%s: %w", overridesFile, err))
		}

		decoder := json.NewDecoder(bytes.NewReader(jsonfix.Bytes(raw)))
		decoder.DisallowUnknownFields()
		err = decoder.Decode(settings)
		if err != nil {
			log.Fatalf("** %v", fmt.Errorf("%s: %w", overridesFile, err))
		}
	}

	if settings.KeyringFile == "" {
		log.Fatalf("** %v", fmt.Errorf("%s: empty KeyringFile", ge.ConfigFileName))
	}
	keyring, err := plainsecrets.ParseKeyringFile(settings.KeyringFile)
	if err != nil {
		log.Fatalf("** %v", err)
	}

	vals, err := plainsecrets.ParseString(fmt.Sprintf("@all = %s\n%s", strings.Join(maps.Keys(ge.Envs), " "), ge.EmbeddedSecrets))
	if err != nil {
		log.Fatalf("** %v", fmt.Errorf("%s: %w", ge.SecretsFileName, err))
	}

	secretValues, err := vals.EnvValues(env, keyring)
	if err != nil {
		log.Fatalf("** %v", err)
	}
	loadSecrets(settings, secretValues)

	log.Printf("Settings = %s", must(json.Marshal(settings)))
	settings.Configuration = ge
	return settings
}

func loadSecrets(settings *Settings, secrets Secrets) {
	secrets.Optional("ADMIN_TOKEN", &settings.AdminToken)
}

func parseConfigSections(ge *Configuration, sections []string, configBySection map[string]json.RawMessage, settings *Settings) {
	for _, section := range sections {
		if configBySection[section] == nil {
			log.Fatalf("** %v", fmt.Errorf("%s: missing section %s", ge.ConfigFileName, section))
		}
		decoder := json.NewDecoder(bytes.NewReader(configBySection[section]))
		decoder.DisallowUnknownFields()
		err := decoder.Decode(settings)
		if err != nil {
			log.Fatalf("** %v", fmt.Errorf("%s: %s: %w", ge.ConfigFileName, section, err))
		}
	}
}
