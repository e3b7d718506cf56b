package config

import (
	"encoding/json"
	"log/slog"

	"github.com/authsrv/oauth2-userinfo/internal/config/types"
)

type Config struct {
	ConfigFile string `json:"config" yaml:"config"`
	HTTP       HTTP   `json:"http"   yaml:"http"`
	Debug      Debug  `json:"debug"  yaml:"debug"`
	Log        Log    `json:"log"    yaml:"log"`
	OAuth2     OAuth2 `json:"oauth2" yaml:"oauth2"`
}

type HTTP struct {
	BaseURL  types.URL `json:"baseurl" yaml:"baseurl"`
	Listen   string    `json:"listen"  yaml:"listen"`
	CertFile string    `json:"cert"    yaml:"cert"`
	KeyFile  string    `json:"key"     yaml:"key"`
	TLS      bool      `json:"tls"     yaml:"tls"`
}

type Debug struct {
	Listen string `json:"listen" yaml:"listen"`
	Pprof  bool   `json:"pprof"  yaml:"pprof"`
}

type Log struct {
	Format string     `json:"format" yaml:"format"`
	Level  slog.Level `json:"level"  yaml:"level"`
}

type OAuth2 struct {
	Providers []Provider `json:"providers" yaml:"providers"`
}

// Provider is one configured OAuth2 provider. Either the userinfo endpoint
// is set explicitly or it is discovered from the issuer at startup.
// username-attribute is the key on the UserInfo response carrying the user's
// name; username-cel optionally derives the display name from the full
// attribute set instead, e.g. for providers that split it across several
// attributes.
type Provider struct {
	Name              string    `json:"name"               yaml:"name"`
	Issuer            types.URL `json:"issuer"             yaml:"issuer"`
	UserInfoEndpoint  types.URL `json:"userinfo-endpoint"  yaml:"userinfo-endpoint"`
	UsernameAttribute string    `json:"username-attribute" yaml:"username-attribute"`
	UsernameCEL       string    `json:"username-cel"       yaml:"username-cel"`
}

//goland:noinspection GoMixedReceiverTypes
func (c Config) String() string {
	jsonString, err := json.Marshal(c)
	if err != nil {
		panic(err)
	}

	return string(jsonString)
}
