package config

import (
	"log/slog"
	"net/url"

	"github.com/authsrv/oauth2-userinfo/internal/config/types"
)

//nolint:gochecknoglobals
var Defaults = Config{
	Debug: Debug{
		Listen: ":9001",
	},
	Log: Log{
		Format: "console",
		Level:  slog.LevelInfo,
	},
	HTTP: HTTP{
		BaseURL: types.URL{URL: &url.URL{
			Scheme: "http",
			Host:   "localhost:9000",
		}},
		Listen: ":9000",
		TLS:    false,
	},
}
