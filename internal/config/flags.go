package config

import (
	"flag"
)

//goland:noinspection GoMixedReceiverTypes
func (c *Config) flagSetDebug(flagSet *flag.FlagSet) {
	flagSet.BoolVar(
		&c.Debug.Pprof,
		"debug.pprof",
		lookupEnvOrDefault("debug.pprof", c.Debug.Pprof),
		"Enables go profiling endpoint. This should be never exposed.",
	)
	flagSet.StringVar(
		&c.Debug.Listen,
		"debug.listen",
		lookupEnvOrDefault("debug.listen", c.Debug.Listen),
		"listen address for go profiling endpoint",
	)
}

//goland:noinspection GoMixedReceiverTypes
func (c *Config) flagSetLog(flagSet *flag.FlagSet) {
	flagSet.StringVar(
		&c.Log.Format,
		"log.format",
		lookupEnvOrDefault("log.format", c.Log.Format),
		"log format. json or console",
	)
	flagSet.TextVar(
		&c.Log.Level,
		"log.level",
		lookupEnvOrDefault("log.level", c.Log.Level),
		"log level. Can be one of: debug, info, warn, error",
	)
}

//goland:noinspection GoMixedReceiverTypes
func (c *Config) flagSetHTTP(flagSet *flag.FlagSet) {
	flagSet.StringVar(
		&c.HTTP.Listen,
		"http.listen",
		lookupEnvOrDefault("http.listen", c.HTTP.Listen),
		"listen addr for the resolver listener",
	)
	flagSet.BoolVar(
		&c.HTTP.TLS,
		"http.tls",
		lookupEnvOrDefault("http.tls", c.HTTP.TLS),
		"enable TLS listener",
	)
	flagSet.TextVar(
		&c.HTTP.BaseURL,
		"http.baseurl",
		lookupEnvOrDefault("http.baseurl", c.HTTP.BaseURL),
		"public base url of the resolver listener",
	)
	flagSet.StringVar(
		&c.HTTP.KeyFile,
		"http.key",
		lookupEnvOrDefault("http.key", c.HTTP.KeyFile),
		"Path to tls server key used for TLS listener.",
	)
	flagSet.StringVar(
		&c.HTTP.CertFile,
		"http.cert",
		lookupEnvOrDefault("http.cert", c.HTTP.CertFile),
		"Path to tls server certificate used for TLS listener.",
	)
}
