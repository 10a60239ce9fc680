package mockapi

import (
	"flag"
	"os"

	"storepulse/internal/flagx"
)

// Config holds the mock backend's runtime settings.
type Config struct {
	ListenAddr string
	Secret     string
	Verbose    bool
}

// LoadConfig builds the config from defaults overridden by flags:
//
//	-a string   listen address
//	-s string   JWT signing secret
//	-v          verbose logging
func LoadConfig() *Config {
	cfg := &Config{
		ListenAddr: ":8000",
		Secret:     "storepulse-dev-secret",
	}

	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-v"})

	fs := flag.NewFlagSet("mockapi", flag.ContinueOnError)
	fs.StringVar(&cfg.ListenAddr, "a", cfg.ListenAddr, "listen address")
	fs.StringVar(&cfg.Secret, "s", cfg.Secret, "JWT signing secret")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
	return cfg
}
