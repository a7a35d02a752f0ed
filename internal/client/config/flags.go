package config

import (
	"flag"
	"os"
	"time"

	"github.com/kalajat/archive/internal/flagx"
)

// parseFlags overlays selected client Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-s string   server endpoint base URL ("http://host:port"); empty = local mode
//	-d string   state directory for local storage
//	-b string   local kv store backend: "file" or "sqlite"
//	-p int      local subscription poll interval, seconds
//	-k string   generative-AI API key (empty disables analysis)
//	-m string   generative-AI model name
//
// Arguments are first filtered with flagx.FilterArgs so flags owned by other
// layers (like -c/-config) do not collide.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-d", "-b", "-p", "-k", "-m"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)

	fs.StringVar(&config.ServerEndpoint, "s", config.ServerEndpoint, "server endpoint base url")
	fs.StringVar(&config.StateDir, "d", config.StateDir, "state directory")
	fs.StringVar(&config.LocalStore, "b", config.LocalStore, "local store backend (file|sqlite)")

	pollSeconds := fs.Int("p", int(config.PollInterval.Seconds()), "poll interval (in seconds)")

	fs.StringVar(&config.GenAIAPIKey, "k", config.GenAIAPIKey, "generative-ai api key")
	fs.StringVar(&config.GenAIModel, "m", config.GenAIModel, "generative-ai model")

	if err := fs.Parse(args); err != nil {
		return
	}

	config.PollInterval = time.Duration(*pollSeconds) * time.Second
}
