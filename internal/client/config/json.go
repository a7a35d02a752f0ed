package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/kalajat/archive/internal/flagx"
	"github.com/kalajat/archive/internal/timex"
)

// JsonConfig is the DTO used only for reading JSON configuration files.
// Interval fields use timex.Duration so both "1s" strings and integer
// nanoseconds parse; values are then copied into the runtime Config.
type JsonConfig struct {
	ServerEndpoint string         `json:"server_endpoint"`
	StateDir       string         `json:"state_dir"`
	LocalStore     string         `json:"local_store"`
	PollInterval   timex.Duration `json:"poll_interval"`
	GenAIAPIKey    string         `json:"genai_api_key"`
	GenAIModel     string         `json:"genai_model"`
}

// parseJson overlays values from the JSON file named by -c/-config, if any.
// A missing flag means no JSON file is loaded; a broken file is reported and
// skipped so defaults/flags still apply.
func parseJson(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	short := fs.String("c", "", "path to json config file")
	long := fs.String("config", "", "path to json config file")
	if err := fs.Parse(args); err != nil {
		return
	}

	path := *short
	if path == "" {
		path = *long
	}
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("cannot read config file %s: %v", path, err)
		return
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		log.Printf("cannot parse config file %s: %v", path, err)
		return
	}

	applyJson(config, &jc)
}

func applyJson(config *Config, jc *JsonConfig) {
	if jc.ServerEndpoint != "" {
		config.ServerEndpoint = jc.ServerEndpoint
	}
	if jc.StateDir != "" {
		config.StateDir = jc.StateDir
	}
	if jc.LocalStore != "" {
		config.LocalStore = jc.LocalStore
	}
	if jc.PollInterval.Duration != 0 {
		config.PollInterval = jc.PollInterval.Duration
	}
	if jc.GenAIAPIKey != "" {
		config.GenAIAPIKey = jc.GenAIAPIKey
	}
	if jc.GenAIModel != "" {
		config.GenAIModel = jc.GenAIModel
	}
}
