package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/kalajat/archive/internal/flagx"
	"github.com/kalajat/archive/internal/timex"
)

// JsonConfig is a configuration DTO tailored for JSON unmarshalling. It uses
// timex.Duration for interval fields, which allows parsing both string
// values such as "24h" and integer nanoseconds. After unmarshalling, fields
// are copied into the runtime Config struct.
type JsonConfig struct {
	EndpointAddrHTTP      string         `json:"endpoint_addr_http"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	S3RootUser            string         `json:"s3_root_user"`
	S3RootPassword        string         `json:"s3_root_password"`
	S3Bucket              string         `json:"s3_bucket"`
	S3Region              string         `json:"s3_region"`
	S3BaseEndpoint        string         `json:"s3_base_endpoint"`
}

// parseJson overlays values from the JSON file named by -c/-config, if any.
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
	if jc.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = jc.EndpointAddrHTTP
	}
	if jc.DatabaseDSN != "" {
		config.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.SecretKey != "" {
		config.SecretKey = jc.SecretKey
	}
	if jc.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = jc.TokenValidityDuration.Duration
	}
	if jc.S3RootUser != "" {
		config.S3RootUser = jc.S3RootUser
	}
	if jc.S3RootPassword != "" {
		config.S3RootPassword = jc.S3RootPassword
	}
	if jc.S3Bucket != "" {
		config.S3Bucket = jc.S3Bucket
	}
	if jc.S3Region != "" {
		config.S3Region = jc.S3Region
	}
	if jc.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = jc.S3BaseEndpoint
	}
}
