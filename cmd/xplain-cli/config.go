package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the adapter defaults a user can pin in a yaml file
// instead of repeating -store/-bolt-path/-redis-addr/-mongo-uri on
// every invocation. Flags passed on the command line still win.
type Config struct {
	Store     string `yaml:"store"`
	BoltPath  string `yaml:"bolt_path"`
	RedisAddr string `yaml:"redis_addr"`
	MongoURI  string `yaml:"mongo_uri"`
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
