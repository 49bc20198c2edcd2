package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/upb/moltbot-gateway/services"
	"github.com/upb/moltbot-gateway/services/containerenv"
	"gopkg.in/yaml.v3"
)

// LoadWorkerEnv reads every worker binding through lookup.
func LoadWorkerEnv(lookup func(string) (string, bool)) containerenv.WorkerEnv {
	return containerenv.FromLookup(lookup)
}

// LoadWorkerEnvFile reads worker bindings from a YAML file whose top-level
// keys are binding names. Unknown keys are rejected.
func LoadWorkerEnvFile(path string) (containerenv.WorkerEnv, error) {
	var env containerenv.WorkerEnv

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return env, services.ErrBindingsFileNotFound.Wrap(err).WithDetail("path", path)
		}
		return env, fmt.Errorf("failed to read bindings file %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&env); err != nil && !errors.Is(err, io.EOF) {
		return containerenv.WorkerEnv{}, services.ErrInvalidBindings.Wrap(err).WithDetail("path", path)
	}
	return env, nil
}
