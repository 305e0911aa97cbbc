// Copyright 2021 Jonathan Amsterdam.

// Package env fills in cobra flags that were not given on the command line
// from environment variables and an optional config file.
//
// For a flag named "log-level" on the command "json", the environment
// variables PARSEC_JSON_LOG_LEVEL and PARSEC_LOG_LEVEL are consulted in that
// order, then the config file keys "json.log-level" and "log-level".
package env

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	globalPrefix = "parsec"

	// ConfigFlag is the name of the flag holding the config file path. It is
	// never read from the config itself.
	ConfigFlag = "config"

	errorMessagePrefix = "error mapping configuration to command flags"
)

// Flags maps configuration onto the flags of a command.
type Flags struct {
	// ConfigFile, if not empty, is a YAML, JSON or TOML file of flag values.
	ConfigFile string
}

// Apply sets every flag of command that the user did not set.
func (cf Flags) Apply(command *cobra.Command) error {
	file := viper.New()
	if cf.ConfigFile != "" {
		file.SetConfigFile(cf.ConfigFile)
		if err := file.ReadInConfig(); err != nil {
			return fmt.Errorf("%s: %w", errorMessagePrefix, err)
		}
	}
	var envs []*viper.Viper
	if command.Name() != globalPrefix {
		envs = append(envs, newEnv(fmt.Sprintf("%s_%s", globalPrefix, command.Name())))
	}
	envs = append(envs, newEnv(globalPrefix))

	var errs []string
	command.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || f.Name == ConfigFlag {
			return
		}
		val, ok := lookupEnv(envs, strings.ReplaceAll(f.Name, "-", "_"))
		if !ok {
			val, ok = lookupFile(file, command, f.Name)
		}
		if !ok {
			return
		}
		if err := command.Flags().Set(f.Name, val); err != nil {
			errs = append(errs, err.Error())
		}
	})

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%s: %s", errorMessagePrefix, strings.Join(errs, "; "))
}

func newEnv(prefix string) *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvPrefix(prefix)
	return v
}

func lookupEnv(envs []*viper.Viper, key string) (string, bool) {
	for _, v := range envs {
		if v.IsSet(key) {
			return fmt.Sprintf("%v", v.Get(key)), true
		}
	}
	return "", false
}

func lookupFile(file *viper.Viper, command *cobra.Command, name string) (string, bool) {
	keys := []string{name}
	if command.Name() != globalPrefix {
		keys = []string{command.Name() + "." + name, name}
	}
	for _, k := range keys {
		if !file.IsSet(k) {
			continue
		}
		switch val := file.Get(k).(type) {
		case []any:
			return strings.Join(cast.ToStringSlice(val), ","), true
		default:
			return cast.ToString(val), true
		}
	}
	return "", false
}
