// Copyright 2017 Pilosa Corp.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions
// are met:
//
// 1. Redistributions of source code must retain the above copyright
// notice, this list of conditions and the following disclaimer.
//
// 2. Redistributions in binary form must reproduce the above copyright
// notice, this list of conditions and the following disclaimer in the
// documentation and/or other materials provided with the distribution.
//
// 3. Neither the name of the copyright holder nor the names of its
// contributors may be used to endorse or promote products derived
// from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND
// CONTRIBUTORS "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES,
// INCLUDING, BUT NOT LIMITED TO, THE IMPLIED WARRANTIES OF
// MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
// DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR
// CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING,
// BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
// SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY,
// WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING
// NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH
// DAMAGE.

package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version and BuildTime are set with -ldflags -X at build time.
var (
	Version   string
	BuildTime string
)

// EnvPrefix prefixes the environment variable for every flag.
const EnvPrefix = "LAUNCHDASH"

// subcommands are added to the root command in this order.
var subcommands = []func(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command{
	NewServeCommand,
	NewSnapshotCommand,
	NewGenCommand,
	NewKafkagenCommand,
	NewVersionCommand,
}

// NewRootCommand returns the launchdash command with every subcommand
// attached. Before any subcommand runs, its flags are filled in from the
// environment and the --config file wherever they weren't given on the
// command line.
func NewRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	rc := &cobra.Command{
		Use:   "launchdash",
		Short: "launchdash - SpaceX launch records dashboard",
		Long: `Loads SpaceX launch records from CSV or JSON files, S3, Kafka
or a stored snapshot and serves an interactive dashboard of launch
outcomes by site and payload mass.

` + versionString(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setAllConfig(viper.New(), cmd.Flags(), EnvPrefix)
		},
	}
	rc.PersistentFlags().StringP("config", "c", "", "Configuration file (toml, yaml or json) to read from.")
	for _, fn := range subcommands {
		rc.AddCommand(fn(stdin, stdout, stderr))
	}
	rc.SetOutput(stderr)
	return rc
}

// NewVersionCommand prints the version and build time to stdout.
func NewVersionCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "version - print the launchdash version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(stdout, versionString())
		},
	}
}

func versionString() string {
	version, built := Version, BuildTime
	if version == "" {
		version = "v0.0.0"
	}
	if built == "" {
		built = "not recorded"
	}
	return fmt.Sprintf("Version: %s\nBuild Time: %s", version, built)
}

var envReplacer = strings.NewReplacer("-", "_", ".", "_")

// setAllConfig fills every flag that wasn't set on the command line from, in
// order, the environment and the config file named by the "config" flag (or
// its environment variable). Environment variables are envPrefix, an
// underscore and the flag name upper cased with dashes and dots turned into
// underscores, e.g. LAUNCHDASH_SLIDER_STEP.
func setAllConfig(v *viper.Viper, flags *pflag.FlagSet, envPrefix string) error {
	if err := v.BindPFlags(flags); err != nil {
		return errors.Wrap(err, "binding flags")
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType(configType(path))
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "reading configuration file '%s'", path)
		}
	}

	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		// Set appends to a changed slice flag rather than replacing it.
		if err != nil || f.Changed {
			return
		}
		err = errors.Wrapf(f.Value.Set(configValue(v, f)), "setting %s", f.Name)
	})
	return err
}

// configType picks the viper config type from the file extension, defaulting
// to toml.
func configType(path string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "yaml", "yml":
		return "yaml"
	case "json":
		return "json"
	default:
		return "toml"
	}
}

// configValue returns the string form of f's value in v. Slices from a config
// file only come back from GetStringSlice.
func configValue(v *viper.Viper, f *pflag.Flag) string {
	if f.Value.Type() == "stringSlice" {
		return strings.Join(v.GetStringSlice(f.Name), ",")
	}
	return v.GetString(f.Name)
}
