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
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	// Version of this software - filled in by ldflags in Makefile.
	Version string
	// BuildTime of this software - filled in by ldflags in Makefile.
	BuildTime string
)

func setupVersionBuild() {
	if Version == "" {
		Version = "v0.0.0"
	}
	if BuildTime == "" {
		BuildTime = "not recorded"
	}
}

const envPrefix = "QSIP"

// kbaseEnv maps settings shared by every command that talks to KBase onto
// the variables the KBase SDK sets inside app containers. They apply only
// when neither a flag, a QSIP_ variable, nor the config file sets the value.
var kbaseEnv = map[string]string{
	"endpoint": "KBASE_ENDPOINT",
	"token":    "KB_AUTH_TOKEN",
}

var subcommandFns = map[string]func(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command{}

// NewRootCommand reads the map of subcommandFns and creates a top level cobra
// command with each of them as subcommands.
func NewRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	setupVersionBuild()
	rc := &cobra.Command{
		Use:   "qsip",
		Short: "qsip - tabular data preparation for qSIP analyses",
		Long: `Fetches KBase workspace objects (sample sets and amplicon
matrices) and flattens them into tables for qSIP analysis.

Settings come from flags, then QSIP_ environment variables (QSIP_SINK for
--sink), then the TOML file named by --config. The endpoint and token also
fall back to KBASE_ENDPOINT and KB_AUTH_TOKEN.

Version: ` + Version + `
Build Time: ` + BuildTime + "\n",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadSettings(viper.New(), cmd.Flags())
		},
	}
	rc.PersistentFlags().StringP("config", "c", "", "TOML file to read settings from.")
	for _, subcomFn := range subcommandFns {
		rc.AddCommand(subcomFn(stdin, stdout, stderr))
	}
	rc.SetOutput(stderr)
	return rc
}

// loadSettings fills every flag in flags which was not given on the command
// line from, in order, a QSIP_ variable (upper cased, dashes as
// underscores), the config file, the KBase SDK variables in kbaseEnv, and
// finally the flag's own default.
func loadSettings(v *viper.Viper, flags *pflag.FlagSet) error {
	if err := v.BindPFlags(flags); err != nil {
		return err
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for name, env := range kbaseEnv {
		if flags.Lookup(name) == nil {
			continue
		}
		if val, ok := os.LookupEnv(env); ok && val != "" {
			v.SetDefault(name, val)
		}
	}

	if conf := v.GetString("config"); conf != "" {
		v.SetConfigFile(conf)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading configuration file '%s': %v", conf, err)
		}
	}

	var flagErr error
	flags.VisitAll(func(f *pflag.Flag) {
		// command line values win, and setting a slice flag again appends
		if flagErr != nil || f.Changed {
			return
		}
		flagErr = f.Value.Set(settingString(v, f))
	})
	return flagErr
}

// settingString renders a setting the way f.Value.Set parses it. Lists such
// as refs = ["1/2/3", "4/5/6"] in the config file come back from viper as
// slices, which GetString renders as "".
func settingString(v *viper.Viper, f *pflag.Flag) string {
	if f.Value.Type() == "stringSlice" {
		return strings.Join(v.GetStringSlice(f.Name), ",")
	}
	return v.GetString(f.Name)
}
