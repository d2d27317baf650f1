package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind         string
	flagURL      string
	graceDelay   time.Duration
	port         int
	prefix       string
	profile      bool
	rounds       int
	roundTimeout time.Duration
	tlsCert      string
	tlsKey       string
	verbose      bool
	version      bool
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.rounds < 1 {
		return fmt.Errorf("invalid round count (must be at least 1): %d", c.rounds)
	}
	if c.rounds > len(countries) {
		return fmt.Errorf("round count %d exceeds question bank size %d", c.rounds, len(countries))
	}
	if c.roundTimeout <= 0 {
		return fmt.Errorf("invalid round timeout: %s", c.roundTimeout)
	}
	if c.graceDelay < 0 {
		return fmt.Errorf("invalid grace delay: %s", c.graceDelay)
	}
	if !strings.Contains(c.flagURL, "%s") {
		return fmt.Errorf("flag url must contain a %%s placeholder for the country code: %q", c.flagURL)
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("FLAGSQUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "flagsquiz",
		Short:         "A realtime two-player trivia duel: name the country from its flag.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return ServePage(cmd.Context(), cfg, args)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: FLAGSQUIZ_BIND)")
	fs.StringVar(&cfg.flagURL, "flag-url", "https://flagsapi.com/%s/flat/64.png", "flag image URL template, %s is replaced by the country code (env: FLAGSQUIZ_FLAG_URL)")
	fs.DurationVar(&cfg.graceDelay, "grace-delay", 2*time.Second, "pause after a correct answer before the next round (env: FLAGSQUIZ_GRACE_DELAY)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: FLAGSQUIZ_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: FLAGSQUIZ_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: FLAGSQUIZ_PROFILE)")
	fs.IntVar(&cfg.rounds, "rounds", 10, "questions per match (env: FLAGSQUIZ_ROUNDS)")
	fs.DurationVar(&cfg.roundTimeout, "round-timeout", 15*time.Second, "time players have to answer each question (env: FLAGSQUIZ_ROUND_TIMEOUT)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: FLAGSQUIZ_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: FLAGSQUIZ_TLS_KEY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: FLAGSQUIZ_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: FLAGSQUIZ_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("flagsquiz v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
