package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/de-tools/price-atlas/pkg/services/pricing"
)

const DefaultCachePath = "price_cache.db"

// GlobalFlags are the transport and cache settings shared by every command.
// Flag values can be overridden through the environment with the PRICE_ATLAS
// prefix, e.g. PRICE_ATLAS_CACHE_TTL=1h.
type GlobalFlags struct {
	CachePath   string
	CacheTTL    time.Duration
	Timeout     time.Duration
	MaxAttempts int
	Backoff     float64
	APIVersion  string
	Verbose     bool
}

func (g *GlobalFlags) Register(flags *pflag.FlagSet) {
	flags.StringVar(&g.CachePath, "cache", DefaultCachePath, "path to the durable response cache database")
	flags.DurationVar(&g.CacheTTL, "cache-ttl", pricing.DefaultCacheTTL, "how long cached responses stay usable")
	flags.DurationVar(&g.Timeout, "timeout", pricing.DefaultTimeout, "per-request timeout")
	flags.IntVar(&g.MaxAttempts, "max-attempts", pricing.DefaultMaxAttempts, "maximum attempts per request")
	flags.Float64Var(&g.Backoff, "backoff", pricing.DefaultBackoffMultiplier, "retry backoff multiplier")
	flags.StringVar(&g.APIVersion, "api-version", pricing.DefaultAPIVersion, "retail prices API version")
	flags.BoolVarP(&g.Verbose, "verbose", "v", false, "enable debug logging")
}

// Resolve folds environment overrides into the parsed flag values.
func (g *GlobalFlags) Resolve(flags *pflag.FlagSet) error {
	v := viper.New()
	v.SetEnvPrefix("PRICE_ATLAS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}

	g.CachePath = v.GetString("cache")
	g.CacheTTL = v.GetDuration("cache-ttl")
	g.Timeout = v.GetDuration("timeout")
	g.MaxAttempts = v.GetInt("max-attempts")
	g.Backoff = v.GetFloat64("backoff")
	g.APIVersion = v.GetString("api-version")
	g.Verbose = v.GetBool("verbose")
	return nil
}

func (g *GlobalFlags) ClientSettings() pricing.Settings {
	return pricing.Settings{
		CachePath:         g.CachePath,
		CacheTTL:          g.CacheTTL,
		Timeout:           g.Timeout,
		MaxAttempts:       g.MaxAttempts,
		BackoffMultiplier: g.Backoff,
	}
}
