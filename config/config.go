package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lazharichir/cardlab/blackjack"
	"github.com/lazharichir/cardlab/war"
)

type Config struct {
	Addr             string
	WSAllowedOrigins []string
	Debug            bool

	StartingFunds    int
	DealerStandsAt   int
	MaxInputAttempts int
	ReshuffleBelow   int

	WarMaxBattles int
}

// LoadFromEnv reads CARDLAB_* variables. Unparseable values fall back to
// their defaults with a warning on stderr.
func LoadFromEnv() (Config, error) {
	rules := blackjack.DefaultRules()

	cfg := Config{
		Addr:             strings.TrimSpace(os.Getenv("CARDLAB_ADDR")),
		StartingFunds:    intFromEnv("CARDLAB_STARTING_FUNDS", rules.StartingFunds),
		DealerStandsAt:   intFromEnv("CARDLAB_DEALER_STANDS_AT", rules.DealerStandsAt),
		MaxInputAttempts: intFromEnv("CARDLAB_MAX_INPUT_RETRIES", rules.MaxInputAttempts),
		ReshuffleBelow:   intFromEnv("CARDLAB_RESHUFFLE_BELOW", rules.ReshuffleBelow),
		WarMaxBattles:    intFromEnv("CARDLAB_WAR_MAX_BATTLES", war.DefaultMaxBattles),
	}
	if cfg.Addr == "" {
		cfg.Addr = ":7777"
	}

	if v := strings.TrimSpace(os.Getenv("CARDLAB_DEBUG")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		} else {
			fmt.Fprintf(os.Stderr, "WARNING: invalid CARDLAB_DEBUG=%q, debug stays off\n", v)
		}
	}

	if v := os.Getenv("CARDLAB_WS_ALLOWED_ORIGINS"); v != "" {
		for _, p := range strings.Split(v, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				cfg.WSAllowedOrigins = append(cfg.WSAllowedOrigins, p)
			}
		}
	}

	var invalid []string
	if cfg.StartingFunds < 2 {
		invalid = append(invalid, "CARDLAB_STARTING_FUNDS (must allow a bet, >= 2)")
	}
	if cfg.DealerStandsAt > rules.BustLimit {
		invalid = append(invalid, fmt.Sprintf("CARDLAB_DEALER_STANDS_AT (must be <= %d)", rules.BustLimit))
	}
	if cfg.MaxInputAttempts < 1 {
		invalid = append(invalid, "CARDLAB_MAX_INPUT_RETRIES (must be >= 1)")
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("missing/invalid env: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// BlackjackRules applies the configured values over the default house rules
func (c Config) BlackjackRules() blackjack.Rules {
	rules := blackjack.DefaultRules()
	rules.StartingFunds = c.StartingFunds
	rules.DealerStandsAt = c.DealerStandsAt
	rules.MaxInputAttempts = c.MaxInputAttempts
	rules.ReshuffleBelow = c.ReshuffleBelow
	return rules
}

func intFromEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		fmt.Fprintf(os.Stderr, "WARNING: invalid %s=%q, using default %d\n", key, v, def)
		return def
	}
	return n
}
