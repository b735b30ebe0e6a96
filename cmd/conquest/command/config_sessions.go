package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"

	"github.com/pixil98/go-conquest/internal/game"
)

type SessionConfig struct {
	// TTL is how long a created-but-never-joined session is retained before
	// the sweep reaps it.
	TTL string `json:"ttl"`
}

func (c *SessionConfig) validate() error {
	el := errors.NewErrorList()

	if c.TTL != "" {
		_, err := time.ParseDuration(c.TTL)
		if err != nil {
			el.Add(fmt.Errorf("parsing ttl: %w", err))
		}
	}

	return el.Err()
}

func (c *SessionConfig) BuildRegistry() (*game.Registry, error) {
	var opts []game.RegistryOpt
	if c.TTL != "" {
		d, err := time.ParseDuration(c.TTL)
		if err != nil {
			return nil, fmt.Errorf("parsing ttl: %w", err)
		}
		opts = append(opts, game.WithSessionTTL(d))
	}

	return game.NewRegistry(opts...), nil
}
