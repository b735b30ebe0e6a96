package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-service"

	"github.com/pixil98/go-conquest/internal/combat"
	"github.com/pixil98/go-conquest/internal/dispatch"
	"github.com/pixil98/go-conquest/internal/driver"
	"github.com/pixil98/go-conquest/internal/listener"
	"github.com/pixil98/go-conquest/internal/messaging"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Message bus between game logic and connections
	bus, err := cfg.Nats.buildServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	// Session registry
	sessions, err := cfg.Sessions.BuildRegistry()
	if err != nil {
		return nil, fmt.Errorf("creating session registry: %w", err)
	}

	// Wire connections, fan-out, and command dispatch
	conns := listener.NewConnectionRegistry(bus)
	pub := messaging.NewPublisher(conns)
	dispatcher := dispatch.New(conns, sessions, pub, combat.NewResolver())

	ws := cfg.Listener.BuildListener(dispatcher, sessions)

	// Periodic maintenance: reap abandoned sessions
	var driverOpts []driver.DriverOpt
	if cfg.TickInterval != "" {
		d, err := time.ParseDuration(cfg.TickInterval)
		if err != nil {
			return nil, fmt.Errorf("parsing tick_interval: %w", err)
		}
		driverOpts = append(driverOpts, driver.WithTickLength(d))
	}
	drv := driver.NewDriver([]driver.Manager{sessions}, driverOpts...)

	return service.WorkerList{
		"nats":     bus,
		"driver":   drv,
		"listener": ws,
	}, nil
}
