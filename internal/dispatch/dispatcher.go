// Package dispatch routes decoded client commands to the session registry
// and combat resolver, and shapes the resulting events back out to
// connections. Each command runs to completion under its session's lock, so
// commands against one session are serialized while different sessions
// proceed in parallel.
package dispatch

import (
	"context"
	"log/slog"

	"github.com/pixil98/go-conquest/internal/combat"
	"github.com/pixil98/go-conquest/internal/game"
	"github.com/pixil98/go-conquest/internal/listener"
	"github.com/pixil98/go-conquest/internal/messaging"
	"github.com/pixil98/go-conquest/internal/protocol"
)

type Dispatcher struct {
	conns    *listener.ConnectionRegistry
	sessions *game.Registry
	pub      *messaging.Publisher
	resolver *combat.Resolver
}

func New(conns *listener.ConnectionRegistry, sessions *game.Registry, pub *messaging.Publisher, resolver *combat.Resolver) *Dispatcher {
	return &Dispatcher{
		conns:    conns,
		sessions: sessions,
		pub:      pub,
		resolver: resolver,
	}
}

// HandleConnection runs one client connection: register it, apply its
// commands in arrival order, and clean up when the transport drops. The
// session id comes from the endpoint path the client connected to.
func (d *Dispatcher) HandleConnection(ctx context.Context, sessionID string, t listener.Transport) {
	clientID, err := d.conns.Register(t)
	if err != nil {
		slog.WarnContext(ctx, "registering connection", "error", err)
		_ = t.Close()
		return
	}

	slog.InfoContext(ctx, "client connected", "client", clientID, "session", sessionID)

	for {
		data, err := t.ReadMessage()
		if err != nil {
			break
		}
		d.dispatch(ctx, clientID, sessionID, data)
	}

	d.disconnect(ctx, clientID)
}

// disconnect is the only cancellation primitive: it unregisters the
// connection, removes the player from its session, and announces the
// departure. Already-applied mutations are not rolled back.
func (d *Dispatcher) disconnect(ctx context.Context, clientID string) {
	d.conns.Unregister(clientID)
	d.sessions.Leave(clientID)

	slog.InfoContext(ctx, "client disconnected", "client", clientID)

	if data, err := protocol.PlayerLeft(clientID); err == nil {
		d.conns.Broadcast(data, clientID)
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, clientID, sessionID string, data []byte) {
	cmd, err := protocol.Decode(data)
	if err != nil {
		// Malformed and unknown commands are dropped without a reply.
		slog.DebugContext(ctx, "dropping command", "client", clientID, "error", err)
		return
	}

	switch c := cmd.(type) {
	case protocol.JoinGame:
		d.handleJoin(clientID, sessionID, c)
	case protocol.StartGame:
		d.handleStart(ctx, sessionID)
	case protocol.PlaceArmy:
		d.handlePlaceArmy(clientID, c)
	case protocol.Attack:
		d.handleAttack(clientID, c)
	case protocol.EndTurn:
		d.handleEndTurn(clientID)
	}
}

func (d *Dispatcher) handleJoin(clientID, sessionID string, c protocol.JoinGame) {
	p := game.NewPlayer(clientID, c.Name, c.Country)

	if err := d.sessions.Join(sessionID, p); err != nil {
		if data, err := protocol.ErrorEvent("Could not join game"); err == nil {
			d.conns.Send(clientID, data)
		}
		return
	}

	sess := d.sessions.Get(sessionID)
	if sess == nil {
		return
	}

	sess.Lock()
	snap := sess.Snapshot()
	ids := sess.PlayerIDs()
	sess.Unlock()

	if data, err := protocol.GameJoined(snap); err == nil {
		d.conns.Send(clientID, data)
	}
	if data, err := protocol.PlayerJoined(snap.Players[clientID]); err == nil {
		d.pub.Publish(ids, []string{clientID}, data)
	}
}

func (d *Dispatcher) handleStart(ctx context.Context, sessionID string) {
	if err := d.sessions.Start(sessionID); err != nil {
		slog.DebugContext(ctx, "start rejected", "session", sessionID, "error", err)
		return
	}

	sess := d.sessions.Get(sessionID)
	if sess == nil {
		return
	}

	sess.Lock()
	snap := sess.Snapshot()
	ids := sess.PlayerIDs()
	sess.Unlock()

	if data, err := protocol.GameStarted(snap); err == nil {
		d.pub.Publish(ids, nil, data)
	}
}

func (d *Dispatcher) handlePlaceArmy(clientID string, c protocol.PlaceArmy) {
	sess := d.sessions.ByPlayer(clientID)
	if sess == nil {
		return
	}

	sess.Lock()
	changed := sess.PlaceArmy(clientID, c.Country, c.Amount)
	var snap *game.Snapshot
	var ids []string
	if changed {
		snap = sess.Snapshot()
		ids = sess.PlayerIDs()
	}
	sess.Unlock()

	// Wrong player, overdrawn reserve, or unowned territory: silent no-op.
	if !changed {
		return
	}

	if data, err := protocol.ArmyPlaced(snap); err == nil {
		d.pub.Publish(ids, nil, data)
	}
}

func (d *Dispatcher) handleAttack(clientID string, c protocol.Attack) {
	sess := d.sessions.ByPlayer(clientID)
	if sess == nil {
		return
	}

	sess.Lock()
	if sess.CurrentPlayerID != clientID {
		sess.Unlock()
		return
	}
	outcome := d.resolver.Resolve(sess, c.From, c.To)
	snap := sess.Snapshot()
	ids := sess.PlayerIDs()
	sess.Unlock()

	// Precondition failures are a normal outcome and still go to clients.
	if data, err := protocol.AttackResult(outcome, snap); err == nil {
		d.pub.Publish(ids, nil, data)
	}
}

func (d *Dispatcher) handleEndTurn(clientID string) {
	sess := d.sessions.ByPlayer(clientID)
	if sess == nil {
		return
	}

	sess.Lock()
	changed := sess.EndTurn(clientID)
	var snap *game.Snapshot
	var ids []string
	if changed {
		snap = sess.Snapshot()
		ids = sess.PlayerIDs()
	}
	sess.Unlock()

	if !changed {
		return
	}

	if data, err := protocol.TurnEnded(snap); err == nil {
		d.pub.Publish(ids, nil, data)
	}
}
