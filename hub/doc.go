// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package hub fans aggregate snapshots out to live poll viewers.

A Hub keeps one room per poll: the set of connections currently watching
that poll's results. The transport layer subscribes a connection on every
join_poll (including after reconnects - no membership survives a dropped
connection) and the vote handler publishes the fresh snapshot after each
committed vote:

	h := hub.New()
	h.Subscribe(pollID, connID, sink)
	h.Publish(pollID, results)
	h.UnsubscribeAll(connID) // on disconnect

# Delivery Guarantees

  - At-most-once per live connection per publish; no backlog or replay
  - Within one room, deliveries arrive in publish order
  - No ordering guarantee across rooms; rooms lock independently
  - A full sink is skipped, and publish never blocks or reports failure -
    the originating vote's success is independent of delivery

Publishing to an empty or unknown room is a no-op, never an error.
*/
package hub
