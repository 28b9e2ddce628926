// Package session implements the streaming delivery engine: a per-conversation
// session that serializes bursty text updates into throttled, strictly-ordered
// mutations against one remote live card.
//
// A session moves through three states: unstarted, active, closed. Closed is
// terminal; a session whose remote endpoint keeps failing trips a circuit
// breaker into closed on its own. All mutations for one session flow through
// a single-consumer task queue, so they reach the remote surface in exactly
// the order their updates were accepted, regardless of network latency
// variance. Delivery failures after start are contained: logged, counted,
// reported through a callback, never raised to the producer.
package session
