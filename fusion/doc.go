// Package fusion reconciles realtime vehicle positions with static
// schedule data and republishes the result on a fixed cadence.
//
// Reconcile resolves human-meaningful route and destination labels for a
// single decoded vehicle using a two-tier headsign fallback. Loop is the
// orchestrator: it polls, reconciles and publishes immutable snapshots via
// an atomic pointer swap so concurrent readers never block on a tick.
package fusion
