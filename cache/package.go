/*
Package cache keeps warehouse query results in memory and keeps them
warm. A request resolves a key: a fresh entry is returned immediately, a
miss computes synchronously and registers the key for background
refresh, and thereafter a scheduler re-runs the producer on a cadence so
callers keep hitting warm data.

Eventual freshness is promised, but nothing more: a failing producer
never takes away the last good value, it only delays its replacement.
*/
package cache
