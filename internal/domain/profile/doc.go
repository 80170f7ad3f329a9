/*
Package profile holds the authoritative map of browsing profiles.

Locking is two-level. The store-wide RWMutex guards only the map, the
creation order, and the active pointer, and is released before any
per-profile work. Each profile has its own mutex held for the whole of a
read-modify-write, so operations on different profiles never block each
other and applies on one profile are serialized.

Lock order when both are needed is profile, then tab. Notifications are
published while the profile lock is held so the host sees one profile's
changes in the order they happened.
*/
package profile
