/*
Package resilience provides a circuit breaker for notification delivery.

Each stream subscriber gets its own Breaker. Writes to the subscriber go
through Do; after enough consecutive failures the breaker opens and further
writes fail fast with ErrCircuitOpen until the cool-down elapses, at which
point a limited number of probe writes decide whether to close it again.

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                       [failure]
	                                           v
	                                         Open
*/
package resilience
