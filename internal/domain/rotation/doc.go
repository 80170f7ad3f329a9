/*
Package rotation runs the per-profile User-Agent rotation timers.

Each active rotation is one goroutine tracked by a handle holding its
cancel func and a done channel. Start replaces an existing rotation by
cancelling the old goroutine and waiting for it to exit before returning;
the new goroutine also waits for the old one before arming its timer, so
the two never tick concurrently. Stop and StopAll return only after the
goroutine has exited, so no tick for the profile can fire afterwards.

Ticks for one profile are sequential: the timer is re-armed only after the
previous tick has returned. Ticks for different profiles run independently.
*/
package rotation
