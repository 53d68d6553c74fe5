package dtnsim

import "fmt"

// ConfigurationError is returned when a contact plan, generator, or monitor
// registration is invalid before the simulation has started. The run is
// refused rather than started.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("dtnsim: configuration error: %s", e.Reason)
}

// ScheduleInPast is returned by Simulator.Schedule when an event is
// scheduled at a time strictly before the kernel's current time. It is
// fatal: the caller should abort the run.
type ScheduleInPast struct {
	Now, Requested int64
}

func (e *ScheduleInPast) Error() string {
	return fmt.Sprintf("dtnsim: event scheduled at %d ms, before current time %d ms", e.Requested, e.Now)
}

// CapacityExhausted records that a packet reached the head of a contact's
// queue but could not be transmitted within the contact's remaining window.
// It is not fatal; the caller records it via the monitor stream.
type CapacityExhausted struct {
	Contact ContactIdentifier
	PacketID int
}

func (e *CapacityExhausted) Error() string {
	return fmt.Sprintf("dtnsim: packet %d could not be transmitted over contact %s before it ended", e.PacketID, e.Contact)
}

// invariantViolation panics with a descriptive diagnostic. Used for
// conditions that indicate a programming error rather than an expected
// runtime condition (e.g. routing through a non-existent edge).
func invariantViolation(format string, args ...any) {
	panic(fmt.Sprintf("dtnsim: invariant violation: "+format, args...))
}
