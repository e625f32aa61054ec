package ws

const (
	ClockSnapshot = "clock.snapshot"
	ClockTick     = "clock.tick"

	ErrorEvent = "error"
)
