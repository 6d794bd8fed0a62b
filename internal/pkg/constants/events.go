package constants

// NSQ topics for trip lifecycle and matching events
const (
	TopicTripCreated   = "trip.created"
	TopicTripFinished  = "trip.finished"
	TopicTripCancelled = "trip.cancelled"
	TopicMatchFound    = "match.found"
)
