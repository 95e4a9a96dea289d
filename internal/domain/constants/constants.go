package constants

// Environments
const (
	EnvProduction = "production"
	EnvDevelop    = "develop"
)

// Pub/Sub providers
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
	PubSubProviderNone   = "none"
)

// Event types carried in the Pub/Sub message attributes
const (
	EventTypeTick      = "drops.tick"
	EventTypeDropBatch = "drops.batch"
)
