// Package constants holds configuration values shared across layers.
package constants

// Pub/Sub providers for auth event publishing.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Profile snapshot store drivers.
const (
	ProfileDriverBlob  = "blob"
	ProfileDriverRedis = "redis"
)

// ProfileKeyPrefix namespaces snapshot keys in shared stores.
const ProfileKeyPrefix = "userInfo/"
