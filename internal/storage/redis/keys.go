package redis

import "fmt"

// Key prefix for all document data
const keyPrefix = "surat"

// documentKey returns the Redis key for a single document
func documentKey(collection, key string) string {
	return fmt.Sprintf("%s:doc:%s:%s", keyPrefix, collection, key)
}

// collectionIndexKey returns the Redis key for the SET of document keys in a collection
func collectionIndexKey(collection string) string {
	return fmt.Sprintf("%s:idx:collection:%s", keyPrefix, collection)
}
