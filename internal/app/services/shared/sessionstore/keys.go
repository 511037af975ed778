package sessionstore

import (
	"medportal-service/internal/pkg/constvars"
	"medportal-service/internal/pkg/exceptions"
)

var allowedKeys = func() map[string]struct{} {
	keys := make(map[string]struct{}, len(constvars.SessionKeys))
	for _, key := range constvars.SessionKeys {
		keys[key] = struct{}{}
	}
	return keys
}()

func validateKeys(keys ...string) error {
	for _, key := range keys {
		if _, ok := allowedKeys[key]; !ok {
			return exceptions.ErrUnknownSessionKey(nil, key)
		}
	}
	return nil
}

// filterKnown drops anything outside the enumerated key set.
func filterKnown(values map[string]string) map[string]string {
	filtered := make(map[string]string, len(values))
	for key, value := range values {
		if _, ok := allowedKeys[key]; ok {
			filtered[key] = value
		}
	}
	return filtered
}
