package redisrepo

import "fmt"

const (
	USER_ID_KEY = "user-id:%s" // <external identity key>
)

// UserIDKey maps an external identity key to the internal user id. The mapping never changes once created.
func UserIDKey(externalID string) string {
	return fmt.Sprintf(USER_ID_KEY, externalID)
}
