package redisrepo

import "fmt"

const (
	USER_KEY     = "user:%s"           // <userID>
	TIMELINE_KEY = "timeline:%s:%d:%d" // <userID>:<limit>:<offset>
)

func UserKey(userID string) string {
	return fmt.Sprintf(USER_KEY, userID)
}

func TimelineKey(userID string, limit int, offset int) string {
	return fmt.Sprintf(TIMELINE_KEY, userID, limit, offset)
}
