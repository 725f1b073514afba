package domain

import (
	"strconv"
	"strings"
)

// RoomPrefix marks voice rooms owned by the counsellor agent.
const RoomPrefix = "counsellor-"

// RoomName is the stable per-user room so every tab joins the same session.
func RoomName(userID int64) string {
	return RoomPrefix + strconv.FormatInt(userID, 10)
}

// IsCounsellorRoom reports whether the agent should handle room.
func IsCounsellorRoom(room string) bool {
	return strings.HasPrefix(room, RoomPrefix)
}

// ParseIdentity turns a participant identity back into a user id.
func ParseIdentity(identity string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(identity), 10, 64)
}
