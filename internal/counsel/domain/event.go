package domain

// UniversityUpdateTopic is the data channel topic voice clients listen on.
const UniversityUpdateTopic = "university_update"

const (
	ActionShortlist = "shortlist"
	ActionLock      = "lock"
	ActionRemove    = "remove"
)

// UniversityUpdate is broadcast whenever a user's selection changes.
type UniversityUpdate struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	ID     string `json:"id"`
}

func NewUniversityUpdate(action, universityID string) UniversityUpdate {
	return UniversityUpdate{
		Type:   UniversityUpdateTopic,
		Action: action,
		ID:     universityID,
	}
}

// ActionForStatus maps a selection status onto the event action name.
func ActionForStatus(s SelectionStatus) string {
	if s == StatusLocked {
		return ActionLock
	}
	return ActionShortlist
}
