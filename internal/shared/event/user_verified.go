package event

const UserVerifiedDestination string = "auth.user_verified"

type UserVerifiedMessage struct {
	EventID  string `json:"event_id"`
	UserID   int64  `json:"user_id"`
	FullName string `json:"full_name"`
	Channel  string `json:"channel"`
}
