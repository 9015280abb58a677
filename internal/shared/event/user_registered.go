package event

const UserRegisteredDestination string = "auth.user_registered"

type UserRegisteredMessage struct {
	EventID    string `json:"event_id"`
	UserID     int64  `json:"user_id"`
	FullName   string `json:"full_name"`
	Identifier string `json:"identifier"`
	Channel    string `json:"channel"`
}
