package entity

type Role int16

const (
	// RoleUnknown is mean role is not known / not set.
	RoleUnknown Role = 0

	// RoleUser mean a regular account with access to its own profile.
	RoleUser Role = 1

	// RoleAdmin mean an account with elevated privileges.
	RoleAdmin Role = 2
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

func (r Role) IsUnknown() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return false
	default:
		return true
	}
}

func (r Role) Ensure() Role {
	switch r {
	case RoleUser:
		return RoleUser
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleUnknown
	}
}

type ApprovalStatus int16

const (
	// ApprovalStatusUnknown is mean status is not known / not set.
	ApprovalStatusUnknown ApprovalStatus = 0

	// ApprovalStatusPending mean the account awaits an admin decision.
	ApprovalStatusPending ApprovalStatus = 1

	// ApprovalStatusApproved mean the account has been approved.
	ApprovalStatusApproved ApprovalStatus = 2

	// ApprovalStatusRejected mean the account has been rejected.
	ApprovalStatusRejected ApprovalStatus = 3
)

func (as ApprovalStatus) String() string {
	switch as {
	case ApprovalStatusPending:
		return "pending"
	case ApprovalStatusApproved:
		return "approved"
	case ApprovalStatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

func (as ApprovalStatus) IsUnknown() bool {
	switch as {
	case ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusRejected:
		return false
	default:
		return true
	}
}

func (as ApprovalStatus) Ensure() ApprovalStatus {
	switch as {
	case ApprovalStatusPending:
		return ApprovalStatusPending
	case ApprovalStatusApproved:
		return ApprovalStatusApproved
	case ApprovalStatusRejected:
		return ApprovalStatusRejected
	default:
		return ApprovalStatusUnknown
	}
}

type Channel int16

const (
	// ChannelUnknown is mean channel is not known / not set.
	ChannelUnknown Channel = 0

	// ChannelEmail mean codes go out as email messages.
	ChannelEmail Channel = 1

	// ChannelSMS mean codes go out as text messages.
	ChannelSMS Channel = 2
)

func (c Channel) String() string {
	switch c {
	case ChannelEmail:
		return "email"
	case ChannelSMS:
		return "sms"
	default:
		return "unknown"
	}
}

func (c Channel) IsUnknown() bool {
	switch c {
	case ChannelEmail, ChannelSMS:
		return false
	default:
		return true
	}
}

// ParseChannel maps a wire channel name to a Channel. The API calls the SMS
// channel "mobile" after the identifier it carries.
func ParseChannel(s string) Channel {
	switch s {
	case "email":
		return ChannelEmail
	case "mobile", "sms":
		return ChannelSMS
	default:
		return ChannelUnknown
	}
}
