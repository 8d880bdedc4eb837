package engine

// Action is what a tick does with the notification record.
type Action int

const (
	// ActionNone leaves everything untouched.
	ActionNone Action = iota
	// ActionNotify sends the offer and records it on success.
	ActionNotify
	// ActionSuppress skips an offer that was already announced.
	ActionSuppress
	// ActionReset clears the record after the offer went away.
	ActionReset
)

func (a Action) String() string {
	switch a {
	case ActionNotify:
		return "notify"
	case ActionSuppress:
		return "suppress"
	case ActionReset:
		return "reset"
	default:
		return "none"
	}
}

// Decide maps the offer state and the notification state to an action:
//
//	qualifies  notified  action
//	false      false     none
//	false      true      reset
//	true       false     notify
//	true       true      suppress
func Decide(qualifies, notified bool) Action {
	switch {
	case qualifies && notified:
		return ActionSuppress
	case qualifies:
		return ActionNotify
	case notified:
		return ActionReset
	default:
		return ActionNone
	}
}
