package sidebar

// overrideKind selects how an Override decides whether per-entry
// toggles are offered.
type overrideKind int

const (
	overrideNone overrideKind = iota
	overrideConfig
	overrideUser
)

// Override selects the settings context a page is rendered in. The zero
// value is NoOverride.
type Override struct {
	kind overrideKind
	user User
}

// NoOverride is used by ordinary pages. No configurable toggles are offered.
func NoOverride() Override {
	return Override{kind: overrideNone}
}

// ConfigMode is used by the instance configuration page, where every
// configurable toggle is offered.
func ConfigMode() Override {
	return Override{kind: overrideConfig}
}

// UserOverride is used by pages that edit the settings of u. Toggles are
// offered only when u is not the guest account.
func UserOverride(u User) Override {
	return Override{kind: overrideUser, user: u}
}

// Configurable reports whether entries with a configurable toggle should
// offer it.
func (o Override) Configurable() bool {
	switch o.kind {
	case overrideUser:
		return o.user != nil && !o.user.RoleAnonymous()
	case overrideConfig:
		return true
	default:
		return false
	}
}

func (o Override) String() string {
	switch o.kind {
	case overrideUser:
		return "user"
	case overrideConfig:
		return "config"
	default:
		return "none"
	}
}
