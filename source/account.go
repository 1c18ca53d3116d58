package source

// AccountKind discriminates the token-account selection variants.
type AccountKind int

const (
	AccountDefault AccountKind = iota
	AccountByLabel
	AccountByIndex
	AccountAll
)

// AccountSelection picks which stored credential account(s) a fetch uses.
// Label and Index are only meaningful for their respective kinds.
type AccountSelection struct {
	Kind  AccountKind
	Label string
	Index int
}

// DefaultAccount selects the provider's default credential.
func DefaultAccount() AccountSelection { return AccountSelection{Kind: AccountDefault} }

func (s AccountSelection) String() string {
	switch s.Kind {
	case AccountByLabel:
		return "label:" + s.Label
	case AccountByIndex:
		return "index"
	case AccountAll:
		return "all"
	default:
		return "default"
	}
}

// IsOverride reports whether the selection deviates from the default account.
func (s AccountSelection) IsOverride() bool { return s.Kind != AccountDefault }
