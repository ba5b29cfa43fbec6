package consts

const (
	MemberProfileKey = "member:profile:"
	OAuthStateKey    = "oauth:state:"
	SignupGCLockKey  = "lock:signup:gc"
)
