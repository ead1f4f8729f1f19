package constants

const (
	UserTypeAnonymous     = "anonymous"
	UserTypeAuthenticated = "authenticated"
)

// AnonymousSignInProvider is the sign_in_provider value Firebase reports
// for anonymous sessions.
const AnonymousSignInProvider = "anonymous"

// DefaultUserName is used when the token carries neither a name nor an email.
const DefaultUserName = "Guest"
