package constants

// JWT claim and context keys shared by middleware and controllers.
const (
	ClaimUserID   = "user_id"
	ClaimUsername = "username"
	ClaimIsAdmin  = "is_admin"

	LocalsUser    = "user"
	LocalsUserID  = "user_id"
	LocalsIsAdmin = "is_admin"
)

// Token lifetime in hours when JWT_TTL_HOURS is unset.
const DefaultTokenTTLHours = 12
