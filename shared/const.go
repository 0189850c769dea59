package shared

const (
	UserID = "user_id"

	HeaderRateLimitLimit      = "X-RateLimit-Limit"
	HeaderRateLimitRemaining  = "X-RateLimit-Remaining"
	HeaderRateLimitReset      = "X-RateLimit-Reset"
	HeaderRateLimitRetryAfter = "X-RateLimit-Retry-After"

	HeaderRatingLimitLimit      = "X-RatingLimit-Limit"
	HeaderRatingLimitRemaining  = "X-RatingLimit-Remaining"
	HeaderRatingLimitReset      = "X-RatingLimit-Reset"
	HeaderRatingLimitRetryAfter = "X-RatingLimit-Retry-After"

	HeaderRetryAfter = "Retry-After"
)
