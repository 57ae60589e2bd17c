package common

// AuthorizationHeaderName carries the bearer token on authenticated requests.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the only accepted authorization scheme.
const BearerScheme = "Bearer"

// RequestIDHeaderName is echoed on every response for log correlation.
const RequestIDHeaderName = "X-Request-Id"
