package common

// AuthorizationHeader is the HTTP header carrying the bearer credential on
// outbound API requests.
const AuthorizationHeader = "Authorization"

// BearerPrefix prefixes the token value inside AuthorizationHeader.
const BearerPrefix = "Bearer "
