package common

// AuthHeaderName is the HTTP header that carries the access token on
// outbound write requests.
const AuthHeaderName = "Authorization"
