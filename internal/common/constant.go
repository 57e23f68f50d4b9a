package common

// AuthorizationHeaderName carries the bearer token on protected requests.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the only accepted authorization scheme.
const BearerScheme = "Bearer"

// WindyAPIKeyHeaderName carries the upstream webcam directory API key.
const WindyAPIKeyHeaderName = "X-WINDY-API-KEY"
