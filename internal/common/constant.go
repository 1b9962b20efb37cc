// Package common contains shared constants and sentinel errors used across
// Housekeeper components.
package common

// AccessTokenHeaderName is the gRPC/HTTP metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// InviteCodeLength is the number of characters in a household invite code.
const InviteCodeLength = 6

// InviteCodeAlphabet lists the characters an invite code is drawn from.
const InviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
