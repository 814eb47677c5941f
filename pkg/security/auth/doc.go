// Package auth implements bearer-token authentication for the control
// plane.
//
// The control-plane API is protected by a single shared secret compared in
// constant time. A router with no configured secret rejects every
// control-plane request rather than failing open.
package auth
