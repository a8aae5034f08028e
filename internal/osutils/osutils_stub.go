//go:build !windows

// Package osutils contains host-OS helpers that keep the server reachable
// from the phone.
package osutils

// IsAdmin is a stub for non-Windows platforms.
func IsAdmin() bool {
	return false
}

// EnsureFirewallRule is a stub for non-Windows platforms; other systems do
// not block inbound LAN traffic by default the way Windows does.
func EnsureFirewallRule(port int) error {
	return nil
}
