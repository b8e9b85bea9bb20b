//go:build !windows

package cli

// EnableANSI is a no-op outside Windows, terminals there speak ANSI already.
func EnableANSI() {}
