//go:build unix

package filesystem

import "golang.org/x/sys/unix"

// writable asks the kernel, so ownership, ACLs and read-only mounts count.
func writable(name string) bool {
	return unix.Access(name, unix.W_OK) == nil
}
