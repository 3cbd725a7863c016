package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
)

// ErrAlreadyRunning indicates another widget instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

// InstanceGuard holds the single-instance lock.
type InstanceGuard struct {
	listener net.Listener
}

// AcquireSingleInstance binds a loopback port derived from appID.
// Two widgets writing the same countdown file would fight over it.
func AcquireSingleInstance(appID string) (*InstanceGuard, error) {
	address := fmt.Sprintf("127.0.0.1:%d", portFromID(appID))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", ErrAlreadyRunning, address)
	}
	return &InstanceGuard{listener: listener}, nil
}

// Release frees the lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	err := guard.listener.Close()
	guard.listener = nil
	return err
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil || guard.listener == nil {
		return ""
	}
	return guard.listener.Addr().String()
}

func portFromID(appID string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appID))
	return minPort + int(hash.Sum32()%uint32(maxPort-minPort+1))
}
