package chat

import (
	"fmt"
	"slices"
	"sync"
)

// DefaultDriver is the client driver name used when none is configured
const DefaultDriver = "chatexchange"

var (
	driversMu sync.RWMutex
	drivers   = make(map[string]func() Client)
)

// Register makes a chat client implementation available under name.
// It panics if newClient is nil or name is already registered.
func Register(name string, newClient func() Client) {
	driversMu.Lock()
	defer driversMu.Unlock()
	if newClient == nil {
		panic("chat: Register client constructor is nil")
	}
	if _, dup := drivers[name]; dup {
		panic("chat: Register called twice for driver " + name)
	}
	drivers[name] = newClient
}

// NewClient creates a client using the driver registered under name
func NewClient(name string) (Client, error) {
	driversMu.RLock()
	newClient, ok := drivers[name]
	driversMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown chat driver %q (registered: %v)", name, Drivers())
	}
	return newClient(), nil
}

// Drivers returns the sorted names of the registered drivers
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
