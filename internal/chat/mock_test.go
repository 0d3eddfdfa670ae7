package chat

import (
	"errors"
	"io"
	"iter"
	"slices"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// MockClient is a recording implementation of Client for testing
type MockClient struct {
	mu          sync.Mutex
	loginErr    error
	logoutErr   error
	loginCalls  int
	logoutCalls int
	host        string
	email       string
	rooms       map[int]*MockRoom
}

func newMockClient() *MockClient {
	return &MockClient{rooms: make(map[int]*MockRoom)}
}

func (c *MockClient) Login(host, email, password string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loginCalls++
	c.host = host
	c.email = email
	return c.loginErr
}

func (c *MockClient) Logout() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logoutCalls++
	return c.logoutErr
}

func (c *MockClient) Room(roomID int) Room {
	return c.room(roomID)
}

// room returns the mock for roomID, creating it on first use
func (c *MockClient) room(roomID int) *MockRoom {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.rooms[roomID]
	if !ok {
		r = &MockRoom{id: roomID}
		c.rooms[roomID] = r
	}
	return r
}

func (c *MockClient) LogoutCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.logoutCalls
}

// MockRoom is a recording implementation of Room for testing
type MockRoom struct {
	mu sync.Mutex
	id int

	joinErr    error
	leaveErr   error
	sendErr    error
	sendPanic  bool
	usersErr   error
	leaveDelay time.Duration

	// deliver is handed to the handler inline by Watch, the way a transport
	// may deliver a backlog on the registering goroutine
	deliver Event
	// onSend runs on the sending goroutine after a message is accepted
	onSend func(text string)

	calls   []string // ordered log of mutating calls
	sent    []string
	watches []string
	events  []Event

	pingableIDs   []int
	pingableNames []string
	currentIDs    []int
}

func (r *MockRoom) record(call string) {
	r.calls = append(r.calls, call)
}

func (r *MockRoom) Join() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("join")
	return r.joinErr
}

func (r *MockRoom) Leave() error {
	if r.leaveDelay > 0 {
		time.Sleep(r.leaveDelay)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("leave")
	return r.leaveErr
}

func (r *MockRoom) Watch(handler EventHandler) error {
	r.mu.Lock()
	r.watches = append(r.watches, "callback")
	deliver := r.deliver
	r.mu.Unlock()

	if deliver != nil {
		handler(deliver)
	}
	return nil
}

func (r *MockRoom) WatchPolling(handler EventHandler, interval time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watches = append(r.watches, "polling:"+interval.String())
	return nil
}

func (r *MockRoom) WatchSocket(handler EventHandler) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watches = append(r.watches, "socket")
	return nil
}

func (r *MockRoom) SendMessage(text string) error {
	r.mu.Lock()
	r.record("send")
	if r.sendPanic {
		r.mu.Unlock()
		panic("connection reset")
	}
	if r.sendErr != nil {
		r.mu.Unlock()
		return r.sendErr
	}
	r.sent = append(r.sent, text)
	onSend := r.onSend
	r.mu.Unlock()

	if onSend != nil {
		onSend(text)
	}
	return nil
}

func (r *MockRoom) NewEvents() iter.Seq[Event] {
	r.mu.Lock()
	events := slices.Clone(r.events)
	r.mu.Unlock()
	return slices.Values(events)
}

func (r *MockRoom) PingableUserIDs() ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.pingableIDs), r.usersErr
}

func (r *MockRoom) PingableUserNames() ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.pingableNames), r.usersErr
}

func (r *MockRoom) CurrentUserIDs() ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.currentIDs), r.usersErr
}

func (r *MockRoom) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}

func (r *MockRoom) Sent() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.sent)
}

func (r *MockRoom) Watches() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.watches)
}

func (r *MockRoom) count(call string) int {
	n := 0
	for _, c := range r.Calls() {
		if c == call {
			n++
		}
	}
	return n
}

// MockMessage records replies
type MockMessage struct {
	mu       sync.Mutex
	replyErr error
	replies  []string
}

func (m *MockMessage) Reply(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.replyErr != nil {
		return m.replyErr
	}
	m.replies = append(m.replies, text)
	return nil
}

var errMock = errors.New("mock failure")

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// openTestSession opens a session on a fresh mock client
func openTestSession() (*Session, *MockClient) {
	client := newMockClient()
	s, err := Open(client, "bot@example.com", "secret", "", WithLogger(quietLogger()))
	if err != nil {
		panic(err)
	}
	return s, client
}
