package chathub

// Client is the interface for one realtime connection. It abstracts the
// underlying transport so the hub can route events without knowing how they
// are delivered.
type Client interface {
	// GetSocketID returns the transport-level handle for this connection.
	// A user who reconnects gets a fresh socket ID.
	GetSocketID() string

	// GetUserID returns the identity the connection authenticated with on
	// upgrade. Presence association still requires an explicit login event.
	GetUserID() string

	// GetSendChannel returns the channel the hub writes outbound events to.
	GetSendChannel() chan<- Event

	// Run starts the client's read and write pumps.
	Run()

	// Close shuts down the outbound side of the connection. Called by the
	// hub exactly once, when the client is removed.
	Close()
}
