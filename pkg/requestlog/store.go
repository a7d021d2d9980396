package requestlog

// Logger is the minimal interface for recording entries. Connection
// handlers accept a Logger so any sink can be plugged in.
type Logger interface {
	Log(entry *Entry)
}

// Store is a queryable request history. Store embeds Logger, so any Store
// can be used where a Logger is expected.
type Store interface {
	Logger

	// Get retrieves an entry by ID, or nil.
	Get(id string) *Entry

	// List returns matching entries in log order. A nil filter matches all.
	List(filter *Filter) []*Entry

	// Count returns the number of entries.
	Count() int
}

// Subscriber receives entries as they are logged.
type Subscriber chan *Entry

// SubscribableStore extends Store with real-time notification.
type SubscribableStore interface {
	Store

	// Subscribe registers a subscriber. The returned function unregisters
	// it and closes the channel.
	Subscribe() (Subscriber, func())
}
