package ports

import "github.com/rwamarket/auctiond/internal/core/domain"

// PubSub broadcasts domain events to interested subscribers, like the live
// websocket feed. Publishing happens after the originating operation has been
// committed, never inside it.
type PubSub interface {
	// Publish delivers the event to every active subscriber.
	Publish(event domain.AuctionEvent)
	// Subscribe registers a new subscriber and returns its id along with the
	// channel events are delivered on.
	Subscribe() (string, <-chan domain.AuctionEvent)
	// Unsubscribe removes a subscriber and closes its channel.
	Unsubscribe(id string)
	// Close shuts down the bus and closes every subscriber channel.
	Close()
}
