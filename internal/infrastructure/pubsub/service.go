package pubsub

import (
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/rwamarket/auctiond/internal/core/domain"
	"github.com/rwamarket/auctiond/internal/core/ports"
)

const subscriberBufferSize = 32

// Service is an in-process event bus implementing ports.PubSub. Slow
// subscribers never block publishers: events a full subscriber cannot take are
// dropped and logged.
type Service struct {
	lock        sync.Mutex
	subscribers map[string]chan domain.AuctionEvent
	closed      bool
}

// NewService returns a new event bus.
func NewService() *Service {
	return &Service{
		subscribers: make(map[string]chan domain.AuctionEvent),
	}
}

func (s *Service) Publish(event domain.AuctionEvent) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.closed {
		return
	}

	for id, sub := range s.subscribers {
		select {
		case sub <- event:
		default:
			log.WithFields(log.Fields{
				"subscriber": id,
				"topic":      event.Topic,
			}).Warn("dropping event for slow subscriber")
		}
	}
}

func (s *Service) Subscribe() (string, <-chan domain.AuctionEvent) {
	s.lock.Lock()
	defer s.lock.Unlock()

	id := uuid.New().String()
	sub := make(chan domain.AuctionEvent, subscriberBufferSize)
	s.subscribers[id] = sub
	return id, sub
}

func (s *Service) Unsubscribe(id string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	sub, ok := s.subscribers[id]
	if !ok {
		return
	}
	delete(s.subscribers, id)
	close(sub)
}

func (s *Service) Close() {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	for id, sub := range s.subscribers {
		delete(s.subscribers, id)
		close(sub)
	}
}

// interface guard
var _ ports.PubSub = (*Service)(nil)
