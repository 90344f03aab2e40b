package notifications

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TicketTTL is how long a websocket ticket stays redeemable.
const TicketTTL = 60 * time.Second

// ErrInvalidTicket is returned for unknown, expired or already used tickets.
var ErrInvalidTicket = errors.New("invalid or expired websocket ticket")

type localTicket struct {
	userID  uint
	expires time.Time
}

// TicketStore issues single-use tickets that let a browser open a websocket
// without putting its bearer token in the URL. Tickets live in Redis when it
// is configured and in process memory otherwise.
type TicketStore struct {
	rdb *redis.Client
	ttl time.Duration
	now func() time.Time

	mu    sync.Mutex
	local map[string]localTicket
}

func NewTicketStore(rdb *redis.Client) *TicketStore {
	return &TicketStore{
		rdb:   rdb,
		ttl:   TicketTTL,
		now:   time.Now,
		local: make(map[string]localTicket),
	}
}

func ticketKey(ticket string) string {
	return "ws_ticket:" + ticket
}

// Issue stores a new ticket for userID.
func (s *TicketStore) Issue(ctx context.Context, userID uint) (string, error) {
	ticket := uuid.NewString()
	if s.rdb != nil {
		if err := s.rdb.Set(ctx, ticketKey(ticket), userID, s.ttl).Err(); err != nil {
			return "", fmt.Errorf("store websocket ticket: %w", err)
		}
		return ticket, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for k, t := range s.local {
		if now.After(t.expires) {
			delete(s.local, k)
		}
	}
	s.local[ticket] = localTicket{userID: userID, expires: now.Add(s.ttl)}
	return ticket, nil
}

// Consume redeems ticket and returns its user id. A ticket can be redeemed once.
func (s *TicketStore) Consume(ctx context.Context, ticket string) (uint, error) {
	if ticket == "" {
		return 0, ErrInvalidTicket
	}
	if s.rdb != nil {
		val, err := s.rdb.GetDel(ctx, ticketKey(ticket)).Result()
		if errors.Is(err, redis.Nil) {
			return 0, ErrInvalidTicket
		}
		if err != nil {
			return 0, fmt.Errorf("redeem websocket ticket: %w", err)
		}
		id, err := strconv.ParseUint(val, 10, 32)
		if err != nil {
			return 0, ErrInvalidTicket
		}
		return uint(id), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.local[ticket]
	delete(s.local, ticket)
	if !ok || s.now().After(t.expires) {
		return 0, ErrInvalidTicket
	}
	return t.userID, nil
}
