package queuedomain

import (
	"fmt"
	"sort"

	"github.com/Black-And-White-Club/frolf-broadcast/app/shared"
)

var (
	// ErrEmptyCard is returned when a card without players is supplied.
	ErrEmptyCard = fmt.Errorf("%w: card has no players", shared.ErrData)

	// ErrCardIndex is returned when a card index is out of range.
	ErrCardIndex = fmt.Errorf("%w: card index out of range", shared.ErrIndex)

	// ErrQueueEmpty is returned by NextQueued when nobody is queued.
	ErrQueueEmpty = fmt.Errorf("%w: queue is empty", shared.ErrIndex)
)

// ManagedPlayer is a player the production is tracking: on the current card,
// waiting in the queue, or focused. QueuePosition is 0 when not queued.
type ManagedPlayer struct {
	PlayerID      string
	InsideCard    bool
	QueuePosition int
}

// Queued reports whether the player is waiting in the queue.
func (p ManagedPlayer) Queued() bool { return p.QueuePosition > 0 }

// Manager decides which player is live. It always has exactly one focused entry.
type Manager struct {
	players []ManagedPlayer
	focus   int
}

// NewManager creates a manager for card, focusing its first player.
func NewManager(card []string) (*Manager, error) {
	card = dedupe(card)
	if len(card) == 0 {
		return nil, ErrEmptyCard
	}
	m := &Manager{}
	for _, id := range card {
		m.players = append(m.players, ManagedPlayer{PlayerID: id, InsideCard: true})
	}
	return m, nil
}

// Focused returns the id of the live player.
func (m *Manager) Focused() string {
	return m.players[m.focus].PlayerID
}

// FocusIndex returns the index of the focused entry in Players.
func (m *Manager) FocusIndex() int { return m.focus }

// Players returns a copy of the managed entries in order.
func (m *Manager) Players() []ManagedPlayer {
	return append([]ManagedPlayer(nil), m.players...)
}

// Card returns the ids of players inside the card, in card order.
func (m *Manager) Card() []string {
	var ids []string
	for _, p := range m.players {
		if p.InsideCard {
			ids = append(ids, p.PlayerID)
		}
	}
	return ids
}

// Queue returns queued ids by ascending queue position.
func (m *Manager) Queue() []string {
	queued := m.queued()
	ids := make([]string, len(queued))
	for i, p := range queued {
		ids[i] = p.PlayerID
	}
	return ids
}

func (m *Manager) queued() []ManagedPlayer {
	var out []ManagedPlayer
	for _, p := range m.players {
		if p.Queued() {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].QueuePosition < out[j].QueuePosition })
	return out
}

func (m *Manager) find(id string) int {
	for i, p := range m.players {
		if p.PlayerID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) maxPosition() int {
	highest := 0
	for _, p := range m.players {
		if p.QueuePosition > highest {
			highest = p.QueuePosition
		}
	}
	return highest
}

// Replace rebuilds card membership. Queued players missing from the new card
// keep their queue position and move out of the card; they lead the new order,
// oldest first, followed by the card in the given order. The focused player is
// always retained.
func (m *Manager) Replace(card []string) error {
	card = dedupe(card)
	if len(card) == 0 {
		return ErrEmptyCard
	}
	focusedID := m.Focused()

	inCard := make(map[string]bool, len(card))
	for _, id := range card {
		inCard[id] = true
	}

	next := make([]ManagedPlayer, 0, len(m.players)+len(card))
	for _, p := range m.queued() {
		if !inCard[p.PlayerID] {
			p.InsideCard = false
			next = append(next, p)
		}
	}
	if !inCard[focusedID] {
		if i := m.find(focusedID); i >= 0 && !m.players[i].Queued() {
			next = append(next, ManagedPlayer{PlayerID: focusedID})
		}
	}
	for _, id := range card {
		entry := ManagedPlayer{PlayerID: id, InsideCard: true}
		if i := m.find(id); i >= 0 {
			entry.QueuePosition = m.players[i].QueuePosition
		}
		next = append(next, entry)
	}

	m.players = next
	m.focus = m.find(focusedID)
	if m.focus < 0 || m.focus >= len(m.players) {
		m.focus = len(m.players) - 1
	}
	return nil
}

// AddToQueue appends id to the end of the queue. Already queued players keep
// their place; unknown players are tracked outside the card.
func (m *Manager) AddToQueue(id string) {
	i := m.find(id)
	if i >= 0 {
		if !m.players[i].Queued() {
			m.players[i].QueuePosition = m.maxPosition() + 1
		}
		return
	}
	m.players = append(m.players, ManagedPlayer{PlayerID: id, QueuePosition: m.maxPosition() + 1})
}

// NextQueued focuses the head of the queue and moves everyone else up one place.
// Entries that are no longer in the card, queued or focused are dropped.
func (m *Manager) NextQueued() (string, error) {
	if len(m.queued()) == 0 {
		return "", ErrQueueEmpty
	}

	var focusedID string
	for i := range m.players {
		if !m.players[i].Queued() {
			continue
		}
		m.players[i].QueuePosition--
		if m.players[i].QueuePosition == 0 {
			focusedID = m.players[i].PlayerID
		}
	}

	kept := m.players[:0]
	for _, p := range m.players {
		if p.InsideCard || p.Queued() || p.PlayerID == focusedID {
			kept = append(kept, p)
		}
	}
	m.players = kept
	m.focus = m.find(focusedID)
	return focusedID, nil
}

// SetFocusedByCardIndex focuses the i-th player of the card.
func (m *Manager) SetFocusedByCardIndex(i int) error {
	seen := 0
	for idx, p := range m.players {
		if !p.InsideCard {
			continue
		}
		if seen == i {
			m.focus = idx
			return nil
		}
		seen++
	}
	return fmt.Errorf("index %d of %d: %w", i, seen, ErrCardIndex)
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
