// Package bus carries room invalidation events from mutations to the realtime
// layer. Publishers only name the room that changed; subscribers re-read the
// projection themselves.
package bus

import "sync"

const subscriberBuffer = 64

type Bus struct {
    mu   sync.Mutex
    subs map[chan string]struct{}
}

func New() *Bus {
    return &Bus{subs: make(map[chan string]struct{})}
}

// Publish notifies every subscriber that the room changed. Slow subscribers
// drop events rather than blocking mutations; a dropped event only costs one
// redundant re-read once the next event lands.
func (b *Bus) Publish(roomCode string) {
    b.mu.Lock()
    defer b.mu.Unlock()
    for ch := range b.subs {
        select {
        case ch <- roomCode:
        default:
        }
    }
}

// Subscribe returns a channel of changed room codes and a cancel func that
// closes it.
func (b *Bus) Subscribe() (<-chan string, func()) {
    ch := make(chan string, subscriberBuffer)
    b.mu.Lock()
    b.subs[ch] = struct{}{}
    b.mu.Unlock()
    cancel := func() {
        b.mu.Lock()
        if _, ok := b.subs[ch]; ok {
            delete(b.subs, ch)
            close(ch)
        }
        b.mu.Unlock()
    }
    return ch, cancel
}
