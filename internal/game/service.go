package game

import (
    "context"
    "strconv"
    "time"

    "github.com/google/uuid"
)

const (
    defaultTotalRounds = 5

    // Room codes are fixed-width six digit strings drawn from this range.
    roomCodeBase  = 100000
    roomCodeSpan  = 90000
    codeRetries   = 5
)

// Notifier receives the room code of every successful mutation that touched a
// room, so subscribed clients can re-read a fresh snapshot.
type Notifier interface {
    Publish(roomCode string)
}

type noopNotifier struct{}

func (noopNotifier) Publish(string) {}

// Service owns all game operations. Mutations run inside store.Atomic and
// publish the touched room afterwards; queries hit the store directly.
type Service struct {
    store    Store
    rand     Rand
    notifier Notifier
    now      func() time.Time
}

func NewService(store Store, rnd Rand, n Notifier) *Service {
    if rnd == nil {
        rnd = mathRand{}
    }
    if n == nil {
        n = noopNotifier{}
    }
    return &Service{store: store, rand: rnd, notifier: n, now: time.Now}
}

// CreatePlayer registers a profile for the given external identity. Calling it
// again for the same identity returns the existing record unchanged.
//
// Two racing first-time calls can observe the same player count and end up
// with the same avatar tag; that is cosmetic and tolerated.
func (s *Service) CreatePlayer(ctx context.Context, identity, name string) (*Player, error) {
    var out *Player
    err := s.store.Atomic(ctx, func(st Store) error {
        existing, err := st.PlayerByIdentity(ctx, identity)
        if err == nil {
            out = existing
            return nil
        }
        if err != ErrPlayerNotFound {
            return err
        }
        count, err := st.CountPlayers(ctx)
        if err != nil {
            return err
        }
        p := &Player{
            ID:        uuid.NewString(),
            Identity:  identity,
            Name:      name,
            Score:     0,
            IsDoctor:  false,
            AvatarTag: avatarPalette[count%len(avatarPalette)],
            CreatedAt: s.now().UTC(),
        }
        if err := st.CreatePlayer(ctx, p); err != nil {
            return err
        }
        out = p
        return nil
    })
    return out, err
}

func (s *Service) GetPlayerByIdentity(ctx context.Context, identity string) (*Player, error) {
    return s.store.PlayerByIdentity(ctx, identity)
}

// GetPlayer resolves the caller's profile, returning nil instead of an error
// when none exists yet. Clients use the nil result to route to profile setup.
func (s *Service) GetPlayer(ctx context.Context, identity string) (*Player, error) {
    p, err := s.store.PlayerByIdentity(ctx, identity)
    if err == ErrPlayerNotFound {
        return nil, nil
    }
    return p, err
}

func (s *Service) GetUsername(ctx context.Context, identity string) (string, error) {
    p, err := s.store.PlayerByIdentity(ctx, identity)
    if err != nil {
        return "", err
    }
    return p.Name, nil
}

// SetUsername renames the caller's player.
func (s *Service) SetUsername(ctx context.Context, identity, name string) error {
    return s.store.Atomic(ctx, func(st Store) error {
        p, err := st.PlayerByIdentity(ctx, identity)
        if err != nil {
            return err
        }
        p.Name = name
        return st.UpdatePlayer(ctx, p)
    })
}

// CreateRoom opens a new room with the caller as host and sole member, and
// returns its shareable code. Codes are drawn at random and re-drawn on
// collision with an existing room, up to a small retry budget.
func (s *Service) CreateRoom(ctx context.Context, identity string) (string, error) {
    var code string
    err := s.store.Atomic(ctx, func(st Store) error {
        p, err := st.PlayerByIdentity(ctx, identity)
        if err != nil {
            return err
        }
        code = ""
        for i := 0; i < codeRetries; i++ {
            candidate := strconv.Itoa(roomCodeBase + s.rand.Intn(roomCodeSpan))
            if _, err := st.RoomByCode(ctx, candidate); err == ErrRoomNotFound {
                code = candidate
                break
            } else if err != nil {
                return err
            }
        }
        if code == "" {
            return ErrRoomCodeSpace
        }
        return st.CreateRoom(ctx, &Room{
            ID:        uuid.NewString(),
            Code:      code,
            HostID:    p.ID,
            MemberIDs: []string{p.ID},
            CreatedAt: s.now().UTC(),
        })
    })
    if err != nil {
        return "", err
    }
    return code, nil
}

// JoinRoom appends the caller to the roster. Repeat calls are no-ops.
func (s *Service) JoinRoom(ctx context.Context, identity, roomCode string) (bool, error) {
    err := s.store.Atomic(ctx, func(st Store) error {
        room, err := st.RoomByCode(ctx, roomCode)
        if err != nil {
            return err
        }
        p, err := st.PlayerByIdentity(ctx, identity)
        if err != nil {
            return err
        }
        if contains(room.MemberIDs, p.ID) {
            return nil
        }
        room.MemberIDs = append(room.MemberIDs, p.ID)
        return st.UpdateRoom(ctx, room)
    })
    if err != nil {
        return false, err
    }
    s.notifier.Publish(roomCode)
    return true, nil
}

func (s *Service) GetRoom(ctx context.Context, roomCode string) (*Room, error) {
    return s.store.RoomByCode(ctx, roomCode)
}

// ListPlayersByRoom hydrates the roster in join order. Members whose player
// record has vanished are skipped rather than failing the listing.
func (s *Service) ListPlayersByRoom(ctx context.Context, roomCode string) ([]Player, error) {
    room, err := s.store.RoomByCode(ctx, roomCode)
    if err != nil {
        return nil, err
    }
    players := make([]Player, 0, len(room.MemberIDs))
    for _, id := range room.MemberIDs {
        p, err := s.store.PlayerByID(ctx, id)
        if err == ErrPlayerNotFound {
            continue
        }
        if err != nil {
            return nil, err
        }
        players = append(players, *p)
    }
    return players, nil
}

func (s *Service) IsHost(ctx context.Context, identity, roomCode string) (bool, error) {
    room, err := s.store.RoomByCode(ctx, roomCode)
    if err != nil {
        return false, err
    }
    p, err := s.store.PlayerByIdentity(ctx, identity)
    if err != nil {
        return false, err
    }
    return room.HostID == p.ID, nil
}

// memberOf resolves the caller and checks roster membership for the room.
func memberOf(ctx context.Context, st Store, identity string, room *Room) (*Player, error) {
    p, err := st.PlayerByIdentity(ctx, identity)
    if err != nil {
        return nil, err
    }
    if !contains(room.MemberIDs, p.ID) {
        return nil, ErrNotInRoom
    }
    return p, nil
}

func contains(ids []string, id string) bool {
    for _, v := range ids {
        if v == id {
            return true
        }
    }
    return false
}
