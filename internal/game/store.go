package game

import "context"

// Store is the persistence port for the game. Implementations must make
// Atomic execute its closure as a single serializable unit; every mutation in
// this package performs its dependent reads and writes inside one Atomic call,
// which is what keeps the "exactly one doctor" and "one answer per player per
// round" invariants intact under concurrent callers.
//
// Lookups return the package sentinel errors (ErrPlayerNotFound and friends)
// when the record is absent.
type Store interface {
    Atomic(ctx context.Context, fn func(Store) error) error

    CreatePlayer(ctx context.Context, p *Player) error
    UpdatePlayer(ctx context.Context, p *Player) error
    PlayerByID(ctx context.Context, id string) (*Player, error)
    PlayerByIdentity(ctx context.Context, identity string) (*Player, error)
    CountPlayers(ctx context.Context) (int, error)

    CreateRoom(ctx context.Context, r *Room) error
    UpdateRoom(ctx context.Context, r *Room) error
    RoomByCode(ctx context.Context, code string) (*Room, error)

    CreateSession(ctx context.Context, s *Session) error
    UpdateSession(ctx context.Context, s *Session) error
    SessionByRoom(ctx context.Context, roomID string) (*Session, error)
    DeleteSessionByRoom(ctx context.Context, roomID string) error

    CreateAnswer(ctx context.Context, a *Answer) error
    UpdateAnswer(ctx context.Context, a *Answer) error
    AnswerByPlayer(ctx context.Context, roomID string, round int, playerID string) (*Answer, error)
    AnswersByRound(ctx context.Context, roomID string, round int) ([]Answer, error)

    UpsertActivity(ctx context.Context, a *Activity) error
    ActivitiesByRoom(ctx context.Context, roomCode string) ([]Activity, error)
}
