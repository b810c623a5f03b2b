// Package memory is a map-backed implementation of the game store. It backs
// the test suite and the database-less dev mode. A single coarse mutex makes
// every Atomic block trivially serializable; failed blocks roll back by
// restoring a snapshot taken on entry.
package memory

import (
    "context"
    "sync"

    "doctordash/internal/game"
)

type Store struct {
    mu sync.Mutex
    d  *data
}

// tx is the view handed to Atomic closures. It reuses the same data but skips
// locking; the outer Atomic already holds the mutex.
type tx struct {
    d *data
}

type data struct {
    players     map[string]*game.Player // by id
    byIdentity  map[string]string       // identity -> player id
    rooms       map[string]*game.Room   // by id
    byRoomCode  map[string]string       // code -> room id
    sessions    map[string]*game.Session // by room id
    answers     map[string]*game.Answer  // by (room, round, player)
    activities  map[string]*game.Activity // by (room code, player)
}

func New() *Store {
    return &Store{d: newData()}
}

func newData() *data {
    return &data{
        players:    make(map[string]*game.Player),
        byIdentity: make(map[string]string),
        rooms:      make(map[string]*game.Room),
        byRoomCode: make(map[string]string),
        sessions:   make(map[string]*game.Session),
        answers:    make(map[string]*game.Answer),
        activities: make(map[string]*game.Activity),
    }
}

func (s *Store) Atomic(ctx context.Context, fn func(game.Store) error) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    snapshot := s.d.clone()
    if err := fn(tx{d: s.d}); err != nil {
        s.d = snapshot
        return err
    }
    return nil
}

// Nested Atomic joins the enclosing block.
func (t tx) Atomic(ctx context.Context, fn func(game.Store) error) error {
    return fn(t)
}

func (s *Store) CreatePlayer(ctx context.Context, p *game.Player) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.d.createPlayer(p)
}

func (t tx) CreatePlayer(ctx context.Context, p *game.Player) error {
    return t.d.createPlayer(p)
}

func (s *Store) UpdatePlayer(ctx context.Context, p *game.Player) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.d.updatePlayer(p)
}

func (t tx) UpdatePlayer(ctx context.Context, p *game.Player) error {
    return t.d.updatePlayer(p)
}

func (s *Store) PlayerByID(ctx context.Context, id string) (*game.Player, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.d.playerByID(id)
}

func (t tx) PlayerByID(ctx context.Context, id string) (*game.Player, error) {
    return t.d.playerByID(id)
}

func (s *Store) PlayerByIdentity(ctx context.Context, identity string) (*game.Player, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.d.playerByIdentity(identity)
}

func (t tx) PlayerByIdentity(ctx context.Context, identity string) (*game.Player, error) {
    return t.d.playerByIdentity(identity)
}

func (s *Store) CountPlayers(ctx context.Context) (int, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    return len(s.d.players), nil
}

func (t tx) CountPlayers(ctx context.Context) (int, error) {
    return len(t.d.players), nil
}

func (s *Store) CreateRoom(ctx context.Context, r *game.Room) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.d.createRoom(r)
}

func (t tx) CreateRoom(ctx context.Context, r *game.Room) error {
    return t.d.createRoom(r)
}

func (s *Store) UpdateRoom(ctx context.Context, r *game.Room) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.d.updateRoom(r)
}

func (t tx) UpdateRoom(ctx context.Context, r *game.Room) error {
    return t.d.updateRoom(r)
}

func (s *Store) RoomByCode(ctx context.Context, code string) (*game.Room, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.d.roomByCode(code)
}

func (t tx) RoomByCode(ctx context.Context, code string) (*game.Room, error) {
    return t.d.roomByCode(code)
}

func (s *Store) CreateSession(ctx context.Context, sess *game.Session) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.d.createSession(sess)
}

func (t tx) CreateSession(ctx context.Context, sess *game.Session) error {
    return t.d.createSession(sess)
}

func (s *Store) UpdateSession(ctx context.Context, sess *game.Session) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.d.updateSession(sess)
}

func (t tx) UpdateSession(ctx context.Context, sess *game.Session) error {
    return t.d.updateSession(sess)
}

func (s *Store) SessionByRoom(ctx context.Context, roomID string) (*game.Session, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.d.sessionByRoom(roomID)
}

func (t tx) SessionByRoom(ctx context.Context, roomID string) (*game.Session, error) {
    return t.d.sessionByRoom(roomID)
}

func (s *Store) DeleteSessionByRoom(ctx context.Context, roomID string) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.d.deleteSessionByRoom(roomID)
}

func (t tx) DeleteSessionByRoom(ctx context.Context, roomID string) error {
    return t.d.deleteSessionByRoom(roomID)
}

func (s *Store) CreateAnswer(ctx context.Context, a *game.Answer) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.d.createAnswer(a)
}

func (t tx) CreateAnswer(ctx context.Context, a *game.Answer) error {
    return t.d.createAnswer(a)
}

func (s *Store) UpdateAnswer(ctx context.Context, a *game.Answer) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.d.updateAnswer(a)
}

func (t tx) UpdateAnswer(ctx context.Context, a *game.Answer) error {
    return t.d.updateAnswer(a)
}

func (s *Store) AnswerByPlayer(ctx context.Context, roomID string, round int, playerID string) (*game.Answer, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.d.answerByPlayer(roomID, round, playerID)
}

func (t tx) AnswerByPlayer(ctx context.Context, roomID string, round int, playerID string) (*game.Answer, error) {
    return t.d.answerByPlayer(roomID, round, playerID)
}

func (s *Store) AnswersByRound(ctx context.Context, roomID string, round int) ([]game.Answer, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.d.answersByRound(roomID, round)
}

func (t tx) AnswersByRound(ctx context.Context, roomID string, round int) ([]game.Answer, error) {
    return t.d.answersByRound(roomID, round)
}

func (s *Store) UpsertActivity(ctx context.Context, a *game.Activity) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.d.upsertActivity(a)
}

func (t tx) UpsertActivity(ctx context.Context, a *game.Activity) error {
    return t.d.upsertActivity(a)
}

func (s *Store) ActivitiesByRoom(ctx context.Context, roomCode string) ([]game.Activity, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.d.activitiesByRoom(roomCode)
}

func (t tx) ActivitiesByRoom(ctx context.Context, roomCode string) ([]game.Activity, error) {
    return t.d.activitiesByRoom(roomCode)
}
