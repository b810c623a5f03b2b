package memory

import (
    "context"
    "errors"
    "testing"

    "doctordash/internal/game"
)

func TestAtomicRollsBackOnError(t *testing.T) {
    ctx := context.Background()
    st := New()

    sentinel := errors.New("boom")
    err := st.Atomic(ctx, func(tx game.Store) error {
        if err := tx.CreatePlayer(ctx, &game.Player{ID: "p1", Identity: "alice"}); err != nil {
            t.Fatalf("create inside tx: %v", err)
        }
        if err := tx.CreateRoom(ctx, &game.Room{ID: "r1", Code: "100000", HostID: "p1", MemberIDs: []string{"p1"}}); err != nil {
            t.Fatalf("create room inside tx: %v", err)
        }
        return sentinel
    })
    if err != sentinel {
        t.Fatalf("expected the closure error back, got %v", err)
    }

    if _, err := st.PlayerByIdentity(ctx, "alice"); err != game.ErrPlayerNotFound {
        t.Fatalf("player write should have been rolled back, got %v", err)
    }
    if _, err := st.RoomByCode(ctx, "100000"); err != game.ErrRoomNotFound {
        t.Fatalf("room write should have been rolled back, got %v", err)
    }
}

func TestAtomicCommitsOnSuccess(t *testing.T) {
    ctx := context.Background()
    st := New()

    err := st.Atomic(ctx, func(tx game.Store) error {
        return tx.CreatePlayer(ctx, &game.Player{ID: "p1", Identity: "alice", Name: "Alice"})
    })
    if err != nil {
        t.Fatalf("atomic: %v", err)
    }
    p, err := st.PlayerByIdentity(ctx, "alice")
    if err != nil {
        t.Fatalf("lookup after commit: %v", err)
    }
    if p.Name != "Alice" {
        t.Fatalf("expected committed record, got %+v", p)
    }
}

func TestReturnedRecordsAreCopies(t *testing.T) {
    ctx := context.Background()
    st := New()

    if err := st.CreateRoom(ctx, &game.Room{ID: "r1", Code: "100000", HostID: "p1", MemberIDs: []string{"p1"}}); err != nil {
        t.Fatalf("create room: %v", err)
    }
    room, err := st.RoomByCode(ctx, "100000")
    if err != nil {
        t.Fatalf("lookup: %v", err)
    }
    room.MemberIDs = append(room.MemberIDs, "intruder")

    again, err := st.RoomByCode(ctx, "100000")
    if err != nil {
        t.Fatalf("second lookup: %v", err)
    }
    if len(again.MemberIDs) != 1 {
        t.Fatalf("mutating a returned record must not touch the store, got %v", again.MemberIDs)
    }
}

func TestAnswerLookups(t *testing.T) {
    ctx := context.Background()
    st := New()

    if _, err := st.AnswerByPlayer(ctx, "r1", 1, "p1"); err != game.ErrAnswerNotFound {
        t.Fatalf("expected ErrAnswerNotFound, got %v", err)
    }
    for _, a := range []game.Answer{
        {ID: "a1", RoomID: "r1", Round: 1, PlayerID: "p1", Text: "one"},
        {ID: "a2", RoomID: "r1", Round: 1, PlayerID: "p2", Text: "two"},
        {ID: "a3", RoomID: "r1", Round: 2, PlayerID: "p1", Text: "three"},
        {ID: "a4", RoomID: "r2", Round: 1, PlayerID: "p1", Text: "four"},
    } {
        a := a
        if err := st.CreateAnswer(ctx, &a); err != nil {
            t.Fatalf("create answer %s: %v", a.ID, err)
        }
    }

    round1, err := st.AnswersByRound(ctx, "r1", 1)
    if err != nil {
        t.Fatalf("answers by round: %v", err)
    }
    if len(round1) != 2 {
        t.Fatalf("expected 2 answers for r1 round 1, got %d", len(round1))
    }

    a, err := st.AnswerByPlayer(ctx, "r1", 2, "p1")
    if err != nil {
        t.Fatalf("answer by player: %v", err)
    }
    if a.Text != "three" {
        t.Fatalf("expected round-scoped lookup, got %q", a.Text)
    }
}
