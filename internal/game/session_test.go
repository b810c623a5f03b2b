package game_test

import (
    "context"
    "testing"

    "doctordash/internal/game"
    "doctordash/internal/store/memory"
)

// threePlayerRoom sets up alice (host), bob and carol in one room.
func threePlayerRoom(t *testing.T, rnd *scriptedRand) (*game.Service, *memory.Store, string) {
    t.Helper()
    ctx := context.Background()
    st := memory.New()
    svc := game.NewService(st, rnd, nil)
    for _, id := range []string{"alice", "bob", "carol"} {
        if _, err := svc.CreatePlayer(ctx, id, id); err != nil {
            t.Fatalf("create %s: %v", id, err)
        }
    }
    code, err := svc.CreateRoom(ctx, "alice")
    if err != nil {
        t.Fatalf("create room: %v", err)
    }
    for _, id := range []string{"bob", "carol"} {
        if _, err := svc.JoinRoom(ctx, id, code); err != nil {
            t.Fatalf("join %s: %v", id, err)
        }
    }
    return svc, st, code
}

func scoresByName(t *testing.T, svc *game.Service, code string) map[string]int {
    t.Helper()
    players, err := svc.ListPlayersByRoom(context.Background(), code)
    if err != nil {
        t.Fatalf("list players: %v", err)
    }
    out := make(map[string]int, len(players))
    for _, p := range players {
        out[p.Name] = p.Score
    }
    return out
}

func TestStartGameAssignsExactlyOneDoctor(t *testing.T) {
    ctx := context.Background()
    // Doctor pick index 1 (bob), then prompt pick.
    svc, _, code := threePlayerRoom(t, &scriptedRand{ints: []int{0, 1, 0}})
    // First scripted value was consumed by CreateRoom's code draw.

    if err := svc.StartGame(ctx, "alice", code, 3); err != nil {
        t.Fatalf("start game: %v", err)
    }

    players, err := svc.ListPlayersByRoom(ctx, code)
    if err != nil {
        t.Fatalf("list players: %v", err)
    }
    doctors := 0
    for _, p := range players {
        if p.IsDoctor {
            doctors++
            if p.Name != "bob" {
                t.Fatalf("expected bob to be doctor, got %s", p.Name)
            }
        }
    }
    if doctors != 1 {
        t.Fatalf("expected exactly one doctor, got %d", doctors)
    }

    // Restarting reassigns from scratch; still exactly one doctor.
    if err := svc.StartGame(ctx, "alice", code, 3); err != nil {
        t.Fatalf("restart game: %v", err)
    }
    players, _ = svc.ListPlayersByRoom(ctx, code)
    doctors = 0
    for _, p := range players {
        if p.IsDoctor {
            doctors++
        }
    }
    if doctors != 1 {
        t.Fatalf("expected exactly one doctor after restart, got %d", doctors)
    }
}

func TestStartGameHostOnly(t *testing.T) {
    ctx := context.Background()
    svc, _, code := threePlayerRoom(t, &scriptedRand{})

    if err := svc.StartGame(ctx, "bob", code, 3); err != game.ErrNotHost {
        t.Fatalf("expected ErrNotHost, got %v", err)
    }
    if _, err := svc.CreatePlayer(ctx, "mallory", "Mallory"); err != nil {
        t.Fatalf("create mallory: %v", err)
    }
    if err := svc.StartGame(ctx, "mallory", code, 3); err != game.ErrNotInRoom {
        t.Fatalf("expected ErrNotInRoom for outsider, got %v", err)
    }
}

func TestStartGameDefaultsToFiveRounds(t *testing.T) {
    ctx := context.Background()
    svc, _, code := threePlayerRoom(t, &scriptedRand{})

    if err := svc.StartGame(ctx, "alice", code, 0); err != nil {
        t.Fatalf("start game: %v", err)
    }
    state, err := svc.GetGameState(ctx, code)
    if err != nil {
        t.Fatalf("get state: %v", err)
    }
    if state.Round == nil || state.Round.TotalRounds != 5 {
        t.Fatalf("expected 5 total rounds by default, got %+v", state.Round)
    }
    if state.Round.CurrentRound != 1 {
        t.Fatalf("expected round 1, got %d", state.Round.CurrentRound)
    }
    if state.Phase != game.PhaseAnswering {
        t.Fatalf("expected answering phase, got %s", state.Phase)
    }
    if state.Round.Prompt == "" {
        t.Fatal("expected a prompt to be drawn")
    }
}

func TestSubmitAnswerUpsert(t *testing.T) {
    ctx := context.Background()
    svc, _, code := threePlayerRoom(t, &scriptedRand{})
    if err := svc.StartGame(ctx, "alice", code, 3); err != nil {
        t.Fatalf("start game: %v", err)
    }

    if err := svc.SubmitAnswer(ctx, "bob", code, "first draft"); err != nil {
        t.Fatalf("submit: %v", err)
    }
    if err := svc.SubmitAnswer(ctx, "bob", code, "final answer"); err != nil {
        t.Fatalf("resubmit: %v", err)
    }

    state, err := svc.GetGameState(ctx, code)
    if err != nil {
        t.Fatalf("get state: %v", err)
    }
    if len(state.Round.Answers) != 1 {
        t.Fatalf("resubmission must not duplicate, got %d answers", len(state.Round.Answers))
    }
    if state.Round.Answers[0].Text != "final answer" {
        t.Fatalf("expected the replacement text, got %q", state.Round.Answers[0].Text)
    }
}

func TestSubmitAnswerPhaseAndMembershipGuards(t *testing.T) {
    ctx := context.Background()
    svc, _, code := threePlayerRoom(t, &scriptedRand{})

    if err := svc.SubmitAnswer(ctx, "bob", code, "too early"); err != game.ErrSessionNotFound {
        t.Fatalf("expected ErrSessionNotFound before start, got %v", err)
    }

    if err := svc.StartGame(ctx, "alice", code, 3); err != nil {
        t.Fatalf("start game: %v", err)
    }
    if _, err := svc.CreatePlayer(ctx, "mallory", "Mallory"); err != nil {
        t.Fatalf("create mallory: %v", err)
    }
    if err := svc.SubmitAnswer(ctx, "mallory", code, "sneaky"); err != game.ErrNotInRoom {
        t.Fatalf("expected ErrNotInRoom, got %v", err)
    }

    for _, id := range []string{"alice", "bob", "carol"} {
        if err := svc.SubmitAnswer(ctx, id, code, id+" says"); err != nil {
            t.Fatalf("submit %s: %v", id, err)
        }
    }
    // Phase flipped to guessing; further submissions are rejected.
    if err := svc.SubmitAnswer(ctx, "bob", code, "late edit"); err != game.ErrInvalidPhase {
        t.Fatalf("expected ErrInvalidPhase after quorum, got %v", err)
    }
}

func TestQuorumAdvancesToGuessing(t *testing.T) {
    ctx := context.Background()
    svc, _, code := threePlayerRoom(t, &scriptedRand{})
    if err := svc.StartGame(ctx, "alice", code, 3); err != nil {
        t.Fatalf("start game: %v", err)
    }

    for _, id := range []string{"alice", "bob"} {
        if err := svc.SubmitAnswer(ctx, id, code, id+" answer"); err != nil {
            t.Fatalf("submit %s: %v", id, err)
        }
        state, _ := svc.GetGameState(ctx, code)
        if state.Phase != game.PhaseAnswering {
            t.Fatalf("phase should stay answering before quorum, got %s", state.Phase)
        }
    }
    if err := svc.SubmitAnswer(ctx, "carol", code, "carol answer"); err != nil {
        t.Fatalf("submit carol: %v", err)
    }
    state, _ := svc.GetGameState(ctx, code)
    if state.Phase != game.PhaseGuessing {
        t.Fatalf("phase should be guessing after the final submission, got %s", state.Phase)
    }
}

func TestSelectAnswerScoringAndGuards(t *testing.T) {
    ctx := context.Background()
    // Room code draw, doctor pick index 1 (bob), prompt pick.
    svc, _, code := threePlayerRoom(t, &scriptedRand{ints: []int{0, 1, 0}})
    if err := svc.StartGame(ctx, "alice", code, 3); err != nil {
        t.Fatalf("start game: %v", err)
    }

    // Guard: selecting during answering fails.
    if err := svc.SelectAnswer(ctx, "alice", code, "anything"); err != game.ErrInvalidPhase {
        t.Fatalf("expected ErrInvalidPhase while answering, got %v", err)
    }

    if err := svc.SubmitAnswer(ctx, "alice", code, "peanut butter"); err != nil {
        t.Fatalf("submit alice: %v", err)
    }
    if err := svc.SubmitAnswer(ctx, "carol", code, "a kazoo"); err != nil {
        t.Fatalf("submit carol: %v", err)
    }
    if err := svc.SubmitAnswer(ctx, "bob", code, "my homework"); err != nil {
        t.Fatalf("submit bob: %v", err)
    }

    // Guard: outsiders cannot resolve the round.
    if _, err := svc.CreatePlayer(ctx, "mallory", "Mallory"); err != nil {
        t.Fatalf("create mallory: %v", err)
    }
    if err := svc.SelectAnswer(ctx, "mallory", code, "my homework"); err != game.ErrNotInRoom {
        t.Fatalf("expected ErrNotInRoom, got %v", err)
    }

    if err := svc.SelectAnswer(ctx, "carol", code, "my homework"); err != nil {
        t.Fatalf("select: %v", err)
    }

    scores := scoresByName(t, svc, code)
    if scores["alice"] != 10 || scores["carol"] != 10 {
        t.Fatalf("guessers should each have 10, got %v", scores)
    }
    // Doctor collects the shared reward plus the convincing-answer bonus.
    if scores["bob"] != 15 {
        t.Fatalf("doctor should have 15, got %v", scores)
    }

    state, _ := svc.GetGameState(ctx, code)
    if state.Phase != game.PhaseRevealing {
        t.Fatalf("expected revealing, got %s", state.Phase)
    }
    if state.Round.SelectedAnswer != "my homework" {
        t.Fatalf("expected selected answer recorded, got %q", state.Round.SelectedAnswer)
    }
}

func TestSelectAnswerWrongGuessStillPaysDoctor(t *testing.T) {
    ctx := context.Background()
    svc, _, code := threePlayerRoom(t, &scriptedRand{ints: []int{0, 1, 0}})
    if err := svc.StartGame(ctx, "alice", code, 3); err != nil {
        t.Fatalf("start game: %v", err)
    }
    for _, sub := range []struct{ id, text string }{
        {"alice", "peanut butter"}, {"carol", "a kazoo"}, {"bob", "my homework"},
    } {
        if err := svc.SubmitAnswer(ctx, sub.id, code, sub.text); err != nil {
            t.Fatalf("submit %s: %v", sub.id, err)
        }
    }

    if err := svc.SelectAnswer(ctx, "alice", code, "a kazoo"); err != nil {
        t.Fatalf("select: %v", err)
    }

    scores := scoresByName(t, svc, code)
    if scores["alice"] != 0 || scores["carol"] != 0 {
        t.Fatalf("wrong guess should award nothing to guessers, got %v", scores)
    }
    if scores["bob"] != 5 {
        t.Fatalf("doctor bonus should be paid regardless, got %v", scores)
    }
}

func TestNextRoundAdvancesAndParksAtGameOver(t *testing.T) {
    ctx := context.Background()
    svc, _, code := threePlayerRoom(t, &scriptedRand{})
    if err := svc.StartGame(ctx, "alice", code, 2); err != nil {
        t.Fatalf("start game: %v", err)
    }

    // Guard: advancing mid-answering fails.
    if err := svc.NextRound(ctx, code); err != game.ErrInvalidPhase {
        t.Fatalf("expected ErrInvalidPhase, got %v", err)
    }

    playRound := func(round int) {
        for _, id := range []string{"alice", "bob", "carol"} {
            if err := svc.SubmitAnswer(ctx, id, code, id+" round answer"); err != nil {
                t.Fatalf("submit %s round %d: %v", id, round, err)
            }
        }
        if err := svc.SelectAnswer(ctx, "alice", code, "whatever"); err != nil {
            t.Fatalf("select round %d: %v", round, err)
        }
    }

    playRound(1)
    if err := svc.NextRound(ctx, code); err != nil {
        t.Fatalf("next round: %v", err)
    }
    state, _ := svc.GetGameState(ctx, code)
    if state.Round.CurrentRound != 2 || state.Phase != game.PhaseAnswering {
        t.Fatalf("expected round 2 answering, got round %d phase %s", state.Round.CurrentRound, state.Phase)
    }
    if state.Round.SelectedAnswer != "" {
        t.Fatalf("selected answer should be cleared, got %q", state.Round.SelectedAnswer)
    }
    if len(state.Round.Answers) != 0 {
        t.Fatalf("round 1 answers must not leak into round 2, got %d", len(state.Round.Answers))
    }

    playRound(2)
    if err := svc.NextRound(ctx, code); err != nil {
        t.Fatalf("final next round: %v", err)
    }
    state, _ = svc.GetGameState(ctx, code)
    if state.Phase != game.PhaseWaiting {
        t.Fatalf("expected waiting at game over, got %s", state.Phase)
    }
    if state.Round.CurrentRound != 2 {
        t.Fatalf("round counter must not advance past the final round, got %d", state.Round.CurrentRound)
    }

    // Duplicate advance after game over fails instead of skipping ahead.
    if err := svc.NextRound(ctx, code); err != game.ErrInvalidPhase {
        t.Fatalf("expected ErrInvalidPhase after game over, got %v", err)
    }
}

func TestSelectAnswerWithoutDoctorAnswerScoresNothing(t *testing.T) {
    ctx := context.Background()
    // Doctor pick index 1 (bob); bob never submits.
    svc, st, code := threePlayerRoom(t, &scriptedRand{ints: []int{0, 1, 0}})
    if err := svc.StartGame(ctx, "alice", code, 3); err != nil {
        t.Fatalf("start game: %v", err)
    }
    if err := svc.SubmitAnswer(ctx, "alice", code, "peanut butter"); err != nil {
        t.Fatalf("submit alice: %v", err)
    }
    if err := svc.SubmitAnswer(ctx, "carol", code, "a kazoo"); err != nil {
        t.Fatalf("submit carol: %v", err)
    }

    // Force the session into guessing without bob's answer.
    room, err := st.RoomByCode(ctx, code)
    if err != nil {
        t.Fatalf("room lookup: %v", err)
    }
    sess, err := st.SessionByRoom(ctx, room.ID)
    if err != nil {
        t.Fatalf("session lookup: %v", err)
    }
    sess.Phase = game.PhaseGuessing
    if err := st.UpdateSession(ctx, sess); err != nil {
        t.Fatalf("update session: %v", err)
    }

    if err := svc.SelectAnswer(ctx, "alice", code, "peanut butter"); err != nil {
        t.Fatalf("select: %v", err)
    }
    scores := scoresByName(t, svc, code)
    for name, score := range scores {
        if score != 0 {
            t.Fatalf("no doctor answer means no points, %s has %d", name, score)
        }
    }
    state, _ := svc.GetGameState(ctx, code)
    if state.Phase != game.PhaseRevealing {
        t.Fatalf("round still resolves to revealing, got %s", state.Phase)
    }
}
