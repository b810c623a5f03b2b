package game

import (
    "context"
    "hash/fnv"
    "math/rand"
    "sort"
    "strconv"
)

// GetGameState assembles the display snapshot: the hydrated roster, the
// session phase and the current round's answers. Safe to call at arbitrary
// frequency; nothing is mutated.
//
// Answer order is shuffled so clients cannot infer authorship from insertion
// order, but the shuffle is seeded from (room, round) so the order holds still
// for the whole round and is identical for every reader.
func (s *Service) GetGameState(ctx context.Context, roomCode string) (*GameState, error) {
    room, err := s.store.RoomByCode(ctx, roomCode)
    if err != nil {
        return nil, err
    }
    players, err := s.ListPlayersByRoom(ctx, roomCode)
    if err != nil {
        return nil, err
    }

    sess, err := s.store.SessionByRoom(ctx, room.ID)
    if err == ErrSessionNotFound {
        return &GameState{Players: players, Phase: PhaseWaiting}, nil
    }
    if err != nil {
        return nil, err
    }

    answers, err := s.store.AnswersByRound(ctx, room.ID, sess.CurrentRound)
    if err != nil {
        return nil, err
    }
    shuffleStable(answers, room.ID, sess.CurrentRound)

    return &GameState{
        Players: players,
        Phase:   sess.Phase,
        Round: &RoundState{
            CurrentRound:   sess.CurrentRound,
            TotalRounds:    sess.TotalRounds,
            Prompt:         sess.Prompt,
            SelectedAnswer: sess.SelectedAnswer,
            Answers:        answers,
        },
    }, nil
}

func shuffleStable(answers []Answer, roomID string, round int) {
    h := fnv.New64a()
    h.Write([]byte(roomID))
    h.Write([]byte(strconv.Itoa(round)))
    r := rand.New(rand.NewSource(int64(h.Sum64())))
    // Sort first so the result does not depend on store iteration order.
    sort.Slice(answers, func(i, j int) bool { return answers[i].ID < answers[j].ID })
    r.Shuffle(len(answers), func(i, j int) { answers[i], answers[j] = answers[j], answers[i] })
}
