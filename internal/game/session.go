package game

import (
    "context"

    "github.com/google/uuid"
)

const (
    pointsCorrectGuess = 10
    pointsDoctorBonus  = 5
)

// StartGame begins a fresh game in the room: every member's doctor flag is
// cleared, one member is picked as the new doctor, any previous session is
// deleted and a new one is inserted in the answering phase with a random
// prompt. Host only. A repeat call restarts the game from round one.
func (s *Service) StartGame(ctx context.Context, identity, roomCode string, totalRounds int) error {
    if totalRounds <= 0 {
        totalRounds = defaultTotalRounds
    }
    err := s.store.Atomic(ctx, func(st Store) error {
        room, err := st.RoomByCode(ctx, roomCode)
        if err != nil {
            return err
        }
        caller, err := memberOf(ctx, st, identity, room)
        if err != nil {
            return err
        }
        if room.HostID != caller.ID {
            return ErrNotHost
        }

        // Reset-then-set keeps "exactly one doctor" true across repeated
        // game starts in the same room.
        for _, id := range room.MemberIDs {
            p, err := st.PlayerByID(ctx, id)
            if err == ErrPlayerNotFound {
                continue
            }
            if err != nil {
                return err
            }
            if p.IsDoctor {
                p.IsDoctor = false
                if err := st.UpdatePlayer(ctx, p); err != nil {
                    return err
                }
            }
        }
        doctorID := room.MemberIDs[s.rand.Intn(len(room.MemberIDs))]
        doctor, err := st.PlayerByID(ctx, doctorID)
        if err != nil {
            return err
        }
        doctor.IsDoctor = true
        if err := st.UpdatePlayer(ctx, doctor); err != nil {
            return err
        }

        if err := st.DeleteSessionByRoom(ctx, room.ID); err != nil {
            return err
        }
        return st.CreateSession(ctx, &Session{
            ID:           uuid.NewString(),
            RoomID:       room.ID,
            Phase:        PhaseAnswering,
            CurrentRound: 1,
            TotalRounds:  totalRounds,
            Prompt:       prompts[s.rand.Intn(len(prompts))],
        })
    })
    if err != nil {
        return err
    }
    s.notifier.Publish(roomCode)
    return nil
}

// SubmitAnswer upserts the caller's answer for the current round; resubmitting
// replaces the text in place. Once every member has answered, the session
// advances to the guessing phase on its own. Setting the target phase twice is
// harmless, so near-simultaneous final submissions are benign.
func (s *Service) SubmitAnswer(ctx context.Context, identity, roomCode, text string) error {
    err := s.store.Atomic(ctx, func(st Store) error {
        room, err := st.RoomByCode(ctx, roomCode)
        if err != nil {
            return err
        }
        caller, err := memberOf(ctx, st, identity, room)
        if err != nil {
            return err
        }
        sess, err := st.SessionByRoom(ctx, room.ID)
        if err != nil {
            return err
        }
        if sess.Phase != PhaseAnswering {
            return ErrInvalidPhase
        }

        existing, err := st.AnswerByPlayer(ctx, room.ID, sess.CurrentRound, caller.ID)
        switch err {
        case nil:
            existing.Text = text
            if err := st.UpdateAnswer(ctx, existing); err != nil {
                return err
            }
        case ErrAnswerNotFound:
            if err := st.CreateAnswer(ctx, &Answer{
                ID:       uuid.NewString(),
                RoomID:   room.ID,
                Round:    sess.CurrentRound,
                PlayerID: caller.ID,
                Text:     text,
                IsDoctor: caller.IsDoctor,
            }); err != nil {
                return err
            }
        default:
            return err
        }

        answers, err := st.AnswersByRound(ctx, room.ID, sess.CurrentRound)
        if err != nil {
            return err
        }
        if len(answers) >= len(room.MemberIDs) {
            sess.Phase = PhaseGuessing
            return st.UpdateSession(ctx, sess)
        }
        return nil
    })
    if err != nil {
        return err
    }
    s.notifier.Publish(roomCode)
    return nil
}

// SelectAnswer resolves the round: a correct guess of the doctor's answer
// awards points to every member, and the doctor earns a bonus for having
// written an answer at all, correct guess or not. The doctor can therefore
// collect both awards in one round; that mirrors the original rules.
//
// Callable by any room member while the session is in the guessing phase.
func (s *Service) SelectAnswer(ctx context.Context, identity, roomCode, selected string) error {
    err := s.store.Atomic(ctx, func(st Store) error {
        room, err := st.RoomByCode(ctx, roomCode)
        if err != nil {
            return err
        }
        if _, err := memberOf(ctx, st, identity, room); err != nil {
            return err
        }
        sess, err := st.SessionByRoom(ctx, room.ID)
        if err != nil {
            return err
        }
        if sess.Phase != PhaseGuessing {
            return ErrInvalidPhase
        }

        answers, err := st.AnswersByRound(ctx, room.ID, sess.CurrentRound)
        if err != nil {
            return err
        }
        var doctorAnswer *Answer
        for i := range answers {
            if answers[i].IsDoctor {
                doctorAnswer = &answers[i]
                break
            }
        }

        if doctorAnswer != nil && selected == doctorAnswer.Text {
            for _, id := range room.MemberIDs {
                p, err := st.PlayerByID(ctx, id)
                if err == ErrPlayerNotFound {
                    continue
                }
                if err != nil {
                    return err
                }
                p.Score += pointsCorrectGuess
                if err := st.UpdatePlayer(ctx, p); err != nil {
                    return err
                }
            }
        }
        if doctorAnswer != nil {
            doctor, err := st.PlayerByID(ctx, doctorAnswer.PlayerID)
            if err != nil {
                return err
            }
            doctor.Score += pointsDoctorBonus
            if err := st.UpdatePlayer(ctx, doctor); err != nil {
                return err
            }
        }

        sess.SelectedAnswer = selected
        sess.Phase = PhaseRevealing
        return st.UpdateSession(ctx, sess)
    })
    if err != nil {
        return err
    }
    s.notifier.Publish(roomCode)
    return nil
}

// NextRound advances out of the reveal: past the final round the session parks
// in the waiting phase with the round counter untouched, otherwise the round
// increments, a fresh prompt is drawn and answering reopens. The phase guard
// doubles as retry protection; a duplicate call fails instead of skipping a
// round.
func (s *Service) NextRound(ctx context.Context, roomCode string) error {
    err := s.store.Atomic(ctx, func(st Store) error {
        room, err := st.RoomByCode(ctx, roomCode)
        if err != nil {
            return err
        }
        sess, err := st.SessionByRoom(ctx, room.ID)
        if err != nil {
            return err
        }
        if sess.Phase != PhaseRevealing {
            return ErrInvalidPhase
        }
        if sess.CurrentRound >= sess.TotalRounds {
            sess.Phase = PhaseWaiting
            return st.UpdateSession(ctx, sess)
        }
        sess.CurrentRound++
        sess.Prompt = prompts[s.rand.Intn(len(prompts))]
        sess.SelectedAnswer = ""
        sess.Phase = PhaseAnswering
        return st.UpdateSession(ctx, sess)
    })
    if err != nil {
        return err
    }
    s.notifier.Publish(roomCode)
    return nil
}
