package game

import (
    "context"
    "time"
)

// Activities older than this are treated as stale and filtered on read.
const activityWindow = 5 * time.Second

// UpdatePlayerActivity records whether the caller is currently typing in the
// room. One record per player per room, patched in place.
func (s *Service) UpdatePlayerActivity(ctx context.Context, identity, roomCode string, isTyping bool) error {
    err := s.store.Atomic(ctx, func(st Store) error {
        room, err := st.RoomByCode(ctx, roomCode)
        if err != nil {
            return err
        }
        caller, err := memberOf(ctx, st, identity, room)
        if err != nil {
            return err
        }
        return st.UpsertActivity(ctx, &Activity{
            RoomCode:     roomCode,
            PlayerID:     caller.ID,
            PlayerName:   caller.Name,
            IsTyping:     isTyping,
            LastActivity: s.now().UTC(),
        })
    })
    if err != nil {
        return err
    }
    s.notifier.Publish(roomCode)
    return nil
}

// GetPlayerActivities returns who is typing right now: records flagged as
// typing with activity inside the freshness window. The TTL lives here, at
// read time; rows are never deleted.
func (s *Service) GetPlayerActivities(ctx context.Context, roomCode string) ([]Activity, error) {
    all, err := s.store.ActivitiesByRoom(ctx, roomCode)
    if err != nil {
        return nil, err
    }
    cutoff := s.now().UTC().Add(-activityWindow)
    active := make([]Activity, 0, len(all))
    for _, a := range all {
        if a.IsTyping && a.LastActivity.After(cutoff) {
            active = append(active, a)
        }
    }
    return active, nil
}
