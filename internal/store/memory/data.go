package memory

import (
    "fmt"
    "sort"

    "doctordash/internal/game"
)

func answerKey(roomID string, round int, playerID string) string {
    return fmt.Sprintf("%s/%d/%s", roomID, round, playerID)
}

func activityKey(roomCode, playerID string) string {
    return roomCode + "/" + playerID
}

func (d *data) createPlayer(p *game.Player) error {
    cp := *p
    d.players[cp.ID] = &cp
    d.byIdentity[cp.Identity] = cp.ID
    return nil
}

func (d *data) updatePlayer(p *game.Player) error {
    if _, ok := d.players[p.ID]; !ok {
        return game.ErrPlayerNotFound
    }
    cp := *p
    d.players[cp.ID] = &cp
    d.byIdentity[cp.Identity] = cp.ID
    return nil
}

func (d *data) playerByID(id string) (*game.Player, error) {
    p, ok := d.players[id]
    if !ok {
        return nil, game.ErrPlayerNotFound
    }
    cp := *p
    return &cp, nil
}

func (d *data) playerByIdentity(identity string) (*game.Player, error) {
    id, ok := d.byIdentity[identity]
    if !ok {
        return nil, game.ErrPlayerNotFound
    }
    return d.playerByID(id)
}

func (d *data) createRoom(r *game.Room) error {
    cp := *r
    cp.MemberIDs = append([]string(nil), r.MemberIDs...)
    d.rooms[cp.ID] = &cp
    d.byRoomCode[cp.Code] = cp.ID
    return nil
}

func (d *data) updateRoom(r *game.Room) error {
    if _, ok := d.rooms[r.ID]; !ok {
        return game.ErrRoomNotFound
    }
    return d.createRoom(r)
}

func (d *data) roomByCode(code string) (*game.Room, error) {
    id, ok := d.byRoomCode[code]
    if !ok {
        return nil, game.ErrRoomNotFound
    }
    r := d.rooms[id]
    cp := *r
    cp.MemberIDs = append([]string(nil), r.MemberIDs...)
    return &cp, nil
}

func (d *data) createSession(s *game.Session) error {
    cp := *s
    d.sessions[cp.RoomID] = &cp
    return nil
}

func (d *data) updateSession(s *game.Session) error {
    if _, ok := d.sessions[s.RoomID]; !ok {
        return game.ErrSessionNotFound
    }
    cp := *s
    d.sessions[cp.RoomID] = &cp
    return nil
}

func (d *data) sessionByRoom(roomID string) (*game.Session, error) {
    s, ok := d.sessions[roomID]
    if !ok {
        return nil, game.ErrSessionNotFound
    }
    cp := *s
    return &cp, nil
}

func (d *data) deleteSessionByRoom(roomID string) error {
    delete(d.sessions, roomID)
    return nil
}

func (d *data) createAnswer(a *game.Answer) error {
    cp := *a
    d.answers[answerKey(cp.RoomID, cp.Round, cp.PlayerID)] = &cp
    return nil
}

func (d *data) updateAnswer(a *game.Answer) error {
    key := answerKey(a.RoomID, a.Round, a.PlayerID)
    if _, ok := d.answers[key]; !ok {
        return game.ErrAnswerNotFound
    }
    cp := *a
    d.answers[key] = &cp
    return nil
}

func (d *data) answerByPlayer(roomID string, round int, playerID string) (*game.Answer, error) {
    a, ok := d.answers[answerKey(roomID, round, playerID)]
    if !ok {
        return nil, game.ErrAnswerNotFound
    }
    cp := *a
    return &cp, nil
}

func (d *data) answersByRound(roomID string, round int) ([]game.Answer, error) {
    out := []game.Answer{}
    for _, a := range d.answers {
        if a.RoomID == roomID && a.Round == round {
            out = append(out, *a)
        }
    }
    sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
    return out, nil
}

func (d *data) upsertActivity(a *game.Activity) error {
    cp := *a
    d.activities[activityKey(cp.RoomCode, cp.PlayerID)] = &cp
    return nil
}

func (d *data) activitiesByRoom(roomCode string) ([]game.Activity, error) {
    out := []game.Activity{}
    for _, a := range d.activities {
        if a.RoomCode == roomCode {
            out = append(out, *a)
        }
    }
    sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
    return out, nil
}

func (d *data) clone() *data {
    c := newData()
    for k, v := range d.players {
        cp := *v
        c.players[k] = &cp
    }
    for k, v := range d.byIdentity {
        c.byIdentity[k] = v
    }
    for k, v := range d.rooms {
        cp := *v
        cp.MemberIDs = append([]string(nil), v.MemberIDs...)
        c.rooms[k] = &cp
    }
    for k, v := range d.byRoomCode {
        c.byRoomCode[k] = v
    }
    for k, v := range d.sessions {
        cp := *v
        c.sessions[k] = &cp
    }
    for k, v := range d.answers {
        cp := *v
        c.answers[k] = &cp
    }
    for k, v := range d.activities {
        cp := *v
        c.activities[k] = &cp
    }
    return c
}
