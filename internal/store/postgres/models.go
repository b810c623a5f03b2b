package postgres

import (
    "encoding/json"
    "time"

    "gorm.io/datatypes"

    "doctordash/internal/game"
)

type playerRow struct {
    ID        string    `gorm:"primaryKey;size:36"`
    Identity  string    `gorm:"size:191;uniqueIndex;not null"`
    Name      string    `gorm:"size:64;not null"`
    Score     int       `gorm:"not null;default:0"`
    IsDoctor  bool      `gorm:"not null;default:false"`
    AvatarTag string    `gorm:"size:32;not null"`
    CreatedAt time.Time `gorm:"not null"`
    UpdatedAt time.Time `gorm:"not null"`
}

func (playerRow) TableName() string { return "players" }

type roomRow struct {
    ID        string         `gorm:"primaryKey;size:36"`
    Code      string         `gorm:"size:12;uniqueIndex;not null"`
    HostID    string         `gorm:"size:36;not null"`
    Members   datatypes.JSON `gorm:"not null"`
    CreatedAt time.Time      `gorm:"not null"`
    UpdatedAt time.Time      `gorm:"not null"`
}

func (roomRow) TableName() string { return "rooms" }

type sessionRow struct {
    ID             string    `gorm:"primaryKey;size:36"`
    RoomID         string    `gorm:"size:36;uniqueIndex;not null"`
    Phase          string    `gorm:"size:16;not null"`
    CurrentRound   int       `gorm:"not null"`
    TotalRounds    int       `gorm:"not null"`
    Prompt         string    `gorm:"size:280;not null"`
    SelectedAnswer string    `gorm:"size:280"`
    CreatedAt      time.Time `gorm:"not null"`
    UpdatedAt      time.Time `gorm:"not null"`
}

func (sessionRow) TableName() string { return "sessions" }

type answerRow struct {
    ID        string    `gorm:"primaryKey;size:36"`
    RoomID    string    `gorm:"size:36;index;not null;uniqueIndex:idx_answers_room_round_player"`
    Round     int       `gorm:"not null;uniqueIndex:idx_answers_room_round_player"`
    PlayerID  string    `gorm:"size:36;not null;uniqueIndex:idx_answers_room_round_player"`
    Text      string    `gorm:"size:280;not null"`
    IsDoctor  bool      `gorm:"not null;default:false"`
    CreatedAt time.Time `gorm:"not null"`
    UpdatedAt time.Time `gorm:"not null"`
}

func (answerRow) TableName() string { return "answers" }

type activityRow struct {
    RoomCode     string    `gorm:"primaryKey;size:12"`
    PlayerID     string    `gorm:"primaryKey;size:36"`
    PlayerName   string    `gorm:"size:64;not null"`
    IsTyping     bool      `gorm:"not null;default:false"`
    LastActivity time.Time `gorm:"not null"`
    UpdatedAt    time.Time `gorm:"not null"`
}

func (activityRow) TableName() string { return "player_activities" }

func toPlayerRow(p *game.Player) playerRow {
    return playerRow{
        ID:        p.ID,
        Identity:  p.Identity,
        Name:      p.Name,
        Score:     p.Score,
        IsDoctor:  p.IsDoctor,
        AvatarTag: p.AvatarTag,
        CreatedAt: p.CreatedAt,
    }
}

func (r playerRow) toGame() *game.Player {
    return &game.Player{
        ID:        r.ID,
        Identity:  r.Identity,
        Name:      r.Name,
        Score:     r.Score,
        IsDoctor:  r.IsDoctor,
        AvatarTag: r.AvatarTag,
        CreatedAt: r.CreatedAt,
    }
}

func toRoomRow(r *game.Room) (roomRow, error) {
    members, err := json.Marshal(r.MemberIDs)
    if err != nil {
        return roomRow{}, err
    }
    return roomRow{
        ID:        r.ID,
        Code:      r.Code,
        HostID:    r.HostID,
        Members:   members,
        CreatedAt: r.CreatedAt,
    }, nil
}

func (r roomRow) toGame() (*game.Room, error) {
    var members []string
    if err := json.Unmarshal(r.Members, &members); err != nil {
        return nil, err
    }
    return &game.Room{
        ID:        r.ID,
        Code:      r.Code,
        HostID:    r.HostID,
        MemberIDs: members,
        CreatedAt: r.CreatedAt,
    }, nil
}

func toSessionRow(s *game.Session) sessionRow {
    return sessionRow{
        ID:             s.ID,
        RoomID:         s.RoomID,
        Phase:          string(s.Phase),
        CurrentRound:   s.CurrentRound,
        TotalRounds:    s.TotalRounds,
        Prompt:         s.Prompt,
        SelectedAnswer: s.SelectedAnswer,
    }
}

func (r sessionRow) toGame() *game.Session {
    return &game.Session{
        ID:             r.ID,
        RoomID:         r.RoomID,
        Phase:          game.Phase(r.Phase),
        CurrentRound:   r.CurrentRound,
        TotalRounds:    r.TotalRounds,
        Prompt:         r.Prompt,
        SelectedAnswer: r.SelectedAnswer,
    }
}

func toAnswerRow(a *game.Answer) answerRow {
    return answerRow{
        ID:       a.ID,
        RoomID:   a.RoomID,
        Round:    a.Round,
        PlayerID: a.PlayerID,
        Text:     a.Text,
        IsDoctor: a.IsDoctor,
    }
}

func (r answerRow) toGame() game.Answer {
    return game.Answer{
        ID:       r.ID,
        RoomID:   r.RoomID,
        Round:    r.Round,
        PlayerID: r.PlayerID,
        Text:     r.Text,
        IsDoctor: r.IsDoctor,
    }
}

func toActivityRow(a *game.Activity) activityRow {
    return activityRow{
        RoomCode:     a.RoomCode,
        PlayerID:     a.PlayerID,
        PlayerName:   a.PlayerName,
        IsTyping:     a.IsTyping,
        LastActivity: a.LastActivity,
    }
}

func (r activityRow) toGame() game.Activity {
    return game.Activity{
        RoomCode:     r.RoomCode,
        PlayerID:     r.PlayerID,
        PlayerName:   r.PlayerName,
        IsTyping:     r.IsTyping,
        LastActivity: r.LastActivity,
    }
}
