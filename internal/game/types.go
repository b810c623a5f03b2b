package game

import (
    "time"
)

type Phase string

const (
    PhaseWaiting   Phase = "waiting"
    PhaseAnswering Phase = "answering"
    PhaseGuessing  Phase = "guessing"
    PhaseRevealing Phase = "revealing"
)

// Player is a persistent profile bound to one external identity. The score
// accumulates across games; IsDoctor is reassigned at every game start.
type Player struct {
    ID        string    `json:"id"`
    Identity  string    `json:"-"`
    Name      string    `json:"name"`
    Score     int       `json:"score"`
    IsDoctor  bool      `json:"isDoctor"`
    AvatarTag string    `json:"avatarTag"`
    CreatedAt time.Time `json:"createdAt"`
}

// Room owns the roster for one joinable session. MemberIDs preserves join
// order; the host is always a member.
type Room struct {
    ID        string    `json:"id"`
    Code      string    `json:"roomCode"`
    HostID    string    `json:"hostPlayerId"`
    MemberIDs []string  `json:"memberPlayerIds"`
    CreatedAt time.Time `json:"createdAt"`
}

// Session is the per-room state machine instance. At most one exists per room;
// starting a game replaces any previous one wholesale.
type Session struct {
    ID             string `json:"id"`
    RoomID         string `json:"roomId"`
    Phase          Phase  `json:"gamePhase"`
    CurrentRound   int    `json:"currentRound"`
    TotalRounds    int    `json:"totalRounds"`
    Prompt         string `json:"currentPrompt"`
    SelectedAnswer string `json:"selectedAnswer,omitempty"`
}

// Answer is one player's submission for one round. IsDoctor is a copy of the
// submitter's doctor flag at submission time so reveal scoring does not depend
// on the flag surviving until the end of the round.
type Answer struct {
    ID       string `json:"id"`
    RoomID   string `json:"roomId"`
    Round    int    `json:"round"`
    PlayerID string `json:"playerId"`
    Text     string `json:"text"`
    IsDoctor bool   `json:"isDoctor"`
}

// Activity is an ephemeral typing indicator. Staleness is filtered at read
// time; rows are never expired in the store.
type Activity struct {
    RoomCode     string    `json:"roomCode"`
    PlayerID     string    `json:"playerId"`
    PlayerName   string    `json:"playerName"`
    IsTyping     bool      `json:"isTyping"`
    LastActivity time.Time `json:"lastActivity"`
}

// RoundState is the per-round slice of the display snapshot.
type RoundState struct {
    CurrentRound   int      `json:"currentRound"`
    TotalRounds    int      `json:"totalRounds"`
    Prompt         string   `json:"currentPrompt"`
    SelectedAnswer string   `json:"selectedAnswer,omitempty"`
    Answers        []Answer `json:"answers"`
}

// GameState is the composed snapshot served to presentation layers. Round is
// nil until a game has been started in the room.
type GameState struct {
    Players []Player    `json:"players"`
    Phase   Phase       `json:"gamePhase"`
    Round   *RoundState `json:"roundState"`
}
