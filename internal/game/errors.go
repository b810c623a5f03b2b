package game

import "errors"

var (
    ErrPlayerNotFound  = errors.New("player not found")
    ErrRoomNotFound    = errors.New("room not found")
    ErrSessionNotFound = errors.New("game not started")
    ErrAnswerNotFound  = errors.New("answer not found")
    ErrNotHost         = errors.New("only the host can start the game")
    ErrNotInRoom       = errors.New("player not in room")
    ErrInvalidPhase    = errors.New("invalid phase for action")
    ErrRoomCodeSpace   = errors.New("could not allocate a free room code")
)
