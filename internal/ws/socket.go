// Package ws pushes fresh game snapshots to connected clients. Clients watch
// a room; every mutation that touches it triggers a re-read of the projection
// and a broadcast, so nobody polls.
package ws

import (
    "context"
    "net/http"
    "sync"

    "github.com/gin-gonic/gin"
    socketio "github.com/googollee/go-socket.io"
    "github.com/rs/zerolog/log"

    "doctordash/internal/bus"
    "doctordash/internal/game"
)

type connCtx struct {
    RoomCode string
}

type Server struct {
    svc *game.Service
    bus *bus.Bus

    mu      sync.Mutex
    members map[string]map[string]socketio.Conn // roomCode -> socketID -> conn
}

func New(svc *game.Service, b *bus.Bus) *Server {
    return &Server{svc: svc, bus: b, members: make(map[string]map[string]socketio.Conn)}
}

// Mount attaches the Socket.IO server to the given Gin engine and starts the
// invalidation pump.
func (srv *Server) Mount(r *gin.Engine) *socketio.Server {
    io := socketio.NewServer(nil)

    io.OnConnect("/", func(s socketio.Conn) error {
        s.SetContext(&connCtx{})
        log.Info().Str("sid", s.ID()).Msg("socket connected")
        return nil
    })

    // room:watch subscribes the connection to a room's snapshots.
    io.OnEvent("/", "room:watch", func(s socketio.Conn, payload struct {
        RoomCode string `json:"roomCode"`
    }) map[string]any {
        state, err := srv.svc.GetGameState(context.Background(), payload.RoomCode)
        if err != nil {
            return srv.err(s, "room_not_found", "Room not found")
        }
        if ctx, ok := s.Context().(*connCtx); ok && ctx.RoomCode != "" {
            srv.removeMember(ctx.RoomCode, s)
            s.Leave(ctx.RoomCode)
        }
        s.SetContext(&connCtx{RoomCode: payload.RoomCode})
        s.Join(payload.RoomCode)
        srv.addMember(payload.RoomCode, s)
        log.Info().Str("sid", s.ID()).Str("roomCode", payload.RoomCode).Msg("room:watch")
        s.Emit("game:state", state)
        return map[string]any{"ok": true}
    })

    io.OnEvent("/", "room:unwatch", func(s socketio.Conn) map[string]any {
        if ctx, ok := s.Context().(*connCtx); ok && ctx.RoomCode != "" {
            srv.removeMember(ctx.RoomCode, s)
            s.Leave(ctx.RoomCode)
            s.SetContext(&connCtx{})
        }
        return map[string]any{"ok": true}
    })

    io.OnError("/", func(s socketio.Conn, e error) {
        log.Error().Str("sid", s.ID()).Err(e).Msg("socket error")
    })
    io.OnDisconnect("/", func(s socketio.Conn, reason string) {
        if ctx, ok := s.Context().(*connCtx); ok && ctx.RoomCode != "" {
            srv.removeMember(ctx.RoomCode, s)
        }
        log.Info().Str("sid", s.ID()).Str("reason", reason).Msg("socket disconnected")
    })

    go io.Serve()
    go srv.pump()

    r.GET("/socket.io/*any", gin.WrapH(io))
    r.POST("/socket.io/*any", gin.WrapH(io))
    r.OPTIONS("/socket.io/*any", func(c *gin.Context) {
        c.Header("Access-Control-Allow-Origin", "*")
        c.Header("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
        c.Header("Access-Control-Allow-Headers", "Content-Type")
        c.Status(http.StatusNoContent)
    })

    return io
}

// pump drains room invalidations and re-emits snapshots to watchers.
func (srv *Server) pump() {
    events, cancel := srv.bus.Subscribe()
    defer cancel()
    for roomCode := range events {
        srv.emitStateTo(roomCode)
    }
}

func (srv *Server) emitStateTo(roomCode string) {
    conns := srv.watchers(roomCode)
    if len(conns) == 0 {
        return
    }
    ctx := context.Background()
    state, err := srv.svc.GetGameState(ctx, roomCode)
    if err != nil {
        log.Error().Err(err).Str("roomCode", roomCode).Msg("snapshot re-read failed")
        return
    }
    activities, err := srv.svc.GetPlayerActivities(ctx, roomCode)
    if err != nil {
        log.Error().Err(err).Str("roomCode", roomCode).Msg("activity re-read failed")
        return
    }
    for _, c := range conns {
        c.Emit("game:state", state)
        c.Emit("room:activity", map[string]any{"activities": activities})
    }
}

func (srv *Server) addMember(roomCode string, c socketio.Conn) {
    srv.mu.Lock()
    defer srv.mu.Unlock()
    if srv.members[roomCode] == nil {
        srv.members[roomCode] = make(map[string]socketio.Conn)
    }
    srv.members[roomCode][c.ID()] = c
}

func (srv *Server) removeMember(roomCode string, c socketio.Conn) {
    srv.mu.Lock()
    defer srv.mu.Unlock()
    if m := srv.members[roomCode]; m != nil {
        delete(m, c.ID())
        if len(m) == 0 {
            delete(srv.members, roomCode)
        }
    }
}

func (srv *Server) watchers(roomCode string) []socketio.Conn {
    srv.mu.Lock()
    defer srv.mu.Unlock()
    out := make([]socketio.Conn, 0, len(srv.members[roomCode]))
    for _, c := range srv.members[roomCode] {
        out = append(out, c)
    }
    return out
}

func (srv *Server) err(s socketio.Conn, code, message string) map[string]any {
    s.Emit("error", map[string]any{"code": code, "message": message})
    return map[string]any{"error": message}
}
