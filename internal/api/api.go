// Package api exposes every game operation over HTTP. Realtime delivery is
// the socket layer's job; these routes exist for command submission and for
// clients that want a one-shot snapshot.
package api

import (
    "errors"
    "net/http"

    "github.com/gin-gonic/gin"
    "github.com/rs/zerolog/log"

    "doctordash/internal/auth"
    "doctordash/internal/game"
)

type Server struct {
    svc *game.Service
}

func New(svc *game.Service) *Server {
    return &Server{svc: svc}
}

// Register mounts all routes. authed guards the operations that need a
// resolvable caller identity; reads and round advancement stay open.
func (s *Server) Register(r *gin.Engine, authed gin.HandlerFunc) {
    me := r.Group("/api", authed)
    me.POST("/players", s.createPlayer)
    me.GET("/players/me", s.getPlayer)
    me.GET("/players/me/username", s.getUsername)
    me.POST("/players/me/username", s.setUsername)
    me.POST("/rooms", s.createRoom)
    me.POST("/rooms/:code/join", s.joinRoom)
    me.GET("/rooms/:code/host", s.isHost)
    me.POST("/rooms/:code/start", s.startGame)
    me.POST("/rooms/:code/answers", s.submitAnswer)
    me.POST("/rooms/:code/select", s.selectAnswer)
    me.POST("/rooms/:code/activity", s.updateActivity)

    open := r.Group("/api")
    open.GET("/rooms/:code", s.getRoom)
    open.GET("/rooms/:code/players", s.listPlayers)
    open.GET("/rooms/:code/state", s.getGameState)
    open.GET("/rooms/:code/activity", s.getActivities)
    open.POST("/rooms/:code/next", s.nextRound)
    open.GET("/rooms/:code/qr", s.roomQR)
}

func (s *Server) createPlayer(c *gin.Context) {
    var req struct {
        DisplayName string `json:"displayName" binding:"required"`
    }
    if err := c.BindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_body"})
        return
    }
    p, err := s.svc.CreatePlayer(c.Request.Context(), auth.Identity(c), req.DisplayName)
    if err != nil {
        respondErr(c, err)
        return
    }
    c.JSON(http.StatusOK, gin.H{"player": p})
}

func (s *Server) getPlayer(c *gin.Context) {
    p, err := s.svc.GetPlayer(c.Request.Context(), auth.Identity(c))
    if err != nil {
        respondErr(c, err)
        return
    }
    // p is nil when the caller has no profile yet; clients use this to
    // route to profile setup.
    c.JSON(http.StatusOK, gin.H{"player": p})
}

func (s *Server) getUsername(c *gin.Context) {
    name, err := s.svc.GetUsername(c.Request.Context(), auth.Identity(c))
    if err != nil {
        respondErr(c, err)
        return
    }
    c.JSON(http.StatusOK, gin.H{"username": name})
}

func (s *Server) setUsername(c *gin.Context) {
    var req struct {
        DisplayName string `json:"displayName" binding:"required"`
    }
    if err := c.BindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_body"})
        return
    }
    if err := s.svc.SetUsername(c.Request.Context(), auth.Identity(c), req.DisplayName); err != nil {
        respondErr(c, err)
        return
    }
    c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) createRoom(c *gin.Context) {
    code, err := s.svc.CreateRoom(c.Request.Context(), auth.Identity(c))
    if err != nil {
        respondErr(c, err)
        return
    }
    log.Info().Str("roomCode", code).Msg("room created")
    c.JSON(http.StatusOK, gin.H{"roomCode": code})
}

func (s *Server) joinRoom(c *gin.Context) {
    ok, err := s.svc.JoinRoom(c.Request.Context(), auth.Identity(c), c.Param("code"))
    if err != nil {
        respondErr(c, err)
        return
    }
    c.JSON(http.StatusOK, gin.H{"success": ok})
}

func (s *Server) getRoom(c *gin.Context) {
    room, err := s.svc.GetRoom(c.Request.Context(), c.Param("code"))
    if err != nil {
        respondErr(c, err)
        return
    }
    c.JSON(http.StatusOK, gin.H{"room": room})
}

func (s *Server) listPlayers(c *gin.Context) {
    players, err := s.svc.ListPlayersByRoom(c.Request.Context(), c.Param("code"))
    if err != nil {
        respondErr(c, err)
        return
    }
    c.JSON(http.StatusOK, gin.H{"players": players})
}

func (s *Server) isHost(c *gin.Context) {
    host, err := s.svc.IsHost(c.Request.Context(), auth.Identity(c), c.Param("code"))
    if err != nil {
        respondErr(c, err)
        return
    }
    c.JSON(http.StatusOK, gin.H{"isHost": host})
}

func (s *Server) startGame(c *gin.Context) {
    var req struct {
        TotalRounds int `json:"totalRounds"`
    }
    // Body is optional; totalRounds defaults server-side.
    _ = c.ShouldBindJSON(&req)
    code := c.Param("code")
    if err := s.svc.StartGame(c.Request.Context(), auth.Identity(c), code, req.TotalRounds); err != nil {
        respondErr(c, err)
        return
    }
    log.Info().Str("roomCode", code).Msg("game started")
    c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) submitAnswer(c *gin.Context) {
    var req struct {
        Text string `json:"text" binding:"required"`
    }
    if err := c.BindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_body"})
        return
    }
    if err := s.svc.SubmitAnswer(c.Request.Context(), auth.Identity(c), c.Param("code"), req.Text); err != nil {
        respondErr(c, err)
        return
    }
    c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) selectAnswer(c *gin.Context) {
    var req struct {
        Text string `json:"text" binding:"required"`
    }
    if err := c.BindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_body"})
        return
    }
    if err := s.svc.SelectAnswer(c.Request.Context(), auth.Identity(c), c.Param("code"), req.Text); err != nil {
        respondErr(c, err)
        return
    }
    c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) nextRound(c *gin.Context) {
    if err := s.svc.NextRound(c.Request.Context(), c.Param("code")); err != nil {
        respondErr(c, err)
        return
    }
    c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) getGameState(c *gin.Context) {
    state, err := s.svc.GetGameState(c.Request.Context(), c.Param("code"))
    if err != nil {
        respondErr(c, err)
        return
    }
    c.JSON(http.StatusOK, state)
}

func (s *Server) updateActivity(c *gin.Context) {
    var req struct {
        IsTyping bool `json:"isTyping"`
    }
    if err := c.BindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_body"})
        return
    }
    if err := s.svc.UpdatePlayerActivity(c.Request.Context(), auth.Identity(c), c.Param("code"), req.IsTyping); err != nil {
        respondErr(c, err)
        return
    }
    c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) getActivities(c *gin.Context) {
    activities, err := s.svc.GetPlayerActivities(c.Request.Context(), c.Param("code"))
    if err != nil {
        respondErr(c, err)
        return
    }
    c.JSON(http.StatusOK, gin.H{"activities": activities})
}

func respondErr(c *gin.Context, err error) {
    switch {
    case errors.Is(err, game.ErrRoomNotFound),
        errors.Is(err, game.ErrPlayerNotFound),
        errors.Is(err, game.ErrSessionNotFound),
        errors.Is(err, game.ErrAnswerNotFound):
        c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
    case errors.Is(err, game.ErrNotHost):
        c.JSON(http.StatusForbidden, gin.H{"error": "host_only"})
    case errors.Is(err, game.ErrNotInRoom):
        c.JSON(http.StatusForbidden, gin.H{"error": "not_in_room"})
    case errors.Is(err, game.ErrInvalidPhase):
        c.JSON(http.StatusConflict, gin.H{"error": "invalid_phase"})
    default:
        log.Error().Err(err).Msg("request failed")
        c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
    }
}
