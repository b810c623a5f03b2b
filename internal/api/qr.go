package api

import (
    "net/http"

    "github.com/gin-gonic/gin"
    qrcode "github.com/skip2/go-qrcode"
)

const qrSize = 320 // mobile-friendly

// roomQR renders a PNG QR code pointing at the join page for a room, so the
// host can put it on a shared screen.
func (s *Server) roomQR(c *gin.Context) {
    code := c.Param("code")
    if _, err := s.svc.GetRoom(c.Request.Context(), code); err != nil {
        respondErr(c, err)
        return
    }

    scheme := "http"
    if c.Request.TLS != nil {
        scheme = "https"
    }
    if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
        scheme = proto
    }
    url := scheme + "://" + c.Request.Host + "/join/" + code

    png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": "qr_failed"})
        return
    }
    c.Data(http.StatusOK, "image/png", png)
}
