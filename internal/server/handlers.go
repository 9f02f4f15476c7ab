package server

import (
	"io"
	"net/http"

	"github.com/SandeepBatta/OrigamiAI/internal/app"
	"github.com/SandeepBatta/OrigamiAI/internal/continuity"
	"github.com/SandeepBatta/OrigamiAI/internal/session"
	"github.com/gin-gonic/gin"
)

func (s *Server) createSession(c *gin.Context) {
	id := s.app.NewSession(userOf(c))
	c.JSON(http.StatusCreated, gin.H{"session_id": id})
}

// listSessions 默认按日期分组返回，detailed=true 时返回带记录数的列表
func (s *Server) listSessions(c *gin.Context) {
	ctx := c.Request.Context()
	if c.Query("detailed") == "true" {
		sessions, err := s.app.Sessions.ListDetailed(ctx, userOf(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"sessions": sessions})
		return
	}

	summaries, err := s.app.Sessions.List(ctx, userOf(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"groups": session.GroupByDate(summaries, s.now(), locationOf(c)),
	})
}

// listTurns 只读返回会话记录，不改变用户的活动会话。
func (s *Server) listTurns(c *gin.Context) {
	user, id := userOf(c), c.Param("session")
	turns, err := s.app.Ledger.List(c.Request.Context(), user, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_id": id, "turns": turns})
}

// activateSession 显式切换用户的活动会话，切换到其他会话时续接令牌重置。
func (s *Server) activateSession(c *gin.Context) {
	id := c.Param("session")
	s.app.ActivateSession(userOf(c), id)
	c.JSON(http.StatusOK, gin.H{"session_id": id})
}

type attachmentRequest struct {
	Data     []byte `json:"data" binding:"required"`
	MIMEType string `json:"mime_type"`
}

type submitRequest struct {
	Prompt      string              `json:"prompt"`
	Attachments []attachmentRequest `json:"attachments"`
}

func (s *Server) submit(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBody)
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err.Error(), false)
		return
	}

	sub := app.Submission{
		UserID:    userOf(c),
		SessionID: c.Param("session"),
		Prompt:    req.Prompt,
	}
	for _, a := range req.Attachments {
		sub.Attachments = append(sub.Attachments, continuity.Attachment{Data: a.Data, MIMEType: a.MIMEType})
	}

	ex, err := s.app.Submit(c.Request.Context(), sub)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ex)
}

func (s *Server) stats(c *gin.Context) {
	report, err := s.app.Analytics.Report(c.Request.Context(), userOf(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) export(c *gin.Context) {
	export, err := s.app.Export(c.Request.Context(), userOf(c), s.now())
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="origami-export.json"`)
	c.JSON(http.StatusOK, export)
}

// events 以 server-sent events 推送用户新写入的记录
func (s *Server) events(c *gin.Context) {
	turns := s.app.Subscribe(c.Request.Context(), userOf(c))
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Status(http.StatusOK)
	c.Writer.Flush()
	c.Stream(func(w io.Writer) bool {
		turn, ok := <-turns
		if !ok {
			return false
		}
		c.SSEvent("turn", turn)
		return true
	})
}

func (s *Server) users(c *gin.Context) {
	users, err := s.app.Analytics.Users(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}
