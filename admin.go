// admin.go - privacy-conscious admin pages for the message archive
package main

import (
	"crypto/subtle"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const adminCookie = "admin_token"

type admin struct {
	username string
	password string
	token    string
	archive  *Archive
	logger   *zap.Logger
}

// newAdmin prepares the admin pages. A fresh session token is generated on
// every start, so restarting the server logs everyone out.
func newAdmin(cfg AdminConfig, archive *Archive, logger *zap.Logger) *admin {
	a := &admin{
		username: cfg.Username,
		password: cfg.Password,
		token:    randomToken(),
		archive:  archive,
		logger:   logger.Named("admin"),
	}
	a.logger.Info("admin access available", zap.String("path", "/admin/login"))
	if gin.Mode() == gin.DebugMode {
		a.logger.Debug("admin token (dev only)", zap.String("token", a.token))
	}
	return a
}

// authMiddleware checks the admin cookie.
func (a *admin) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (a *admin) credentialsMatch(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	return userOK && passOK
}

// routes mounts the admin pages on r.
func (a *admin) routes(r *gin.Engine) {
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		who := a.archive.hashIP(c.ClientIP())
		if !a.credentialsMatch(c.PostForm("username"), c.PostForm("password")) {
			a.logger.Warn("admin login failed", zap.String("hashed_ip", who))
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"error": "Invalid credentials",
			})
			return
		}
		// Secure cookie, 24 hours
		c.SetCookie(adminCookie, a.token, 3600*24, "/admin", "", c.Request.TLS != nil, true)
		a.logger.Info("admin login", zap.String("hashed_ip", who))
		c.Redirect(http.StatusFound, "/admin/messages")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", c.Request.TLS != nil, true)
		a.logger.Info("admin logout", zap.String("hashed_ip", a.archive.hashIP(c.ClientIP())))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	group := r.Group("/admin")
	group.Use(a.authMiddleware())

	group.GET("", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/admin/messages")
	})

	group.GET("/messages", func(c *gin.Context) {
		messages, err := a.archive.List(c.Request.Context(), 200)
		if err != nil {
			a.logger.Error("loading messages", zap.Error(err))
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load messages",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-messages.html", gin.H{
			"messages": messages,
		})
	})

	group.GET("/api/messages", func(c *gin.Context) {
		messages, err := a.archive.List(c.Request.Context(), 200)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"messages": messages})
	})

	group.DELETE("/messages/:id", func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
			return
		}

		deleted, err := a.archive.Delete(c.Request.Context(), id)
		if err != nil {
			a.logger.Error("deleting message", zap.Int64("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
			return
		}
		if !deleted {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}

		a.logger.Info("message deleted", zap.Int64("id", id), zap.String("hashed_ip", a.archive.hashIP(c.ClientIP())))
		c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully"})
	})

	// Export for backups
	group.GET("/export/messages", func(c *gin.Context) {
		messages, err := a.archive.List(c.Request.Context(), -1)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=messages.json")
		a.logger.Info("messages exported", zap.Int("count", len(messages)))
		c.JSON(http.StatusOK, gin.H{"messages": messages})
	})
}
