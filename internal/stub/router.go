// Package stub is a fixture implementation of the inventory backend, used
// for local development and integration tests when the real service is not
// reachable.
package stub

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lagerstyring-client/internal/model"
)

// NewRouter creates a Gin router serving the inventory API over fixtures.
func NewRouter(f *Fixtures) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/devices", func(c *gin.Context) {
		c.JSON(http.StatusOK, f.MatchDevices(c.Query("query")))
	})

	r.GET("/status/:id", func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid status ID"})
			return
		}
		status, ok := f.Statuses[id]
		if !ok {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "status not found"})
			return
		}
		c.JSON(http.StatusOK, status)
	})

	r.GET("/device-overview/:id", func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid overview ID"})
			return
		}
		overview, ok := f.Overviews[id]
		if !ok {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "overview not found"})
			return
		}
		c.JSON(http.StatusOK, overview)
	})

	r.GET("/cupboard/:id", func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid cupboard ID"})
			return
		}
		cupboard, ok := f.Cupboards[id]
		if !ok {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "cupboard not found"})
			return
		}
		c.JSON(http.StatusOK, cupboard)
	})

	r.GET("/room/:id", func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid room ID"})
			return
		}
		room, ok := f.Rooms[id]
		if !ok {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusOK, room)
	})

	r.GET("/user-by-email", func(c *gin.Context) {
		user, ok := f.UserByEmail(c.Query("email"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusOK, user)
	})

	r.GET("/activities-by-user/:id", func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
			return
		}
		c.JSON(http.StatusOK, f.ActivitiesByUser(id))
	})

	r.POST("/activities", func(c *gin.Context) {
		var activity model.Activity
		if err := c.ShouldBindJSON(&activity); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid activity payload"})
			return
		}
		c.JSON(http.StatusOK, f.AddActivity(activity))
	})

	r.POST("/login", func(c *gin.Context) {
		var req model.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid login payload"})
			return
		}
		password, ok := f.Passwords[req.Email]
		if !ok || password != req.Password {
			// The real backend reports rejection in-band.
			c.JSON(http.StatusOK, model.LoginResponse{StatusCode: 401})
			return
		}
		c.JSON(http.StatusOK, model.LoginResponse{
			StatusCode: 200,
			Token:      uuid.New().String(),
		})
	})

	return r
}
