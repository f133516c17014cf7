package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/causewayapp/causeway/config"
	"github.com/causewayapp/causeway/middleware"
)

func getUserID(ctx *gin.Context) (string, bool) {
	v, ok := ctx.Get(middleware.ContextUserIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

func getUsername(ctx *gin.Context) string {
	v, ok := ctx.Get(middleware.ContextUsernameKey)
	if !ok {
		return ""
	}
	name, _ := v.(string)
	return name
}

func isAdmin(username string) bool {
	for _, admin := range config.Get().AdminUsernames {
		if admin == username {
			return true
		}
	}
	return false
}
