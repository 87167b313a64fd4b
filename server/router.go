package server

import (
	"net/http"

	"github.com/Luismorlan/socialpost/app_config"
	"github.com/Luismorlan/socialpost/server/middlewares"
	"github.com/Luismorlan/socialpost/server/rest"
	"github.com/Luismorlan/socialpost/store"
	"github.com/Luismorlan/socialpost/utils"
	"github.com/Luismorlan/socialpost/utils/flag"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
)

const (
	GraphqlPath    = "/graphql"
	PlaygroundPath = "/playground"
)

// NewRouter mounts both front ends over the same repository.
func NewRouter(repo store.Repository, cfg app_config.ServerAppConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	if utils.TracingEnabled() {
		router.Use(gintrace.Middleware(flag.ServiceName))
	}
	router.Use(middlewares.RequestID())
	router.Use(middlewares.Logger())
	if timeout := cfg.RequestTimeout(); timeout > 0 {
		router.Use(middlewares.Timeout(timeout))
	}

	rest.NewPostHandler(repo).RegisterRoutes(router)

	router.POST(GraphqlPath, GraphqlHandler(repo))
	if cfg.ENABLE_PLAYGROUND {
		router.GET(PlaygroundPath, PlaygroundHandler(GraphqlPath))
	}

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	return router
}
