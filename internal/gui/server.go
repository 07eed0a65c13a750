// A very simple gin HTTP server
// for watching an optimization run from outside.
// The gui sends an empty struct to the runner bridge
// and the runner sends back a progress snapshot
// with the best fitness and the current Pareto front.
package gui

import (
	"fmt"
	"net/http"

	"github.com/b21166/placefly/alg"
	"github.com/b21166/placefly/internal/config"
	"github.com/b21166/placefly/internal/runner"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var progressRequestStream chan<- struct{}
var progressStream <-chan *alg.Progress
var router *gin.Engine

func registerRoutes() {
	router.POST("/progress", func(ctx *gin.Context) {
		progressRequestStream <- struct{}{}
		ctx.JSON(http.StatusOK, gin.H{
			"content": <-progressStream,
		})
	})

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"name": config.PlacementGeneralConfig.Name,
			"mode": config.PlacementGeneralConfig.Mode,
		})
	})
}

func SetUp(bridge runner.Bridge) {
	progressStream = bridge.ProgressStream
	progressRequestStream = bridge.ProgressRequestStream

	router = gin.Default()

	router.Use(cors.Default())

	registerRoutes()
}

func Run() {
	router.Run(fmt.Sprintf(":%d", config.PlacementGeneralConfig.GuiPort))
}
