package server

import (
	"time"

	"github.com/curtisnewbie/timeaxis/core"
	"github.com/gin-gonic/gin"
)

var log = core.ComponentLogger("http")

// Perf Middleware that calculates how much time each request takes, requests to the excluded paths are not logged.
func PerfMiddleware(excluded ...string) gin.HandlerFunc {
	excl := make(map[string]struct{}, len(excluded))
	for _, p := range excluded {
		excl[p] = struct{}{}
	}
	return func(ctx *gin.Context) {
		if _, ok := excl[ctx.Request.URL.Path]; ok {
			ctx.Next()
			return
		}

		start := time.Now()
		ctx.Next() // continue the handler chain
		log.Infof("%-6v %-60v [%s]", ctx.Request.Method, ctx.Request.RequestURI, time.Since(start))
	}
}
