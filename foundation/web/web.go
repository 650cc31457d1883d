// Package web is a small web framework on top of gin. Handlers return
// errors instead of writing failures themselves so that the error policy
// lives in one place.
package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler is the signature every application handler implements.
type Handler func(c *Context) error

// Middleware runs code before or after a Handler.
type Middleware func(Handler) Handler

// App is the entrypoint for the application. It wraps the gin engine and
// converts gin handlers into our Handler form.
type App struct {
	*gin.Engine
}

func NewApp() *App {
	e := gin.New()
	e.Use(gin.Logger(), gin.Recovery())

	return &App{Engine: e}
}

// wrapMiddleware chains the middleware around the handler, first in the
// slice ends up outermost.
func wrapMiddleware(mw []Middleware, handler Handler) Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h := mw[i]
		if h != nil {
			handler = h(handler)
		}
	}

	return handler
}

func (a *App) handle(method, path string, handler Handler, mw ...Middleware) {
	h := wrapMiddleware(mw, handler)

	a.Engine.Handle(method, path, func(c *gin.Context) {
		ctx := &Context{
			Context: c,
			Ctx:     c.Request.Context(),
		}

		if err := h(ctx); err != nil {
			// The handler could not respond on its own, last resort.
			c.JSON(http.StatusInternalServerError, map[string]interface{}{
				"error":  "internal server error",
				"status": false,
			})
		}
	})
}

func (a *App) Get(path string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodGet, path, handler, mw...)
}

func (a *App) Post(path string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodPost, path, handler, mw...)
}

func (a *App) Put(path string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodPut, path, handler, mw...)
}

func (a *App) Patch(path string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodPatch, path, handler, mw...)
}

func (a *App) Delete(path string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodDelete, path, handler, mw...)
}
