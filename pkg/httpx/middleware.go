package httpx

import "net/http"

// Middleware wraps an http.Handler with extra behaviour.
type Middleware = func(http.Handler) http.Handler

// Chain applies middlewares to h so that the first listed middleware is the
// outermost one. Chain(h, a, b) serves requests as a(b(h)).
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
