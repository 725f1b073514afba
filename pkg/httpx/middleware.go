package httpx

import "net/http"

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain applies middlewares to h so that the first one listed runs first.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Adapt converts plain func(http.Handler) http.Handler middleware, such as
// the chi middleware package ships, into a Middleware.
func Adapt(fn func(http.Handler) http.Handler) Middleware {
	return Middleware(fn)
}
