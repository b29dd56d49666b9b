package httpx

import "net/http"

// RequireRole the caller must have one of the provided roles. Fine-grained
// ownership checks stay in the services; this is the coarse route-level gate.
func RequireRole(allowed ...string) Middleware {
	want := make(map[string]struct{}, len(allowed))
	for _, r := range allowed {
		want[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFromCtx(r.Context())
			if _, ok := want[role]; !ok {
				WriteError(w, http.StatusForbidden, "not authorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
