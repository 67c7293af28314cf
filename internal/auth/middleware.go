package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const (
	CtxUserID   ctxKey = "utilisateurID"
	CtxEstAdmin ctxKey = "estAdmin"
)

// MiddlewareAuthentification exige un Bearer token valide et place
// l'identité de l'utilisateur dans le contexte de la requête.
func MiddlewareAuthentification(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			http.Error(w, "Token absent", http.StatusUnauthorized)
			return
		}
		raw := strings.TrimPrefix(h, "Bearer ")
		claims, err := ParseAndValidate(raw)
		if err != nil {
			http.Error(w, "Token invalide", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), CtxUserID, claims.UserID)
		ctx = context.WithValue(ctx, CtxEstAdmin, claims.EstAdmin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin refuse les requêtes d'utilisateurs non administrateurs.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v := r.Context().Value(CtxEstAdmin)
		if ok, _ := v.(bool); !ok {
			http.Error(w, "Réservé aux administrateurs", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
