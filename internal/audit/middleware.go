package audit

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http"

	"github.com/MairieServices/api-marche/internal/auth"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// tailleMaxCorps borne ce qui est copié dans le journal.
const tailleMaxCorps = 16 * 1024

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware journalise les requêtes d'écriture (POST/PUT/PATCH/DELETE)
// après leur exécution. L'échec du journal n'échoue jamais la requête:
// il est seulement loggé.
func Middleware(db *gorm.DB, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			default:
				next.ServeHTTP(w, r)
				return
			}

			var corps []byte
			if r.Body != nil {
				corps, _ = io.ReadAll(io.LimitReader(r.Body, tailleMaxCorps))
				r.Body = io.NopCloser(bytes.NewReader(corps))
			}

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			entree := JournalAudit{
				Methode:   r.Method,
				Chemin:    r.URL.Path,
				CodeHTTP:  rec.status,
				AdresseIP: adresseClient(r),
			}
			if userID, ok := r.Context().Value(auth.CtxUserID).(uint); ok && userID != 0 {
				entree.UtilisateurID = &userID
			}
			if json.Valid(corps) {
				entree.Corps = datatypes.JSON(corps)
			}

			if err := db.Create(&entree).Error; err != nil {
				logger.Error("échec de journalisation d'audit",
					zap.String("chemin", r.URL.Path),
					zap.Error(err))
			}
		})
	}
}

func adresseClient(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
