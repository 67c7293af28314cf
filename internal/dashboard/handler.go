package dashboard

import (
	"net/http"
	"time"

	"github.com/MairieServices/api-marche/internal/cache"
	"github.com/MairieServices/api-marche/internal/utils"

	"gorm.io/gorm"
)

// Durée de vie des agrégats servis au tableau de bord.
const ttlVue = 5 * time.Minute

const cleVueEnsemble = "dashboard:vue-ensemble"

type Handler struct {
	DB    *gorm.DB
	Cache *cache.Cache
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:    db,
		Cache: cache.New(ttlVue),
	}
}

// VueEnsemble sert la photographie du jour, mise en cache pour absorber
// les rafraîchissements du back-office.
func (h *Handler) VueEnsemble(w http.ResponseWriter, r *http.Request) {
	if v, ok := h.Cache.Get(cleVueEnsemble); ok {
		utils.RespondJSON(w, http.StatusOK, v)
		return
	}

	vue, err := MonterVueEnsemble(h.DB, time.Now())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors du calcul du tableau de bord")
		return
	}
	h.Cache.Set(cleVueEnsemble, vue)
	utils.RespondJSON(w, http.StatusOK, vue)
}
