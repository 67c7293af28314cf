package utilisateur

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/MairieServices/api-marche/internal/auth"
	"github.com/MairieServices/api-marche/internal/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Username   string `json:"username"`
	MotDePasse string `json:"motDePasse"`
}

type createUtilisateurRequest struct {
	Nom        string `json:"nom"`
	Prenom     string `json:"prenom"`
	Username   string `json:"username"`
	MotDePasse string `json:"motDePasse"`
	EstAdmin   bool   `json:"estAdmin"`
}

// Handler encapsule DB et repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
	}
}

// Login génère un JWT pour des identifiants valides
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "payload invalide")
		return
	}

	user, err := h.Repository.ChercherParUsername(h.DB, req.Username)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "identifiants invalides")
		return
	}
	if !user.Actif {
		utils.RespondError(w, http.StatusUnauthorized, "compte désactivé")
		return
	}
	if !utils.VerifierMotDePasse(user.MotDePasse, req.MotDePasse) {
		utils.RespondError(w, http.StatusUnauthorized, "mot de passe incorrect")
		return
	}

	token, err := auth.GenererToken(user.ID, user.EstAdmin)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors de la génération du token")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// CreerUtilisateur crée un nouveau compte agent (admin uniquement).
func (h *Handler) CreerUtilisateur(w http.ResponseWriter, r *http.Request) {
	var req createUtilisateurRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "payload invalide")
		return
	}

	hash, err := utils.HashMotDePasse(req.MotDePasse)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors du traitement du mot de passe")
		return
	}

	u := Utilisateur{
		Nom:        req.Nom,
		Prenom:     req.Prenom,
		Username:   req.Username,
		MotDePasse: hash,
		EstAdmin:   req.EstAdmin,
		Actif:      true,
	}
	if err := h.Repository.Sauver(h.DB, &u); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors de la création de l'utilisateur")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, u)
}

// ListerUtilisateurs retourne tous les comptes (admin uniquement).
func (h *Handler) ListerUtilisateurs(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.ListerTous(h.DB)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors du listing des utilisateurs")
		return
	}
	utils.RespondJSON(w, http.StatusOK, list)
}

// Me retourne l'utilisateur connecté
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.CtxUserID).(uint)

	u, err := h.Repository.ChercherParID(h.DB, userID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "utilisateur introuvable")
		return
	}
	utils.RespondJSON(w, http.StatusOK, u)
}

// DesactiverUtilisateur désactive un compte sans le supprimer.
func (h *Handler) DesactiverUtilisateur(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "ID invalide")
		return
	}

	u, err := h.Repository.ChercherParID(h.DB, uint(id))
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "utilisateur introuvable")
		return
	}
	u.Actif = false
	if err := h.Repository.Sauver(h.DB, u); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors de la désactivation")
		return
	}
	utils.RespondJSON(w, http.StatusOK, u)
}
