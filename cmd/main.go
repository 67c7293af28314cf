package main

import (
	"net/http"
	"os"
	"time"

	"github.com/MairieServices/api-marche/internal/audit"
	"github.com/MairieServices/api-marche/internal/auth"
	"github.com/MairieServices/api-marche/internal/collecteur"
	"github.com/MairieServices/api-marche/internal/commercant"
	"github.com/MairieServices/api-marche/internal/dashboard"
	"github.com/MairieServices/api-marche/internal/etal"
	"github.com/MairieServices/api-marche/internal/lot"
	"github.com/MairieServices/api-marche/internal/notification"
	"github.com/MairieServices/api-marche/internal/paiement"
	"github.com/MairieServices/api-marche/internal/rapport"
	"github.com/MairieServices/api-marche/internal/secteur"
	"github.com/MairieServices/api-marche/internal/taxe"
	"github.com/MairieServices/api-marche/internal/ticket"
	"github.com/MairieServices/api-marche/internal/utilisateur"
	"github.com/MairieServices/api-marche/internal/utils/db"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func journaliserRequetes(logger *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			debut := time.Now()
			next.ServeHTTP(w, r)
			logger.Info("requête",
				zap.String("methode", r.Method),
				zap.String("chemin", r.URL.Path),
				zap.Duration("duree", time.Since(debut)),
			)
		})
	}
}

func main() {
	godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	conn, err := db.GetDB()
	if err != nil {
		logger.Fatal("connexion à la base impossible", zap.Error(err))
	}

	if err := conn.AutoMigrate(
		&utilisateur.Utilisateur{},
		&secteur.Secteur{},
		&commercant.Commercant{},
		&collecteur.Collecteur{},
		&etal.Etal{},
		&etal.HistoriqueAttribution{},
		&ticket.Ticket{},
		&lot.LotTickets{},
		&taxe.TaxeJournaliere{},
		&paiement.Paiement{},
		&notification.Notification{},
		&audit.JournalAudit{},
		&rapport.RapportJournalierCollecteur{},
		&rapport.RapportMensuelCollecteur{},
	); err != nil {
		logger.Fatal("échec de la migration", zap.Error(err))
	}
	if err := lot.MigrerIndexLotOuvert(conn); err != nil {
		logger.Fatal("échec de la migration des index", zap.Error(err))
	}

	// Handlers
	utilisateurHandler := utilisateur.NewHandler(conn)
	secteurHandler := secteur.NewHandler(conn)
	commercantHandler := commercant.NewHandler(conn)
	collecteurHandler := collecteur.NewHandler(conn)
	etalHandler := etal.NewHandler(conn)
	ticketHandler := ticket.NewHandler(conn)
	lotHandler := lot.NewHandler(conn)
	taxeHandler := taxe.NewHandler(conn)
	paiementHandler := paiement.NewHandler(conn)
	notificationHandler := notification.NewHandler(conn)
	auditHandler := audit.NewHandler(conn)
	rapportHandler := rapport.NewHandler(conn)
	dashboardHandler := dashboard.NewHandler(conn)

	r := mux.NewRouter()
	r.Use(journaliserRequetes(logger))

	// Route publique
	r.HandleFunc("/login", utilisateurHandler.Login).Methods("POST")

	// Toutes les autres routes exigent un token
	api := r.PathPrefix("/").Subrouter()
	api.Use(auth.MiddlewareAuthentification)
	api.Use(audit.Middleware(conn, logger))

	admin := func(h http.HandlerFunc) http.Handler {
		return auth.RequireAdmin(h)
	}

	// Utilisateurs
	api.Handle("/utilisateurs", admin(utilisateurHandler.CreerUtilisateur)).Methods("POST")
	api.Handle("/utilisateurs", admin(utilisateurHandler.ListerUtilisateurs)).Methods("GET")
	api.Handle("/utilisateurs/{id}", admin(utilisateurHandler.DesactiverUtilisateur)).Methods("DELETE")
	api.HandleFunc("/me", utilisateurHandler.Me).Methods("GET")

	// Secteurs
	api.HandleFunc("/secteurs", secteurHandler.CreerSecteur).Methods("POST")
	api.HandleFunc("/secteurs", secteurHandler.ListerSecteurs).Methods("GET")
	api.HandleFunc("/secteurs/{id}", secteurHandler.ChercherParID).Methods("GET")
	api.HandleFunc("/secteurs/{id}", secteurHandler.MettreAJourSecteur).Methods("PUT")
	api.Handle("/secteurs/{id}", admin(secteurHandler.SupprimerSecteur)).Methods("DELETE")

	// Commerçants
	api.HandleFunc("/commercants", commercantHandler.CreerCommercant).Methods("POST")
	api.HandleFunc("/commercants", commercantHandler.ListerCommercants).Methods("GET")
	api.HandleFunc("/commercants/{id}", commercantHandler.ChercherParID).Methods("GET")
	api.HandleFunc("/commercants/{id}", commercantHandler.MettreAJourCommercant).Methods("PUT")
	api.HandleFunc("/commercants/{id}/resume", commercantHandler.ObtenirResume).Methods("GET")

	// Collecteurs
	api.HandleFunc("/collecteurs", collecteurHandler.CreerCollecteur).Methods("POST")
	api.HandleFunc("/collecteurs", collecteurHandler.ListerCollecteurs).Methods("GET")
	api.HandleFunc("/collecteurs/{id}", collecteurHandler.ChercherParID).Methods("GET")
	api.HandleFunc("/collecteurs/{id}", collecteurHandler.MettreAJourCollecteur).Methods("PUT")

	// Étals
	api.HandleFunc("/etals", etalHandler.CreerEtal).Methods("POST")
	api.HandleFunc("/etals", etalHandler.ListerEtals).Methods("GET")
	api.HandleFunc("/etals/{id}", etalHandler.ChercherParID).Methods("GET")
	api.HandleFunc("/etals/{id}/attribuer", etalHandler.AttribuerEtal).Methods("POST")
	api.HandleFunc("/etals/{id}/liberer", etalHandler.LibererEtal).Methods("POST")
	api.HandleFunc("/etals/{id}/historique", etalHandler.ListerHistorique).Methods("GET")

	// Tickets
	api.HandleFunc("/tickets", ticketHandler.CreerTicket).Methods("POST")
	api.HandleFunc("/tickets/generer", ticketHandler.GenererEnMasse).Methods("POST")
	api.HandleFunc("/tickets/disponibles", ticketHandler.ListerDisponibles).Methods("GET")
	api.HandleFunc("/tickets/{numero}", ticketHandler.ChercherParNumero).Methods("GET")
	api.Handle("/tickets/{numero}/annuler", admin(ticketHandler.AnnulerTicket)).Methods("POST")
	api.Handle("/tickets/{numero}", admin(ticketHandler.SupprimerTicket)).Methods("DELETE")

	// Lots de tickets
	api.HandleFunc("/lots", lotHandler.CreerLot).Methods("POST")
	api.HandleFunc("/lots", lotHandler.ListerLots).Methods("GET")
	api.HandleFunc("/lots/{id}/assigner", lotHandler.AssignerPlage).Methods("POST")
	api.HandleFunc("/lots/{id}", lotHandler.MettreAJourLot).Methods("PUT")
	api.HandleFunc("/lots/{id}/clore", lotHandler.CloreLot).Methods("POST")
	api.Handle("/lots/{id}/rouvrir", admin(lotHandler.RouvrirLot)).Methods("POST")
	api.HandleFunc("/lots/{id}/resume", lotHandler.ObtenirResume).Methods("GET")

	// Taxes journalières
	api.HandleFunc("/taxes/generer", taxeHandler.GenererPourDate).Methods("POST")
	api.HandleFunc("/taxes", taxeHandler.ListerParDate).Methods("GET")
	api.HandleFunc("/taxes/retards", taxeHandler.ListerRetards).Methods("GET")
	api.Handle("/taxes/{id}/annuler", admin(taxeHandler.AnnulerTaxe)).Methods("POST")

	// Paiements
	api.HandleFunc("/paiements", paiementHandler.CreerPaiement).Methods("POST")
	api.HandleFunc("/paiements", paiementHandler.ListerPaiements).Methods("GET")
	api.HandleFunc("/paiements/resume", paiementHandler.ObtenirResumeJournalier).Methods("GET")
	api.HandleFunc("/paiements/{id}", paiementHandler.ChercherPaiement).Methods("GET")
	api.Handle("/paiements/{id}", admin(paiementHandler.ModifierPaiement)).Methods("PUT")
	api.Handle("/paiements/{id}", admin(paiementHandler.AnnulerPaiement)).Methods("DELETE")

	// Notifications
	api.HandleFunc("/notifications", notificationHandler.MesNotifications).Methods("GET")
	api.HandleFunc("/notifications/{id}/lue", notificationHandler.MarquerLue).Methods("POST")
	api.Handle("/notifications/relances", admin(notificationHandler.DeclencherRelances)).Methods("POST")

	// Rapports
	api.Handle("/rapports/journaliers/consolider", admin(rapportHandler.ConsoliderJournalier)).Methods("POST")
	api.HandleFunc("/rapports/journaliers", rapportHandler.ListerJournalier).Methods("GET")
	api.Handle("/rapports/mensuels/consolider", admin(rapportHandler.ConsoliderMensuel)).Methods("POST")
	api.HandleFunc("/rapports/mensuels", rapportHandler.ListerMensuel).Methods("GET")

	// Audit et tableau de bord
	api.Handle("/audit", admin(auditHandler.ListerJournal)).Methods("GET")
	api.HandleFunc("/dashboard", dashboardHandler.VueEnsemble).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("serveur démarré", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, c.Handler(r)); err != nil {
		logger.Fatal("arrêt du serveur", zap.Error(err))
	}
}
