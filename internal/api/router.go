package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ramonehamilton/MD-Companion/internal/api/handlers"
	"github.com/ramonehamilton/MD-Companion/internal/api/response"
)

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.healthCheck)
	s.router.Get("/ws", s.wsHub.ServeWs)

	c := s.controller
	s.router.Route("/api/v1", func(r chi.Router) {
		recordHandler := handlers.NewRecordHandler(c.Records)
		r.Route("/records", func(r chi.Router) {
			r.Get("/", recordHandler.GetRecords)
			r.Post("/", recordHandler.CreateRecord)
			r.Get("/{recordID}", recordHandler.GetRecord)
			r.Put("/{recordID}", recordHandler.UpdateRecord)
			r.Delete("/{recordID}", recordHandler.DeleteRecord)
		})

		deckHandler := handlers.NewDeckHandler(c.Decks)
		r.Route("/decks/{kind}", func(r chi.Router) {
			r.Get("/", deckHandler.GetDecks)
			r.Post("/", deckHandler.CreateDeck)
			r.Put("/", deckHandler.RenameDeck)
			r.Delete("/{name}", deckHandler.DeleteDeck)
		})

		seasonHandler := handlers.NewSeasonHandler(c.Seasons)
		r.Route("/seasons", func(r chi.Router) {
			r.Get("/", seasonHandler.GetSeasons)
			r.Post("/", seasonHandler.CreateSeason)
			r.Put("/active", seasonHandler.ActivateSeason)
			r.Delete("/{season}", seasonHandler.DeleteSeason)
		})

		statsHandler := handlers.NewStatsHandler(c.Stats)
		r.Route("/stats", func(r chi.Router) {
			r.Get("/deck", statsHandler.GetDeckStats)
			r.Get("/streaks", statsHandler.GetStreaks)
		})
		r.Route("/distributions", func(r chi.Router) {
			r.Get("/opponents", statsHandler.GetOpponentDistribution)
			r.Get("/own", statsHandler.GetOwnDistribution)
		})

		chartHandler := handlers.NewChartHandler(c.Stats, c.Seasons, s.config.Charts)
		r.Route("/charts", func(r chi.Router) {
			r.Get("/opponents", chartHandler.GetOpponentChart)
			r.Get("/own", chartHandler.GetOwnChart)
		})

		exportHandler := handlers.NewExportHandler(c.Records, c.Seasons)
		r.Get("/export", exportHandler.ExportRecords)

		backupHandler := handlers.NewBackupHandler(c.Backups)
		r.Route("/backups", func(r chi.Router) {
			r.Get("/", backupHandler.GetBackups)
			r.Post("/", backupHandler.CreateBackup)
			r.Post("/restore", backupHandler.RestoreBackup)
		})

		systemHandler := handlers.NewSystemHandler(c, s.metrics)
		r.Route("/system", func(r chi.Router) {
			r.Get("/version", systemHandler.GetVersion)
			r.Get("/status", systemHandler.GetStatus)
			r.Get("/metrics", systemHandler.GetMetrics)
			r.Post("/save", systemHandler.Save)
			r.Post("/reload", systemHandler.Reload)
		})
	})
}

// healthCheck returns server health status.
func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "md-companion-api",
	})
}
