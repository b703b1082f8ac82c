package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (app *Config) routes() http.Handler {
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	mux.Use(middleware.Heartbeat("/ping"))
	mux.Handle("/metrics", promhttp.Handler())

	recordHandler := NewRecordHandler(app.Tracker)
	statsHandler := NewStatsHandler(app.Tracker)

	mux.Get("/records", recordHandler.ListRecords)
	mux.Get("/records/{id}", recordHandler.GetRecord)

	// Only the owner token may change records
	mux.Group(func(r chi.Router) {
		r.Use(app.Tokens.RequireOwner)
		r.Post("/records", recordHandler.CreateRecord)
		r.Patch("/records/{id}", recordHandler.UpdateRecord)
		r.Delete("/records/{id}", recordHandler.DeleteRecord)
	})

	mux.Post("/duration/preview", statsHandler.PreviewDuration)
	mux.Get("/stats", statsHandler.GetStatistics)
	mux.Get("/stats/daily", statsHandler.GetDailyTotals)
	mux.Get("/today", statsHandler.GetToday)

	return mux
}
