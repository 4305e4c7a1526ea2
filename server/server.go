package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	v1 "github.com/seowoojae/shelfd/api/v1"
	"github.com/seowoojae/shelfd/catalog"
	"github.com/seowoojae/shelfd/config"
	"github.com/seowoojae/shelfd/log"
	"github.com/seowoojae/shelfd/storage"
	"github.com/seowoojae/shelfd/store"
	"github.com/seowoojae/shelfd/version"
	"github.com/seowoojae/shelfd/worker"
)

// StartServer starts the HTTP server.
func StartServer(ctx context.Context, store *store.Store, catalogClient *catalog.Client, covers *storage.CoverStore, mirrorPool *worker.Pool) *http.Server {
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", config.Opts.Host, config.Opts.Port),
		Handler: setupHandler(store, catalogClient, covers, mirrorPool),
	}

	go func() {
		log.Info("Starting HTTP server on " + server.Addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal("HTTP server error: " + err.Error())
		}
	}()

	return server
}

func setupHandler(store *store.Store, catalogClient *catalog.Client, covers *storage.CoverStore, mirrorPool *worker.Pool) http.Handler {
	router := mux.NewRouter()
	router.Use(middleware)

	v1.Server(router, store, catalogClient, covers, mirrorPool)

	router.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(); err != nil {
			http.Error(w, "Database Connection Error", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}).Name("healthcheck")

	router.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(version.GetCurrentVersion()))
	}).Name("version")

	return router
}
