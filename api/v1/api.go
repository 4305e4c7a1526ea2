package v1

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/seowoojae/shelfd/catalog"
	"github.com/seowoojae/shelfd/log"
	"github.com/seowoojae/shelfd/middleware"
	"github.com/seowoojae/shelfd/storage"
	"github.com/seowoojae/shelfd/store"
	"github.com/seowoojae/shelfd/worker"
)

type Handler struct {
	store      *store.Store
	catalog    *catalog.Client
	covers     *storage.CoverStore
	mirrorPool *worker.Pool
	router     *mux.Router
}

func Server(router *mux.Router, store *store.Store, catalogClient *catalog.Client, covers *storage.CoverStore, mirrorPool *worker.Pool) {
	handler := &Handler{
		store:      store,
		catalog:    catalogClient,
		covers:     covers,
		mirrorPool: mirrorPool,
		router:     router,
	}

	sr := router.PathPrefix("/api/v1").Subrouter()
	middleware := middleware.NewMiddleware(handler.store)
	sr.Use(middleware.HandleCORS)
	sr.Use(middleware.LoggingRequest)

	sSetting, err := store.GetOrUpsertSystemSecuritySetting()
	if err != nil {
		log.Logger.Error("Error getting security setting", zap.Error(err))
		os.Exit(1)
	}
	jwtSecret := sSetting.JWTSecret
	sr.Use(NewAuthInterceptor(store, jwtSecret).AuthenticationInterceptor)
	sr.Methods(http.MethodOptions)

	sr.HandleFunc("/signup", handler.signUp).Methods(http.MethodPost)
	sr.HandleFunc("/signin", handler.signIn).Methods(http.MethodPost)
	sr.HandleFunc("/signout", handler.signOut).Methods(http.MethodPost)
	sr.HandleFunc("/auth/callback", handler.authCallback).Methods(http.MethodGet)
	sr.HandleFunc("/me", handler.me).Methods(http.MethodGet)
	sr.HandleFunc("/settings/general", handler.setGeneralSettings).Methods(http.MethodPost)

	sr.HandleFunc("/books", handler.listBooks).Methods(http.MethodGet)
	sr.HandleFunc("/books", handler.addBook).Methods(http.MethodPost)
	sr.HandleFunc("/books/{id}", handler.getBook).Methods(http.MethodGet)
	sr.HandleFunc("/books/{id}", handler.deleteBook).Methods(http.MethodDelete)
	sr.HandleFunc("/books/{id}/status", handler.updateBookStatus).Methods(http.MethodPatch)
	sr.HandleFunc("/books/{id}/progress", handler.updateBookProgress).Methods(http.MethodPatch)
	sr.HandleFunc("/books/{id}/rating", handler.updateBookRating).Methods(http.MethodPatch)
	sr.HandleFunc("/books/{id}/dates", handler.updateBookDates).Methods(http.MethodPatch)

	sr.HandleFunc("/books/{id}/memos", handler.listBookMemos).Methods(http.MethodGet)
	sr.HandleFunc("/books/{id}/memos", handler.addMemo).Methods(http.MethodPost)
	sr.HandleFunc("/memos", handler.listMemos).Methods(http.MethodGet)
	sr.HandleFunc("/memos/{id}", handler.updateMemo).Methods(http.MethodPatch)
	sr.HandleFunc("/memos/{id}", handler.deleteMemo).Methods(http.MethodDelete)

	sr.HandleFunc("/search/books", handler.searchBooks).Methods(http.MethodGet)
	sr.HandleFunc("/search/lookup", handler.lookupBook).Methods(http.MethodGet)
	sr.HandleFunc("/search/recent", handler.listRecentSearches).Methods(http.MethodGet)
	sr.HandleFunc("/search/recent", handler.removeRecentSearch).Methods(http.MethodDelete)
	sr.HandleFunc("/search/recent/all", handler.clearRecentSearches).Methods(http.MethodDelete)

	sr.HandleFunc("/stats/monthly", handler.monthlyStats).Methods(http.MethodGet)
	sr.HandleFunc("/covers/{bookID}", handler.getCover).Methods(http.MethodGet)
}
