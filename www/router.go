package www

import (
	"io/fs"
	"net/http"

	"aquapos/config"
	"aquapos/sales"
	"aquapos/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	db        *store.DB
	salesMgr  *sales.Manager
	sessions  *sessionStore
	imagesDir string
}

// NewRouter creates the chi router for the JSON API and the embedded SPA.
func NewRouter(db *store.DB, salesMgr *sales.Manager, cfg *config.WebConfig) http.Handler {
	h := &Handlers{
		db:        db,
		salesMgr:  salesMgr,
		sessions:  newSessionStore(cfg.SessionSecret),
		imagesDir: cfg.ImagesDir,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	// SPA pages
	r.Get("/", h.servePage("index.html"))
	r.Get("/login", h.servePage("login.html"))
	r.Get("/dashboard", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := h.sessions.getUser(r); !ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		h.servePage("index.html")(w, r)
	})

	// Static assets; uploaded images are served from disk.
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(StaticFS()))))
	r.Handle("/assets/images/*", http.StripPrefix("/assets/images/", http.FileServer(http.Dir(h.imagesDir))))

	r.Route("/api", func(r chi.Router) {
		// Public
		r.Post("/login", h.apiLogin)
		r.Get("/whoami", h.apiWhoami)
		r.Post("/logout", h.apiLogout)
		r.Get("/products", h.apiListProducts)
		r.Get("/images", h.apiListImages)

		// Any authenticated user
		r.Group(func(r chi.Router) {
			r.Use(h.requireUser)
			r.Get("/orders", h.apiListOrders)
			r.Post("/orders", h.apiCreateOrder)
			r.Get("/stock", h.apiListStock)
			r.Get("/sources", h.apiListSources)
			r.Get("/product_sources", h.apiListProductSources)
			r.Get("/products/{productID}/history", h.apiProductPriceHistory)
		})

		// Admin only
		r.Group(func(r chi.Router) {
			r.Use(h.requireAdmin)
			r.Post("/products", h.apiCreateProduct)
			r.Put("/products/{productID}", h.apiUpdateProduct)
			r.Delete("/products/{productID}", h.apiDeleteProduct)
			r.Post("/stock", h.apiCreateStock)
			r.Put("/stock/{productID}", h.apiUpdateStock)
			r.Delete("/stock/{productID}", h.apiDeleteStock)
			r.Post("/sources", h.apiCreateSource)
			r.Put("/sources/{sourceID}", h.apiUpdateSource)
			r.Delete("/sources/{sourceID}", h.apiDeleteSource)
			r.Post("/product_sources", h.apiSetProductSource)
			r.Delete("/product_sources/{productID}", h.apiDeleteProductSource)
			r.Get("/movements", h.apiListMovements)
			r.Get("/daily_summary", h.apiDailySummary)
			r.Post("/upload_image", h.apiUploadImage)
		})
	})

	return r
}

func (h *Handlers) servePage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := fs.ReadFile(StaticFS(), name)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(data)
	}
}
