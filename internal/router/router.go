package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"photoshare/internal/config"
	"photoshare/internal/handler"
	"photoshare/internal/middleware"
)

// staticFiles serves stored artifacts only. Directory paths report
// not-found instead of an index page, so anonymous requests cannot
// enumerate stored names.
type staticFiles struct {
	root http.FileSystem
}

func (s staticFiles) Open(name string) (http.File, error) {
	file, err := s.root.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}

	if info.IsDir() {
		_ = file.Close()
		return nil, fs.ErrNotExist
	}

	return file, nil
}

type Handlers struct {
	Auth  *handler.AuthHandler
	User  *handler.UserHandler
	Admin *handler.AdminHandler
	Photo *handler.PhotoHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers, uploadRoot string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Stored artifacts are exposed under a static prefix mapping
	// directly to their stored names. Single files only, no listings.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(staticFiles{root: http.Dir(uploadRoot)})))

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", h.Auth.Register)
			auth.Post("/login", h.Auth.Login)
			auth.With(authMiddleware.RequireAuth).Get("/me", h.Auth.Me)
		})

		api.Route("/users", func(users chi.Router) {
			users.Use(authMiddleware.RequireAuth)
			users.Get("/", h.User.List)
			users.Get("/{id}", h.User.Get)
			users.Put("/{id}", h.User.Update)
			users.Put("/{id}/password", h.User.ChangePassword)
			users.Delete("/{id}", h.User.Delete)
			users.Post("/{id}/profile-pic", h.User.UploadProfilePic)
		})

		api.Route("/admin/users", func(admin chi.Router) {
			admin.Use(authMiddleware.RequireAuth)
			admin.Get("/", h.Admin.List)
			admin.Get("/{id}", h.Admin.Get)
			admin.Post("/", h.Admin.Create)
			admin.Put("/{id}", h.Admin.Update)
			admin.Delete("/{id}", h.Admin.Delete)
		})

		api.Route("/photos", func(photos chi.Router) {
			photos.With(authMiddleware.RequireAuth).Post("/", h.Photo.Upload)
			photos.With(authMiddleware.RequireAuth).Get("/me", h.Photo.ListMine)
			photos.With(authMiddleware.RequireAuth).Get("/{id}/thumbnail", h.Photo.Thumbnail)

			// The unauthenticated per-user listing is a policy decision
			// for the operator; it stays off unless explicitly enabled.
			if cfg.PublicPhotoListing {
				photos.Get("/user/{id}", h.Photo.ListByUser)
			}
		})
	})

	return r
}
