package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"cloudnote/config"
	"cloudnote/handlers"
	appmw "cloudnote/middleware"
	"cloudnote/store"
	"cloudnote/token"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	cfg := config.Load()

	st, err := store.OpenMySQL(cfg.DSN)
	if err != nil {
		log.Fatal("DB connection error:", err)
	}
	defer st.Close()

	tokens := token.NewService(cfg.JWTSecret)

	r := chi.NewRouter()

	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Post("/api/auth/signup", handlers.Signup(st, cfg.BcryptCost))
	r.Post("/api/auth/login", handlers.Login(st, tokens))

	r.Group(func(r chi.Router) {
		r.Use(appmw.RequireAuth(tokens))
		r.Get("/api/auth/userdetails", handlers.UserDetails(st))
		r.Post("/api/note", handlers.CreateNote(st))
		r.Get("/api/note/notes", handlers.ListNotes(st))
		r.Put("/api/note/{slug}", handlers.UpdateNote(st))
		r.Delete("/api/note/{slug}", handlers.DeleteNote(st))
	})

	log.Println("Server running on http://localhost:" + cfg.Port)
	http.ListenAndServe(":"+cfg.Port, r)
}
