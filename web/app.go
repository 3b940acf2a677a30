package web

import (
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/Klikmok/django-sprint4/internal/config"
	"github.com/Klikmok/django-sprint4/internal/database"
)

type app struct {
	infoLog         *log.Logger
	errorLog        *log.Logger
	HTMLDir         string
	StaticDir       string
	MediaDir        string
	Database        *database.Database
	UserService     *database.UserService
	SessionService  *database.SessionService
	PostService     *database.PostService
	CommentService  *database.CommentService
	CategoryService *database.CategoryService
	LocationService *database.LocationService
}

func RunApp() {
	infoLog := log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime)
	errorLog := log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)

	cfg := config.Load()

	addr := flag.String("addr", cfg.Addr, "HTTP network address")
	htmlDir := flag.String("html-dir", cfg.HTMLDir, "Path to HTML templates")
	staticDir := flag.String("static-dir", cfg.StaticDir, "Path to static assets")
	mediaDir := flag.String("media-dir", cfg.MediaDir, "Path to uploaded images")
	dsn := flag.String("dsn", cfg.DSN, "Path to SQLite3 database file")
	schema := flag.String("schema", cfg.SchemaPath, "Path to database schema file")

	flag.Parse()

	db, err := database.New(*dsn, *schema)
	if err != nil {
		errorLog.Fatal("Failed to open SQLite DB: ", err)
	}
	defer db.Close()

	infoLog.Println("SQLite DB connected:", *dsn)

	app := &app{
		infoLog:         infoLog,
		errorLog:        errorLog,
		HTMLDir:         *htmlDir,
		StaticDir:       *staticDir,
		MediaDir:        *mediaDir,
		Database:        db,
		UserService:     database.NewUserService(db),
		SessionService:  database.NewSessionService(db),
		PostService:     database.NewPostService(db),
		CommentService:  database.NewCommentService(db),
		CategoryService: database.NewCategoryService(db),
		LocationService: database.NewLocationService(db),
	}

	if err := app.SessionService.CleanupExpiredSessions(); err != nil {
		app.infoLog.Printf("Warning: failed to cleanup expired sessions: %v", err)
	}

	srv := &http.Server{
		Addr:     *addr,
		ErrorLog: app.errorLog,
		Handler:  app.routes(),

		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	infoLog.Printf("Starting server on http://localhost%s", *addr)
	if err := srv.ListenAndServe(); err != nil {
		errorLog.Fatal(err)
	}
}
