package router

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	_ "pet-adoption-api/docs"
	jwtadapter "pet-adoption-api/internal/adapters/auth/jwt"
	mem "pet-adoption-api/internal/adapters/storage/memory"
	pg "pet-adoption-api/internal/adapters/storage/postgres"
	"pet-adoption-api/internal/domain/applications"
	"pet-adoption-api/internal/domain/pets"
	"pet-adoption-api/internal/domain/users"
	"pet-adoption-api/internal/middleware"
	"pet-adoption-api/internal/platform/logger"
	"pet-adoption-api/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, intenta DB_DSN y si tampoco
	// hay, repos in-memory (modo dev).
	DB *sql.DB

	// Opcional: default env JWT_SECRET; último recurso un secret de dev.
	JWTSecret string
	JWTTTL    time.Duration

	Log logger.Logger

	// Override de repos para tests.
	Stores *Stores
}

type Stores struct {
	Pets         pets.Repository
	Applications applications.Repository
	Users        users.Repository
}

// NewMemoryStores arma el set in-memory completo (dev y tests).
func NewMemoryStores() *Stores {
	return &Stores{
		Pets:         mem.NewPetRepo(),
		Applications: mem.NewApplicationRepo(),
		Users:        mem.NewUserRepo(),
	}
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	secret := opts.JWTSecret
	if secret == "" {
		secret = os.Getenv("JWT_SECRET")
	}
	if secret == "" {
		// Solo para dev/handoff; en producción JWT_SECRET es obligatorio.
		secret = "dev-secret-change-me"
		log.Warn("JWT_SECRET not set, using dev secret", nil)
	}

	tokens, err := jwtadapter.New(secret, opts.JWTTTL)
	if err != nil {
		panic(err) // secret vacío ya está cubierto arriba
	}

	stores := opts.Stores
	if stores == nil {
		stores = openStores(opts.DB, log)
	}

	// Services por módulo. El repo de applications entra a pets como
	// counter de dependientes; pets entra al workflow como registry.
	petsSvc := pets.NewService(stores.Pets, stores.Applications)
	appsSvc := applications.NewService(stores.Applications, petsSvc)
	usersSvc := users.NewService(stores.Users)

	authn := middleware.Authenticate(tokens)
	admin := middleware.RequireRole(auth.RoleAdmin)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.AccessLog(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler())

	users.RegisterRoutes(r, usersSvc, tokens, authn)
	pets.RegisterRoutes(r, petsSvc, authn, admin)
	applications.RegisterRoutes(r, appsSvc, petsSvc, usersSvc, authn, admin)

	return r
}

func openStores(db *sql.DB, log logger.Logger) *Stores {
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err != nil {
				log.Error("postgres open failed, falling back to in-memory", map[string]any{"error": err.Error()})
			} else {
				db = opened
			}
		}
	}

	if db == nil {
		log.Info("using in-memory stores", nil)
		return NewMemoryStores()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := pg.EnsureSchema(ctx, db); err != nil {
		log.Error("schema bootstrap failed", map[string]any{"error": err.Error()})
	}

	return &Stores{
		Pets:         pg.NewPetsRepo(db),
		Applications: pg.NewApplicationsRepo(db),
		Users:        pg.NewUsersRepo(db),
	}
}
