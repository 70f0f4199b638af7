package api

import (
	"time"

	"github.com/aricheng/vitalcheck/internal/db"
	"github.com/aricheng/vitalcheck/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const identityCacheTTL = 60 * time.Second

// Options carries everything a Handler needs besides the database.
type Options struct {
	SecretKey    []byte
	Location     *time.Location
	CookieSecure bool
	SessionTTL   time.Duration
	Logger       zerolog.Logger
	Mailer       services.Mailer
}

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	sessionTTL   time.Duration
	logger       zerolog.Logger
	validate     *validator.Validate

	repositories  *db.Repositories
	authService   *services.AuthService
	recordService *services.RecordService
	adminService  *services.AdminService
	identities    *services.IdentityCache
	codeLimiter   *attemptLimiter
}

func NewHandler(database *gorm.DB, options Options) *Handler {
	location := options.Location
	if location == nil {
		location = time.UTC
	}
	sessionTTL := options.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	mailer := options.Mailer
	if mailer == nil {
		mailer = services.NewLogMailer(options.Logger)
	}

	repositories := db.NewRepositories(database)
	return &Handler{
		db:            database,
		secretKey:     options.SecretKey,
		location:      location,
		cookieSecure:  options.CookieSecure,
		sessionTTL:    sessionTTL,
		logger:        options.Logger,
		validate:      newValidator(),
		repositories:  repositories,
		authService:   services.NewAuthService(repositories.Users, repositories.Verifications, mailer),
		recordService: services.NewRecordService(repositories.Records),
		adminService:  services.NewAdminService(repositories.Users, repositories.Records),
		identities:    services.NewIdentityCache(identityCacheTTL),
		codeLimiter:   newAttemptLimiter(),
	}
}

func (handler *Handler) now() time.Time {
	return time.Now().In(handler.location)
}
