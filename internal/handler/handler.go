package handler

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/prog6212/cmcs/backend/internal/config"
	"github.com/prog6212/cmcs/backend/internal/domain"
	"github.com/prog6212/cmcs/backend/internal/service"
)

// MailPublisher queues mail for the mail worker.
type MailPublisher interface {
	Publish(ctx context.Context, msg domain.MailMessage) error
}

// TokenStore remembers tokens that were logged out before they expired.
type TokenStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// DocumentStore hands out presigned URLs for claim documents.
type DocumentStore interface {
	UploadURL(ctx context.Context, lecturerID int64, originalName string) (*domain.DocumentRef, string, error)
	DownloadURL(ctx context.Context, ref *domain.DocumentRef) (string, error)
}

type Handler struct {
	validate   *validator.Validate
	config     *config.Config
	service    *service.Service
	translator ut.Translator
	mail       MailPublisher
	tokens     TokenStore
	documents  DocumentStore

	Mux *chi.Mux
}

// NewHandler wires the HTTP layer. documents may be nil, in which case the
// document endpoints report that uploads are disabled.
func NewHandler(cfg *config.Config, svc *service.Service, mail MailPublisher, tokens TokenStore, documents DocumentStore) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:   validate,
		config:     cfg,
		service:    svc,
		translator: trans,
		mail:       mail,
		tokens:     tokens,
		documents:  documents,

		Mux: chi.NewRouter(),
	}, nil
}

var (
	reviewerRoles = []domain.Role{domain.RoleCoordinator, domain.RoleManager}
	reportRoles   = []domain.Role{domain.RoleHR, domain.RoleManager}
)

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// everything below requires a valid login cookie
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.myInfo)

		r.Get("/dashboard", h.GetDashboard)

		r.Route("/my-info", func(r chi.Router) {
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleHR}))
			r.Get("/", h.GetAllUserInfo)
			r.Post("/", h.CreateUser)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.Patch("/", h.UpdateUser)
				r.Patch("/password", h.UpdateUserPassword)
			})
		})

		r.Route("/claims", func(r chi.Router) {
			r.Get("/", h.GetClaims)
			r.With(h.RequiredRole([]domain.Role{domain.RoleLecturer})).Post("/", h.SubmitClaim)
			r.With(h.RequiredRole([]domain.Role{domain.RoleCoordinator})).Get("/pending-verification", h.GetPendingVerification)
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Get("/pending-approval", h.GetPendingApproval)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.claim)
				r.Use(h.claimAccess)
				r.Get("/", h.GetClaim)
				r.Get("/document", h.GetClaimDocument)
				r.With(h.RequiredRole([]domain.Role{domain.RoleCoordinator})).Post("/verify", h.VerifyClaim)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/approve", h.ApproveClaim)
				r.With(h.RequiredRole(reviewerRoles)).Post("/reject", h.RejectClaim)
			})
		})

		r.With(h.RequiredRole([]domain.Role{domain.RoleLecturer})).Post("/documents/upload-url", h.CreateUploadURL)

		r.Route("/reports", func(r chi.Router) {
			r.Use(h.RequiredRole(reportRoles))
			r.Get("/monthly", h.GetMonthlyReport)
			r.Get("/monthly.xlsx", h.DownloadMonthlyReport)
		})
	})
}
