package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/mestral-events/opsboard/backend/internal/availability"
	"github.com/mestral-events/opsboard/backend/internal/collections"
	"github.com/mestral-events/opsboard/backend/internal/config"
	"github.com/mestral-events/opsboard/backend/internal/domain"
	"github.com/mestral-events/opsboard/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	engine      *availability.Engine
	resolver    *collections.Resolver
	restPolicy  *collections.RestPolicy
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, engine *availability.Engine, resolver *collections.Resolver, restPolicy *collections.RestPolicy, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		engine:      engine,
		resolver:    resolver,
		restPolicy:  restPolicy,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// everything below requires a session
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteUser)
			})
		})

		r.Route("/departments/{department}", func(r chi.Router) {
			r.Use(h.department)
			r.Route("/records", func(r chi.Router) {
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleCoordinator})).Post("/", h.CreateAssignmentRecord)
				r.Get("/", h.ListAssignmentRecords)
				r.Route("/{recordID}", func(r chi.Router) {
					r.Use(h.assignmentRecord)
					r.Get("/", h.GetAssignmentRecord)
					r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleCoordinator})).Patch("/", h.UpdateAssignmentRecord)
					r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteAssignmentRecord)
				})
			})
			r.Route("/settings", func(r chi.Router) {
				r.Get("/rest", h.GetRestRule)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Put("/rest", h.UpdateRestRule)
			})
		})

		r.Route("/availability", func(r chi.Router) {
			r.Get("/busy", h.GetBusyIdentifiers)
			r.Get("/busy-all", h.GetBusyIdentifiersAll)
			r.Post("/rest-check", h.CheckRest)
		})

		r.Route("/vehicle-assignments", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleCoordinator})).Post("/", h.CreateVehicleAssignment)
			r.Get("/", h.ListVehicleAssignments)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.vehicleAssignment)
				r.Get("/", h.GetVehicleAssignment)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleCoordinator})).Patch("/status", h.UpdateVehicleAssignmentStatus)
			})
		})

		r.Post("/transport/conflict-check", h.CheckVehicleConflict)
	})
}
