package services

import (
	"log/slog"
	"time"

	"github.com/SAP-F-2025/online-test-service/internal/auth"
	"github.com/SAP-F-2025/online-test-service/internal/cache"
	"github.com/SAP-F-2025/online-test-service/internal/events"
	"github.com/SAP-F-2025/online-test-service/internal/repositories"
	"github.com/SAP-F-2025/online-test-service/internal/validator"
)

// ServiceManager hands out every service built over one set of dependencies
type ServiceManager interface {
	Submission() SubmissionService
	Result() ResultService
	Catalog() CatalogService
	Admin() AdminService
	Export() ExportService
	Auth() AuthService
}

// Dependencies are shared by all services. Cache, Publisher and Google may be nil.
type Dependencies struct {
	Repo           repositories.Repository
	Cache          cache.CacheService
	Publisher      events.EventPublisher
	Validator      *validator.Validator
	Tokens         *auth.TokenManager
	Google         auth.GoogleVerifier
	Logger         *slog.Logger
	PublicURL      string
	ResultCacheTTL time.Duration
}

type serviceManager struct {
	submission SubmissionService
	result     ResultService
	catalog    CatalogService
	admin      AdminService
	export     ExportService
	auth       AuthService
}

func NewServiceManager(deps Dependencies) ServiceManager {
	return &serviceManager{
		submission: NewSubmissionService(deps.Repo, deps.Publisher, deps.Validator, deps.Logger),
		result:     NewResultService(deps.Repo, deps.Cache, deps.ResultCacheTTL, deps.Logger),
		catalog:    NewCatalogService(deps.Repo, deps.PublicURL, deps.Logger),
		admin:      NewAdminService(deps.Repo, deps.Cache, deps.Publisher, deps.Validator, deps.Logger),
		export:     NewExportService(deps.Repo, deps.Logger),
		auth:       NewAuthService(deps.Repo, deps.Tokens, deps.Google, deps.Validator, deps.Logger),
	}
}

func (m *serviceManager) Submission() SubmissionService { return m.submission }
func (m *serviceManager) Result() ResultService         { return m.result }
func (m *serviceManager) Catalog() CatalogService       { return m.catalog }
func (m *serviceManager) Admin() AdminService           { return m.admin }
func (m *serviceManager) Export() ExportService         { return m.export }
func (m *serviceManager) Auth() AuthService             { return m.auth }
