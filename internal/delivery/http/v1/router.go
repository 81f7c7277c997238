package v1

import (
	"interview-experience-backend/internal/delivery/http/middleware"
	"interview-experience-backend/internal/delivery/http/response"
	"interview-experience-backend/internal/domain"
	"interview-experience-backend/internal/usecase"
	"interview-experience-backend/pkg/security"
	"interview-experience-backend/pkg/validation"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC         domain.AuthUsecase
	SubmissionUC   domain.SubmissionUsecase
	HealthUC       usecase.HealthUsecase
	Tokens         middleware.TokenVerifier
	AllowedOrigins []string
	// Audit receives authentication events; DefaultLogger when nil.
	Audit *security.SecurityLogger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	audit := deps.Audit
	if audit == nil {
		audit = security.DefaultLogger()
	}

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.AllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	public := r.Group("")

	// Health Check
	public.GET("/health", func(c *gin.Context) {
		status, ok := deps.HealthUC.Check(c.Request.Context())
		if !ok {
			response.Error(c, http.StatusServiceUnavailable, "Database unreachable", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	// Swagger
	public.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := r.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens, audit))
	{
		NewAuthHandler(public, protected, deps.AuthUC, audit)
		NewSubmissionHandler(protected, deps.SubmissionUC)
	}

	return r
}
