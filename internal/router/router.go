package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/housing-survey/internal/handler"
	"github.com/iliyamo/housing-survey/internal/middleware"
	"github.com/iliyamo/housing-survey/internal/repository"
)

// Handlers bundles every handler the router wires up. main builds one of
// these after constructing the repositories.
type Handlers struct {
	Auth            *handler.AuthHandler
	Cities          *handler.CityHandler
	Postcodes       *handler.PostcodeHandler
	Streets         *handler.StreetHandler
	Addresses       *handler.AddressHandler
	Users           *handler.UserHandler
	Companies       *handler.HousingCompanyHandler
	Surveys         *handler.SurveyHandler
	Sections        *handler.SectionHandler
	Questions       *handler.QuestionHandler
	Choices         *handler.ChoiceHandler
	QuestionChoices *handler.QuestionChoiceHandler
	Answers         *handler.AnswerHandler
	Results         *handler.ResultHandler
}

// RegisterRoutes registers routes that do not require authentication.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers and monitoring to verify the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the unauthenticated survey-taking surface: the
// survey lookup by key, the active question/section/choice listings a
// respondent's form needs, and the answer submission routes. cache and
// limit may be pass-through middleware when Redis is unavailable.
func RegisterPublic(e *echo.Echo, h *Handlers, cache, limit echo.MiddlewareFunc) {
	e.GET("/v1/survey/key/:key", h.Surveys.GetByKey, cache)
	e.GET("/v1/question", h.Questions.ListActive, cache)
	e.GET("/v1/question/:id", h.Questions.Get, cache)
	e.GET("/v1/section", h.Sections.List, cache)
	e.GET("/v1/section/:id", h.Sections.Get, cache)

	// Anonymous respondents post answers with only a survey key, so these
	// are the routes worth rate limiting.
	e.POST("/v1/answer", h.Answers.Create, limit)
	e.POST("/v1/answer/all", h.Answers.CreateBatch, limit)
}

// RegisterAuth registers the auth routes and the whole protected surface
// under /v1. Admin-only routes get an extra RequireRole("admin") check;
// ownership inside a role-shared route is enforced by the repositories.
func RegisterAuth(e *echo.Echo, h *Handlers, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", h.Auth.Register)
	g.POST("/login", h.Auth.Login)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	// "superadmin" is accepted as a login role but carries no admin
	// rights anywhere; authorization treats it as a plain user.
	auth.Use(middleware.RequireRole(repository.RoleUser, repository.RoleAdmin, repository.RoleSuperadmin))
	admin := middleware.RequireRole(repository.RoleAdmin)

	auth.GET("/me", h.Auth.Me)

	// Reference data: any authenticated user may read, admins maintain.
	auth.GET("/city", h.Cities.List)
	auth.GET("/city/:id", h.Cities.Get)
	auth.POST("/city", h.Cities.Create, admin)
	auth.PUT("/city/:id", h.Cities.Update, admin)
	auth.DELETE("/city/:id", h.Cities.Delete, admin)

	auth.GET("/postcode", h.Postcodes.List)
	auth.GET("/postcode/:id", h.Postcodes.Get)
	auth.POST("/postcode", h.Postcodes.Create, admin)
	auth.PUT("/postcode/:id", h.Postcodes.Update, admin)
	auth.DELETE("/postcode/:id", h.Postcodes.Delete, admin)

	auth.GET("/street", h.Streets.List)
	auth.GET("/street/:id", h.Streets.Get)
	auth.POST("/street", h.Streets.Create, admin)
	auth.PUT("/street/:id", h.Streets.Update, admin)
	auth.DELETE("/street/:id", h.Streets.Delete, admin)

	auth.GET("/address", h.Addresses.List)
	auth.GET("/address/:id", h.Addresses.Get)
	auth.POST("/address", h.Addresses.Create)
	auth.PUT("/address/:id", h.Addresses.Update)
	auth.DELETE("/address/:id", h.Addresses.Delete, admin)

	// User administration plus the self-service routes.
	auth.PUT("/user/current", h.Users.UpdateCurrent)
	auth.DELETE("/user/current", h.Users.DeleteCurrent)
	auth.GET("/user", h.Users.List, admin)
	auth.GET("/user/:id", h.Users.Get, admin)
	auth.PUT("/user/:id", h.Users.Update, admin)
	auth.DELETE("/user/:id", h.Users.Delete, admin)

	// Housing companies: ownership enforced by the repository.
	auth.GET("/housing-company", h.Companies.List, admin)
	auth.GET("/housing-company/user/current", h.Companies.ListCurrent)
	auth.GET("/housing-company/user/:id", h.Companies.ListByUser, admin)
	auth.GET("/housing-company/postcode/:id", h.Companies.ListByPostcode, admin)
	auth.GET("/housing-company/city/:id", h.Companies.ListByCity, admin)
	auth.GET("/housing-company/street/:id", h.Companies.ListByStreet, admin)
	auth.GET("/housing-company/:id", h.Companies.Get)
	auth.POST("/housing-company", h.Companies.Create)
	auth.PUT("/housing-company/:id", h.Companies.Update)
	auth.DELETE("/housing-company/:id", h.Companies.Delete)

	// Surveys: ownership enforced by the repository.
	auth.GET("/survey", h.Surveys.List)
	auth.GET("/survey/housing-company/:id", h.Surveys.ListByCompany)
	auth.GET("/survey/:id", h.Surveys.Get)
	auth.POST("/survey", h.Surveys.Create)
	auth.PUT("/survey/:id", h.Surveys.Update)
	auth.DELETE("/survey/:id", h.Surveys.Delete)

	// Form structure: admins maintain it; public reads are registered in
	// RegisterPublic.
	auth.POST("/section", h.Sections.Create, admin)
	auth.PUT("/section/:id", h.Sections.Update, admin)
	auth.DELETE("/section/:id", h.Sections.Delete, admin)

	auth.GET("/question/all", h.Questions.List, admin)
	auth.POST("/question", h.Questions.Create, admin)
	auth.PUT("/question/:id", h.Questions.Update, admin)
	auth.DELETE("/question/:id", h.Questions.Delete, admin)

	auth.GET("/choice", h.Choices.List)
	auth.GET("/choice/value/:value", h.Choices.ListByValue)
	auth.GET("/choice/:id", h.Choices.Get)
	auth.POST("/choice", h.Choices.Create, admin)
	auth.PUT("/choice/:id", h.Choices.Update, admin)
	auth.DELETE("/choice/:id", h.Choices.Delete, admin)

	auth.GET("/question-choice", h.QuestionChoices.List, admin)
	auth.GET("/question-choice/:id", h.QuestionChoices.Get, admin)
	auth.POST("/question-choice", h.QuestionChoices.Create, admin)
	auth.PUT("/question-choice/:id", h.QuestionChoices.Update, admin)
	auth.DELETE("/question-choice/:id", h.QuestionChoices.Delete, admin)

	// Answers: reads scoped by survey ownership, corrections admin only.
	auth.GET("/answer/survey/:id", h.Answers.ListBySurvey)
	auth.PUT("/answer/:id", h.Answers.Update, admin)
	auth.DELETE("/answer/:id", h.Answers.Delete, admin)

	// Results: uploads by survey owners, listing everything is admin.
	auth.GET("/result", h.Results.List)
	auth.GET("/result/survey/:id", h.Results.ListBySurvey)
	auth.GET("/result/:id", h.Results.Get)
	auth.POST("/result", h.Results.Create)
	auth.PUT("/result/:id", h.Results.Update)
	auth.DELETE("/result/:id", h.Results.Delete)
}
