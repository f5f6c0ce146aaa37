package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/housing-survey/internal/config"
	"github.com/iliyamo/housing-survey/internal/database"
	"github.com/iliyamo/housing-survey/internal/handler"
	"github.com/iliyamo/housing-survey/internal/middleware"
	"github.com/iliyamo/housing-survey/internal/queue"
	"github.com/iliyamo/housing-survey/internal/repository"
	"github.com/iliyamo/housing-survey/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the public-route cache and the rate limiter. A nil
	// client disables both instead of failing startup.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limitMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	users := repository.NewUserRepo(db)
	surveys := repository.NewSurveyRepo(db, cfg.SurveyKeyLen)
	h := &router.Handlers{
		Auth: &handler.AuthHandler{
			Users:        users,
			JWTSecret:    cfg.JWTSecret,
			AccessTTLMin: cfg.AccessTTLMin,
			BcryptCost:   cfg.BcryptCost,
		},
		Cities:          &handler.CityHandler{Cities: repository.NewCityRepo(db)},
		Postcodes:       &handler.PostcodeHandler{Postcodes: repository.NewPostcodeRepo(db)},
		Streets:         &handler.StreetHandler{Streets: repository.NewStreetRepo(db)},
		Addresses:       &handler.AddressHandler{Addresses: repository.NewAddressRepo(db)},
		Users:           &handler.UserHandler{Users: users, BcryptCost: cfg.BcryptCost},
		Companies:       &handler.HousingCompanyHandler{Companies: repository.NewHousingCompanyRepo(db)},
		Surveys:         &handler.SurveyHandler{Surveys: surveys},
		Sections:        &handler.SectionHandler{Sections: repository.NewSectionRepo(db)},
		Questions:       &handler.QuestionHandler{Questions: repository.NewQuestionRepo(db)},
		Choices:         &handler.ChoiceHandler{Choices: repository.NewChoiceRepo(db)},
		QuestionChoices: &handler.QuestionChoiceHandler{QuestionChoices: repository.NewQuestionChoiceRepo(db)},
		Answers:         &handler.AnswerHandler{Answers: repository.NewAnswerRepo(db), Surveys: surveys},
		Results:         &handler.ResultHandler{Results: repository.NewResultRepo(db), UploadDir: cfg.UploadDir},
	}

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterPublic(e, h, cacheMW, limitMW)
	router.RegisterAuth(e, h, cfg.JWTSecret)

	// Background consumer appending survey events to logs/survey.log. It
	// reconnects on its own and never stops the server.
	go func() {
		if err := queue.StartSurveyConsumer(); err != nil {
			log.Printf("survey consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
