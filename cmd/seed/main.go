package main

import (
	"context"
	"log"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"talentforge/hr-platform/internal/config"
	applog "talentforge/hr-platform/internal/logger"
	"talentforge/hr-platform/internal/models"
	"talentforge/hr-platform/internal/services"
)

// Seeds the database with a demo HR account, a set of candidate profiles, and
// an open vacancy, then warms the vector store so the first search does not
// pay the embedding cost for every profile.
func main() {
	cfg := config.Load()

	logger, err := applog.New(cfg.Server.Env)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}

	relocate := true

	hrUser := models.User{
		ID:        uuid.New(),
		Username:  "anna.recruiter",
		Email:     "hr@talentforge.dev",
		FirstName: "Anna",
		LastName:  "Recruiter",
		Role:      models.RoleHR,
		IsActive:  true,
	}

	candidates := []models.User{
		{
			ID:                   uuid.New(),
			Username:             "alex.petrov",
			Email:                "alex.petrov@example.com",
			FirstName:            "Alex",
			LastName:             "Petrov",
			Role:                 models.RoleCandidate,
			IsActive:             true,
			About:                "Senior backend developer with 8 years of Python and Go experience, strong in distributed systems.",
			Location:             "Berlin",
			ProgrammingLanguages: []string{"Python", "Go", "SQL"},
			OtherCompetencies:    []string{"PostgreSQL", "Docker", "Kubernetes", "gRPC"},
			WorkExperience: []models.WorkExperience{
				{Company: "CloudScale", Role: "Senior Backend Developer", PeriodStart: "2020-01", IsCurrent: true, Description: "Building payment APIs in Go and Python"},
				{Company: "DataWorks", Role: "Backend Developer", PeriodStart: "2016-03", PeriodEnd: "2019-12", Description: "Django services and ETL pipelines"},
			},
			Education: []models.Education{
				{Institution: "TU Berlin", Degree: "MSc", FieldOfStudy: "Computer Science", YearEnd: 2016},
			},
		},
		{
			ID:                   uuid.New(),
			Username:             "maria.ivanova",
			Email:                "maria.iv@example.com",
			FirstName:            "Maria",
			LastName:             "Ivanova",
			Role:                 models.RoleCandidate,
			IsActive:             true,
			About:                "Frontend engineer focused on React and TypeScript, middle level, interested in design systems.",
			Location:             "Amsterdam",
			ProgrammingLanguages: []string{"JavaScript", "TypeScript"},
			OtherCompetencies:    []string{"React", "Redux", "CSS", "Webpack"},
			WorkExperience: []models.WorkExperience{
				{Company: "ShopFront", Role: "Frontend Developer", PeriodStart: "2021-06", IsCurrent: true, Description: "React storefront and component library"},
			},
		},
		{
			ID:                   uuid.New(),
			Username:             "ivan.smirnov",
			Email:                "ivan.s@example.com",
			FirstName:            "Ivan",
			LastName:             "Smirnov",
			Role:                 models.RoleCandidate,
			IsActive:             true,
			About:                "Junior data analyst, recently finished a data science bootcamp. Python, pandas, SQL.",
			Location:             "Warsaw",
			ProgrammingLanguages: []string{"Python", "SQL"},
			OtherCompetencies:    []string{"Pandas", "Tableau", "Excel"},
			Education: []models.Education{
				{Institution: "Warsaw University", Degree: "BSc", FieldOfStudy: "Economics", YearEnd: 2023},
			},
		},
		{
			ID:                   uuid.New(),
			Username:             "elena.kuznetsova",
			Email:                "elena.k@example.com",
			FirstName:            "Elena",
			LastName:             "Kuznetsova",
			Role:                 models.RoleCandidate,
			IsActive:             true,
			About:                "DevOps engineer, senior, AWS and Kubernetes. CI/CD, infrastructure as code.",
			Location:             "Remote",
			ReadyToRelocate:      &relocate,
			ProgrammingLanguages: []string{"Python", "Bash", "Go"},
			OtherCompetencies:    []string{"AWS", "Kubernetes", "Terraform", "CI/CD", "Docker"},
			WorkExperience: []models.WorkExperience{
				{Company: "FinServe", Role: "Senior DevOps Engineer", PeriodStart: "2019-09", IsCurrent: true, Description: "EKS clusters and deployment pipelines"},
			},
		},
	}

	vacancy := models.Vacancy{
		ID:              uuid.New(),
		Title:           "Senior Python Developer",
		Description:     "We are looking for a senior Python developer for our backend team. Experience with PostgreSQL, Docker, and API design required.",
		RequiredSkills:  []string{"Python", "PostgreSQL", "Docker"},
		ExperienceLevel: "senior",
		Status:          models.VacancyOpen,
		CreatorID:       hrUser.ID,
	}

	for _, user := range append([]models.User{hrUser}, candidates...) {
		if err := db.Where("email = ?", user.Email).FirstOrCreate(&user).Error; err != nil {
			logger.Fatal("failed to seed user", zap.String("email", user.Email), zap.Error(err))
		}
	}
	if err := db.Where("title = ?", vacancy.Title).FirstOrCreate(&vacancy).Error; err != nil {
		logger.Fatal("failed to seed vacancy", zap.Error(err))
	}

	logger.Info("database seeded",
		zap.Int("candidates", len(candidates)), zap.String("hr_email", hrUser.Email))

	warmVectors(cfg, candidates, logger)
}

// warmVectors precomputes profile embeddings. Failures are logged and skipped:
// the search path computes missing vectors lazily anyway.
func warmVectors(cfg *config.Config, candidates []models.User, logger *zap.Logger) {
	ctx := context.Background()

	var embedder services.EmbeddingClient
	var err error
	if cfg.LLM.Provider == "gemini" {
		embedder, err = services.NewGeminiClient(ctx, cfg.LLM, logger)
	} else {
		embedder, err = services.NewOpenAIEmbeddingClient(cfg.LLM, logger)
	}
	if err != nil {
		logger.Warn("skipping vector warmup, no embedding client", zap.Error(err))
		return
	}

	store, err := services.NewQdrantProfileStore(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		cfg.LLM.EmbeddingDim,
		logger,
	)
	if err != nil {
		logger.Warn("skipping vector warmup, no vector store", zap.Error(err))
		return
	}
	if err := store.InitCollection(ctx); err != nil {
		logger.Warn("skipping vector warmup, collection init failed", zap.Error(err))
		return
	}

	warmed := 0
	for i := range candidates {
		if _, err := store.GetOrCompute(ctx, &candidates[i], embedder); err != nil {
			logger.Warn("failed to warm profile vector",
				zap.String("email", candidates[i].Email), zap.Error(err))
			continue
		}
		warmed++
	}
	logger.Info("vector warmup complete", zap.Int("warmed", warmed))
}
