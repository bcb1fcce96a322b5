package main

import (
	"context"
	"errors"
	"log"

	"billetera-ia/internal/dto"
	"billetera-ia/internal/events"
	"billetera-ia/internal/repository"
	"billetera-ia/internal/service"
	"billetera-ia/pkg/auth"
	"billetera-ia/pkg/config"
	"billetera-ia/pkg/logger"
	"billetera-ia/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	demoName     = "Usuario Demo"
	demoPhone    = "3000000000"
	demoPassword = "demo12345"
)

var demoTags = []string{"Comida", "Transporte", "Servicios", "Salud", "Otros"}

type demoMovement struct {
	Type        string
	Amount      float64
	Description string
	Tag         string
}

var demoMovements = []demoMovement{
	{"income", 2500000, "Sueldo", ""},
	{"expense", 20000, "Pago de bus", "Transporte"},
	{"expense", 35000, "Almuerzo", "Comida"},
	{"expense", 120000, "Factura de luz", "Servicios"},
	{"expense", 48000, "Farmacia", "Salud"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db, appLogger); err != nil {
		appLogger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db, appLogger)
	tagRepo := repository.NewTagRepository(db, appLogger)
	movementRepo := repository.NewMovementRepository(db, appLogger)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)
	authService := service.NewAuthService(userRepo, jwtManager, appLogger)
	tagService := service.NewTagService(tagRepo, events.Nop{}, appLogger)
	movementService := service.NewMovementService(movementRepo, tagRepo, events.Nop{}, appLogger)

	appLogger.Info("Starting database seeding...")

	userID, err := seedUser(ctx, authService, userRepo)
	if err != nil {
		appLogger.Fatal("Failed to seed demo user", zap.Error(err))
	}

	tagIDs, err := seedTags(ctx, tagService, userID, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to seed tags", zap.Error(err))
	}

	total, err := movementRepo.CountByUser(ctx, userID)
	if err != nil {
		appLogger.Fatal("Failed to count movements", zap.Error(err))
	}
	if total > 0 {
		appLogger.Info("Demo movements already present, skipping", zap.Int64("count", total))
	} else if err := seedMovements(ctx, movementService, userID, tagIDs); err != nil {
		appLogger.Fatal("Failed to seed movements", zap.Error(err))
	}

	appLogger.Info("Database seeding completed successfully!",
		zap.String("phone", demoPhone),
		zap.String("user_id", userID.String()),
	)
}

func seedUser(ctx context.Context, authService *service.AuthService, users *repository.UserRepository) (uuid.UUID, error) {
	resp, err := authService.Register(ctx, &dto.RegisterRequest{
		Name:     demoName,
		Phone:    demoPhone,
		Password: demoPassword,
	})
	if err == nil {
		return uuid.Parse(resp.User.ID)
	}
	if !errors.Is(err, service.ErrUserExists) {
		return uuid.Nil, err
	}

	existing, err := users.GetByPhone(ctx, demoPhone)
	if err != nil {
		return uuid.Nil, err
	}
	return existing.ID, nil
}

// seedTags creates the starter vocabulary and returns tag ids by name.
func seedTags(ctx context.Context, tagService *service.TagService, userID uuid.UUID, appLogger *zap.Logger) (map[string]string, error) {
	for _, name := range demoTags {
		_, err := tagService.Create(ctx, userID, &dto.CreateTagRequest{NameTag: name})
		switch {
		case errors.Is(err, service.ErrTagExists):
			appLogger.Debug("Tag already exists", zap.String("tag", name))
		case err != nil:
			return nil, err
		}
	}

	tags, err := tagService.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]string, len(tags))
	for _, t := range tags {
		ids[t.NameTag] = t.ID
	}
	return ids, nil
}

func seedMovements(ctx context.Context, movementService *service.MovementService, userID uuid.UUID, tagIDs map[string]string) error {
	for _, m := range demoMovements {
		amount := m.Amount
		description := m.Description
		req := &dto.CreateMovementRequest{
			Type:        m.Type,
			Amount:      &amount,
			Description: &description,
		}
		if id, ok := tagIDs[m.Tag]; ok {
			req.TagID = &id
		}
		if _, err := movementService.Create(ctx, userID, req); err != nil {
			return err
		}
	}
	return nil
}
