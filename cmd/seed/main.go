package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/prog6212/cmcs/backend/internal/config"
	"github.com/prog6212/cmcs/backend/internal/domain"
	"github.com/prog6212/cmcs/backend/internal/repository"
	"github.com/prog6212/cmcs/backend/internal/seed"
	"github.com/prog6212/cmcs/backend/internal/service"
	"github.com/prog6212/cmcs/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	var op int
	var n int
	var file string

	flag.IntVar(&op, "op", 0, "operation (1: insert random lecturers, 2: insert random claims for every lecturer, 3: import lecturers from a roster)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.StringVar(&file, "file", "", "roster file (.csv or .xlsx) for -op 3")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.Storage.Driver != config.StoragePostgres {
		logger.Error("seeding needs STORAGE_DRIVER=postgres, the memory store lives only inside the api process")
		os.Exit(1)
	}

	dbpool, err := repository.OpenPostgres(cfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return
	}
	defer dbpool.Close()

	ctx := context.Background()
	if err := repository.RunMigrations(ctx, dbpool); err != nil {
		logger.Error("failed to run migrations", "error", err)
		return
	}

	svc := service.New(repository.NewPostgresRepository(cfg, dbpool))

	switch op {
	case 0:
		slog.Error("no operation given")
	case 1:
		if n <= 0 {
			slog.Error("n must be positive")
			return
		}
		cnt := 0
		for i := 0; i < n; i++ {
			user, err := utils.GenerateRandomLecturer(cfg.Seed.User.Password, cfg.Email.UserDomain)
			if err != nil {
				slog.Error("failed to generate lecturer", slog.String("error", err.Error()))
				continue
			}

			if _, err := svc.AddUser(ctx, user); err != nil {
				slog.Error("failed to insert lecturer", slog.String("email", user.Email), slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
		slog.Info("random lecturers inserted", slog.Int("count", cnt))
	case 2:
		if n <= 0 {
			slog.Error("n must be positive")
			return
		}
		users, err := svc.ListUsers(ctx)
		if err != nil {
			slog.Error("failed to list users", slog.String("error", err.Error()))
			return
		}

		cnt := 0
		now := time.Now()
		for _, user := range users {
			if user.Role != domain.RoleLecturer {
				continue
			}
			for i := 0; i < n; i++ {
				if _, err := svc.SubmitClaim(ctx, utils.GenerateRandomClaimDraft(user.ID, now)); err != nil {
					slog.Error("failed to insert claim", slog.Int64("lecturer", user.ID), slog.String("error", err.Error()))
					continue
				}
				cnt++
			}
		}
		slog.Info("random claims inserted", slog.Int("count", cnt))
	case 3:
		if file == "" {
			slog.Error("-file is required for -op 3")
			return
		}
		rows, err := seed.ReadRoster(file)
		if err != nil {
			slog.Error("failed to read roster", slog.String("file", file), slog.String("error", err.Error()))
			return
		}

		passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.User.Password), bcrypt.DefaultCost)
		if err != nil {
			slog.Error("failed to hash password", slog.String("error", err.Error()))
			return
		}

		cnt, err := seed.ImportLecturers(ctx, svc, rows, string(passwordHash))
		if err != nil {
			slog.Error("failed to import roster", slog.String("error", err.Error()))
			return
		}
		slog.Info("lecturers imported", slog.Int("count", cnt), slog.Int("rows", len(rows)-1))
	default:
		slog.Error("unknown operation", slog.Int("op", op))
	}
}
