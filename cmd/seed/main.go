package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/seed"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

const usage = `usage: seed <command> [flags]

commands:
  generate --from YYYY-MM-DD   replace all appointments with generated history
  clear                        delete all appointments
  staff-images                 set the default picture path for every staff member
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logg, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}

	if err := run(context.Background(), cfg, logg, os.Args[1], os.Args[2:]); err != nil {
		logg.Error("seed failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *slog.Logger, cmd string, args []string) error {
	db, err := dbpkg.NewDB(cfg, logg)
	if err != nil {
		return err
	}

	appointments := infraRepo.NewAppointmentGormRepository(db)
	users := infraRepo.NewUserGormRepository(db)

	switch cmd {
	case "generate":
		fs := flag.NewFlagSet("generate", flag.ExitOnError)
		fromRaw := fs.String("from", "2024-03-01", "first day to generate (YYYY-MM-DD)")
		if err := fs.Parse(args); err != nil {
			return err
		}

		loc := timezone.Location(cfg.Timezone)
		from, err := time.ParseInLocation(time.DateOnly, *fromRaw, loc)
		if err != nil {
			return fmt.Errorf("invalid --from %q: %w", *fromRaw, err)
		}

		staff, err := users.ListByRole(ctx, user.RoleStaff)
		if err != nil {
			return err
		}
		customers, err := users.ListByRole(ctx, user.RoleCustomer)
		if err != nil {
			return err
		}
		if len(staff) == 0 || len(customers) == 0 {
			return fmt.Errorf("need at least one staff member and one customer, found %d and %d", len(staff), len(customers))
		}

		cleared, err := seed.Clear(ctx, appointments)
		if err != nil {
			return err
		}
		logg.Info("cleared existing appointments", "count", cleared)

		rnd := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5a1095))
		aps := seed.NewGenerator(rnd, loc, time.Now()).Generate(from, staff, customers)

		stored := seed.Insert(ctx, appointments, aps, logg)
		logg.Info("seeded appointments", "generated", len(aps), "stored", stored, "from", from.Format(time.DateOnly))
		return nil

	case "clear":
		n, err := seed.Clear(ctx, appointments)
		if err != nil {
			return err
		}
		logg.Info("deleted appointments", "count", n)
		return nil

	case "staff-images":
		n, err := seed.SetStaffImages(ctx, users, logg)
		if err != nil {
			return err
		}
		logg.Info("updated staff images", "count", n)
		return nil
	}

	fmt.Fprint(os.Stderr, usage)
	return fmt.Errorf("unknown command %q", cmd)
}
