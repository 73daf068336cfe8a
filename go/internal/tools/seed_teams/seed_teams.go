package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/mcdev12/pitchside/go/internal/config"
	"github.com/mcdev12/pitchside/go/internal/dbconfig"
	"github.com/mcdev12/pitchside/go/internal/teams"
)

func main() {
	path := flag.String("file", "league.yaml", "league file whose teams section is seeded")
	flag.Parse()
	_ = godotenv.Load()

	// 1) Load the teams section of the league file
	seed, err := loadTeams(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load teams: %v\n", err)
		os.Exit(1)
	}

	// 2) Connect using shared dbconfig
	cfg, err := dbconfig.NewConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "database config: %v\n", err)
		os.Exit(1)
	}
	pool, err := pgxpool.New(context.Background(), cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	// 3) Insert and count
	var (
		total    = len(seed)
		inserted int
		skipped  int
		errs     int
	)

	for _, t := range seed {
		cmdTag, err := pool.Exec(context.Background(), `
            INSERT INTO teams (id, name, short_code, role_id)
            VALUES ($1, $2, $3, $4)
            ON CONFLICT DO NOTHING
        `,
			uuid.New(), t.Name, t.ShortCode, t.RoleID,
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error inserting team %s: %v\n", t.Name, err)
			errs++
			continue
		}
		if cmdTag.RowsAffected() == 1 {
			inserted++
		} else {
			skipped++
		}
	}

	// 4) Print summary
	fmt.Printf(
		"Teams seed complete: %d total, %d inserted, %d skipped, %d errors\n",
		total, inserted, skipped, errs,
	)
}

// loadTeams reads and normalizes the seed teams in path
func loadTeams(path string) ([]teams.CreateTeamRequest, error) {
	league, err := config.LoadLeague(path)
	if err != nil {
		return nil, err
	}
	if err := league.Validate(); err != nil {
		return nil, err
	}
	out := make([]teams.CreateTeamRequest, 0, len(league.Teams))
	for _, t := range league.Teams {
		t.Name = strings.TrimSpace(t.Name)
		t.ShortCode = strings.ToUpper(strings.TrimSpace(t.ShortCode))
		t.RoleID = strings.TrimSpace(t.RoleID)
		out = append(out, t)
	}
	return out, nil
}
