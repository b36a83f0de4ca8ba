package teams

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AC350144/ClutchCall/pkg/models"
	_ "github.com/lib/pq"
)

const teamStatsQuery = `
	SELECT team, abbreviation, sport, wins, losses, recent_form,
	       avg_points_scored, avg_points_allowed
	FROM team_stats
	WHERE lower(team) = lower($1) OR lower(abbreviation) = lower($1)
	ORDER BY updated_at DESC
	LIMIT 1
`

// PostgresLookup reads team stats from the team_stats table. Names are
// resolved to official names first when a Resolver is configured.
type PostgresLookup struct {
	db       *sql.DB
	resolver Resolver
}

// NewPostgresLookup opens and pings the database
func NewPostgresLookup(dsn string, resolver Resolver) (*PostgresLookup, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresLookup{db: db, resolver: resolver}, nil
}

// Lookup implements Lookup
func (p *PostgresLookup) Lookup(ctx context.Context, name string) (*models.TeamStats, error) {
	key := name
	if p.resolver != nil {
		if official, ok := p.resolver.Resolve(name); ok {
			key = official
		}
	}

	var stats models.TeamStats
	var sport string
	err := p.db.QueryRowContext(ctx, teamStatsQuery, key).Scan(
		&stats.Team,
		&stats.Abbreviation,
		&sport,
		&stats.Wins,
		&stats.Losses,
		&stats.RecentForm,
		&stats.AvgPointsScored,
		&stats.AvgPointsAllowed,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%q: %w", name, ErrTeamNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query team stats: %w", err)
	}

	stats.Sport = models.Sport(sport)
	return &stats, nil
}

// Ping checks the connection
func (p *PostgresLookup) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// Close closes the database connection
func (p *PostgresLookup) Close() error {
	return p.db.Close()
}
