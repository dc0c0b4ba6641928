// Command lightbnb is the operator CLI for the LightBnB database: it runs
// schema migrations and exposes each data-access operation as a
// subcommand printing JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"

	"lightbnb/internal/cache"
	"lightbnb/internal/config"
	"lightbnb/internal/database"
	"lightbnb/internal/logger"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var errNotFound = errors.New("not found")

var (
	loadConfig                = config.Load
	newPgxPool                = database.NewPgxPool
	newRedisClient            = cache.NewRedisClient
	runMigrationsFn           = database.RunMigrations
	rollbackFn                = database.RollbackAll
	exitFunc                  = os.Exit
	stdout          io.Writer = os.Stdout
	stderr          io.Writer = os.Stderr
)

// app carries what every subcommand shares. The pool is opened on first
// use and closed when run returns.
type app struct {
	cfg *config.Config
	log zerolog.Logger
	out io.Writer
	db  database.DB
}

func (a *app) connect(ctx context.Context) (database.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	db, err := newPgxPool(ctx, a.cfg.Database, a.log, a.cfg.Logging.TraceQueries)
	if err != nil {
		return nil, err
	}
	a.db = db
	return db, nil
}

func (a *app) close() {
	if a.db != nil {
		a.db.Close()
	}
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "lightbnb",
		Short:         "Operate the LightBnB database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logger.New(cfg.Logging, stderr)
			return nil
		},
	}
	root.AddCommand(
		newMigrateCmd(a),
		newUsersCmd(a),
		newPropertiesCmd(a),
		newReservationsCmd(a),
	)
	return root
}

func run(args []string) error {
	a := &app{out: stdout, log: zerolog.New(stderr).With().Timestamp().Logger()}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(context.Background()); err != nil {
		a.log.Error().Err(err).Msg("command failed")
		return err
	}
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		exitFunc(1)
	}
}
