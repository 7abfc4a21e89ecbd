package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mrlokans/gymclock/internal/config"
	"github.com/mrlokans/gymclock/internal/database"
	"github.com/mrlokans/gymclock/internal/entities"
	"github.com/mrlokans/gymclock/internal/gymclock"
)

// Command is a subcommand of the gymclock binary.
type Command interface {
	ParseFlags(args []string) error
	Run() error
}

// base holds what every store-backed command shares: the database location,
// where to print and the clock deciding which day is today.
type base struct {
	DatabasePath string

	out io.Writer
	now func() time.Time
}

func newBase(cfg *config.Config) base {
	path := config.DefaultDatabasePath
	if cfg != nil && cfg.Database.Path != "" {
		path = cfg.Database.Path
	}
	return base{
		DatabasePath: path,
		out:          os.Stdout,
		now:          time.Now,
	}
}

func (b *base) flagSet(name, usage string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&b.DatabasePath, "db", b.DatabasePath, "Path to the GymClock database file")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s %s\n\n", os.Args[0], usage)
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}
	return fs
}

// open opens the database and seeds the built-in catalog on first use. The
// returned func closes the database.
func (b *base) open(ctx context.Context) (*gymclock.Repository, func() error, error) {
	db, err := database.NewDatabase(b.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	repo := gymclock.NewRepository(db)
	if _, err := repo.InitializeDefaultData(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to seed database: %w", err)
	}
	return repo, db.Close, nil
}

// day resolves a -day flag value; empty means today.
func (b *base) day(value string) (string, error) {
	if value == "" {
		return entities.DayOf(b.now()), nil
	}
	return entities.NormalizeDay(value)
}

func (b *base) printf(format string, args ...any) {
	fmt.Fprintf(b.out, format, args...)
}

func (b *base) println(args ...any) {
	fmt.Fprintln(b.out, args...)
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}
