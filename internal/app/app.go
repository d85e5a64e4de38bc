// Package app runs the interactive menu and the flows behind each entry.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/abhisek/drill/internal/console"
	"github.com/abhisek/drill/internal/importer"
	"github.com/abhisek/drill/internal/session"
	"github.com/abhisek/drill/internal/store"
	"github.com/abhisek/drill/internal/ui/components"
	"github.com/abhisek/drill/internal/ui/theme"
)

// StatsPlaceholder is shown wherever statistics would be.
const StatsPlaceholder = "Statistics feature coming soon!"

// Options holds the dependencies of an App.
type Options struct {
	Console  *console.Console
	Sets     store.SetRepo
	Settings store.SettingsRepo
	Importer *importer.Importer
	Engine   *session.Engine
	Logger   *slog.Logger
}

// App wires the menu to the importer, the drill engine and the store.
type App struct {
	con      *console.Console
	sets     store.SetRepo
	settings store.SettingsRepo
	importer *importer.Importer
	engine   *session.Engine
	logger   *slog.Logger
}

// New returns an App for opts.
func New(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &App{
		con:      opts.Console,
		sets:     opts.Sets,
		settings: opts.Settings,
		importer: opts.Importer,
		engine:   opts.Engine,
		logger:   logger.With("component", "app"),
	}
}

// Run shows the main menu until the learner exits or input ends. Failures
// inside a flow are printed and the menu is shown again.
func (a *App) Run(ctx context.Context) error {
	for {
		a.con.Clear()
		a.con.Styled(theme.Title, "Welcome to drill!")
		a.con.Println("1. Import a new set")
		a.con.Println("2. Learn a set")
		a.con.Println("3. View statistics (coming soon)")
		a.con.Println("4. Set learning direction")
		a.con.Println("5. Exit")

		choice, err := a.con.Prompt(ctx, "Enter your choice (1-5): ")
		if errors.Is(err, io.EOF) {
			a.con.Println()
			return nil
		}
		if err != nil {
			return err
		}

		var flowErr error
		switch strings.TrimSpace(choice) {
		case "1":
			flowErr = a.Import(ctx)
		case "2":
			flowErr = a.Learn(ctx)
		case "3":
			a.con.Println(StatsPlaceholder)
			flowErr = a.con.Pause(ctx)
		case "4":
			flowErr = a.ChooseDirection(ctx)
		case "5":
			a.con.Println("Goodbye!")
			return nil
		default:
			a.con.Println("Invalid choice. Please enter a number between 1 and 5.")
			flowErr = a.con.Pause(ctx)
		}

		if flowErr != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(flowErr, io.EOF) {
				return nil
			}
			a.logger.Error("menu action failed", "choice", choice, "error", flowErr)
			a.con.Error(flowErr)
			if err := a.con.Pause(ctx); err != nil {
				return err
			}
		}
	}
}

// Import asks for a set name and a source file and imports it, confirming
// before an existing set is replaced.
func (a *App) Import(ctx context.Context) error {
	a.con.Println("Enter the name of the set:")
	name, err := a.con.ReadLine(ctx)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return importer.ErrEmptyName
	}

	exists, err := a.importer.Exists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		ok, err := a.con.Confirm(ctx, fmt.Sprintf("Set '%s' already exists. Overwrite?", name))
		if err != nil {
			return err
		}
		if !ok {
			a.con.Println("Import cancelled.")
			return a.con.Pause(ctx)
		}
	}

	a.con.Println("Enter the path to the file (one 'term^definition' per line):")
	path, err := a.con.ReadLine(ctx)
	if err != nil {
		return err
	}

	if _, err := a.importer.ImportFile(ctx, name, strings.TrimSpace(path), exists); err != nil {
		return err
	}
	a.con.Styled(theme.Correct, fmt.Sprintf("Set '%s' imported successfully!", name))
	return a.con.Pause(ctx)
}

// Learn lets the learner pick a set and drills it.
func (a *App) Learn(ctx context.Context) error {
	a.con.Clear()
	res, err := a.engine.Learn(ctx)
	if errors.Is(err, session.ErrNoSets) {
		a.con.Println("No sets available. Please import a set first.")
		return a.con.Pause(ctx)
	}
	var serr *session.SelectionError
	if errors.As(err, &serr) {
		a.con.Println("Invalid choice.")
		return a.con.Pause(ctx)
	}
	if err != nil {
		return err
	}
	return a.report(ctx, res)
}

// LearnSet drills the named set without showing the set list.
func (a *App) LearnSet(ctx context.Context, name string) error {
	set, err := a.sets.SetByName(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no set named %q", name)
	}
	if err != nil {
		return err
	}
	res, err := a.engine.Drill(ctx, set.ID)
	if err != nil {
		return err
	}
	return a.report(ctx, res)
}

func (a *App) report(ctx context.Context, res session.Result) error {
	if res.Outcome == session.OutcomeCompleted {
		a.con.Styled(theme.Correct, "Congratulations! You've mastered all terms in this set.")
	} else {
		a.con.Println("Exiting learning session.")
	}
	if res.Answered > 0 {
		a.con.Styled(theme.Hint, fmt.Sprintf("%d of %d answers correct over %d round(s).", res.Correct, res.Answered, res.Rounds))
	}
	return a.con.Pause(ctx)
}

// ChooseDirection asks which side of each term to show and saves it.
func (a *App) ChooseDirection(ctx context.Context) error {
	for {
		a.con.Clear()
		a.con.Println("Choose learning direction:")
		a.con.Println("1. See term, guess definition")
		a.con.Println("2. See definition, guess term")
		choice, err := a.con.Prompt(ctx, "Enter your choice (1-2): ")
		if err != nil {
			return err
		}

		var d store.Direction
		switch strings.TrimSpace(choice) {
		case "1":
			d = store.TermToDefinition
		case "2":
			d = store.DefinitionToTerm
		default:
			a.con.Println("Invalid choice. Press Enter to try again...")
			if _, err := a.con.ReadLine(ctx); err != nil {
				return err
			}
			continue
		}

		if err := a.settings.SetLearningDirection(ctx, d); err != nil {
			return err
		}
		a.con.Printf("Learning direction set to: %s\n", DescribeDirection(d))
		return a.con.Pause(ctx)
	}
}

// DescribeDirection returns the menu wording for d.
func DescribeDirection(d store.Direction) string {
	if d == store.DefinitionToTerm {
		return "See definition, guess term"
	}
	return "See term, guess definition"
}

// PrintSets writes every set with its term count and mastery progress.
func (a *App) PrintSets(ctx context.Context, width int) error {
	sums, err := a.sets.Summaries(ctx)
	if err != nil {
		return err
	}
	if len(sums) == 0 {
		a.con.Println("No sets available. Please import a set first.")
		return nil
	}
	for _, s := range sums {
		if !s.Progress.Active() {
			a.con.Printf("%s (%d terms, not started)\n", s.Name, s.Terms)
			continue
		}
		a.con.Line(components.NewProgressBar(s.Name, s.Progress.Mastered, s.Progress.Total, width).View())
	}
	return nil
}
