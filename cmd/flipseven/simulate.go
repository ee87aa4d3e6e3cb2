package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lox/flipseven/cmd/flipseven/shared"
	"github.com/lox/flipseven/internal/bot"
	"github.com/lox/flipseven/internal/config"
	"github.com/lox/flipseven/internal/randutil"
	"github.com/lox/flipseven/internal/simulator"
	"github.com/lox/flipseven/internal/statistics"
	"github.com/muesli/termenv"
)

// SimulateCmd plays many bot-only matches and prints aggregate statistics
type SimulateCmd struct {
	Matches    int      `short:"n" default:"1000" help:"Number of matches to play"`
	Workers    int      `help:"Matches played in parallel (default: number of CPUs)"`
	Seed       *int64   `help:"Deterministic RNG seed (optional)"`
	Target     int      `help:"Target score (default: config or 200)"`
	MaxRounds  int      `help:"Abort a match after this many rounds (default: 1000)"`
	Strategies []string `sep:"," default:"threshold,odds,random" help:"Bot strategy for each seat"`
	Config     string   `short:"c" type:"path" help:"Take seats and match settings from an HCL file instead"`
	NoColor    bool     `help:"Disable colored output"`
	Quiet      bool     `short:"q" help:"Hide the progress bar"`
	Debug      bool     `help:"Enable debug logging"`
}

func (c *SimulateCmd) Run() error {
	seats, settings, err := c.seats()
	if err != nil {
		return err
	}

	logger := shared.SetupLogger(shared.Level(c.Debug, settings.Level()))

	seed, _ := randutil.Seed(settings.Seed)
	target := settings.TargetScore
	if c.Target > 0 {
		target = c.Target
	}
	maxRounds := settings.MaxRounds
	if c.MaxRounds > 0 {
		maxRounds = c.MaxRounds
	}

	renderer := lipgloss.NewRenderer(os.Stdout)
	if c.NoColor {
		renderer.SetColorProfile(termenv.Ascii)
	}

	cfg := simulator.Config{
		Matches:     c.Matches,
		Workers:     c.Workers,
		Seed:        seed,
		TargetScore: target,
		MaxRounds:   maxRounds,
		Seats:       seats,
		Logger:      logger,
	}
	if !c.Quiet {
		bar := newProgressBar(os.Stderr, renderer.ColorProfile())
		cfg.Progress = bar.Update
	}

	sim := simulator.New(cfg)
	ctx := shared.SetupSignalHandler(logger)

	fmt.Fprintf(os.Stdout, "Simulating %d matches to %d points (seed: %d)\n", c.Matches, target, seed)

	start := time.Now()
	summary, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	printReport(os.Stdout, renderer, seats, summary, time.Since(start))
	return nil
}

// seats resolves the seats and match settings, from the config file when one
// is given and from the strategy list otherwise.
func (c *SimulateCmd) seats() ([]simulator.Seat, *config.MatchSettings, error) {
	if c.Config == "" {
		defaults := config.Default()
		if err := defaults.ApplyEnv(nil); err != nil {
			return nil, nil, err
		}
		settings := defaults.Match
		if c.Seed != nil {
			settings.Seed = c.Seed
		}
		seats := make([]simulator.Seat, len(c.Strategies))
		for i, strategy := range c.Strategies {
			if !bot.IsStrategy(strategy) {
				return nil, nil, fmt.Errorf("%w: %q", bot.ErrUnknownStrategy, strategy)
			}
			seats[i] = simulator.Seat{
				Name: fmt.Sprintf("%s-%d", strategy, i+1),
				Spec: bot.Spec{Strategy: strategy},
			}
		}
		return seats, settings, nil
	}

	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.ApplyEnv(nil); err != nil {
		return nil, nil, err
	}
	if c.Seed != nil {
		cfg.Match.Seed = c.Seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	seats := make([]simulator.Seat, 0, len(cfg.Players))
	for _, p := range cfg.Players {
		if p.IsHuman() {
			return nil, nil, fmt.Errorf("player %q is human, simulations only seat bots", p.Name)
		}
		seats = append(seats, simulator.Seat{Name: p.Name, Spec: p.BotSpec()})
	}
	return seats, cfg.Match, nil
}

// progressBar redraws a single line as matches finish
type progressBar struct {
	out     io.Writer
	bar     progress.Model
	start   time.Time
	percent int
}

func newProgressBar(out io.Writer, profile termenv.Profile) *progressBar {
	return &progressBar{
		out: out,
		bar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(40),
			progress.WithColorProfile(profile),
		),
		start:   time.Now(),
		percent: -1,
	}
}

// Update draws the bar when the whole percentage changes. Calls must not
// overlap.
func (p *progressBar) Update(done, total int) {
	percent := done * 100 / total
	if percent == p.percent && done != total {
		return
	}
	p.percent = percent

	fmt.Fprintf(p.out, "\r%s %d/%d", p.bar.ViewAs(float64(done)/float64(total)), done, total)
	if done == total {
		elapsed := time.Since(p.start)
		fmt.Fprintf(p.out, " (%.0f matches/sec)\n", float64(total)/elapsed.Seconds())
	}
}

// printReport writes the results table and match statistics
func printReport(w io.Writer, r *lipgloss.Renderer, seats []simulator.Seat, summary *statistics.Summary, elapsed time.Duration) {
	title := r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	label := r.NewStyle().Foreground(lipgloss.Color("#999999"))
	cell := r.NewStyle().Padding(0, 1)
	header := cell.Bold(true)

	rows := make([][]string, len(seats))
	for i, seat := range seats {
		scores := &summary.Scores[i]
		low, high := scores.ConfidenceInterval95()
		rows[i] = []string{
			seat.Name,
			seat.Spec.Strategy,
			fmt.Sprintf("%d", summary.Wins[i]),
			fmt.Sprintf("%.1f%%", summary.WinRate(i)*100),
			fmt.Sprintf("%.1f", scores.Mean()),
			fmt.Sprintf("[%.1f, %.1f]", low, high),
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(label).
		Headers("Seat", "Strategy", "Wins", "Win rate", "Avg total", "95% CI").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})

	rounds := &summary.Rounds

	fmt.Fprintln(w)
	fmt.Fprintln(w, title.Render(fmt.Sprintf("Results after %d matches (%.1fs)", summary.Matches, elapsed.Seconds())))
	fmt.Fprintln(w, t.String())
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s mean %.1f, stddev %.1f, median %.0f, p90 %.0f, range %.0f-%.0f\n",
		label.Render("Rounds per match:"),
		rounds.Mean(), rounds.StdDev(), rounds.Median(), rounds.Percentile(0.9), rounds.Min(), rounds.Max())
	fmt.Fprintf(w, "%s %.2f busts per round, %d freezes, %d stays, %d second chances used\n",
		label.Render("Events:"),
		summary.BustsPerRound(), summary.Freezes, summary.Stays, summary.SecondChances)
}
