package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lox/flipseven/cards"
	"github.com/lox/flipseven/internal/game"
)

// HumanAgent asks a person for decisions. Prompts go to out and answers are
// read line by line from in. When in is exhausted the agent stays and
// targets the first eligible participant.
type HumanAgent struct {
	out      io.Writer
	renderer *Renderer
	lines    chan string
}

// NewHumanAgent creates a human agent. renderer formats cards in prompts and
// may be nil for plain output.
func NewHumanAgent(in io.Reader, out io.Writer, renderer *Renderer) *HumanAgent {
	if renderer == nil {
		renderer = NewRenderer(out, WithNoColor())
	}
	h := &HumanAgent{
		out:      out,
		renderer: renderer,
		lines:    make(chan string),
	}
	go h.readLines(in)
	return h
}

func (h *HumanAgent) readLines(in io.Reader) {
	defer close(h.lines)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		h.lines <- scanner.Text()
	}
}

// readLine waits for the next line of input. It returns false on EOF or when
// ctx is done.
func (h *HumanAgent) readLine(ctx context.Context) (string, bool) {
	select {
	case line, ok := <-h.lines:
		return strings.TrimSpace(line), ok
	case <-ctx.Done():
		return "", false
	}
}

// Decide prompts for hit or stay
func (h *HumanAgent) Decide(s game.Snapshot) game.Action {
	return h.DecideContext(context.Background(), s)
}

// DecideContext prompts for hit or stay, giving up with Stay when ctx ends
func (h *HumanAgent) DecideContext(ctx context.Context, s game.Snapshot) game.Action {
	styles := h.renderer.Styles()

	fmt.Fprintln(h.out)
	fmt.Fprintf(h.out, "%s  hand: %s\n", styles.Highlight.Render(s.Name), h.renderer.Hand(s.Hand))
	fmt.Fprintf(h.out, "points %d, safe draw %.0f%%, %d cards in the draw pile\n",
		s.Points, s.SuccessProbability*100, s.DrawPileSize)
	if len(s.Secured) > 0 {
		fmt.Fprintln(h.out, styles.Info.Render("secured: "+strings.Join(s.Secured, ", ")))
	}

	for {
		fmt.Fprint(h.out, styles.Prompt.Render("Hit or stay? [h/s]: "))
		line, ok := h.readLine(ctx)
		if !ok {
			fmt.Fprintln(h.out)
			return game.Stay
		}

		switch strings.ToLower(line) {
		case "h", "hit":
			return game.Hit
		case "s", "stay":
			return game.Stay
		default:
			fmt.Fprintln(h.out, "Please answer h (hit) or s (stay).")
		}
	}
}

// ChooseTarget prompts for the target of an action card
func (h *HumanAgent) ChooseTarget(req game.TargetRequest) string {
	return h.ChooseTargetContext(context.Background(), req)
}

// ChooseTargetContext prompts for a target by number or name. An empty answer,
// EOF or the end of ctx picks the first eligible participant.
func (h *HumanAgent) ChooseTargetContext(ctx context.Context, req game.TargetRequest) string {
	if len(req.Eligible) == 0 {
		return ""
	}

	fmt.Fprintf(h.out, "You drew %s. Choose a target:\n", h.renderer.Card(cards.NewAction(req.Kind)))
	for i, name := range req.Eligible {
		fmt.Fprintf(h.out, "  %d) %s\n", i+1, name)
	}

	for {
		fmt.Fprint(h.out, h.renderer.Styles().Prompt.Render(fmt.Sprintf("Target [1-%d]: ", len(req.Eligible))))
		line, ok := h.readLine(ctx)
		if !ok {
			fmt.Fprintln(h.out)
			return req.Eligible[0]
		}
		if line == "" {
			return req.Eligible[0]
		}

		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(req.Eligible) {
			return req.Eligible[n-1]
		}
		for _, name := range req.Eligible {
			if strings.EqualFold(name, line) {
				return name
			}
		}
		fmt.Fprintf(h.out, "Please enter a number between 1 and %d.\n", len(req.Eligible))
	}
}

var _ game.Agent = (*HumanAgent)(nil)
