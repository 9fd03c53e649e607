package casino

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/holdem-casino/poker"
)

// FormattingOptions controls how events are rendered as text
type FormattingOptions struct {
	ShowHoleCards bool // print the cards dealt to each player
	ShowRanks     bool // print every player's hand rank, not just the leaders
	Color         bool // style output with ANSI colours
}

// EventFormatter turns casino events into human-readable lines
type EventFormatter struct {
	opts FormattingOptions

	red    lipgloss.Style
	black  lipgloss.Style
	win    lipgloss.Style
	push   lipgloss.Style
	reject lipgloss.Style
	header lipgloss.Style
}

// NewEventFormatter creates a formatter whose styles render for w.
func NewEventFormatter(w io.Writer, opts FormattingOptions) *EventFormatter {
	r := lipgloss.NewRenderer(w)
	if !opts.Color {
		r.SetColorProfile(termenv.Ascii)
	}
	return &EventFormatter{
		opts:   opts,
		red:    r.NewStyle().Foreground(lipgloss.Color("9")),
		black:  r.NewStyle().Foreground(lipgloss.Color("15")),
		win:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		push:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		reject: r.NewStyle().Foreground(lipgloss.Color("9")),
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
	}
}

// Format renders an event. It returns an empty string for events that
// produce no output under the current options.
func (ef *EventFormatter) Format(event Event) string {
	switch e := event.(type) {
	case PlayerSeatedEvent:
		return fmt.Sprintf("%s bought in with %d chips. Good luck!", e.Player.Name, e.Player.Chips)
	case AdmissionRejectedEvent:
		return ef.formatRejection(e)
	case PlayerLeftEvent:
		return fmt.Sprintf("%s left %s.", e.Player.Name, e.Table)
	case DeckShuffledEvent:
		return ef.header.Render(fmt.Sprintf("Round %d", e.Round)) + "\nDeck shuffled."
	case HandDealtEvent:
		if ef.opts.ShowHoleCards {
			return fmt.Sprintf("Hand dealt to %s: %s (%s)", e.Player.Name, ef.FormatCards(e.Cards), poker.Categorize(e.Cards))
		}
		return fmt.Sprintf("Hand dealt to %s.", e.Player.Name)
	case HandRankedEvent:
		if ef.opts.ShowRanks {
			return fmt.Sprintf("%s holds %s", e.Player.Name, e.Rank.Describe())
		}
		return ""
	case RoundResolvedEvent:
		return ef.formatResolution(e)
	case GameOverEvent:
		return fmt.Sprintf("%s. Game over!", e.Reason)
	default:
		return ""
	}
}

func (ef *EventFormatter) formatRejection(e AdmissionRejectedEvent) string {
	if errors.Is(e.Reason, ErrTableFull) {
		return ef.reject.Render(fmt.Sprintf("%s is unable to join %s. It is already at max capacity.", e.Player.Name, e.Table))
	}

	var b strings.Builder
	b.WriteString(ef.reject.Render("You do not have enough chips to play at this table."))
	fmt.Fprintf(&b, "\nCurrent chips amount: %d", e.Available)
	fmt.Fprintf(&b, "\nRequired chips amount: %d", e.Required)
	fmt.Fprintf(&b, "\nAdditional chips needed: %d", e.Deficit())
	return b.String()
}

func (ef *EventFormatter) formatResolution(e RoundResolvedEvent) string {
	switch e.Outcome {
	case Win:
		s := e.Leaders[0]
		return ef.win.Render(fmt.Sprintf("%s wins with %s:", s.Player.Name, s.Rank.Describe())) +
			" " + ef.FormatCards(s.Hand)
	case Push:
		lines := make([]string, 0, len(e.Leaders))
		for _, s := range e.Leaders {
			lines = append(lines, ef.push.Render(fmt.Sprintf("%s pushes with %s:", s.Player.Name, s.Rank.Describe()))+
				" "+ef.FormatCards(s.Hand))
		}
		return strings.Join(lines, "\n")
	default:
		return "No contest."
	}
}

// FormatCards renders cards as suit symbols, red suits in red.
func (ef *EventFormatter) FormatCards(cards []poker.Card) string {
	parts := make([]string, 0, len(cards))
	for _, c := range cards {
		if c.IsRed() {
			parts = append(parts, ef.red.Render(c.Symbol()))
		} else {
			parts = append(parts, ef.black.Render(c.Symbol()))
		}
	}
	return strings.Join(parts, " ")
}

// TextSubscriber writes formatted events to a writer, one per line.
type TextSubscriber struct {
	w         io.Writer
	formatter *EventFormatter
}

// NewTextSubscriber creates a subscriber that renders to w.
func NewTextSubscriber(w io.Writer, opts FormattingOptions) *TextSubscriber {
	return &TextSubscriber{w: w, formatter: NewEventFormatter(w, opts)}
}

// OnEvent implements EventSubscriber.
func (s *TextSubscriber) OnEvent(event Event) {
	if line := s.formatter.Format(event); line != "" {
		fmt.Fprintln(s.w, line)
	}
}

// LogSubscriber records every event as a structured debug log line.
type LogSubscriber struct {
	logger *log.Logger
}

// NewLogSubscriber creates a subscriber that logs through logger.
func NewLogSubscriber(logger *log.Logger) *LogSubscriber {
	return &LogSubscriber{logger: logger.WithPrefix("events")}
}

// OnEvent implements EventSubscriber.
func (s *LogSubscriber) OnEvent(event Event) {
	kv := []any{"type", event.EventType(), "at", event.Timestamp()}
	switch e := event.(type) {
	case PlayerSeatedEvent:
		kv = append(kv, "table", e.Table, "player", e.Player.Name, "seated", e.Seated)
	case AdmissionRejectedEvent:
		kv = append(kv, "table", e.Table, "player", e.Player.Name, "reason", e.Reason, "deficit", e.Deficit())
	case PlayerLeftEvent:
		kv = append(kv, "table", e.Table, "player", e.Player.Name, "seated", e.Seated)
	case DeckShuffledEvent:
		kv = append(kv, "round", e.Round)
	case HandDealtEvent:
		kv = append(kv, "round", e.Round, "player", e.Player.Name)
	case HandRankedEvent:
		kv = append(kv, "round", e.Round, "player", e.Player.Name, "rank", e.Rank.Describe())
	case RoundResolvedEvent:
		kv = append(kv, "round", e.Round, "outcome", e.Outcome, "leaders", len(e.Leaders))
	case GameOverEvent:
		kv = append(kv, "reason", e.Reason, "rounds", e.Rounds)
	}
	s.logger.Debug("Event", kv...)
}
