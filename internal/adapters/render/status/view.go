package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/staking-cli/internal/application"
	"github.com/bnema/staking-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultSymbol = "ETH"
	shareBarWidth = 24
)

type RenderOptions struct {
	Now        time.Time
	StaleAfter time.Duration
	// Symbol labels amounts; empty means ETH.
	Symbol string
	// Offline marks a view read from the persisted snapshot.
	Offline bool
}

func renderView(view application.View, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Staking dApp"),
		s.header.Render(walletLine(view.Session, opts)),
	}

	if notice := view.Notice(); notice != "" {
		lines = append(lines, s.section.Render(s.notice.Render(notice)))
	}

	lines = append(lines, s.section.Render(renderPosition(view, opts, s)))

	if len(view.Pending) > 0 {
		lines = append(lines, s.section.Render(renderPending(view, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func walletLine(session domain.Session, opts RenderOptions) string {
	var line string
	switch session.Status {
	case domain.StatusConnected:
		line = fmt.Sprintf("wallet: %s (chain %d)", session.ShortAccount(), session.ChainID)
	case domain.StatusConnecting:
		line = "wallet: connecting..."
	default:
		line = "wallet: not connected"
	}

	if opts.Offline {
		line += " [offline]"
	}

	return line
}

func renderPosition(view application.View, opts RenderOptions, s styles) string {
	symbol := opts.Symbol
	if symbol == "" {
		symbol = defaultSymbol
	}

	position := view.Position
	parts := []string{
		figureLine("Total Staked:", view.Format(position.TotalStaked), symbol, s),
		figureLine("Your Stake:  ", view.Format(position.UserStaked), symbol, s),
	}

	if view.Session.Connected() && !position.TotalStaked.IsZero() {
		share := position.SharePercent()
		parts = append(parts, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.figureKey.Render("Pool share:  "),
			renderShareBar(share, shareBarWidth, s),
			" ",
			lipgloss.NewStyle().Foreground(interpolateColor(share, 0, 100)).Render(formatPercent(share)),
		))
	}

	parts = append(parts, syncLine(position, opts, s))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func figureLine(label string, value string, symbol string, s styles) string {
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.figureKey.Render(label),
		" ",
		s.figure.Render(value+" "+symbol),
	)
}

func syncLine(position domain.StakePosition, opts RenderOptions, s styles) string {
	if position.SyncedAt.IsZero() {
		line := s.empty.Render("synced: never")
		if position.Stale {
			line += " " + s.warning.Render("[stale]")
		}
		return line
	}

	line := s.meta.Render("synced: " + formatSyncedRelative(position.SyncedAt, opts.Now))
	if isStale(position, opts) {
		line += " " + s.warning.Render("[stale]")
	}

	return line
}

func isStale(position domain.StakePosition, opts RenderOptions) bool {
	if position.Stale {
		return true
	}
	if opts.Now.IsZero() || opts.StaleAfter <= 0 {
		return false
	}

	return position.IsOlderThan(opts.Now, opts.StaleAfter)
}

func renderPending(view application.View, opts RenderOptions, s styles) string {
	symbol := opts.Symbol
	if symbol == "" {
		symbol = defaultSymbol
	}

	lines := make([]string, 0, len(view.Pending))
	for _, tx := range view.Pending {
		lines = append(lines, s.pending.Render(fmt.Sprintf(
			"pending %s %s %s (%s)",
			tx.Kind,
			view.Format(tx.Amount),
			symbol,
			shortHash(tx.Hash.Hex()),
		)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func shortHash(hash string) string {
	if len(hash) <= 14 {
		return hash
	}

	return hash[:10] + "..." + hash[len(hash)-4:]
}

func renderShareBar(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(percent) / 100.0))
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func formatPercent(v float64) string {
	v = clampPercent(v)
	if v > 0 && v < 0.1 {
		return "<0.1%"
	}

	return fmt.Sprintf("%.1f%%", v)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func formatSyncedRelative(syncedAt, now time.Time) string {
	if now.IsZero() {
		return syncedAt.Format(time.RFC3339)
	}

	elapsed := now.Sub(syncedAt)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return plural(int(elapsed.Minutes()), "minute") + " ago"
	case elapsed < 24*time.Hour:
		return plural(int(elapsed.Hours()), "hour") + " ago"
	default:
		return fmt.Sprintf("%s ago (%s)", plural(int(elapsed.Hours()/24), "day"), syncedAt.Format("15:04 on 02 Jan"))
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}

	return fmt.Sprintf("%d %ss", n, unit)
}

// interpolateColor maps value onto the 240-255 greyscale ramp.
func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	colorCode := int(240.0 + 15.0*normalized)
	return lipgloss.Color(fmt.Sprintf("%d", colorCode))
}
