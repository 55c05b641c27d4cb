package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bnema/staking-cli/internal/application"
	"github.com/bnema/staking-cli/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// txPhase is where a submitted write currently waits.
type txPhase int

const (
	phaseWallet txPhase = iota
	phaseReceipt
)

type txSettledMsg struct {
	err error
}

// txProgress follows one write from the wallet prompt to its receipt by
// watching the controller's pending transactions.
type txProgress struct {
	spinner spinner.Model
	kind    domain.TxKind
	amount  string
	symbol  string
	view    func() application.View
	settle  tea.Cmd

	phase      txPhase
	hash       string
	acceptedAt time.Time
	now        func() time.Time
	err        error
	settled    bool
}

var (
	phaseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	hashStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

func newTxProgress(kind domain.TxKind, amount, symbol string, view func() application.View, settle tea.Cmd) txProgress {
	return txProgress{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(phaseStyle)),
		kind:    kind,
		amount:  amount,
		symbol:  symbol,
		view:    view,
		settle:  settle,
		now:     time.Now,
	}
}

func (m txProgress) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.settle)
}

func (m txProgress) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		m = m.observe()
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case txSettledMsg:
		m.settled = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

// observe moves to the receipt phase once the wallet accepted the write.
func (m txProgress) observe() txProgress {
	if m.phase == phaseReceipt {
		return m
	}

	for _, tx := range m.view().Pending {
		if tx.Kind == m.kind {
			m.phase = phaseReceipt
			m.hash = tx.Hash.Hex()
			m.acceptedAt = m.now()
			break
		}
	}
	return m
}

func (m txProgress) View() string {
	if m.settled {
		return ""
	}

	switch m.phase {
	case phaseReceipt:
		waited := m.now().Sub(m.acceptedAt).Truncate(time.Second)
		return fmt.Sprintf("%s awaiting receipt %s (%s)", m.spinner.View(), hashStyle.Render(shortTxHash(m.hash)), waited)
	default:
		return fmt.Sprintf("%s confirm %s of %s %s in your wallet...", m.spinner.View(), m.kind, m.amount, m.symbol)
	}
}

func shortTxHash(hash string) string {
	if len(hash) <= 14 {
		return hash
	}
	return hash[:10] + "..." + hash[len(hash)-4:]
}

// runTxProgress runs submit while rendering its progress on output.
func runTxProgress(ctx context.Context, output io.Writer, model txProgress, submit func(context.Context) error) error {
	model.settle = func() tea.Msg {
		return txSettledMsg{err: submit(ctx)}
	}

	p := tea.NewProgram(model, tea.WithInput(nil), tea.WithOutput(output), tea.WithContext(ctx))

	final, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := final.(txProgress)
	if !ok {
		return fmt.Errorf("unexpected final progress model type %T", final)
	}

	return result.err
}
