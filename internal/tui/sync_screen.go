package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-fit-sync/internal/service"
	"github.com/MKhiriev/go-fit-sync/models"
)

type cardModel struct {
	ctx    context.Context
	rows   service.ClientRowService
	sync   service.ClientSyncService
	userID string
	role   models.Role
	build  models.AppBuildInfo

	spinner     spinner.Model
	status      models.SyncStatus
	pending     int
	last        *models.SyncResult
	running     bool
	showDetails bool
	showBuild   bool
	loadErr     error
}

func newCardModel(ctx context.Context, rows service.ClientRowService, sync service.ClientSyncService, userID string, role models.Role, build models.AppBuildInfo) cardModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	m := cardModel{
		ctx:     ctx,
		rows:    rows,
		sync:    sync,
		userID:  userID,
		role:    role,
		build:   build,
		spinner: s,
	}
	if last, ok := sync.LastResult(); ok {
		m.last = &last
	}
	return m
}

func (m cardModel) Init() tea.Cmd {
	return m.refresh()
}

func (m cardModel) refresh() tea.Cmd {
	return func() tea.Msg {
		pending, err := m.rows.PendingCount(m.ctx, m.userID)
		return statusLoadedMsg{
			status:  m.sync.GetSyncStatus(m.ctx),
			pending: pending,
			err:     err,
		}
	}
}

func (m cardModel) runSync() tea.Cmd {
	return func() tea.Msg {
		return syncDoneMsg{result: m.sync.Sync(m.ctx, m.userID, m.role)}
	}
}

func (m cardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.quit):
			return m, tea.Quit
		case key.Matches(msg, keys.sync):
			if m.running {
				return m, nil
			}
			m.running = true
			m.status.Status = models.StatusSyncing
			return m, tea.Batch(m.spinner.Tick, m.runSync())
		case key.Matches(msg, keys.details):
			m.showDetails = !m.showDetails
			return m, nil
		case key.Matches(msg, keys.build):
			m.showBuild = !m.showBuild
			return m, nil
		case key.Matches(msg, keys.refresh):
			return m, m.refresh()
		}

	case syncDoneMsg:
		m.running = false
		result := msg.result
		m.last = &result
		if !result.Success {
			m.showDetails = true
		}
		return m, m.refresh()

	case statusLoadedMsg:
		m.status = msg.status
		m.pending = msg.pending
		m.loadErr = msg.err
		return m, nil

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m cardModel) View() string {
	if m.showBuild {
		return appStyle.Render(renderBuildInfoWindow(m.build))
	}

	var b strings.Builder

	fmt.Fprintf(&b, "User:     %s (%s)\n", m.userID, m.role)
	fmt.Fprintf(&b, "Status:   %s\n", m.statusLine())
	fmt.Fprintf(&b, "Last sync: %s\n", formatTime(m.status.LastSyncAt))
	fmt.Fprintf(&b, "Synced:   %d change(s) in total\n", m.status.TotalSynced)
	fmt.Fprintf(&b, "Pending:  %d local change(s)\n", m.pending)

	if m.loadErr != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("cannot read local store: " + m.loadErr.Error()))
		b.WriteString("\n")
	}

	if m.last != nil {
		b.WriteString("\n")
		b.WriteString(resultLine(*m.last))
		b.WriteString("\n")
		if m.showDetails && len(m.last.Errors) > 0 {
			b.WriteString("\n")
			b.WriteString(errorOverlayModel{lines: m.last.Errors}.View())
			b.WriteString("\n")
		}
	}

	help := "s: sync now  d: details  r: refresh  i: build info  q: quit"
	return appStyle.Render(renderPage(titleStyle.Render("SYNC"), b.String(), helpStyle.Render(help)))
}

func (m cardModel) statusLine() string {
	switch m.status.Status {
	case models.StatusSyncing:
		return m.spinner.View() + " syncing..."
	case models.StatusSuccess:
		return okStyle.Render("up to date")
	case models.StatusError:
		msg := "failed"
		if m.status.LastError != nil {
			msg += ": " + humanizeSyncError(*m.status.LastError)
		}
		return errorStyle.Render(msg)
	default:
		return helpStyle.Render("never synced")
	}
}

func resultLine(result models.SyncResult) string {
	if result.Success {
		return okStyle.Render(fmt.Sprintf("pushed %d, pulled %d", result.PushedCount, result.PulledCount))
	}
	return errorStyle.Render(humanizeSyncError(result.Message))
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
