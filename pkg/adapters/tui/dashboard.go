package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ArthurB95/linklink/pkg/core/services"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Dashboard is the interactive link manager. Edits apply to the local list
// immediately and roll back to server state when the backend rejects them;
// the status line surfaces the outcome either way.
type Dashboard struct {
	bio       *services.BioPageService
	shortener *services.ShortenerService
	qr        *services.QRCodeService
	notifier  *Notifier

	spinner    spinner.Model
	titleInput textinput.Model
	urlInput   textinput.Model

	cursor   int
	adding   bool
	loading  bool
	status   string
	statusOK bool
	width    int
}

// Notifier bridges service notifications into the event loop.
type Notifier struct {
	ch chan statusMsg
}

func NewNotifier() *Notifier {
	return &Notifier{ch: make(chan statusMsg, 16)}
}

func (n *Notifier) Success(message string) { n.ch <- statusMsg{text: message, ok: true} }
func (n *Notifier) Failure(message string) { n.ch <- statusMsg{text: message} }

type statusMsg struct {
	text string
	ok   bool
}

type loadedMsg struct{ err error }

type refreshMsg struct{}

func New(bio *services.BioPageService, shortener *services.ShortenerService, qr *services.QRCodeService, notifier *Notifier) Dashboard {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	title := textinput.New()
	title.Placeholder = "Link title"
	title.CharLimit = 80

	url := textinput.New()
	url.Placeholder = "https://..."
	url.CharLimit = 2048

	return Dashboard{
		bio:        bio,
		shortener:  shortener,
		qr:         qr,
		notifier:   notifier,
		spinner:    sp,
		titleInput: title,
		urlInput:   url,
		loading:    true,
		width:      80,
	}
}

func (d Dashboard) Init() tea.Cmd {
	return tea.Batch(d.spinner.Tick, d.loadCmd(), d.listenCmd())
}

func (d Dashboard) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		err := d.bio.Load(ctx)
		d.shortener.Load(ctx)
		d.qr.Load(ctx)
		return loadedMsg{err: err}
	}
}

func (d Dashboard) listenCmd() tea.Cmd {
	return func() tea.Msg {
		return <-d.notifier.ch
	}
}

func (d Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width = msg.Width
		return d, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return d, cmd

	case loadedMsg:
		d.loading = false
		if msg.err != nil {
			d.status = "Could not load your page. Are you logged in?"
			d.statusOK = false
		}
		d.clampCursor()
		return d, nil

	case statusMsg:
		d.status = msg.text
		d.statusOK = msg.ok
		d.clampCursor()
		return d, d.listenCmd()

	case refreshMsg:
		d.clampCursor()
		return d, nil

	case tea.KeyMsg:
		if d.adding {
			return d.updateAdding(msg)
		}
		return d.updateBrowsing(msg)
	}
	return d, nil
}

func (d Dashboard) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return d, tea.Quit

	case "up", "k":
		if d.cursor > 0 {
			d.cursor--
		}

	case "down", "j":
		if d.cursor < len(d.bio.Links())-1 {
			d.cursor++
		}

	case "K", "shift+up":
		return d.moveLink(true)

	case "J", "shift+down":
		return d.moveLink(false)

	case "a":
		d.adding = true
		d.titleInput.Reset()
		d.urlInput.Reset()
		d.urlInput.Blur()
		return d, d.titleInput.Focus()

	case "d", "backspace":
		links := d.bio.Links()
		if d.cursor < len(links) {
			link := links[d.cursor]
			return d, func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
				defer cancel()
				d.bio.RemoveLink(ctx, link.ID)
				return refreshMsg{}
			}
		}

	case "r":
		d.loading = true
		return d, d.loadCmd()
	}
	return d, nil
}

func (d Dashboard) moveLink(up bool) (tea.Model, tea.Cmd) {
	links := d.bio.Links()
	target := d.cursor + 1
	if up {
		target = d.cursor - 1
	}
	if d.cursor >= len(links) || target < 0 || target >= len(links) {
		return d, nil
	}
	id := links[d.cursor].ID
	d.cursor = target
	return d, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		d.bio.MoveLink(ctx, id, up)
		return refreshMsg{}
	}
}

func (d Dashboard) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		d.adding = false
		return d, nil

	case "tab", "shift+tab":
		if d.titleInput.Focused() {
			d.titleInput.Blur()
			return d, d.urlInput.Focus()
		}
		d.urlInput.Blur()
		return d, d.titleInput.Focus()

	case "enter":
		title := strings.TrimSpace(d.titleInput.Value())
		url := strings.TrimSpace(d.urlInput.Value())
		if title == "" || url == "" {
			d.status = "Title and URL are required."
			d.statusOK = false
			return d, nil
		}
		d.adding = false
		return d, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			d.bio.AddLink(ctx, title, url)
			return refreshMsg{}
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	d.titleInput, cmd = d.titleInput.Update(msg)
	cmds = append(cmds, cmd)
	d.urlInput, cmd = d.urlInput.Update(msg)
	cmds = append(cmds, cmd)
	return d, tea.Batch(cmds...)
}

func (d *Dashboard) clampCursor() {
	if n := len(d.bio.Links()); d.cursor >= n && n > 0 {
		d.cursor = n - 1
	} else if n == 0 {
		d.cursor = 0
	}
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	statStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	urlStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (d Dashboard) View() string {
	var sb strings.Builder

	page := d.bio.Page()
	title := "Link.Link"
	if page != nil && page.Title != "" {
		title = page.Title
	}
	sb.WriteString(headerStyle.Render(title))
	sb.WriteString("\n")
	sb.WriteString(statStyle.Render(fmt.Sprintf(
		"views %d  ·  clicks %d  ·  click rate %d%%  ·  scans %d",
		d.pageViews(), d.shortener.TotalClicks(), d.shortener.ClickRate(), d.qr.TotalScans())))
	sb.WriteString("\n\n")

	if d.loading {
		sb.WriteString(d.spinner.View() + " loading...\n")
		return sb.String()
	}

	links := d.bio.Links()
	if len(links) == 0 {
		sb.WriteString(helpStyle.Render("No links yet. Press 'a' to add one.") + "\n")
	}
	for i, link := range links {
		line := fmt.Sprintf("%s  %s", link.Title, urlStyle.Render(link.URL))
		if i == d.cursor && !d.adding {
			line = selectedStyle.Render("> " + link.Title + "  " + link.URL)
		} else {
			line = "  " + line
		}
		sb.WriteString(line + "\n")
	}

	if d.adding {
		sb.WriteString("\n" + headerStyle.Render("New link") + "\n")
		sb.WriteString(d.titleInput.View() + "\n")
		sb.WriteString(d.urlInput.View() + "\n")
		sb.WriteString(helpStyle.Render("enter save · tab switch · esc cancel") + "\n")
	}

	if d.status != "" {
		sb.WriteString("\n")
		if d.statusOK {
			sb.WriteString(okStyle.Render(d.status))
		} else {
			sb.WriteString(errStyle.Render(d.status))
		}
		sb.WriteString("\n")
	}

	if !d.adding {
		sb.WriteString("\n" + helpStyle.Render("a add · d delete · J/K reorder · r reload · q quit") + "\n")
	}
	return sb.String()
}

func (d Dashboard) pageViews() int64 {
	if page := d.bio.Page(); page != nil {
		return page.ViewCount
	}
	return 0
}
