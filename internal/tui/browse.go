// Package tui provides the interactive results browser.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/reelscout/internal/movie"
	"github.com/lepinkainen/reelscout/internal/render"
)

const (
	defaultListWidth  = 72
	defaultListHeight = 20
)

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

// BrowseAction represents the user's action in the browser.
type BrowseAction int

const (
	// ActionNone indicates no action was taken.
	ActionNone BrowseAction = iota
	// ActionSelected indicates the user picked a movie.
	ActionSelected
	// ActionQuit indicates the user left without picking.
	ActionQuit
)

// BrowseResult holds the outcome of a browsing session.
type BrowseResult struct {
	Action    BrowseAction
	Selection *movie.Movie
	Index     int
}

type movieItem struct {
	movie.Movie
}

func (i movieItem) FilterValue() string {
	return i.Movie.Title()
}

type itemStyles struct {
	normal        lipgloss.Style
	selected      lipgloss.Style
	titleStyle    lipgloss.Style
	ratingStyle   lipgloss.Style
	metadataStyle lipgloss.Style
	castStyle     lipgloss.Style
}

func newItemStyles() itemStyles {
	container := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Foreground(lipgloss.Color("252"))

	selected := container.Copy().
		BorderForeground(lipgloss.Color("214")).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("237"))

	return itemStyles{
		normal:   container,
		selected: selected,
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("254")),
		ratingStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("178")),
		metadataStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")).
			Faint(true),
		castStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("248")),
	}
}

type movieDelegate struct {
	styles itemStyles
}

func newDelegate() movieDelegate {
	return movieDelegate{styles: newItemStyles()}
}

func (d movieDelegate) Height() int                         { return 5 }
func (d movieDelegate) Spacing() int                        { return 1 }
func (d movieDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d movieDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	mi, ok := item.(movieItem)
	if !ok {
		return
	}

	width := m.Width() - 4
	titleLine := d.styles.titleStyle.Render(truncate(fmt.Sprintf("%d. %s", idx+1, strings.ToUpper(mi.Title())), width))
	ratingLine := d.styles.ratingStyle.Render(ratingLabel(mi.Rating()))
	metadataLine := d.styles.metadataStyle.Render(truncate(mi.Duration()+" | "+mi.Director(), width))
	castLine := d.styles.castStyle.Render(truncate(mi.Cast(), width))

	content := lipgloss.JoinVertical(lipgloss.Left, titleLine, ratingLine, metadataLine, castLine)

	container := d.styles.normal
	if idx == m.Index() {
		container = d.styles.selected
	}
	_, _ = fmt.Fprint(w, container.Render(content))
}

type model struct {
	list     list.Model
	heading  string
	renderer *render.Renderer
	detail   bool
	result   BrowseResult
}

func newModel(heading string, movies []movie.Movie) *model {
	listItems := make([]list.Item, len(movies))
	for i, m := range movies {
		listItems[i] = movieItem{Movie: m}
	}

	l := list.New(listItems, newDelegate(), defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()

	return &model{
		list:     l,
		heading:  heading,
		renderer: render.New(defaultListWidth),
		result:   BrowseResult{Action: ActionNone, Index: -1},
	}
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if selected, ok := m.list.SelectedItem().(movieItem); ok {
				chosen := selected.Movie
				m.result = BrowseResult{
					Action:    ActionSelected,
					Selection: &chosen,
					Index:     m.list.Index(),
				}
				return m, tea.Quit
			}
		case " ", "d":
			m.detail = !m.detail
			return m, nil
		case "ctrl+c", "q", "esc":
			m.result = BrowseResult{Action: ActionQuit, Index: -1}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		width := clamp(defaultListWidth, msg.Width-4, 40)
		height := clamp(defaultListHeight, msg.Height-6, 5)
		m.list.SetSize(width, height)
		m.renderer = render.New(width)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	header := headerStyle.Render(m.heading)
	body := m.list.View()
	if m.detail {
		if selected, ok := m.list.SelectedItem().(movieItem); ok {
			body = m.renderer.Card(selected.Movie)
		}
	}
	help := helpStyle.Render("Up/Down navigate | Space details | Enter pick | q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, body, help)
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))
)

// Browse shows movies in an interactive list. An empty list returns
// ActionQuit without starting the program.
func Browse(movies []movie.Movie) (BrowseResult, error) {
	if len(movies) == 0 {
		return BrowseResult{Action: ActionQuit, Index: -1}, nil
	}

	m := newModel(render.StatusLine(len(movies)), movies)
	finalModel, err := runProgram(m)
	if err != nil {
		return BrowseResult{}, err
	}

	if typed, ok := finalModel.(*model); ok {
		return typed.result, nil
	}

	return BrowseResult{}, fmt.Errorf("unexpected program result")
}

func ratingLabel(rating string) string {
	if rating == movie.NotRated {
		return rating
	}
	return rating + "/10"
}

func truncate(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	if width <= 0 || len(value) <= width {
		return value
	}
	if width <= 3 {
		return value[:width]
	}
	return value[:width-3] + "..."
}

func clamp(defaultValue, available, minimum int) int {
	width := defaultValue
	if available > 0 && available < defaultValue {
		width = available
	}
	if width < minimum {
		width = minimum
	}
	return width
}
