package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/engine"
)

const (
	cellWidth  = 7 // Characters per tile
	cellHeight = 3 // Lines per tile
)

// tileColors maps tile values to background/foreground colors.
var tileColors = map[int][2]string{
	0:    {"#cdc1b4", "#776e65"},
	2:    {"#eee4da", "#776e65"},
	4:    {"#ede0c8", "#776e65"},
	8:    {"#f2b179", "#f9f6f2"},
	16:   {"#f59563", "#f9f6f2"},
	32:   {"#f67c5f", "#f9f6f2"},
	64:   {"#f65e3b", "#f9f6f2"},
	128:  {"#edcf72", "#f9f6f2"},
	256:  {"#edcc61", "#f9f6f2"},
	512:  {"#edc850", "#f9f6f2"},
	1024: {"#edc53f", "#f9f6f2"},
	2048: {"#edc22e", "#f9f6f2"},
}

// superTile is used for every value above 2048.
var superTile = [2]string{"#3c3a32", "#f9f6f2"}

var (
	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#bbada0")).
			Background(lipgloss.Color("#bbada0"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	statStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#eee4da")).
			Background(lipgloss.Color("#bbada0"))

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("229")).
			Padding(0, 2).
			Align(lipgloss.Center)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// tileStyle returns the style for a tile value.
func tileStyle(value int) lipgloss.Style {
	colors, ok := tileColors[value]
	if !ok {
		colors = superTile
	}
	return lipgloss.NewStyle().
		Width(cellWidth).
		Height(cellHeight).
		Align(lipgloss.Center, lipgloss.Center).
		Bold(value >= 8).
		Background(lipgloss.Color(colors[0])).
		Foreground(lipgloss.Color(colors[1]))
}

// renderTile draws a single cell.
func renderTile(value int) string {
	label := ""
	if value != 0 {
		label = strconv.Itoa(value)
	}
	return tileStyle(value).Render(label)
}

// RenderBoard draws the grid as coloured tiles inside a rounded border.
func RenderBoard(g engine.Grid) string {
	n := g.Size()
	rows := make([]string, n)
	for r := range n {
		cells := make([]string, n)
		for c := range n {
			cells[c] = renderTile(g.At(engine.Pos{Row: r, Col: c}))
		}
		rows[r] = lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}
	return boardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderStat draws a "LABEL value" box for the HUD.
func renderStat(label string, value int) string {
	return statStyle.Render(label + " " + strconv.Itoa(value))
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// centerBlock centers a multi-line block horizontally and vertically.
func centerBlock(block string, width, height int) string {
	if width <= 0 || height <= 0 {
		return block
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}
