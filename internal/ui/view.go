package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/tmux-popup-files/internal/browse"
	"github.com/atomicstack/tmux-popup-files/internal/completion"
	"github.com/atomicstack/tmux-popup-files/internal/logging/events"
)

const (
	previewPanelMinWidth = 40  // below this the preview panel is hidden
	previewPanelFraction = 0.6 // share of the width given to the preview panel
	bottomBarRows        = 2   // status line + prompt
	mouseScrollStep      = 3
	infoTTL              = 5 * time.Second
)

var (
	previewBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	previewScrollStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
}

// listRow is one rendered list line. index is -1 for divider rows.
type listRow struct {
	index   int
	label   string
	isDir   bool
	special bool
}

func (m *Model) listRows() []listRow {
	if m.mode == ModePath {
		cands := m.completion.Candidates()
		rows := make([]listRow, 0, len(cands))
		for i, c := range cands {
			rows = append(rows, listRow{
				index:   i,
				label:   candidateLabel(c, m.completion.Style()),
				isDir:   c.IsDir && c.Kind == completion.KindEntry,
				special: c.Kind != completion.KindEntry,
			})
		}
		return rows
	}
	entries := m.session.Filtered()
	seps := m.session.SeparatorsAfter()
	rows := make([]listRow, 0, len(entries)+len(seps))
	for i, e := range entries {
		rows = append(rows, listRow{
			index:   i,
			label:   browse.RowLabel(e),
			isDir:   e.IsDir(),
			special: e.IsParent(),
		})
		for _, s := range seps {
			if s == i && i < len(entries)-1 {
				rows = append(rows, listRow{index: -1})
			}
		}
	}
	return rows
}

// cursorRow maps a list index to its position among rows.
func cursorRow(rows []listRow, index int) int {
	for i, r := range rows {
		if r.index == index {
			return i
		}
	}
	return 0
}

func (m *Model) hasSidePreview() bool {
	return m.mode == ModeBrowse && m.previewPanelWidth() > 0
}

// previewPanelWidth returns 0 when the terminal is too narrow to split.
func (m *Model) previewPanelWidth() int {
	if m.width <= 0 {
		return 0
	}
	w := int(float64(m.width) * previewPanelFraction)
	if w < previewPanelMinWidth {
		return 0
	}
	return w
}

func (m *Model) listColumnWidth() int {
	return m.width - m.previewPanelWidth()
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.finished {
		return ""
	}
	if m.hasSidePreview() {
		return m.viewSideBySide()
	}
	return m.viewVertical()
}

func (m *Model) viewVertical() string {
	lines := m.contentLines(m.width)
	lines = limitHeight(lines, m.height-bottomBarRows, m.width)
	lines = applyWidth(lines, m.width)
	lines = append(lines, applyWidth(m.bottomLines(), m.width)...)
	return renderLines(lines)
}

func (m *Model) viewSideBySide() string {
	listW := m.listColumnWidth()
	prevW := m.previewPanelWidth()

	panelH := m.height - bottomBarRows
	if panelH < 1 {
		panelH = 1
	}
	lines := m.contentLines(listW)
	if len(lines) > panelH {
		lines = lines[:panelH]
	}
	for len(lines) < panelH {
		lines = append(lines, styledLine{})
	}
	lines = applyWidth(lines, listW)
	leftRows := strings.Split(renderLines(lines), "\n")
	for i, row := range leftRows {
		leftRows[i] = fitWidth(row, listW)
	}
	left := strings.Join(leftRows, "\n")
	right := m.renderPreviewPanel(m.activePreview(), prevW, panelH)
	top := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return top + "\n" + renderLines(applyWidth(m.bottomLines(), m.width))
}

// contentLines renders the header, list, info and footer for a column of
// the given width.
func (m *Model) contentLines(width int) []styledLine {
	lines := make([]styledLine, 0, 16)
	lines = append(lines, styledLine{text: m.headerText(), style: styles.Header})

	rows := m.listRows()
	if len(rows) == 0 {
		lines = append(lines, styledLine{text: m.emptyText(), style: styles.Info})
	} else {
		m.syncViewport()
		start, end := m.viewport.Window(len(rows), m.maxVisibleItems())
		cursor := m.cursorIndex()
		for _, row := range rows[start:end] {
			lines = append(lines, m.buildRowLine(row, row.index == cursor, width))
		}
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{}, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{}, styledLine{text: m.keys.footerText(), style: styles.Footer})
	}
	return lines
}

func (m *Model) bottomLines() []styledLine {
	var status styledLine
	switch {
	case m.errMsg != "":
		status = styledLine{text: "Error: " + m.errMsg, style: styles.Error}
	case m.backendLastErr != "":
		status = styledLine{text: "Watch: " + m.backendLastErr, style: styles.Error}
	case m.busy:
		status = styledLine{text: "Working…", style: styles.Loading}
	}
	return []styledLine{status, {text: m.filterPrompt()}}
}

func (m *Model) headerText() string {
	root := m.trees.Tree().RootName()
	if m.mode == ModePath {
		return root + ": open path"
	}
	header := root
	if cur := m.session.CurrentPath(); cur != "" {
		header += "/" + cur
	}
	if m.session.ShowHidden() {
		header += "  [hidden]"
	}
	return header
}

func (m *Model) emptyText() string {
	query := m.prompt.Text
	if m.mode == ModeBrowse {
		query = m.session.Query()
	}
	if query == "" {
		return "(empty directory)"
	}
	return fmt.Sprintf("No matches for %q", query)
}

func (m *Model) buildRowLine(row listRow, selected bool, width int) styledLine {
	if row.index < 0 {
		w := width
		if w <= 0 {
			w = 20
		}
		return styledLine{text: strings.Repeat("─", w), style: styles.Separator}
	}
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	switch {
	case selected && row.isDir:
		lineStyle = styles.SelectedDirectory
	case selected:
		lineStyle = styles.SelectedItem
	case row.isDir:
		lineStyle = styles.Directory
	case row.special:
		lineStyle = styles.Marker
	}
	if selected {
		indicatorStyle = styles.SelectedItemIndicator
	}
	text := "▌ " + row.label
	if width > 0 {
		if pad := width - ansi.StringWidth(text); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          text,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

// renderPreviewPanel draws the bordered preview box with exactly height rows
// of totalWidth columns.
func (m *Model) renderPreviewPanel(preview *previewData, totalWidth, height int) string {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)
	innerW := max(totalWidth-2, 1)
	innerH := max(height-2, 1)

	title := "Preview"
	scrollInfo := ""
	meta := ""
	var content []string
	var errLine string
	switch {
	case preview == nil:
	case preview.err != "":
		title = "Preview: " + preview.label
		errLine = preview.err
	case preview.loading:
		title = "Preview: " + preview.label
		content = []string{"Loading…"}
	default:
		title = "Preview: " + preview.label
		meta = preview.meta
		maxOffset := max(len(preview.lines)-innerH, 0)
		preview.scrollOffset = min(max(preview.scrollOffset, 0), maxOffset)
		end := min(preview.scrollOffset+innerH, len(preview.lines))
		content = preview.lines[preview.scrollOffset:end]
		if len(preview.lines) > innerH {
			scrollInfo = fmt.Sprintf(" %d/%d ", end, len(preview.lines))
		}
	}

	titleSeg := " " + title + " "
	dashes := totalWidth - 4 - ansi.StringWidth(titleSeg) - ansi.StringWidth(scrollInfo)
	if dashes < 0 {
		scrollInfo = ""
		dashes = totalWidth - 4 - ansi.StringWidth(titleSeg)
	}
	if dashes < 0 {
		titleSeg = ansi.Truncate(titleSeg, max(totalWidth-4, 1), "…")
		dashes = totalWidth - 4 - ansi.StringWidth(titleSeg)
	}
	dashes = max(dashes, 0)
	top := previewBorderStyle.Render(tlc+hz) +
		styles.PreviewTitle.Render(titleSeg) +
		previewBorderStyle.Render(strings.Repeat(hz, dashes)) +
		previewScrollStyle.Render(scrollInfo) +
		previewBorderStyle.Render(hz+trc)

	bottom := previewBorderStyle.Render(blc + strings.Repeat(hz, innerW) + brc)
	if meta != "" {
		metaSeg := " " + meta + " "
		if fill := innerW - 1 - ansi.StringWidth(metaSeg); fill >= 0 {
			bottom = previewBorderStyle.Render(blc+hz) +
				styles.PreviewMeta.Render(metaSeg) +
				previewBorderStyle.Render(strings.Repeat(hz, fill)+brc)
		}
	}

	bodyStyle := styles.PreviewBody
	if errLine != "" {
		bodyStyle = styles.PreviewError
		content = []string{errLine}
	}
	rows := make([]string, 0, height)
	rows = append(rows, top)
	for i := 0; i < innerH; i++ {
		var line string
		if i < len(content) {
			line = content[i]
		}
		rows = append(rows, previewBorderStyle.Render(vt)+bodyStyle.Render(fitWidth(line, innerW))+previewBorderStyle.Render(vt))
	}
	rows = append(rows, bottom)
	return strings.Join(rows, "\n")
}

// handleMouseMsg scrolls the preview panel with the wheel.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok || !m.hasSidePreview() {
		return nil
	}
	preview := m.activePreview()
	if preview == nil || preview.loading {
		return nil
	}
	innerH := max(m.height-bottomBarRows-2, 1)
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		preview.scrollOffset = max(preview.scrollOffset-mouseScrollStep, 0)
	case tea.MouseButtonWheelDown:
		maxOffset := max(len(preview.lines)-innerH, 0)
		preview.scrollOffset = min(preview.scrollOffset+mouseScrollStep, maxOffset)
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	events.UI.Resize(m.width, m.height)
	m.syncViewport()
	return nil
}

// maxVisibleItems is the number of list rows that fit, or -1 when the
// height is unknown.
func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := bottomBarRows + 1 // header
	if m.currentInfo() != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	return max(m.height-used, 1)
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(infoTTL)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.forceClearInfo()
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		line.text = truncateText(line.text, width)
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil && text != "" {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

// truncateText shortens text to width cells, ending in an ellipsis.
func truncateText(text string, width int) string {
	if width <= 0 || ansi.StringWidth(text) <= width {
		return text
	}
	return ansi.Truncate(text, width, "…")
}

// fitWidth pads or truncates a possibly styled string to exactly width
// cells.
func fitWidth(s string, width int) string {
	w := ansi.StringWidth(s)
	switch {
	case w > width:
		return ansi.Truncate(s, width, "…")
	case w < width:
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
