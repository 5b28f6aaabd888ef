package tui

import (
	"fmt"
	"path/filepath"
	"time"

	"beatline-cli/internal/model"
	"beatline-cli/internal/outline"
	"beatline-cli/internal/publish"
	"beatline-cli/internal/store"
	"beatline-cli/internal/style"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type editMode int

const (
	editNone editMode = iota
	editRename
	editAddSibling
	editAddChild
)

type appModel struct {
	store store.Store
	db    *store.DB
	saver *store.Saver
	ui    *store.UIState

	doc      *model.Document
	blockIdx int
	history  *outline.History

	flat     []model.FlatNode
	indexes  [][]int
	styleCfg style.Config

	cursor int
	top    int // first visible row
	width  int
	height int

	mode    editMode
	input   textinput.Model
	preview bool
	vp      viewport.Model
	status  string
}

func newAppModel(s store.Store, db *store.DB) *appModel {
	cfg, _ := store.LoadConfig()
	if cfg != nil && cfg.TUI != nil {
		applyGlyphPreference(cfg.TUI.Glyphs)
	} else {
		applyGlyphPreference("")
	}

	ui, _ := s.LoadUIState()

	m := &appModel{
		store:   s,
		db:      db,
		saver:   store.NewSaver(s, 2*time.Second),
		ui:      ui,
		history: outline.NewHistory(0),
		input:   textinput.New(),
	}
	m.input.CharLimit = 512

	m.selectDocument(db.CurrentDocumentID)
	return m
}

func (m *appModel) selectDocument(id string) {
	if doc, ok := m.db.FindDocument(id); ok {
		m.doc = doc
	} else if len(m.db.Documents) > 0 {
		m.doc = &m.db.Documents[0]
	}
	if m.doc == nil {
		return
	}
	if len(m.doc.Blocks) == 0 {
		m.doc.Blocks = append(m.doc.Blocks, model.HierarchyBlockData{ID: store.NewBlockID(), Tree: []model.HierarchyNode{}})
	}
	m.blockIdx = 0

	// Overlay persisted per-document collapse state onto the tree.
	if m.ui != nil {
		collapsed := m.ui.CollapsedSet(m.doc.ID)
		for nodeID, c := range collapsed {
			want := c
			m.doc.Blocks[m.blockIdx].Tree = outline.UpdateNode(m.doc.Blocks[m.blockIdx].Tree, nodeID, outline.NodeUpdate{Collapsed: &want})
		}
	}

	styleID := m.doc.StyleID
	custom, _ := style.LoadSheet(filepath.Join(m.store.Dir, "styles.yaml"))
	if styleID == "" {
		if cfg, err := store.LoadConfig(); err == nil {
			styleID = cfg.DefaultStyleID
		}
	}
	m.styleCfg = style.Resolve(styleID, custom)
	m.refresh()
}

func (m *appModel) tree() []model.HierarchyNode {
	if m.doc == nil || m.blockIdx >= len(m.doc.Blocks) {
		return nil
	}
	return m.doc.Blocks[m.blockIdx].Tree
}

// apply replaces the block tree, records undo history, and schedules a
// debounced save.
func (m *appModel) apply(next []model.HierarchyNode) {
	if m.doc == nil {
		return
	}
	m.history.Push(m.tree())
	m.doc.Blocks[m.blockIdx].Tree = next
	m.doc.UpdatedAt = time.Now().UTC()
	m.saver.Set(m.db)
	m.refresh()
}

func (m *appModel) refresh() {
	m.flat = outline.Flatten(m.tree())
	m.indexes = outline.NumberIndexes(m.flat)
	if m.cursor >= len(m.flat) {
		m.cursor = len(m.flat) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *appModel) currentRow() *model.FlatNode {
	if m.cursor < 0 || m.cursor >= len(m.flat) {
		return nil
	}
	return &m.flat[m.cursor]
}

func (m *appModel) shutdown() {
	if m.ui != nil {
		_ = m.store.SaveUIState(m.ui)
	}
	_ = m.saver.Flush()
}

// savedMsg is forwarded from the write-behind saver when a debounced save
// reaches disk.
type savedMsg struct{}

func (m *appModel) Init() tea.Cmd { return nil }

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		m.status = "saved"
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = msg.Height - 2
		return m, nil

	case tea.KeyMsg:
		if m.mode != editNone {
			return m.updateEditing(msg)
		}
		if m.preview {
			return m.updatePreview(msg)
		}
		return m.updateOutline(msg)
	}
	return m, nil
}

func (m *appModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = editNone
		m.input.Blur()
		return m, nil
	case "enter":
		label := m.input.Value()
		mode := m.mode
		m.mode = editNone
		m.input.Blur()
		m.commitEdit(mode, label)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *appModel) commitEdit(mode editMode, label string) {
	if label == "" {
		return
	}
	switch mode {
	case editRename:
		if row := m.currentRow(); row != nil {
			m.apply(outline.UpdateNode(m.tree(), row.ID, outline.NodeUpdate{Label: &label}))
		}
	case editAddSibling:
		row := m.currentRow()
		if row == nil {
			node := outline.NewNode(nil, model.NodeDefault, label)
			m.apply(outline.InsertNode(m.tree(), node, nil, 1<<30))
			m.moveCursorTo(node.ID)
			return
		}
		node := outline.NewNode(row.ParentID, model.NodeDefault, label)
		m.apply(outline.InsertNode(m.tree(), node, row.ParentID, row.OrderIndex+1))
		m.moveCursorTo(node.ID)
	case editAddChild:
		row := m.currentRow()
		if row == nil {
			return
		}
		pid := row.ID
		node := outline.NewNode(&pid, model.NodeDefault, label)
		tree := m.tree()
		if row.Collapsed {
			tree = outline.ToggleCollapse(tree, row.ID)
		}
		m.apply(outline.InsertNode(tree, node, &pid, 1<<30))
		m.moveCursorTo(node.ID)
	}
}

func (m *appModel) moveCursorTo(id string) {
	for i := range m.flat {
		if m.flat[i].ID == id {
			m.cursor = i
			return
		}
	}
}

func (m *appModel) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "p":
		m.preview = false
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *appModel) updateOutline(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.flat)-1 {
			m.cursor++
		}
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = len(m.flat) - 1

	case "enter", "e":
		if row := m.currentRow(); row != nil {
			m.startEdit(editRename, row.Label)
		}
	case "a":
		m.startEdit(editAddSibling, "")
	case "A":
		if m.currentRow() != nil {
			m.startEdit(editAddChild, "")
		}
	case "D":
		if row := m.currentRow(); row != nil {
			m.apply(outline.DeleteNode(m.tree(), row.ID))
			m.status = "deleted " + row.ID
		}

	case "tab":
		if row := m.currentRow(); row != nil {
			id := row.ID
			m.apply(outline.IndentNode(m.tree(), id))
			m.moveCursorTo(id)
		}
	case "shift+tab":
		if row := m.currentRow(); row != nil {
			id := row.ID
			m.apply(outline.OutdentNode(m.tree(), id))
			m.moveCursorTo(id)
		}

	case " ", "z":
		if row := m.currentRow(); row != nil && row.HasChildren {
			m.apply(outline.ToggleCollapse(m.tree(), row.ID))
			if m.ui != nil {
				m.ui.SetCollapsed(m.doc.ID, row.ID, !row.Collapsed)
			}
		}

	case "K":
		m.moveRow(-1)
	case "J":
		m.moveRow(+1)

	case "u":
		if prev, ok := m.history.Undo(m.tree()); ok {
			m.doc.Blocks[m.blockIdx].Tree = prev
			m.saver.Set(m.db)
			m.refresh()
			m.status = "undo"
		}
	case "ctrl+r":
		if next, ok := m.history.Redo(m.tree()); ok {
			m.doc.Blocks[m.blockIdx].Tree = next
			m.saver.Set(m.db)
			m.refresh()
			m.status = "redo"
		}

	case "p":
		m.openPreview()

	case "ctrl+g":
		if glyphs() == glyphSetASCII {
			setGlyphs(glyphSetUnicode)
		} else {
			setGlyphs(glyphSetASCII)
		}
		m.status = "glyphs: " + glyphsName(glyphs())

	case "]":
		m.cycleBlock(+1)
	case "[":
		m.cycleBlock(-1)
	}
	return m, nil
}

func (m *appModel) startEdit(mode editMode, initial string) {
	m.mode = mode
	m.input.SetValue(initial)
	m.input.CursorEnd()
	m.input.Focus()
}

// moveRow moves the selected node one slot among its siblings.
func (m *appModel) moveRow(delta int) {
	row := m.currentRow()
	if row == nil {
		return
	}
	sibs := outline.Siblings(m.tree(), row.ID)
	idx := outline.NodeIndex(sibs, row.ID)
	if idx < 0 {
		return
	}
	target := idx + delta
	if target < 0 || target >= len(sibs) {
		return
	}
	m.apply(outline.MoveNode(m.tree(), row.ID, row.ParentID, target))
	m.moveCursorTo(row.ID)
}

func (m *appModel) cycleBlock(delta int) {
	if m.doc == nil || len(m.doc.Blocks) < 2 {
		return
	}
	m.blockIdx = (m.blockIdx + delta + len(m.doc.Blocks)) % len(m.doc.Blocks)
	m.history = outline.NewHistory(0)
	m.cursor = 0
	m.refresh()
	m.status = fmt.Sprintf("block %d/%d", m.blockIdx+1, len(m.doc.Blocks))
}

func (m *appModel) openPreview() {
	if m.doc == nil {
		return
	}
	md := publish.RenderDocumentMarkdown(*m.doc, publish.RenderOptions{Style: m.styleCfg})
	m.vp = viewport.New(m.width, m.height-2)
	m.vp.SetContent(renderMarkdown(md, m.width-2))
	m.preview = true
}
