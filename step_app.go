// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/cybrota/avlscript/avl"
	"github.com/cybrota/avlscript/script"
)

const stepHelpMarkdown = `# Keys

| key | action |
|---|---|
| right, n, l | next command |
| left, p, h | previous command |
| home, g | before the first command |
| end, G | after the last command |
| up, down, pgup, pgdown | scroll the tree |
| c | copy the tree to the clipboard |
| ? | toggle this help |
| q, esc | quit |

Each step shows the tree as it stands after the command on top.
`

// step is the state of the tree after one command
type step struct {
	cmd      script.Command
	rendered string
	note     string
}

// copiedMsg reports the outcome of a clipboard copy
type copiedMsg struct {
	err error
}

// StepModel is the Bubble Tea state of the step viewer
type StepModel struct {
	name    string
	steps   []step // steps[0] is the empty tree before any command
	failure error  // malformed command that ended the script, if any
	cursor  int

	treeViewport viewport.Model
	helpViewport viewport.Model
	showHelp     bool
	status       string

	styles          *Styles
	glamourRenderer *glamour.TermRenderer

	width  int
	height int
	ready  bool
}

// buildSteps replays cmds on a fresh tree once and keeps every rendering,
// so moving backwards is as cheap as moving forwards.
func buildSteps(cmds []script.Command) []step {
	tree := avl.New()
	steps := make([]step, 0, len(cmds)+1)
	steps = append(steps, step{note: "empty tree"})

	for _, cmd := range cmds {
		var note string
		switch cmd.Op {
		case script.OpInsert:
			note = "added"
			if !tree.Insert(cmd.Key) {
				note = "already present, ignored"
			}
		case script.OpDelete:
			note = "removed"
			if !tree.Delete(cmd.Key) {
				note = "not present, ignored"
			}
		case script.OpPrint:
			note = "printed"
		}
		steps = append(steps, step{cmd: cmd, rendered: avl.Render(tree), note: note})
	}
	return steps
}

// NewStepModel creates the viewer for an already parsed script.
func NewStepModel(name string, cmds []script.Command, failure error) StepModel {
	glamourRenderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(72),
	)

	m := StepModel{
		name:            name,
		steps:           buildSteps(cmds),
		failure:         failure,
		treeViewport:    viewport.New(0, 0),
		helpViewport:    viewport.New(0, 0),
		styles:          NewStyles(),
		glamourRenderer: glamourRenderer,
	}
	m.helpViewport.SetContent(m.renderMarkdown(stepHelpMarkdown))
	m.syncTree()
	return m
}

// Init is called when the program starts
func (m StepModel) Init() tea.Cmd {
	return nil
}

// Update handles all the I/O
func (m StepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		case "right", "n", "l":
			m.moveTo(m.cursor + 1)
			return m, nil
		case "left", "p", "h":
			m.moveTo(m.cursor - 1)
			return m, nil
		case "home", "g":
			m.moveTo(0)
			return m, nil
		case "end", "G":
			m.moveTo(len(m.steps) - 1)
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case "c":
			text := m.steps[m.cursor].rendered
			return m, func() tea.Msg {
				return copiedMsg{err: clipboard.WriteAll(text)}
			}
		}

		// Anything else scrolls whichever pane is visible
		var cmd tea.Cmd
		if m.showHelp {
			m.helpViewport, cmd = m.helpViewport.Update(msg)
		} else {
			m.treeViewport, cmd = m.treeViewport.Update(msg)
		}
		return m, cmd

	case copiedMsg:
		if msg.err != nil {
			m.status = m.styles.ErrorMessage.Render(fmt.Sprintf("copy failed: %v", msg.err))
		} else {
			m.status = m.styles.Status.Render("copied to clipboard")
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.ready = true
	}

	return m, nil
}

func (m *StepModel) moveTo(i int) {
	i = max(0, min(i, len(m.steps)-1))
	if i == m.cursor {
		return
	}
	m.cursor = i
	m.status = ""
	m.syncTree()
}

func (m *StepModel) syncTree() {
	content := m.steps[m.cursor].rendered
	if content == "" {
		content = "(empty)"
	}
	m.treeViewport.SetContent(content)
	m.treeViewport.GotoTop()
}

func (m *StepModel) updateLayout() {
	// title, command line, footer and the box border
	paneHeight := max(1, m.height-7)
	paneWidth := max(10, m.width-4)
	m.treeViewport.Width = paneWidth
	m.treeViewport.Height = paneHeight
	m.helpViewport.Width = paneWidth
	m.helpViewport.Height = paneHeight
}

func (m StepModel) renderMarkdown(md string) string {
	if m.glamourRenderer == nil {
		return md
	}
	if rendered, err := m.glamourRenderer.Render(md); err == nil {
		return rendered
	}
	// Fall back to plain text
	return md
}

// View renders the current step
func (m StepModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	// Ensure we have minimum dimensions
	if m.width < 20 || m.height < 10 {
		return "Terminal too small. Please resize your terminal."
	}

	title := m.styles.Title.Render(fmt.Sprintf("avlscript step: %s", m.name))
	position := m.styles.Position.Render(fmt.Sprintf("step %d/%d", m.cursor, len(m.steps)-1))

	current := m.steps[m.cursor]
	var line string
	if m.cursor == 0 {
		line = m.styles.Position.Render(current.note)
	} else {
		line = fmt.Sprintf("%s  %s  %s",
			m.styles.Command.Render(current.cmd.String()),
			m.styles.Position.Render(fmt.Sprintf("line %d", current.cmd.Line)),
			current.note)
	}
	if m.cursor == len(m.steps)-1 && m.failure != nil {
		line += "\n" + m.styles.ErrorMessage.Render(fmt.Sprintf("%s: %v", malformedMessage, m.failure))
	}

	pane := m.treeViewport.View()
	if m.showHelp {
		pane = m.helpViewport.View()
	}
	box := m.styles.Border.Width(m.treeViewport.Width).Render(pane)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, title, " ", position),
		line,
		box,
		m.renderFooter(),
	)
}

// renderFooter renders the key hints and the last status message
func (m StepModel) renderFooter() string {
	keys := []string{"←/→", "g/G", "c", "?", "q"}
	descs := []string{"step", "first/last", "copy", "help", "quit"}

	var parts []string
	for i := range keys {
		parts = append(parts, fmt.Sprintf("%s %s",
			m.styles.Command.Render(keys[i]),
			m.styles.Position.Render(descs[i])))
	}
	footer := strings.Join(parts, "  ")
	if m.status != "" {
		footer += "  " + m.status
	}
	return footer
}

// runStepApp starts the Bubble Tea step viewer
func runStepApp(name string, cmds []script.Command, failure error) error {
	model := NewStepModel(name, cmds, failure)

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := program.Run()
	return err
}
