package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	Back       key.Binding
	Select     key.Binding
	Add        key.Binding
	RunAlarm   key.Binding
	AnalyzeAll key.Binding
	History    key.Binding
	Export     key.Binding
	Refresh    key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	Reanalyze  key.Binding
	StepDown   key.Binding
	StepUp     key.Binding
	ApplyStep  key.Binding
	NextField  key.Binding
}

var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Select:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add vehicle")),
	RunAlarm:   key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "run alarm")),
	AnalyzeAll: key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "analyze all")),
	History:    key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "alarm history")),
	Export:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export csv")),
	Refresh:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reload")),
	NextTab:    key.NewBinding(key.WithKeys("tab", "l", "right"), key.WithHelp("tab", "next tab")),
	PrevTab:    key.NewBinding(key.WithKeys("shift+tab", "h", "left"), key.WithHelp("shift+tab", "prev tab")),
	Reanalyze:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "re-analyze")),
	StepDown:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "next step")),
	StepUp:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "prev step")),
	ApplyStep:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply step")),
	NextField:  key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
}
