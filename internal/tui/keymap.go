package tui

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"charm.land/bubbles/v2/key"
)

// keyMap represents key map data used by this package.
type keyMap struct {
	quit        key.Binding
	reload      key.Binding
	toggleHelp  key.Binding
	boardLeft   key.Binding
	boardRight  key.Binding
	todoUp      key.Binding
	todoDown    key.Binding
	grab        key.Binding
	drop        key.Binding
	cancel      key.Binding
	addTodo     key.Binding
	renameTodo  key.Binding
	deleteTodo  key.Binding
	addBoard    key.Binding
	renameBoard key.Binding
	deleteBoard key.Binding
	boardMenu   key.Binding
	copyTodo    key.Binding
}

// newKeyMap constructs key map.
func newKeyMap() keyMap {
	return keyMap{
		quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		reload:      key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload")),
		toggleHelp:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		boardLeft:   key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "board left")),
		boardRight:  key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "board right")),
		todoUp:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		todoDown:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		grab:        key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "grab todo")),
		drop:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "drop")),
		cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		addTodo:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new todo")),
		renameTodo:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename todo")),
		deleteTodo:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete todo")),
		addBoard:    key.NewBinding(key.WithKeys("N", "shift+n"), key.WithHelp("N", "new board")),
		renameBoard: key.NewBinding(key.WithKeys("R", "shift+r"), key.WithHelp("R", "rename board")),
		deleteBoard: key.NewBinding(key.WithKeys("X", "shift+x"), key.WithHelp("X", "delete board")),
		boardMenu:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "board menu")),
		copyTodo:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy todo")),
	}
}

// applyConfig rebinds the configurable keys.
func (k *keyMap) applyConfig(cfg KeyConfig) {
	configureBinding(&k.grab, cfg.Grab, " ", "grab todo")
	configureBinding(&k.boardMenu, cfg.BoardMenu, "m", "board menu")
	configureBinding(&k.copyTodo, cfg.Copy, "y", "copy todo")
}

// configureBinding replaces a binding's keys and help from a raw config value.
func configureBinding(b *key.Binding, raw, fallback, desc string) {
	keys, help := parseBindingKeys(raw, fallback)
	b.SetKeys(keys...)
	b.SetHelp(help, desc)
}

// parseBindingKeys expands one configured key into the matcher strings bubbletea reports.
func parseBindingKeys(raw, fallback string) ([]string, string) {
	if raw == "" {
		if fallback == "" {
			return nil, ""
		}
		return parseBindingKeys(fallback, "")
	}
	if raw == " " || strings.EqualFold(strings.TrimSpace(raw), "space") {
		return []string{" ", "space"}, "space"
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return parseBindingKeys(fallback, "")
	}
	if utf8.RuneCountInString(raw) == 1 {
		r, _ := utf8.DecodeRuneInString(raw)
		if unicode.IsUpper(r) {
			return []string{raw, "shift+" + string(unicode.ToLower(r))}, raw
		}
		return []string{raw}, raw
	}
	return []string{strings.ToLower(raw)}, raw
}

// ShortHelp handles short help.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.grab, k.addTodo, k.renameTodo, k.deleteTodo, k.boardMenu, k.toggleHelp, k.quit,
	}
}

// FullHelp handles full help.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.boardLeft, k.boardRight, k.todoUp, k.todoDown},
		{k.grab, k.drop, k.cancel, k.copyTodo},
		{k.addTodo, k.renameTodo, k.deleteTodo},
		{k.addBoard, k.renameBoard, k.deleteBoard, k.boardMenu},
		{k.toggleHelp, k.reload, k.quit},
	}
}

// grabHelp lists the bindings shown while a todo is grabbed.
func (k keyMap) grabHelp() []key.Binding {
	return []key.Binding{k.todoUp, k.todoDown, k.drop, k.cancel}
}
