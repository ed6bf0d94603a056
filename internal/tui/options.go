package tui

// KeyConfig holds the user-configurable key overrides.
type KeyConfig struct {
	Grab      string
	BoardMenu string
	Copy      string
}

// RuntimeConfig holds the settings the board view reads at startup and on reload.
type RuntimeConfig struct {
	ConfirmDelete bool
	ShowCounts    bool
	ColumnWidth   int
	Keys          KeyConfig
}

type Option func(*Model)

// ClipboardWriter copies text to the system clipboard.
type ClipboardWriter func(string) error

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		ConfirmDelete: true,
		ShowCounts:    true,
		ColumnWidth:   28,
		Keys: KeyConfig{
			Grab:      " ",
			BoardMenu: "m",
			Copy:      "y",
		},
	}
}

func WithRuntimeConfig(cfg RuntimeConfig) Option {
	return func(m *Model) {
		m.applyRuntimeConfig(cfg)
	}
}

func WithClipboard(write ClipboardWriter) Option {
	return func(m *Model) {
		if write != nil {
			m.copyText = write
		}
	}
}

// WithEventLog receives one line per persisted board mutation.
func WithEventLog(log func(msg string, keyvals ...any)) Option {
	return func(m *Model) {
		m.logEvent = log
	}
}
