package app

import (
	"slices"
	"strings"

	"github.com/treykane/flowbox/internal/config"
)

// Actions sit between key presses and behavior: a key is looked up in
// keyToAction and the action is dispatched in handleKey. Defaults live in
// defaultActionKeys and can be replaced per action through the
// "keybindings" object in config.json.
const (
	actionOrientation   = "layout.orientation.toggle"
	actionMaxItemsUp    = "layout.max_items.increase"
	actionMaxItemsDown  = "layout.max_items.decrease"
	actionMaxItemsReset = "layout.max_items.reset"
	actionMainCycle     = "layout.main.cycle"
	actionCrossCycle    = "layout.cross.cycle"
	actionSpacingDown   = "layout.spacing.decrease"
	actionSpacingUp     = "layout.spacing.increase"
	actionDirection     = "layout.direction.toggle"

	// actionReport shows or hides the markdown report pane.
	actionReport = "report.toggle"

	actionScrollUp       = "canvas.scroll.up"
	actionScrollDown     = "canvas.scroll.down"
	actionScrollPageUp   = "canvas.scroll.page_up"
	actionScrollPageDown = "canvas.scroll.page_down"

	actionHelp = "help.toggle"
	actionQuit = "app.quit"
)

// defaultActionKeys maps each action to its factory-default keys, in Bubble
// Tea notation ("ctrl+c", "pgdown", "?").
var defaultActionKeys = map[string][]string{
	actionOrientation:    {"o"},
	actionMaxItemsUp:     {"+", "="},
	actionMaxItemsDown:   {"-"},
	actionMaxItemsReset:  {"0"},
	actionMainCycle:      {"a"},
	actionCrossCycle:     {"c"},
	actionSpacingDown:    {"["},
	actionSpacingUp:      {"]"},
	actionDirection:      {"d"},
	actionReport:         {"r"},
	actionScrollUp:       {"up", "k"},
	actionScrollDown:     {"down", "j"},
	actionScrollPageUp:   {"pgup"},
	actionScrollPageDown: {"pgdown"},
	actionHelp:           {"?"},
	actionQuit:           {"q", "ctrl+c"},
}

// loadKeybindings builds the key maps from the defaults and the overrides in
// cfg.Keybindings. An override replaces every default key of its action.
// Unknown actions are logged and ignored; when two actions claim one key the
// first one wins.
func (m *Model) loadKeybindings(cfg config.Config) {
	m.keyForAction = map[string][]string{}
	for action, keys := range defaultActionKeys {
		m.keyForAction[action] = append([]string(nil), keys...)
	}
	for action, key := range cfg.Keybindings {
		m.applyKeybindingOverride(action, key)
	}
	m.rebuildActionKeyIndex()
}

func (m *Model) applyKeybindingOverride(action, key string) {
	action = strings.TrimSpace(action)
	key = normalizeKeyString(key)
	if action == "" || key == "" {
		return
	}
	if _, ok := defaultActionKeys[action]; !ok {
		appLog.Warn("ignore unknown keybinding action", "action", action)
		return
	}
	m.keyForAction[action] = []string{key}
}

func (m *Model) rebuildActionKeyIndex() {
	m.keyToAction = map[string]string{}
	// Sorted so conflicts resolve the same way on every run.
	actions := make([]string, 0, len(m.keyForAction))
	for action := range m.keyForAction {
		actions = append(actions, action)
	}
	slices.Sort(actions)

	for _, action := range actions {
		for _, key := range m.keyForAction[action] {
			if key == "" {
				continue
			}
			if existing, ok := m.keyToAction[key]; ok && existing != action {
				appLog.Warn("keybinding conflict ignored", "key", key, "action", action, "existing_action", existing)
				continue
			}
			m.keyToAction[key] = action
		}
	}
}

// normalizeKeyString converts a configured key into the lowercase form Bubble
// Tea reports. A single uppercase letter becomes "shift+<letter>".
//
//	normalizeKeyString("Ctrl+R") → "ctrl+r"
//	normalizeKeyString(" O ")    → "shift+o"
func normalizeKeyString(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if len([]rune(key)) == 1 && strings.ToUpper(key) == key && strings.ToLower(key) != key {
		return "shift+" + strings.ToLower(key)
	}
	return strings.ToLower(key)
}

// actionForKey returns the action bound to key, or "".
func (m *Model) actionForKey(key string) string {
	if m.keyToAction == nil {
		return ""
	}
	return m.keyToAction[normalizeKeyString(key)]
}

func (m *Model) actionKeyLabels(action string) []string {
	keys, ok := m.keyForAction[action]
	if !ok || len(keys) == 0 {
		keys = defaultActionKeys[action]
	}
	labels := make([]string, 0, len(keys))
	for _, key := range keys {
		label := humanizeKeyLabel(key)
		if label == "" || slices.Contains(labels, label) {
			continue
		}
		labels = append(labels, label)
	}
	return labels
}

// primaryActionKey is the first key label of action.
func (m *Model) primaryActionKey(action string) string {
	labels := m.actionKeyLabels(action)
	if len(labels) == 0 {
		return ""
	}
	return labels[0]
}

func (m *Model) allActionKeys(action string) string {
	return strings.Join(m.actionKeyLabels(action), ", ")
}

func humanizeKeyLabel(key string) string {
	normalized := normalizeKeyString(key)
	if normalized == "" {
		return ""
	}
	if len([]rune(normalized)) == 1 {
		return normalized
	}
	special := map[string]string{
		"up":     "↑",
		"down":   "↓",
		"left":   "←",
		"right":  "→",
		"enter":  "Enter",
		"esc":    "Esc",
		"tab":    "Tab",
		"pgup":   "PgUp",
		"pgdown": "PgDn",
		"space":  "Space",
	}
	parts := strings.Split(normalized, "+")
	for i, part := range parts {
		switch part {
		case "ctrl":
			parts[i] = "Ctrl"
		case "alt":
			parts[i] = "Alt"
		case "shift":
			parts[i] = "Shift"
		case "":
			parts[i] = "+"
		default:
			if label, ok := special[part]; ok {
				parts[i] = label
				continue
			}
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, "+")
}
