package input

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"
)

// Rune aliases for keys that can't be bare single-char TOML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}

// keysByName resolves lowercase tcell key names ("up", "enter", "ctrl-c")
var keysByName = func() map[string]tcell.Key {
	m := make(map[string]tcell.Key, len(tcell.KeyNames))
	for k, name := range tcell.KeyNames {
		m[strings.ToLower(name)] = k
	}
	return m
}()

// LoadKeyConfig parses TOML keymap data into a sparse override KeyTable
// Only sections present in the data are populated: [keys] binds runes, [special_keys] binds named keys
// Returns error on unknown action names, invalid key names, or parse failure
func LoadKeyConfig(data []byte) (*KeyTable, error) {
	var raw map[string]any
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, fmt.Errorf("keymap parse: %w", err)
	}

	kt := &KeyTable{}

	if section, ok := raw["keys"]; ok {
		m, ok := section.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("section [keys]: expected table, got %T", section)
		}
		runes, err := parseRuneSection(m)
		if err != nil {
			return nil, err
		}
		kt.Runes = runes
	}

	if section, ok := raw["special_keys"]; ok {
		m, ok := section.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("section [special_keys]: expected table, got %T", section)
		}
		keys, err := parseSpecialKeySection(m)
		if err != nil {
			return nil, err
		}
		kt.SpecialKeys = keys
	}

	return kt, nil
}

func parseRuneSection(data map[string]any) (map[rune]IntentType, error) {
	result := make(map[rune]IntentType, len(data))
	for keyStr, val := range data {
		r, err := resolveRune(keyStr)
		if err != nil {
			return nil, fmt.Errorf("[keys] key %q: %w", keyStr, err)
		}
		it, err := resolveAction(val)
		if err != nil {
			return nil, fmt.Errorf("[keys] key %q: %w", keyStr, err)
		}
		result[r] = it
	}
	return result, nil
}

func parseSpecialKeySection(data map[string]any) (map[tcell.Key]IntentType, error) {
	result := make(map[tcell.Key]IntentType, len(data))
	for keyStr, val := range data {
		k, ok := keysByName[strings.ToLower(keyStr)]
		if !ok {
			return nil, fmt.Errorf("[special_keys] unknown key name: %q", keyStr)
		}
		it, err := resolveAction(val)
		if err != nil {
			return nil, fmt.Errorf("[special_keys] key %q: %w", keyStr, err)
		}
		result[k] = it
	}
	return result, nil
}

// resolveRune converts a TOML key string to a rune
func resolveRune(s string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("expected a single character or alias")
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func resolveAction(val any) (IntentType, error) {
	name, ok := val.(string)
	if !ok {
		return IntentNone, fmt.Errorf("value must be string, got %T", val)
	}
	it, ok := ActionEntry(name)
	if !ok {
		return IntentNone, fmt.Errorf("unknown action %q", name)
	}
	return it, nil
}

// MergeKeyTable returns base with override bindings applied on top
func MergeKeyTable(base, override *KeyTable) *KeyTable {
	merged := base.Clone()
	if override == nil {
		return merged
	}
	for k, v := range override.SpecialKeys {
		merged.SpecialKeys[k] = v
	}
	for r, v := range override.Runes {
		merged.Runes[r] = v
	}
	return merged
}
