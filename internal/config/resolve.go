package config

import "fmt"

// DefaultRaw returns a Raw pre-populated with every built-in default. The
// idiomatic way to make every config key optional with BurntSushi/toml is
// to decode directly into an already-defaulted struct: toml.Decode only
// overwrites the keys actually present in the file.
func DefaultRaw() Raw {
	return Raw{
		Appearance: DefaultAppearance(),
		Colors:     DefaultColors(),
		General:    DefaultGeneral(),
	}
}

// Resolve converts a parsed Raw document (normally produced by decoding
// into DefaultRaw()) into a fully typed Config: keybinding/exec chord
// strings are parsed and validated, with any action absent from
// raw.Keybindings falling back to the corresponding entry in
// DefaultKeybindings().
func Resolve(raw Raw) (*Config, error) {
	cfg := &Config{
		Appearance:    raw.Appearance,
		Colors:        raw.Colors,
		General:       raw.General,
		Keybindings:   DefaultKeybindings(),
		Exec:          make(map[Chord]string),
		ExecSynthetic: make(map[string]Chord),
		Startup:       raw.Startup,
	}

	for name, chordStr := range raw.Keybindings {
		action := Action(name)
		if !IsValidAction(action) {
			return nil, fmt.Errorf("config: unknown action %q in [keybindings]", name)
		}
		chord, err := ParseChord(chordStr)
		if err != nil {
			return nil, fmt.Errorf("config: [keybindings] %s: %w", name, err)
		}
		cfg.Keybindings[action] = chord
	}

	for chordStr, command := range raw.Exec {
		chord, err := ParseChord(chordStr)
		if err != nil {
			return nil, fmt.Errorf("config: [exec] %q: %w", chordStr, err)
		}
		cfg.Exec[chord] = command
	}

	for class, chordStr := range raw.ExecSynthetic {
		chord, err := ParseChord(chordStr)
		if err != nil {
			return nil, fmt.Errorf("config: [exec_synthetic] %q: %w", class, err)
		}
		cfg.ExecSynthetic[class] = chord
	}

	return cfg, nil
}
