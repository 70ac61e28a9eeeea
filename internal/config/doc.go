// Package config provides the configuration of the modal editing engine.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  Modeline                   │  ← per buffer, highest priority
//	├─────────────────────────────┤
//	│  Runtime                    │  ← Store.Set, Store.SetEvil
//	├─────────────────────────────┤
//	│  Environment Variables      │  ← EVIL_*
//	├─────────────────────────────┤
//	│  Workspace                  │  ← .evil/config.toml
//	├─────────────────────────────┤
//	│  User                       │  ← $XDG_CONFIG_HOME/evil/config.toml
//	├─────────────────────────────┤
//	│  Built-in Defaults          │  ← lowest priority
//	└─────────────────────────────┘
//
// A Store owns every layer but the modeline one and publishes them as an
// immutable Snapshot. Readers load the current snapshot with a single
// atomic read, so the editor.evil feature gate can be checked on every
// keystroke without locking. A Session adds the modeline layer of one
// buffer on top of the live snapshot.
//
// # Sub-packages
//
//   - layer: layer management and merging
//   - loader: TOML file and environment loading
//   - registry: setting definitions, validation and typed accessors
//   - notify: change notification
//   - watcher: file watching for live reload
//
// # Basic Usage
//
//	store := config.New(config.WithWorkspace(root))
//	if err := store.Load(ctx); err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	if store.Snapshot().Evil {
//	    // modal editing is on
//	}
//
//	session := store.NewSession()
//	width, _ := session.Int(config.IndentTabWidth)
package config
