/*
Package keybinds provides context-aware keyboard binding management for the TUI.

Keys map to actions within a context (list, create, detail, recent, help).
Matching checks the active context first and then falls back to global.
Two-key sequences such as "gg" are handled by MatchMultiKey.

Users may override defaults in keybinds.yaml inside the config directory:

	list:
	  create_exam: "n,c"
	  refresh: "r,f5"
	detail:
	  copy_to_clipboard: "y"

An empty value unbinds an action. ctrl+c is reserved for force quit, and
single printable keys cannot be bound in the create form.
*/
package keybinds
