package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerListBindings(r)
	registerCreateBindings(r)
	registerDetailBindings(r)
	registerRecentBindings(r)
	registerHelpBindings(r)

	return r
}

// registerGlobalBindings sets up bindings available in all modes
func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
}

func registerListBindings(r *Registry) {
	r.Register(ContextList, "q", ActionQuit)

	r.Register(ContextList, "tab", ActionNextTab)
	r.Register(ContextList, "shift+tab", ActionPrevTab)
	r.RegisterMultiple(ContextList, []string{"1", "left"}, ActionTabPreparing)
	r.RegisterMultiple(ContextList, []string{"2", "right"}, ActionTabPrepared)

	r.RegisterMultiple(ContextList, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextList, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextList, "g", ActionGoToTopPrepare)
	r.RegisterMultiple(ContextList, []string{"gg", "home"}, ActionGoToTop)
	r.RegisterMultiple(ContextList, []string{"G", "end"}, ActionGoToBottom)

	r.Register(ContextList, "enter", ActionOpenExam)
	r.Register(ContextList, "n", ActionCreateExam)
	r.Register(ContextList, "r", ActionRefresh)
	r.Register(ContextList, "h", ActionOpenRecent)
	r.Register(ContextList, "?", ActionOpenHelp)
}

// registerCreateBindings leaves printable keys to the text inputs
func registerCreateBindings(r *Registry) {
	r.Register(ContextCreate, "esc", ActionCloseModal)
	r.Register(ContextCreate, "enter", ActionSubmit)
	r.RegisterMultiple(ContextCreate, []string{"tab", "down"}, ActionNextField)
	r.RegisterMultiple(ContextCreate, []string{"shift+tab", "up"}, ActionPrevField)
}

func registerDetailBindings(r *Registry) {
	r.RegisterMultiple(ContextDetail, []string{"esc", "backspace"}, ActionBack)
	r.Register(ContextDetail, "q", ActionQuit)
	r.Register(ContextDetail, "y", ActionCopyToClipboard)
	r.Register(ContextDetail, "r", ActionRefresh)
	r.RegisterMultiple(ContextDetail, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextDetail, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextDetail, "pgup", ActionPageUp)
	r.Register(ContextDetail, "pgdown", ActionPageDown)
	r.Register(ContextDetail, "g", ActionGoToTopPrepare)
	r.RegisterMultiple(ContextDetail, []string{"gg", "home"}, ActionGoToTop)
	r.RegisterMultiple(ContextDetail, []string{"G", "end"}, ActionGoToBottom)
	r.Register(ContextDetail, "?", ActionOpenHelp)
}

func registerRecentBindings(r *Registry) {
	r.RegisterMultiple(ContextRecent, []string{"esc", "q", "h"}, ActionCloseModal)
	r.RegisterMultiple(ContextRecent, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextRecent, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextRecent, "enter", ActionOpenExam)
	r.Register(ContextRecent, "C", ActionHistoryClear)
}

func registerHelpBindings(r *Registry) {
	r.RegisterMultiple(ContextHelp, []string{"esc", "q", "?"}, ActionCloseModal)
	r.RegisterMultiple(ContextHelp, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextHelp, []string{"down", "j"}, ActionNavigateDown)
}
