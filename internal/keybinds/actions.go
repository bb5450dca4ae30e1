package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	// Contexts define where keybindings are active
	ContextGlobal Context = "global" // Available everywhere
	ContextList   Context = "list"   // Exam list with tabs
	ContextCreate Context = "create" // Create exam form
	ContextDetail Context = "detail" // Exam detail viewer
	ContextRecent Context = "recent" // Recently viewed modal
	ContextHelp   Context = "help"   // Help viewer
)

// AllContexts lists every context in display order
var AllContexts = []Context{
	ContextGlobal,
	ContextList,
	ContextCreate,
	ContextDetail,
	ContextRecent,
	ContextHelp,
}

const (
	// Global actions
	ActionQuit      Action = "quit"       // Quit application
	ActionQuitForce Action = "quit_force" // Force quit (ctrl+c)

	// Navigation actions
	ActionNavigateUp     Action = "navigate_up"       // Move up one item
	ActionNavigateDown   Action = "navigate_down"     // Move down one item
	ActionPageUp         Action = "page_up"           // Move up one page
	ActionPageDown       Action = "page_down"         // Move down one page
	ActionGoToTop        Action = "go_to_top"         // Go to top
	ActionGoToBottom     Action = "go_to_bottom"      // Go to bottom
	ActionGoToTopPrepare Action = "go_to_top_prepare" // First 'g' in 'gg' sequence

	// Tabs
	ActionNextTab      Action = "next_tab"      // Cycle to next status tab
	ActionPrevTab      Action = "prev_tab"      // Cycle to previous status tab
	ActionTabPreparing Action = "tab_preparing" // Jump to Preparing tab
	ActionTabPrepared  Action = "tab_prepared"  // Jump to Prepared tab

	// List actions
	ActionOpenExam   Action = "open_exam"   // Open selected exam
	ActionCreateExam Action = "create_exam" // Open create form
	ActionRefresh    Action = "refresh"     // Refetch current tab
	ActionOpenRecent Action = "open_recent" // Open recently viewed
	ActionOpenHelp   Action = "open_help"   // Open help viewer

	// Form actions
	ActionSubmit    Action = "submit"     // Submit form
	ActionNextField Action = "next_field" // Focus next input
	ActionPrevField Action = "prev_field" // Focus previous input

	// Modal and viewer actions
	ActionCloseModal      Action = "close_modal"       // Close current modal
	ActionBack            Action = "back"              // Leave detail view
	ActionCopyToClipboard Action = "copy_to_clipboard" // Copy exam JSON
	ActionHistoryClear    Action = "history_clear"     // Clear recently viewed
)

// ActionInfo contains metadata about an action
type ActionInfo struct {
	Action      Action
	Description string
	Category    string
}

var actionInfos = map[Action]ActionInfo{
	ActionQuit:            {ActionQuit, "Quit application", "Global"},
	ActionQuitForce:       {ActionQuitForce, "Force quit", "Global"},
	ActionNavigateUp:      {ActionNavigateUp, "Move up", "Navigation"},
	ActionNavigateDown:    {ActionNavigateDown, "Move down", "Navigation"},
	ActionPageUp:          {ActionPageUp, "Page up", "Navigation"},
	ActionPageDown:        {ActionPageDown, "Page down", "Navigation"},
	ActionGoToTop:         {ActionGoToTop, "Go to top", "Navigation"},
	ActionGoToBottom:      {ActionGoToBottom, "Go to bottom", "Navigation"},
	ActionNextTab:         {ActionNextTab, "Next tab", "Tabs"},
	ActionPrevTab:         {ActionPrevTab, "Previous tab", "Tabs"},
	ActionTabPreparing:    {ActionTabPreparing, "Preparing tab", "Tabs"},
	ActionTabPrepared:     {ActionTabPrepared, "Prepared tab", "Tabs"},
	ActionOpenExam:        {ActionOpenExam, "Open exam", "Exams"},
	ActionCreateExam:      {ActionCreateExam, "Create exam", "Exams"},
	ActionRefresh:         {ActionRefresh, "Refresh list", "Exams"},
	ActionOpenRecent:      {ActionOpenRecent, "Recently viewed", "Exams"},
	ActionOpenHelp:        {ActionOpenHelp, "Open help", "Information"},
	ActionSubmit:          {ActionSubmit, "Submit form", "Form"},
	ActionNextField:       {ActionNextField, "Next field", "Form"},
	ActionPrevField:       {ActionPrevField, "Previous field", "Form"},
	ActionCloseModal:      {ActionCloseModal, "Close", "Modal"},
	ActionBack:            {ActionBack, "Back to list", "Detail"},
	ActionCopyToClipboard: {ActionCopyToClipboard, "Copy JSON", "Detail"},
	ActionHistoryClear:    {ActionHistoryClear, "Clear recently viewed", "Recent"},
}

// GetActionInfo returns human-readable information about an action
func GetActionInfo(action Action) ActionInfo {
	if info, ok := actionInfos[action]; ok {
		return info
	}
	return ActionInfo{action, string(action), "Unknown"}
}

// IsKnownAction reports whether action is defined by this package
func IsKnownAction(action Action) bool {
	_, ok := actionInfos[action]
	return ok || action == ActionGoToTopPrepare
}

// IsGlobalAction returns true if the action is available in all contexts
func IsGlobalAction(action Action) bool {
	return action == ActionQuit || action == ActionQuitForce
}
