/*
Package examlist holds the framework-free rules of the exam list view.

State carries the selected tab and whether the creation dialog is open; every
transition is a pure function returning a new State. SelectBranch decides
which of loading, error, populated or empty is rendered, and EmptyStateFor
returns the per-tab empty copy, including whether the "Create Your First Exam"
action is offered.

The tui package owns the side effects (fetching, navigation, the dialog) and
consults this package for every decision, so the rules can be tested without
a terminal.
*/
package examlist
