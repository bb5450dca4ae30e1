package examlist

import "github.com/studiowebux/examcli/internal/router"

// CreationDelegate connects the create dialog to the list
type CreationDelegate struct {
	Refetch func()
	Close   func()
}

// OnSuccess refetches the active tab and then closes the dialog.
func (d CreationDelegate) OnSuccess() {
	if d.Refetch != nil {
		d.Refetch()
	}
	if d.Close != nil {
		d.Close()
	}
}

// OnClose closes the dialog without touching the list
func (d CreationDelegate) OnClose() {
	if d.Close != nil {
		d.Close()
	}
}

// NavigationDelegate routes item selection
type NavigationDelegate struct {
	Navigate func(path string)
}

// Select navigates to the exam's detail route
func (d NavigationDelegate) Select(id int64) {
	if d.Navigate != nil {
		d.Navigate(router.DetailPath(id))
	}
}
