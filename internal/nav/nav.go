// Package nav abstracts screen navigation: the workflow only knows how to
// request a transition to a named destination carrying a parameter bag. The
// concrete front end (a mobile shell, the CLI) decides what a transition
// means.
package nav

// Screen names the workflow navigates between.
const (
	ScreenLogin  = "login"
	ScreenHome   = "home"
	ScreenSearch = "search"
	ScreenBorrow = "borrow"
)

// Param keys used in navigation parameter bags.
const (
	ParamRedirectPath = "redirectPath"
)

// Navigator transitions to a named destination with a parameter bag.
type Navigator interface {
	Navigate(screen string, params map[string]string)
}

// Recorder is a Navigator that records transitions, for tests and for front
// ends that poll rather than subscribe.
type Recorder struct {
	Screens []string
	Params  []map[string]string
}

func (r *Recorder) Navigate(screen string, params map[string]string) {
	r.Screens = append(r.Screens, screen)
	r.Params = append(r.Params, params)
}

// Last returns the most recent destination, or "" when nothing was recorded.
func (r *Recorder) Last() string {
	if len(r.Screens) == 0 {
		return ""
	}
	return r.Screens[len(r.Screens)-1]
}
