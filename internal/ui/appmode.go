package ui

// AppMode says whether an icon set is loaded. It decides which commands
// the help bar offers.
type AppMode int

const (
	ModeEmpty AppMode = iota
	ModeLoaded
)

func (m AppMode) String() string {
	switch m {
	case ModeEmpty:
		return "Empty"
	case ModeLoaded:
		return "Loaded"
	default:
		return "Unknown"
	}
}
