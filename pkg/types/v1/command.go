package v1

// CommandKind enumerates what a user can ask the viewer to do.
type CommandKind int

const (
	RefreshCommand CommandKind = iota
	OpenCommand
	CustomActionCommand
)

func (k CommandKind) String() string {
	switch k {
	case RefreshCommand:
		return "refresh"
	case OpenCommand:
		return "open"
	case CustomActionCommand:
		return "customAction"
	default:
		return "unknown"
	}
}

// Command is produced by the presentation layer and consumed by the action
// dispatcher. Document is set for Open, and for CustomAction when the action
// was triggered from a row.
type Command struct {
	Kind     CommandKind
	Document *Document
}

// Refresh starts a new retrieval cycle.
func Refresh() Command { return Command{Kind: RefreshCommand} }

// Open presents the document at its canonical path.
func Open(d Document) Command { return Command{Kind: OpenCommand, Document: &d} }

// CustomAction invokes the host supplied action, optionally for a document.
func CustomAction(d *Document) Command {
	if d == nil {
		return Command{Kind: CustomActionCommand}
	}
	doc := *d
	return Command{Kind: CustomActionCommand, Document: &doc}
}

// Path is the open target of the command, if any.
func (c Command) Path() string {
	if c.Document == nil {
		return ""
	}
	return c.Document.Path
}

// RowCommands is the fixed set of per-item commands every row exposes.
func RowCommands(d Document) []Command {
	return []Command{Open(d), CustomAction(&d)}
}
