package session

// CommandOp names a remote mutation issued by the controller.
type CommandOp string

const (
	OpLoadPage    CommandOp = "loadPage"
	OpCreateBlock CommandOp = "createBlock"
	OpUpdateBlock CommandOp = "updateBlock"
	OpDeleteBlock CommandOp = "deleteBlock"
	OpRenamePage  CommandOp = "renamePage"
)

// Command records a single network request the controller issued: one entry
// per request, appended before the call goes out. Tests assert request
// counts and ordering against this journal instead of a real network layer.
type Command struct {
	Op      CommandOp
	BlockID string
	Payload any
	Err     error // outcome, filled in after the call returns
}

func (c *Controller) record(op CommandOp, blockID string, payload any) *Command {
	c.journal = append(c.journal, Command{Op: op, BlockID: blockID, Payload: payload})
	return &c.journal[len(c.journal)-1]
}

// Journal returns the commands issued so far, oldest first.
func (c *Controller) Journal() []Command {
	return c.journal
}
