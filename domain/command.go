package domain

// Command is a validated intent delivered by the transport layer.
type Command interface {
	SessionID() string
}

type CreateSessionCommand struct {
	InitiatorName string `validate:"required,min=1,max=24"`
}

func (c CreateSessionCommand) SessionID() string { return "" }

type JoinSessionCommand struct {
	Session string `validate:"required"`
	Name    string `validate:"required,min=1,max=24"`
}

func (c JoinSessionCommand) SessionID() string { return c.Session }

type SetReadyCommand struct {
	Session     string `validate:"required"`
	Participant string `validate:"required"`
	Ready       bool
}

func (c SetReadyCommand) SessionID() string { return c.Session }

type StartSessionCommand struct {
	Session string `validate:"required"`
}

func (c StartSessionCommand) SessionID() string { return c.Session }

type CastVoteCommand struct {
	Session string `validate:"required"`
	Voter   string `validate:"required"`
	Target  string `validate:"required"`
}

func (c CastVoteCommand) SessionID() string { return c.Session }

type SendChatCommand struct {
	Session string `validate:"required"`
	Author  string `validate:"required"`
	Content string `validate:"required,max=280"`
}

func (c SendChatCommand) SessionID() string { return c.Session }

type LeaveSessionCommand struct {
	Session     string `validate:"required"`
	Participant string `validate:"required"`
}

func (c LeaveSessionCommand) SessionID() string { return c.Session }
