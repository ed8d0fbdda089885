package engine

import (
	"fmt"
	"strings"
)

// Command is a discrete player input.
type Command int

const (
	CmdNone Command = iota
	CmdMoveLeft
	CmdMoveRight
	CmdSoftDrop
	CmdRotateCW
	CmdRotateCCW
)

var commandNames = map[Command]string{
	CmdMoveLeft:  "moveLeft",
	CmdMoveRight: "moveRight",
	CmdSoftDrop:  "softDrop",
	CmdRotateCW:  "rotateCW",
	CmdRotateCCW: "rotateCCW",
}

// Commands lists every playable command.
var Commands = []Command{CmdMoveLeft, CmdMoveRight, CmdSoftDrop, CmdRotateCW, CmdRotateCCW}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// ParseCommand maps a command name such as "rotateCW" to a Command.
// Matching ignores case.
func ParseCommand(name string) (Command, error) {
	for c, n := range commandNames {
		if strings.EqualFold(n, name) {
			return c, nil
		}
	}
	return CmdNone, fmt.Errorf("unknown command %q", name)
}
