package bot

import (
	"errors"
	"strconv"
	"strings"
)

type commandVerb string

const (
	cmdAdminList   commandVerb = "/admin_list"
	cmdAdminAdd    commandVerb = "/admin_add"
	cmdAdminRemove commandVerb = "/admin_remove"
	cmdAdminHelp   commandVerb = "/admin_help"
	cmdBonusAdd    commandVerb = "/bonus_add"
	cmdBonusRemove commandVerb = "/bonus_remove"
	cmdStats       commandVerb = "/stats"
)

var (
	errUnknownCommand = errors.New("unknown admin command")
	errBadArguments   = errors.New("bad command arguments")
)

// adminCommand is a parsed administrator command. For /admin_add and
// /admin_remove HasTarget is false when the id was omitted, which switches
// the dispatcher into two-step capture for that chat.
type adminCommand struct {
	Verb      commandVerb
	TargetID  int64
	Points    int
	HasTarget bool
}

var knownVerbs = map[string]commandVerb{
	string(cmdAdminList):   cmdAdminList,
	string(cmdAdminAdd):    cmdAdminAdd,
	string(cmdAdminRemove): cmdAdminRemove,
	string(cmdAdminHelp):   cmdAdminHelp,
	string(cmdBonusAdd):    cmdBonusAdd,
	string(cmdBonusRemove): cmdBonusRemove,
	string(cmdStats):       cmdStats,
}

// claimsAdminCommand reports whether the text belongs to the administrator
// command surface. Unknown verbs under the /admin_ and /bonus_ prefixes are
// claimed too, so they get an explicit rejection instead of falling through
// to the user menu.
func claimsAdminCommand(text string) bool {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return false
	}
	verb := fields[0]
	if _, ok := knownVerbs[verb]; ok {
		return true
	}
	return strings.HasPrefix(verb, "/admin_") || strings.HasPrefix(verb, "/bonus_")
}

func parseAdminCommand(text string) (adminCommand, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return adminCommand{}, errUnknownCommand
	}

	verb, ok := knownVerbs[fields[0]]
	if !ok {
		return adminCommand{}, errUnknownCommand
	}
	cmd := adminCommand{Verb: verb}
	args := fields[1:]

	switch verb {
	case cmdAdminList, cmdAdminHelp:
		return cmd, nil

	case cmdAdminAdd, cmdAdminRemove:
		if len(args) == 0 {
			return cmd, nil
		}
		if len(args) > 1 {
			return cmd, errBadArguments
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return cmd, errBadArguments
		}
		cmd.TargetID = id
		cmd.HasTarget = true
		return cmd, nil

	case cmdBonusAdd, cmdBonusRemove:
		if len(args) != 2 {
			return cmd, errBadArguments
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return cmd, errBadArguments
		}
		points, err := strconv.Atoi(args[1])
		if err != nil {
			return cmd, errBadArguments
		}
		cmd.TargetID = id
		cmd.Points = points
		cmd.HasTarget = true
		return cmd, nil

	case cmdStats:
		if len(args) != 1 {
			return cmd, errBadArguments
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return cmd, errBadArguments
		}
		cmd.TargetID = id
		cmd.HasTarget = true
		return cmd, nil
	}

	return adminCommand{}, errUnknownCommand
}
