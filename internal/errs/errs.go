package errs

import "fmt"

type Code string

const (
	MissingCommand      Code = "MISSING_COMMAND"
	CommandWithBashArgs Code = "COMMAND_WITH_BASH_ARGS"
	TagWithBranch       Code = "TAG_WITH_BRANCH"
)

var messages = map[Code]string{
	MissingCommand: `Missing command: tell kship what to run in the pod

Usage:
  kship command -- rake db:migrate
  kship command -e RAILS_ENV=staging -- rails console

Reason:
  The ephemeral pod runs exactly the command given after "--".`,

	CommandWithBashArgs: `Invalid usage: bash takes no arguments

Usage:
  kship bash
  kship command -- %[1]s

Reason:
  bash always opens an interactive shell; use "command" to run something else.`,

	TagWithBranch: `Invalid flag combination: cannot use --image-tag with --branch

Usage:
  - Release a known image:
      kship %[1]s --image-tag 3f2c1a9
  - Release the head of a branch:
      kship %[1]s --branch feature-x

Reason:
  The image tag is the commit of the branch; giving both is ambiguous.`,
}

func Msg(code Code, a ...any) string {
	msg := messages[code]
	if msg == "" {
		msg = string(code)
	}
	return fmt.Sprintf(msg, a...)
}
