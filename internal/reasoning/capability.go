// Package reasoning abstracts the text-completion capability the
// negotiation pipeline delegates to. Providers translate a role/goal/task
// binding into one blocking completion round trip; callers inject whichever
// provider (or a deterministic stub) they want.
package reasoning

import (
	"context"
	"fmt"
	"strings"
)

// Completion is one unit of delegated reasoning.
type Completion struct {
	Role           string // who the agent is, e.g. "Junior Seller Agent"
	Goal           string // what the agent is trying to achieve
	Backstory      string // persona context
	Task           string // the concrete task description
	ExpectedOutput string // hint for the shape of the answer
}

// Capability produces text for a completion. Implementations must be safe
// for concurrent use.
type Capability interface {
	Complete(ctx context.Context, c Completion) (string, error)
}

// systemPrompt renders the role binding into a system message.
func (c Completion) systemPrompt() string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s.", c.Role)
	if c.Backstory != "" {
		fmt.Fprintf(&b, " %s", c.Backstory)
	}
	if c.Goal != "" {
		fmt.Fprintf(&b, " Your goal: %s.", c.Goal)
	}
	return b.String()
}

// userPrompt renders the task and the expected-output hint.
func (c Completion) userPrompt() string {
	if c.ExpectedOutput == "" {
		return c.Task
	}
	return c.Task + "\n\nExpected output: " + c.ExpectedOutput
}
