package appcontext

import "os"

const (
	// EnvCLI is an interactive or cron invocation.
	EnvCLI Env = iota
	// EnvAction is an invocation from within a GitHub Actions runner.
	EnvAction
)

type Env int

func (e Env) String() string {
	if e == EnvAction {
		return "action"
	}
	return "cli"
}

type Ctx struct {
	Env Env
}

func Declare(env Env) Ctx {
	return Ctx{
		Env: env,
	}
}

// Detect declares EnvAction when running on a GitHub Actions runner.
func Detect() Ctx {
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return Declare(EnvAction)
	}
	return Declare(EnvCLI)
}
