// Package cli exposes the service surface as thin subcommands for scripted
// use. The interactive terminal UI is the usual front door; these commands
// exist so flows can be driven from a shell or a test script.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dreamchaser/dreamchaser/internal/assistant"
	"github.com/dreamchaser/dreamchaser/internal/service"
)

const usage = `usage: dreamchaser <command> [flags]

Running without a command starts the interactive UI.

commands:
  signup    -user U -pass P                      create a user
  signin    -user U -pass P                      verify credentials
  suggest   -goal G -due YYYY-MM-DD              print assistant task drafts
  add-goal  -user U -pass P -goal G -due D -start D -task "Name=1h30m" ...
  log-time  -user U -pass P -goal G -task T -hours H -minutes M
  goals     -user U                              list a user's goals
  tasks     -user U -goal G                      list a goal's tasks
  stats     -user U -goal G                      print goal statistics
`

// Run dispatches one subcommand and returns the process exit code.
func Run(svc *service.Service, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}
	cmd, rest := args[0], args[1:]

	var err error
	switch cmd {
	case "signup":
		err = runSignUp(svc, rest, stdout)
	case "signin":
		err = runSignIn(svc, rest, stdout)
	case "suggest":
		err = runSuggest(svc, rest, stdout)
	case "add-goal":
		err = runAddGoal(svc, rest, stdout)
	case "log-time":
		err = runLogTime(svc, rest, stdout)
	case "goals":
		err = runGoals(svc, rest, stdout)
	case "tasks":
		err = runTasks(svc, rest, stdout)
	case "stats":
		err = runStats(svc, rest, stdout)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", cmd, usage)
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "dreamchaser %s: %v\n", cmd, err)
		return 1
	}
	return 0
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func runSignUp(svc *service.Service, args []string, out io.Writer) error {
	fs := newFlagSet("signup")
	user := fs.String("user", "", "username")
	pass := fs.String("pass", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := svc.SignUp(*user, *pass); err != nil {
		return err
	}
	fmt.Fprintf(out, "user %q created\n", *user)
	return nil
}

func runSignIn(svc *service.Service, args []string, out io.Writer) error {
	fs := newFlagSet("signin")
	user := fs.String("user", "", "username")
	pass := fs.String("pass", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	session, err := svc.SignIn(*user, *pass)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "signed in as %q (session %s)\n", session.Username, session.ID)
	return nil
}

func runSuggest(svc *service.Service, args []string, out io.Writer) error {
	fs := newFlagSet("suggest")
	goal := fs.String("goal", "", "goal name")
	due := fs.String("due", "", "due date")
	if err := fs.Parse(args); err != nil {
		return err
	}
	drafts, err := svc.SuggestTasks(context.Background(), *goal, *due)
	if err != nil {
		return err
	}
	for _, d := range drafts {
		fmt.Fprintf(out, "%s=%dh%dm\n", d.Name, d.Hours, d.Minutes)
	}
	return nil
}

// taskFlags collects repeated -task arguments of the form "Name=1h30m".
type taskFlags []string

func (t *taskFlags) String() string     { return strings.Join(*t, ", ") }
func (t *taskFlags) Set(v string) error { *t = append(*t, v); return nil }

func runAddGoal(svc *service.Service, args []string, out io.Writer) error {
	fs := newFlagSet("add-goal")
	user := fs.String("user", "", "username")
	pass := fs.String("pass", "", "password")
	goal := fs.String("goal", "", "goal name")
	due := fs.String("due", "", "due date")
	start := fs.String("start", "", "start date")
	var tasks taskFlags
	fs.Var(&tasks, "task", `task as "Name=1h30m" (repeatable)`)
	if err := fs.Parse(args); err != nil {
		return err
	}

	drafts, err := parseTaskArgs(tasks)
	if err != nil {
		return err
	}
	session, err := svc.SignIn(*user, *pass)
	if err != nil {
		return err
	}
	if err := svc.CreateGoalWithTasks(session, *goal, *due, *start, drafts); err != nil {
		return err
	}
	fmt.Fprintf(out, "goal %q with %d task(s) created for %q\n", *goal, len(drafts), *user)
	return nil
}

func runLogTime(svc *service.Service, args []string, out io.Writer) error {
	fs := newFlagSet("log-time")
	user := fs.String("user", "", "username")
	pass := fs.String("pass", "", "password")
	goal := fs.String("goal", "", "goal name")
	task := fs.String("task", "", "task name")
	hours := fs.Int("hours", 0, "hours to log")
	minutes := fs.Int("minutes", 0, "minutes to log")
	if err := fs.Parse(args); err != nil {
		return err
	}
	session, err := svc.SignIn(*user, *pass)
	if err != nil {
		return err
	}
	if err := svc.LogTime(session, *goal, *task, *hours, *minutes); err != nil {
		return err
	}
	fmt.Fprintf(out, "logged %dh %dm to %q under %q\n", *hours, *minutes, *task, *goal)
	return nil
}

func runGoals(svc *service.Service, args []string, out io.Writer) error {
	fs := newFlagSet("goals")
	user := fs.String("user", "", "username")
	if err := fs.Parse(args); err != nil {
		return err
	}
	goals, err := svc.ListGoals(*user)
	if err != nil {
		return err
	}
	for _, g := range goals {
		fmt.Fprintf(out, "%s\tdue %s\tstarted %s\t%s\n", g.Name, g.DueDate, g.StartDate, daysLeftLabel(g.DaysLeft))
	}
	return nil
}

func runTasks(svc *service.Service, args []string, out io.Writer) error {
	fs := newFlagSet("tasks")
	user := fs.String("user", "", "username")
	goal := fs.String("goal", "", "goal name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	tasks, err := svc.ListTasks(*user, *goal)
	if err != nil {
		return err
	}
	for _, t := range tasks {
		status := "open"
		if t.Complete {
			status = "done"
		}
		fmt.Fprintf(out, "%s\testimate %s\tlogged %s\t%s\n", t.Name, t.Estimate, t.Logged, status)
	}
	return nil
}

func runStats(svc *service.Service, args []string, out io.Writer) error {
	fs := newFlagSet("stats")
	user := fs.String("user", "", "username")
	goal := fs.String("goal", "", "goal name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	gs, err := svc.GoalStatistics(*user, *goal)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "goal:          %s (%s to %s)\n", gs.GoalName, gs.StartDate, gs.DueDate)
	fmt.Fprintf(out, "completion:    %.1f%% (%d task(s) open)\n", gs.Completion, gs.OpenTaskCount)
	fmt.Fprintf(out, "estimated:     %s\n", gs.Estimated)
	fmt.Fprintf(out, "logged:        %s\n", gs.Logged)
	fmt.Fprintf(out, "days left:     %s\n", daysLeftLabel(gs.DaysLeft))
	if gs.WeeklyGoal >= 0 {
		fmt.Fprintf(out, "weekly goal:   %.1f h/week\n", gs.WeeklyGoal)
		fmt.Fprintf(out, "pace accuracy: %.0f%%\n", gs.PaceAccuracy)
	}

	weeks := make([]int, 0, len(gs.WeeklyLogged))
	for w := range gs.WeeklyLogged {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)
	for _, w := range weeks {
		fmt.Fprintf(out, "week %d:        %d h\n", w+1, gs.WeeklyLogged[w])
	}
	return nil
}

func daysLeftLabel(days int) string {
	if days < 0 {
		return "past due"
	}
	return fmt.Sprintf("%d day(s) left", days)
}

// parseTaskArgs turns "Name=1h30m" strings into drafts. The estimate part
// accepts "2h", "45m", or "1h30m".
func parseTaskArgs(args []string) ([]assistant.TaskDraft, error) {
	drafts := make([]assistant.TaskDraft, 0, len(args))
	for _, arg := range args {
		eq := strings.LastIndex(arg, "=")
		if eq <= 0 || eq == len(arg)-1 {
			return nil, fmt.Errorf("task %q: want \"Name=1h30m\"", arg)
		}
		name := arg[:eq]
		hours, minutes, err := parseEstimate(arg[eq+1:])
		if err != nil {
			return nil, fmt.Errorf("task %q: %w", arg, err)
		}
		drafts = append(drafts, assistant.TaskDraft{Name: name, Hours: hours, Minutes: minutes})
	}
	return drafts, nil
}

func parseEstimate(s string) (hours, minutes int, err error) {
	rest := s
	if i := strings.IndexByte(rest, 'h'); i >= 0 {
		if _, err := fmt.Sscanf(rest[:i+1], "%dh", &hours); err != nil {
			return 0, 0, fmt.Errorf("bad estimate %q", s)
		}
		rest = rest[i+1:]
	}
	if rest != "" {
		if _, err := fmt.Sscanf(rest, "%dm", &minutes); err != nil {
			return 0, 0, fmt.Errorf("bad estimate %q", s)
		}
	}
	return hours, minutes, nil
}
