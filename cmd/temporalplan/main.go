package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	temporalplan "github.com/corox/temporalplan"
	"github.com/corox/temporalplan/config"
	"github.com/corox/temporalplan/search"
)

func main() {
	var domainPath, problemPath, configPath string
	var interactive bool
	var explain bool
	var help bool

	flag.StringVar(&domainPath, "domain", "", "domain description file")
	flag.StringVar(&problemPath, "problem", "", "problem description file")
	flag.StringVar(&configPath, "config", "", "planner tunables YAML file")
	flag.BoolVar(&interactive, "i", false, "interactive mode (read domain/problem paths from a REPL)")
	flag.BoolVar(&explain, "explain", false, "print a task summary before solving")
	flag.BoolVar(&help, "h", false, "show help")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -domain FILE -problem FILE [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Solves a durative-action planning problem with A* search.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -domain depot.pddl -problem depot-1.pddl\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -i                  # interactive REPL\n", os.Args[0])
	}
	flag.Parse()

	if help {
		flag.Usage()
		os.Exit(0)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	planner := temporalplan.NewWithConfig(cfg)
	defer planner.Close()

	if interactive {
		runInteractive(planner, explain)
		return
	}

	if domainPath == "" || problemPath == "" {
		flag.Usage()
		os.Exit(1)
	}
	runOnce(planner, domainPath, problemPath, explain)
}

func runOnce(planner *temporalplan.Planner, domainPath, problemPath string, explain bool) {
	task, err := planner.LoadFromFiles(domainPath, problemPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", color.RedString("load error: %v", err))
		os.Exit(1)
	}

	if explain {
		printSummary(planner.Explain(task))
	}

	res := planner.Solve(task)
	printResult(res)
}

func runInteractive(planner *temporalplan.Planner, explain bool) {
	fmt.Println(color.CyanString("temporalplan") + " — durative-action planner REPL (exit/Ctrl-D to quit)")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          color.CyanString("> "),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline init error: %v\n", err)
		return
	}
	defer rl.Close()

	fmt.Println("enter: <domain-file> <problem-file>")
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) != 2 {
			fmt.Println("expected: <domain-file> <problem-file>")
			continue
		}
		runOnce(planner, parts[0], parts[1], explain)
	}
}

func printSummary(summary temporalplan.TaskSummary) {
	fmt.Printf("%s / %s: %d facts, %d objects, %d goal conditions\n",
		summary.DomainName, summary.ProblemName, summary.FactCount, summary.ObjectCount, summary.GoalCount)

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
	table.Header([]string{"action", "durative", "duration", "start", "over-all", "end", "eff-start", "eff-end"})
	for _, a := range summary.Actions {
		table.Append([]string{
			a.Name,
			fmt.Sprintf("%v", a.Durative),
			fmt.Sprintf("%g", a.Duration),
			fmt.Sprintf("%d", a.StartConds),
			fmt.Sprintf("%d", a.OverAllConds),
			fmt.Sprintf("%d", a.EndConds),
			fmt.Sprintf("%d", a.StartEffects),
			fmt.Sprintf("%d", a.EndEffects),
		})
	}
	table.Render()
}

func printResult(res search.Result) {
	switch res.Status {
	case search.StatusSolved:
		fmt.Println(color.GreenString("solved") + fmt.Sprintf(" (cost %.3f)", res.Plan.Cost))
		w := bufio.NewWriter(os.Stdout)
		defer w.Flush()
		fmt.Fprint(w, res.Plan.Render())
	case search.StatusNoSolution:
		fmt.Println(color.YellowString("no solution"))
	case search.StatusInterrupted:
		fmt.Println(color.RedString("interrupted (deadline or node budget exceeded)"))
	}
}
