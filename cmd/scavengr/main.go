package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"scavengr/internal/client/api"
	"scavengr/internal/client/controller"
	"scavengr/internal/client/search"
	"scavengr/internal/core/ingredient"
	"scavengr/internal/pkg/common"
)

const help = `commands:
  <text>         search ingredients (same as "search <text>")
  pick <n>       add suggestion n to the selection
  rm <id>        remove an ingredient from the selection
  list           show the selection
  gen            generate a recipe from the selection
  retry          retry after a failed generation
  reset          start over
  hide | show    toggle the suggestion panel
  quit`

func main() {
	server := flag.String("server", api.DefaultBaseURL, "recipe server base URL")
	timeout := flag.Duration("timeout", 2*time.Minute, "per-request timeout")
	logLevel := flag.String("log-level", "warn", "log level")
	flag.Parse()

	if err := common.InitLogger(common.LoggerOptions{Level: *logLevel, Service: "scavengr-cli"}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	client := api.New(*server, api.WithTimeout(*timeout))
	run(os.Stdin, os.Stdout, client)
}

type session struct {
	out  io.Writer
	mu   sync.Mutex
	ctrl *controller.Controller
	deb  *search.Debouncer
}

func run(in io.Reader, out io.Writer, client *api.Client) {
	s := &session{out: out}
	s.ctrl = controller.New(client)
	s.deb = search.New(client, s.ctrl, search.WithOnChange(s.showSuggestions))
	defer s.deb.Close()

	s.printf("%s\n", help)
	scanner := bufio.NewScanner(in)
	for {
		s.printf("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "quit", "exit":
			return
		case "help":
			s.printf("%s\n", help)
		case "search":
			s.deb.Search(arg)
		case "pick":
			s.pick(arg)
		case "rm":
			id, err := strconv.Atoi(arg)
			if err != nil || !s.ctrl.Remove(id) {
				s.printf("nothing removed\n")
				continue
			}
			s.printSelection()
		case "list":
			s.printSelection()
		case "gen":
			s.generate(s.ctrl.Generate)
		case "retry":
			s.generate(s.ctrl.Retry)
		case "reset":
			s.ctrl.Reset()
			s.deb.Search("")
			s.printf("cleared\n")
		case "hide":
			s.deb.Dismiss()
		case "show":
			s.deb.Focus()
		default:
			s.deb.Search(line)
		}
	}
}

func (s *session) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}

func (s *session) showSuggestions() {
	if !s.deb.Visible() {
		return
	}
	var b strings.Builder
	for i, item := range s.deb.Suggestions() {
		fmt.Fprintf(&b, "  %d) %s", i+1, item.Name)
		if url := ingredient.ImageURL(item, ingredient.ImageSmall); url != "" {
			fmt.Fprintf(&b, "  %s", url)
		}
		b.WriteString("\n")
	}
	s.printf("\n%s> ", b.String())
}

func (s *session) pick(arg string) {
	n, err := strconv.Atoi(arg)
	suggestions := s.deb.Suggestions()
	if err != nil || n < 1 || n > len(suggestions) {
		s.printf("no such suggestion\n")
		return
	}
	if !s.deb.Select(suggestions[n-1]) {
		s.printf("already selected or busy\n")
	}
	s.printSelection()
}

func (s *session) printSelection() {
	snap := s.ctrl.Snapshot()
	if len(snap.Selection) == 0 {
		s.printf("selection is empty\n")
		return
	}
	parts := make([]string, 0, len(snap.Selection))
	for _, item := range snap.Selection {
		parts = append(parts, fmt.Sprintf("%s (#%d)", item.Name, item.ID))
	}
	s.printf("selected: %s\n", strings.Join(parts, ", "))
}

func (s *session) generate(start func(context.Context) bool) {
	s.printf("generating...\n")
	if !start(context.Background()) {
		s.printf("nothing to do (state: %s)\n", s.ctrl.Snapshot().State)
		return
	}

	snap := s.ctrl.Snapshot()
	switch snap.State {
	case controller.Success:
		s.printRecipe(snap.Recipe)
	case controller.Error:
		s.printf("%s (type \"retry\")\n", snap.Error)
	}
}

func (s *session) printRecipe(r *common.Recipe) {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n%s\n\n", r.RecipeName, r.Description)
	fmt.Fprintf(&b, "time: %s | difficulty: %s | serves: %s\n\ningredients:\n", r.CookingTime, r.Difficulty, r.Serves)
	for _, item := range r.Ingredients {
		fmt.Fprintf(&b, "  - %s\n", item)
	}
	b.WriteString("\ninstructions:\n")
	for i, step := range r.Instructions {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
	}
	if r.Tips != "" {
		fmt.Fprintf(&b, "\ntips: %s\n", r.Tips)
	}
	s.printf("%s\n", b.String())
}
