package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// consoleKeys are the key names the console host binds to the deck
var consoleKeys = KeyBindings{
	Advance: []string{"n", "next", "right", "up"},
	Retreat: []string{"p", "prev", "left", "down"},
}

var htmlTag = regexp.MustCompile(`<[^>]+>`)

// Console is a line-oriented host for the deck and calculator
type Console struct {
	app    *App
	reader *bufio.Reader
	out    io.Writer
}

// NewConsole creates a console host reading commands from in
func NewConsole(app *App, in io.Reader, out io.Writer) *Console {
	return &Console{app: app, reader: bufio.NewReader(in), out: out}
}

// Run reads commands until "x" or end of input
func (c *Console) Run(ctx context.Context) error {
	detach := c.app.Deck.Mount(consoleKeys)
	defer detach()

	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "=== %s ===\n", c.app.Config.Brand.Name)
	c.printHelp()
	c.printPage()

	for {
		fmt.Fprint(c.out, "> ")
		line, err := c.reader.ReadString('\n')
		cmd := strings.TrimSpace(line)
		if cmd == "" && err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if cmd == "" {
			continue
		}
		if done := c.execute(ctx, cmd); done {
			return nil
		}
	}
}

// execute runs one command line and reports whether the loop should stop
func (c *Console) execute(ctx context.Context, cmd string) bool {
	if _, bound := c.app.Deck.Binding(cmd); bound {
		// refused at either end of the deck or while a turn settles
		if c.app.HandleKey(cmd) {
			c.printPage()
		} else {
			fmt.Fprintln(c.out, "  ✗ Cannot turn the page now")
		}
		return false
	}

	switch strings.ToLower(cmd) {
	case "x", "exit", "quit":
		return true
	case "h", "help", "?":
		c.printHelp()
	case "l", "look":
		c.printPage()
	case "f", "form":
		c.editForm()
	case "s", "save":
		c.save(ctx)
	case "q", "search":
		c.search(ctx)
	case "t", "tier":
		c.selectTier()
	case "c", "calc":
		c.printSavings()
	case "d", "download":
		c.download(ctx)
	case "w", "share":
		c.share(ctx)
	default:
		fmt.Fprintf(c.out, "  ✗ Unknown command %q (h for help)\n", cmd)
	}
	return false
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, "Commands:")
	fmt.Fprintln(c.out, "  n / p   next / previous page")
	fmt.Fprintln(c.out, "  l       show the current page")
	fmt.Fprintln(c.out, "  f       edit the restaurant form")
	fmt.Fprintln(c.out, "  s       save the form")
	fmt.Fprintln(c.out, "  q       search saved restaurants")
	fmt.Fprintln(c.out, "  t       choose a plan")
	fmt.Fprintln(c.out, "  c       show the savings figures")
	fmt.Fprintln(c.out, "  d       download the PDF report")
	fmt.Fprintln(c.out, "  w       share the report")
	fmt.Fprintln(c.out, "  x       exit")
}

func (c *Console) printPage() {
	state := c.app.Deck.State()
	page := c.app.Deck.Current()
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "─── Page %d of %d ───\n", state.CurrentPage+1, state.PageCount)
	fmt.Fprintf(c.out, "  %s\n", page.Title)

	switch page.Kind {
	case PageForm:
		fmt.Fprintf(c.out, "  %s\n", page.Subtitle)
		c.printForm()
	case PageCalculator:
		fmt.Fprintf(c.out, "  %s\n", CalculatorSubtitle(page, c.app.Session.Current()))
		c.printSavings()
	default:
		if page.Subtitle != "" {
			fmt.Fprintf(c.out, "  %s\n", page.Subtitle)
		}
		for _, line := range plainText(page.Body) {
			fmt.Fprintf(c.out, "    %s\n", line)
		}
	}
}

// plainText strips markup from a slide body for terminal display
func plainText(body string) []string {
	text := htmlTag.ReplaceAllString(body, "\n")
	text = strings.NewReplacer("&amp;", "&", "&nbsp;", " ", "&rarr;", "->").Replace(text)
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func (c *Console) printForm() {
	form := c.app.Session.Form()
	fmt.Fprintf(c.out, "    Restaurant Name:        %s\n", form.RestaurantName)
	fmt.Fprintf(c.out, "    Restaurant Number:      %s\n", form.PhoneNumber)
	fmt.Fprintf(c.out, "    Missed Calls per Day:   %s\n", form.AvgMissedCallsPerDay)
	fmt.Fprintf(c.out, "    Average Order Value:    %s\n", form.AvgOrderValue)
	fmt.Fprintf(c.out, "    Reception Staff Salary: %s\n", form.StaffSalaryPerMonth)
}

// promptString asks for a string with a default value
func (c *Console) promptString(prompt, defaultVal string) string {
	if defaultVal != "" {
		fmt.Fprintf(c.out, "%s [%s]: ", prompt, defaultVal)
	} else {
		fmt.Fprintf(c.out, "%s: ", prompt)
	}
	input, _ := c.reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultVal
	}
	return input
}

func (c *Console) editForm() {
	form := c.app.Session.Form()
	fmt.Fprintln(c.out, "Press Enter to keep a value.")
	form.RestaurantName = c.promptString("  Restaurant name", form.RestaurantName)
	form.PhoneNumber = c.promptString("  Restaurant number", form.PhoneNumber)
	form.AvgMissedCallsPerDay = c.promptString("  Average missed calls per day", form.AvgMissedCallsPerDay)
	form.AvgOrderValue = c.promptString("  Average order value", form.AvgOrderValue)
	form.StaffSalaryPerMonth = c.promptString("  Reception staff salary per month", form.StaffSalaryPerMonth)
	c.app.Session.SetForm(form)
}

func (c *Console) save(ctx context.Context) {
	record, err := c.app.SaveForm(ctx)
	if err != nil {
		fmt.Fprintf(c.out, "  ✗ %s\n", UserMessage(err))
		return
	}
	fmt.Fprintf(c.out, "  ✓ Saved %s\n", record.RestaurantName)
	c.printPage()
}

func (c *Console) search(ctx context.Context) {
	query := c.promptString("  Restaurant name", "")
	suggestions := c.app.Session.SetQuery(ctx, query)
	if len(suggestions) == 1 {
		// a lone match is taken as the pick
		record, err := c.app.Session.SelectSuggestion(0)
		if err != nil {
			fmt.Fprintf(c.out, "  ✗ %s\n", UserMessage(err))
			return
		}
		fmt.Fprintf(c.out, "  ✓ Selected %s\n", record.RestaurantName)
		return
	}
	if len(suggestions) > 1 {
		for i, s := range suggestions {
			fmt.Fprintf(c.out, "    %d) %s\n", i+1, s.RestaurantName)
		}
		choice := c.promptString("  Pick a number, or Enter for an exact match", "")
		if choice != "" {
			n, err := strconv.Atoi(choice)
			if err != nil {
				fmt.Fprintln(c.out, "  ✗ Invalid number")
				return
			}
			record, err := c.app.Session.SelectSuggestion(n - 1)
			if err != nil {
				fmt.Fprintf(c.out, "  ✗ %s\n", UserMessage(err))
				return
			}
			fmt.Fprintf(c.out, "  ✓ Selected %s\n", record.RestaurantName)
			return
		}
	}
	record, found := c.app.Session.Search(ctx)
	if !found {
		fmt.Fprintf(c.out, "  ✗ No restaurant named %q\n", query)
		return
	}
	fmt.Fprintf(c.out, "  ✓ Selected %s\n", record.RestaurantName)
}

func (c *Console) selectTier() {
	current := c.app.Session.Tier()
	for _, t := range c.app.Session.Tiers() {
		marker := " "
		if t.Name == current.Name {
			marker = "*"
		}
		fmt.Fprintf(c.out, "   %s %s (%s/month)\n", marker, t.Name, FormatAmount(t.MonthlyPrice))
	}
	name := c.promptString("  Plan", current.Name)
	if err := c.app.Session.SelectTier(name); err != nil {
		fmt.Fprintf(c.out, "  ✗ %s\n", UserMessage(err))
	}
}

func (c *Console) printSavings() {
	record := c.app.Session.Current()
	tier := c.app.Session.Tier()
	s := ComputeSavings(record, tier)
	cur := c.app.Config.Report.CurrencyLabel
	fmt.Fprintf(c.out, "    Plan: %s (%s %s/month)\n", tier.Name, cur, FormatAmount(tier.MonthlyPrice))
	fmt.Fprintf(c.out, "    Salary savings (monthly):        %s %s\n", cur, FormatAmount(s.MonthlySalarySavings))
	fmt.Fprintf(c.out, "    Missed call revenue (monthly):   %s %s\n", cur, FormatAmount(s.MonthlyCallRevenue))
	fmt.Fprintf(c.out, "    Total monthly benefit:           %s %s\n", cur, FormatAmount(s.TotalMonthlyBenefit))
	fmt.Fprintf(c.out, "    Salary savings (yearly):         %s %s\n", cur, FormatAmount(s.YearlySalarySavings))
	fmt.Fprintf(c.out, "    Missed call revenue (yearly):    %s %s\n", cur, FormatAmount(s.YearlyCallRevenue))
	fmt.Fprintf(c.out, "    Total yearly benefit:            %s %s\n", cur, FormatAmount(s.TotalYearlyBenefit))
	fmt.Fprintf(c.out, "    Monthly Benefit vs Salary: %s%%\n", s.BenefitPercentText())
}

func (c *Console) download(ctx context.Context) {
	res, err := c.app.Download(ctx)
	if err != nil {
		fmt.Fprintf(c.out, "  ✗ %s\n", UserMessage(err))
		return
	}
	fmt.Fprintf(c.out, "  ✓ Report saved to %s\n", res.Location)
}

// consoleNotifier prints share notices as they happen, before the link opens
type consoleNotifier struct {
	out io.Writer
}

func (n consoleNotifier) Notify(message string) {
	fmt.Fprintf(n.out, "  ! %s\n", message)
}

func (c *Console) share(ctx context.Context) {
	exporter := *c.app.Exporter
	exporter.Notifier = consoleNotifier{out: c.out}

	res, err := exporter.ShareViaMessage(ctx, c.app.Session.Current(), c.app.Session.Tier())
	if err != nil {
		// user errors were already shown by the notifier
		var ue *UserError
		if !errors.As(err, &ue) {
			fmt.Fprintf(c.out, "  ✗ %v\n", err)
		}
		return
	}
	fmt.Fprintf(c.out, "  Report: %s\n", res.Location)
	fmt.Fprintf(c.out, "  Link:   %s\n", res.ShareURL)
}
