// Package console is the interactive prompt: search a postcode, pick one of
// its addresses, see the details.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"addressfinder-backend/internal/components/assert"
	"addressfinder-backend/internal/finder"
	"addressfinder-backend/internal/property"
)

// Finder is implemented by *finder.Finder.
type Finder interface {
	Search(ctx context.Context, raw string) (finder.Session, error)
	Details(ctx context.Context, session finder.Session, address string) (finder.Details, error)
}

const suggestionCount = 3

type Console struct {
	finder Finder
	in     *bufio.Scanner
	out    io.Writer
}

func New(f Finder, in io.Reader, out io.Writer) *Console {
	assert.NotNil(f)
	assert.NotNil(in)
	assert.NotNil(out)

	return &Console{
		finder: f,
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

var errQuit = errors.New("quit")

// prompt returns the trimmed next line, errQuit on "q" or the end of input.
func (c *Console) prompt(message string) (string, error) {
	fmt.Fprint(c.out, message)
	if !c.in.Scan() {
		fmt.Fprintln(c.out)
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", errQuit
	}
	line := strings.TrimSpace(c.in.Text())
	if strings.EqualFold(line, "q") {
		return "", errQuit
	}
	return line, nil
}

// Run loops until the user quits, the input ends or `ctx` is done. Search and
// details failures are printed and the loop continues.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, err := c.prompt("Postcode (q to quit): ")
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
		if raw == "" {
			fmt.Fprintln(c.out, "Please enter a postcode.")
			continue
		}

		session, err := c.finder.Search(ctx, raw)
		if err != nil {
			fmt.Fprintln(c.out, finder.Describe(err))
			continue
		}
		if session.Empty() {
			fmt.Fprintf(c.out, "No addresses found for %s.\n", session.Postcode)
			continue
		}

		RenderRecords(c.out, session.Records)

		err = c.selectLoop(ctx, session)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// selectLoop shows details until the user enters a blank line.
func (c *Console) selectLoop(ctx context.Context, session finder.Session) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		selection, err := c.prompt("Address number or text (blank for a new search): ")
		if err != nil {
			return err
		}
		if selection == "" {
			return nil
		}

		address := Resolve(session, selection)
		details, err := c.finder.Details(ctx, session, address)
		if err != nil {
			fmt.Fprintln(c.out, finder.Describe(err))
			if errors.Is(err, property.ErrNoMatchingRecord) {
				c.printSuggestions(session, address)
			}
			continue
		}

		RenderDetails(c.out, details)
	}
}

func (c *Console) printSuggestions(session finder.Session, address string) {
	suggestions := property.Suggest(session.Records, address, suggestionCount)
	if len(suggestions) == 0 {
		return
	}
	fmt.Fprintln(c.out, "Did you mean:")
	for _, s := range suggestions {
		fmt.Fprintf(c.out, "  %s\n", s)
	}
}

// Resolve turns a selection into an address: a 1-based index into the
// session's records, or otherwise the text itself.
func Resolve(session finder.Session, selection string) string {
	index, err := strconv.Atoi(selection)
	if err == nil && index >= 1 && index <= len(session.Records) {
		return session.Records[index-1].Address
	}
	return selection
}
