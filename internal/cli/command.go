package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bastiangx/shopsearch/pkg/e"
)

type cmdKind uint8

const (
	cmdType cmdKind = iota
	cmdCategory
	cmdPrice
	cmdRating
	cmdStock
	cmdSort
	cmdClearFilters
	cmdClearQuery
	cmdSubmit
	cmdPick
	cmdLink
	cmdOpen
	cmdCategories
	cmdHelp
	cmdQuit
)

// command is one parsed input line.
type command struct {
	kind cmdKind
	arg  string
	n    int
	on   bool
}

var commandNames = map[string]cmdKind{
	"cat":        cmdCategory,
	"category":   cmdCategory,
	"price":      cmdPrice,
	"rating":     cmdRating,
	"stock":      cmdStock,
	"sort":       cmdSort,
	"clear":      cmdClearFilters,
	"reset":      cmdClearQuery,
	"submit":     cmdSubmit,
	"s":          cmdSubmit,
	"pick":       cmdPick,
	"link":       cmdLink,
	"open":       cmdOpen,
	"categories": cmdCategories,
	"help":       cmdHelp,
	"h":          cmdHelp,
	"quit":       cmdQuit,
	"q":          cmdQuit,
}

// needsArg lists commands that cannot run without an argument.
var needsArg = map[cmdKind]bool{
	cmdCategory: true,
	cmdPrice:    true,
	cmdRating:   true,
	cmdSort:     true,
	cmdPick:     true,
	cmdOpen:     true,
}

const helpText = `plain text   type into the search box
:cat <id>    filter by category (all to clear)
:price <r>   under-10, 10-25, 25-50, over-50, all
:rating <n>  minimum stars: 2, 3, 4 or 0
:stock [on]  only in-stock products (off to clear)
:sort <k>    relevance, price-low, price-high, rating, newest
:clear       reset every filter
:reset       empty the search box
:submit      open the results page for the current text
:pick <n>    choose suggestion n
:link        print the deep link of the results page
:open <qs>   load a deep link, e.g. q=lamp&sort=rating
:categories  list categories
:quit        exit`

// parseCommand turns a line into a command. Lines not starting with ':' are
// search box text, kept verbatim.
func parseCommand(line string) (command, error) {
	if !strings.HasPrefix(line, ":") {
		return command{kind: cmdType, arg: line}, nil
	}

	name, arg, _ := strings.Cut(strings.TrimSpace(line[1:]), " ")
	arg = strings.TrimSpace(arg)
	kind, ok := commandNames[strings.ToLower(name)]
	if !ok {
		return command{}, e.Wrap(fmt.Sprintf(":%s", name), e.ErrUnknownOperation)
	}
	if needsArg[kind] && arg == "" {
		return command{}, e.Wrap(fmt.Sprintf(":%s needs an argument", name), e.ErrMissingField)
	}

	cmd := command{kind: kind, arg: arg}
	switch kind {
	case cmdPick:
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			return command{}, e.Wrap(fmt.Sprintf(":pick %s", arg), e.ErrStatusBadRequest)
		}
		cmd.n = n
	case cmdStock:
		cmd.on = parseSwitch(arg)
	}
	return cmd, nil
}

// parseSwitch treats a missing argument as on.
func parseSwitch(arg string) bool {
	switch strings.ToLower(arg) {
	case "", "on", "yes":
		return true
	case "off", "no":
		return false
	}
	on, err := strconv.ParseBool(arg)
	return err == nil && on
}
