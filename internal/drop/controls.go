package drop

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/osse101/dropgame/internal/domain"
)

const controlSep = ":"

// ControlID is the parsed custom id of a button: which game owns it, what it
// does and its arguments.
type ControlID struct {
	Game   domain.Game
	Action string
	Args   []string
}

// NewControlID builds a control id.
func NewControlID(game domain.Game, action string, args ...string) ControlID {
	return ControlID{Game: game, Action: action, Args: args}
}

func (c ControlID) String() string {
	parts := append([]string{string(c.Game), c.Action}, c.Args...)
	return strings.Join(parts, controlSep)
}

// Arg returns the i-th argument or "".
func (c ControlID) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

// ParseControlID splits a custom id produced by ControlID.String.
func ParseControlID(s string) (ControlID, error) {
	parts := strings.Split(s, controlSep)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return ControlID{}, fmt.Errorf("%w: control id %q", domain.ErrInvalidInput, s)
	}
	return ControlID{Game: domain.Game(parts[0]), Action: parts[1], Args: parts[2:]}, nil
}

// Pager actions and labels shared by paginated views.
const (
	ActionPage = "page"

	LabelPrev = "◀ Previous"
	LabelNext = "Next ▶"
)

// PageRef identifies one page of a paginated view: which list, whose, and
// who may turn the page.
type PageRef struct {
	Game   domain.Game
	View   string
	Owner  string
	Target string
	Index  int
}

// Control encodes the reference as a page button id.
func (p PageRef) Control() ControlID {
	return NewControlID(p.Game, ActionPage, p.View, p.Owner, p.Target, strconv.Itoa(p.Index))
}

// ParsePageRef decodes a page button id.
func ParsePageRef(c ControlID) (PageRef, error) {
	if c.Action != ActionPage || len(c.Args) != 4 {
		return PageRef{}, fmt.Errorf("%w: page control %q", domain.ErrInvalidInput, c)
	}
	idx, err := strconv.Atoi(c.Args[3])
	if err != nil {
		return PageRef{}, fmt.Errorf("%w: page index %q", domain.ErrInvalidInput, c.Args[3])
	}
	return PageRef{Game: c.Game, View: c.Args[0], Owner: c.Args[1], Target: c.Args[2], Index: idx}, nil
}

// PagerButtons returns Prev/Next buttons for ref. A disabled button still
// gets a distinct id.
func PagerButtons(ref PageRef, hasPrev, hasNext bool) []Button {
	prev, next := ref, ref
	prev.Index--
	next.Index++
	prevID := prev.Control()
	nextID := next.Control()
	if !hasPrev {
		prevID.Args[3] = "prev"
	}
	if !hasNext {
		nextID.Args[3] = "next"
	}
	return []Button{
		{ID: prevID.String(), Label: LabelPrev, Style: ButtonSecondary, Disabled: !hasPrev},
		{ID: nextID.String(), Label: LabelNext, Style: ButtonSecondary, Disabled: !hasNext},
	}
}
