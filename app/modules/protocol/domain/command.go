package protocoldomain

import (
	"net/url"
	"strings"
)

// Command is one abstract production-system operation. Selection is nil for
// overlay commands, which address an input directly.
type Command struct {
	Op        Operation
	Selection Selection
	Input     string
	Value     string
}

// SetText sets the text of a field.
func SetText(sel Selection, value string) Command {
	return Command{Op: OpSetText, Selection: sel, Value: value}
}

// SetColor sets the fill colour of a field, e.g. "#3FA531".
func SetColor(sel Selection, color string) Command {
	return Command{Op: OpSetColor, Selection: sel, Value: color}
}

// SetImage points an image field at a file.
func SetImage(sel Selection, path string) Command {
	return Command{Op: OpSetImage, Selection: sel, Value: path}
}

// Show makes a field visible.
func Show(sel Selection) Command {
	return Command{Op: OpSetTextVisibleOn, Selection: sel}
}

// Hide makes a field invisible.
func Hide(sel Selection) Command {
	return Command{Op: OpSetTextVisibleOff, Selection: sel}
}

// SetVisible shows or hides a field.
func SetVisible(sel Selection, visible bool) Command {
	if visible {
		return Show(sel)
	}
	return Hide(sel)
}

// SetPan sets the horizontal pan of a field.
func SetPan(sel Selection, value string) Command {
	return Command{Op: OpSetPanX, Selection: sel, Value: value}
}

// PlayOverlay plays a clip input on the animation overlay channel.
func PlayOverlay(clip string) Command {
	return Command{Op: OpOverlayPlay, Input: clip}
}

// StopOverlay clears the animation overlay channel.
func StopOverlay() Command {
	return Command{Op: OpOverlayStop}
}

// Selector renders the transport-agnostic selector part of the command:
// Input=<target>&SelectedName=<field>.<ext>[&Value=<value>].
func (c Command) Selector(t Targets) string {
	var b strings.Builder
	if c.Selection == nil {
		if c.Input == "" {
			return ""
		}
		b.WriteString("Input=")
		b.WriteString(url.QueryEscape(c.Input))
		return b.String()
	}

	b.WriteString("Input=")
	b.WriteString(url.QueryEscape(c.Selection.Target(t)))
	b.WriteString("&SelectedName=")
	b.WriteString(url.QueryEscape(c.Selection.Property() + "." + string(c.Selection.Extension())))
	if c.Op.takesValue() {
		b.WriteString("&Value=")
		b.WriteString(url.QueryEscape(c.Value))
	}
	return b.String()
}

// Featured returns the command remapped onto the featured mini leaderboard.
// Commands for other graphics are returned unchanged.
func (c Command) Featured() Command {
	if sel, ok := c.Selection.(MiniBoardSelection); ok {
		sel.Featured = true
		c.Selection = sel
	}
	return c
}

// Encoder assembles commands into one of the two wire forms.
type Encoder struct {
	targets Targets
}

// NewEncoder creates an Encoder resolving selections against targets.
func NewEncoder(targets Targets) Encoder {
	return Encoder{targets: targets}
}

// Targets returns the target table the encoder resolves against.
func (e Encoder) Targets() Targets { return e.targets }

// Line renders the TCP form: FUNCTION <op> <selector>\r\n.
func (e Encoder) Line(c Command) string {
	selector := c.Selector(e.targets)
	if selector == "" {
		return "FUNCTION " + string(c.Op) + "\r\n"
	}
	return "FUNCTION " + string(c.Op) + " " + selector + "\r\n"
}

// Query renders the HTTP form: Function=<op>&<selector>.
func (e Encoder) Query(c Command) string {
	selector := c.Selector(e.targets)
	if selector == "" {
		return "Function=" + string(c.Op)
	}
	return "Function=" + string(c.Op) + "&" + selector
}
