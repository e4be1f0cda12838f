package extract

import (
	"strings"

	"github.com/Itsforsale2/Billdozer2/internal/domain"
)

// ItemField names the LineItem field a validated slot maps to.
type ItemField int

const (
	FieldNone ItemField = iota
	FieldDate
	FieldDescription
	FieldTicket
	FieldTruck
	FieldQuantity
	FieldUnitPrice
	FieldExtended
)

// Slot is one position within an item window: a validator plus the LineItem
// field the validated line is assigned to. Clean, when set, is applied to
// the line before assignment (e.g. stripping a "TN" unit suffix).
type Slot struct {
	Field ItemField
	Match Matcher
	Clean func(string) string
}

// ItemWindow is a vendor's sliding-window spec for repeating line-item
// blocks: a start predicate, a fixed run of slots (the start line fills slot
// zero), and a denylist of noise tokens skipped without breaking a block.
type ItemWindow struct {
	Start Matcher
	Slots []Slot
	Noise []string
}

// Extract runs the two-state window machine over a page and returns the
// line items in source order. Zero matches is a valid, non-error result.
//
// SEEKING: a line matching Start opens a window.
// ACCUMULATING: lines are buffered; noise lines are skipped. A line matching
// Start restarts accumulation unless it is a valid filler for the slot it
// lands in (interior slots on some layouts are themselves start-shaped, e.g.
// bare decimals). When the buffer reaches the window length every slot is
// validated; on any failure the buffer is discarded silently.
func (w ItemWindow) Extract(p Page) []domain.LineItem {
	var items []domain.LineItem
	var buf []string

	n := len(w.Slots)
	if n == 0 || w.Start == nil {
		return nil
	}

	for _, ln := range p.Lines {
		if w.isNoise(ln) {
			continue
		}

		if buf == nil {
			if w.Start(ln) {
				buf = []string{ln}
			}
			continue
		}

		slot := w.Slots[len(buf)]
		if w.Start(ln) && (slot.Match == nil || !slot.Match(ln)) {
			buf = []string{ln}
		} else {
			buf = append(buf, ln)
		}

		if len(buf) == n {
			if item, ok := w.validate(buf); ok {
				items = append(items, item)
			}
			buf = nil
		}
	}
	return items
}

// validate checks every slot against its buffered line and maps the window
// into a LineItem. A window is accepted only if all slots pass; there is no
// coercion of partial matches.
func (w ItemWindow) validate(buf []string) (domain.LineItem, bool) {
	var item domain.LineItem
	for i, slot := range w.Slots {
		ln := buf[i]
		if slot.Match != nil && !slot.Match(ln) {
			return domain.LineItem{}, false
		}
		if slot.Clean != nil {
			ln = slot.Clean(ln)
		}
		switch slot.Field {
		case FieldDate:
			item.Date = ln
		case FieldDescription:
			item.Description = ln
		case FieldTicket:
			item.TicketNumber = ln
		case FieldTruck:
			item.TruckCode = ln
		case FieldQuantity:
			item.Quantity = ln
		case FieldUnitPrice:
			item.UnitPrice = ln
		case FieldExtended:
			item.ExtendedPrice = ln
		}
	}
	return item, true
}

func (w ItemWindow) isNoise(ln string) bool {
	low := strings.ToLower(ln)
	for _, tok := range w.Noise {
		if strings.Contains(low, tok) {
			return true
		}
	}
	return false
}

// Revalidate re-checks an emitted item's source lines against their slot
// validators. Every line of an accepted window re-validates true.
func (w ItemWindow) Revalidate(buf []string) bool {
	if len(buf) != len(w.Slots) {
		return false
	}
	_, ok := w.validate(buf)
	return ok
}
