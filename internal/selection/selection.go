package selection

import (
	"slices"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/sustainlab/materiality/internal/catalog"
)

var (
	// ErrSelectionFull is returned when a toggle would push the selection
	// past catalog.SelectionSize. The toggle has been reverted.
	ErrSelectionFull = goerr.New("selection limit reached")

	// ErrUnknownTopic is returned for a label that is not in the catalog.
	ErrUnknownTopic = goerr.New("unknown topic")
)

// Identity is the respondent's name and department.
type Identity struct {
	Name       string
	Department string
}

// Complete reports whether both name and department are present.
// Values are compared after trimming, so whitespace-only input is incomplete.
func (id Identity) Complete() bool {
	return strings.TrimSpace(id.Name) != "" && strings.TrimSpace(id.Department) != ""
}

// Controller enforces the exactly-N-of-M topic selection.
type Controller struct {
	limit    int
	selected []catalog.Topic
	identity Identity
}

// New creates a Controller for the standard selection size.
func New() *Controller {
	return &Controller{limit: catalog.SelectionSize}
}

// Toggle flips the membership of topic and reports whether it is now
// selected. Selecting past the limit leaves the selection unchanged and
// returns ErrSelectionFull.
func (c *Controller) Toggle(topic catalog.Topic) (bool, error) {
	if !catalog.Contains(topic) {
		return false, goerr.Wrap(ErrUnknownTopic, "cannot toggle topic", goerr.V("topic", topic))
	}

	if i := slices.Index(c.selected, topic); i >= 0 {
		c.selected = slices.Delete(c.selected, i, i+1)
		return false, nil
	}

	if len(c.selected)+1 > c.limit {
		return false, goerr.Wrap(ErrSelectionFull, "toggle reverted",
			goerr.V("topic", topic), goerr.V("limit", c.limit))
	}

	c.selected = append(c.selected, topic)
	return true, nil
}

// IsSelected reports whether topic is currently selected.
func (c *Controller) IsSelected(topic catalog.Topic) bool {
	return slices.Contains(c.selected, topic)
}

// Count returns the number of selected topics.
func (c *Controller) Count() int {
	return len(c.selected)
}

// Limit returns the required selection size.
func (c *Controller) Limit() int {
	return c.limit
}

// Selected returns the selection in insertion order.
func (c *Controller) Selected() []catalog.Topic {
	return slices.Clone(c.selected)
}

// Restore replaces the selection with topics, skipping unknown labels,
// duplicates and anything past the limit.
func (c *Controller) Restore(topics []catalog.Topic) {
	restored := make([]catalog.Topic, 0, c.limit)
	for _, t := range topics {
		if len(restored) == c.limit {
			break
		}
		if catalog.Contains(t) && !slices.Contains(restored, t) {
			restored = append(restored, t)
		}
	}
	c.selected = restored
}

// Clear empties the selection.
func (c *Controller) Clear() {
	c.selected = nil
}

// CanProceed reports whether exactly the required number of topics is selected.
func (c *Controller) CanProceed() bool {
	return len(c.selected) == c.limit
}

// SetIdentity records the respondent, trimming surrounding whitespace.
func (c *Controller) SetIdentity(name, department string) {
	c.identity = Identity{
		Name:       strings.TrimSpace(name),
		Department: strings.TrimSpace(department),
	}
}

// Identity returns the recorded respondent.
func (c *Controller) Identity() Identity {
	return c.identity
}

// IdentityComplete reports whether name and department are both filled in.
func (c *Controller) IdentityComplete() bool {
	return c.identity.Complete()
}
