package screen

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/iliyamo/lab-desk/internal/form"
	"github.com/iliyamo/lab-desk/internal/labapi"
	"github.com/iliyamo/lab-desk/internal/listsync"
)

// Screen is a mounted view.
type Screen interface {
	View() View
	Surface() *Surface
	// Load fetches everything the view shows.
	Load(ctx context.Context) error
	// Rows renders the current list.
	Rows() (header []string, rows [][]string)
}

// Field is one input of a form as shown to the user.
type Field struct {
	Name    string
	Value   string
	Options []string
}

// Creator is a screen with a create (or update) form.
type Creator interface {
	Screen
	Form() []Field
	Set(name, value string) error
	Submit(ctx context.Context) error
	Clear()
}

// Deleter is a screen whose rows can be deleted by id.
type Deleter interface {
	Screen
	Delete(ctx context.Context, id string) error
}

// Editor is a screen whose rows can be loaded into the form.
type Editor interface {
	Creator
	Edit(id string) error
}

type keyed interface {
	Key() labapi.ID
}

func keyOf[T keyed](v T) string { return v.Key().String() }

func unknownField(name string) error {
	return fmt.Errorf("unknown field %q", name)
}

func noSuchItem(id string) error {
	return fmt.Errorf("no item with id %q", id)
}

func parseInt(name, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number", name)
	}
	return n, nil
}

func oneOf(name, value string, allowed []string) (string, error) {
	v := strings.ToUpper(strings.TrimSpace(value))
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}
	return "", fmt.Errorf("%s must be one of %s", name, strings.Join(allowed, ", "))
}

// crud is the list-plus-form machinery shared by the collection screens.
//
// With patch set, a create prepends the returned record and a delete
// filters it out locally.  Otherwise every successful write is followed
// by a full reload.
type crud[T keyed, F any, P any] struct {
	surface  Surface
	resource labapi.Resource[T, P]
	items    *listsync.List[T]
	form     *form.Controller[F, T, P]
	patch    bool
	reload   func(context.Context) error

	msgLoad, msgSave, msgDelete string
}

func newCrud[T keyed, F any, P any](resource labapi.Resource[T, P], spec form.Spec[F, T, P]) *crud[T, F, P] {
	c := &crud[T, F, P]{
		resource: resource,
		items:    listsync.New(keyOf[T]),
		form:     form.New(spec),
	}
	c.reload = c.refresh
	return c
}

func (c *crud[T, F, P]) Surface() *Surface { return &c.surface }

// Items returns the loaded records in display order.
func (c *crud[T, F, P]) Items() []T { return c.items.Items() }

// Editing returns the id the form will update, if any.
func (c *crud[T, F, P]) Editing() (string, bool) { return c.form.Editing() }

func (c *crud[T, F, P]) refresh(ctx context.Context) error {
	ticket := c.items.Begin()
	items, err := c.resource.List(ctx)
	if err != nil {
		return err
	}
	c.items.Commit(ticket, items)
	c.form.Reseed()
	return nil
}

func (c *crud[T, F, P]) Load(ctx context.Context) error {
	if !c.surface.begin(Loading) {
		return ErrBusy
	}
	c.surface.settle(c.reload(ctx), c.msgLoad)
	return nil
}

func (c *crud[T, F, P]) Submit(ctx context.Context) error {
	if !c.surface.begin(Submitting) {
		return ErrBusy
	}
	err := c.form.Submit(ctx, c.create, c.update)
	if err != nil || c.patch {
		c.surface.settle(err, c.msgSave)
		return nil
	}
	c.surface.settle(c.reload(ctx), c.msgLoad)
	return nil
}

func (c *crud[T, F, P]) create(ctx context.Context, payload P) error {
	created, err := c.resource.Create(ctx, payload)
	if err == nil && c.patch {
		c.items.ApplyCreate(created)
	}
	return err
}

func (c *crud[T, F, P]) update(ctx context.Context, id string, payload P) error {
	_, err := c.resource.Update(ctx, labapi.ID(id), payload)
	return err
}

func (c *crud[T, F, P]) Delete(ctx context.Context, id string) error {
	if !c.surface.begin(Submitting) {
		return ErrBusy
	}
	if err := c.resource.Delete(ctx, labapi.ID(id)); err != nil {
		c.surface.settle(err, c.msgDelete)
		return nil
	}
	if c.patch {
		c.items.ApplyDelete(id)
		c.surface.settle(nil, "")
		return nil
	}
	c.surface.settle(c.reload(ctx), c.msgLoad)
	return nil
}

// Clear drops pending input and any edit target.
func (c *crud[T, F, P]) Clear() { c.form.Reset() }

func (c *crud[T, F, P]) edit(id string) error {
	item, ok := c.items.Find(id)
	if !ok {
		return noSuchItem(id)
	}
	c.form.StartEdit(id, item)
	return nil
}
