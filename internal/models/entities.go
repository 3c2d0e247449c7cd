package models

import (
	"fmt"
	"strings"
)

// Entity is implemented by every child element of a package
type Entity interface {
	Variable | Check | Command
}

// Add appends item to the list and returns its index
func Add[T Entity](list *[]T, item T) int {
	*list = append(*list, item)
	return len(*list) - 1
}

// Update replaces the item at index
func Update[T Entity](list *[]T, index int, item T) error {
	if err := checkIndex(*list, index); err != nil {
		return err
	}
	(*list)[index] = item
	return nil
}

// Delete removes the item at index and returns it
func Delete[T Entity](list *[]T, index int) (T, error) {
	var zero T
	if err := checkIndex(*list, index); err != nil {
		return zero, err
	}
	item := (*list)[index]
	*list = append((*list)[:index], (*list)[index+1:]...)
	return item, nil
}

// Duplicate appends a copy of the item at index and returns the copy's index.
// A duplicated variable gets a "_copy" suffix so the two stay distinguishable.
func Duplicate[T Entity](list *[]T, index int) (int, error) {
	if err := checkIndex(*list, index); err != nil {
		return -1, err
	}
	item := (*list)[index]
	if v, ok := any(&item).(*Variable); ok {
		v.Name += "_copy"
	}
	return Add(list, item), nil
}

// Move relocates the item at from to position to, shifting the others
func Move[T Entity](list *[]T, from, to int) error {
	if err := checkIndex(*list, from); err != nil {
		return err
	}
	if err := checkIndex(*list, to); err != nil {
		return err
	}
	item := (*list)[from]
	*list = append((*list)[:from], (*list)[from+1:]...)
	*list = append((*list)[:to], append([]T{item}, (*list)[to:]...)...)
	return nil
}

func checkIndex[T Entity](list []T, index int) error {
	if index < 0 || index >= len(list) {
		var zero T
		return modelError(entityName(zero), fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(list)))
	}
	return nil
}

func entityName(v any) string {
	switch v.(type) {
	case Variable:
		return "variable"
	case Check:
		return "check"
	default:
		return "command"
	}
}

// Validate checks the fields the editor requires for a variable
func (v Variable) Validate() error {
	if v.Name == "" || v.Value == "" {
		return modelError("variable", fmt.Errorf("%w: name and value are required", ErrMissingField))
	}
	return nil
}

// Validate checks the fields the editor requires for a check
func (c Check) Validate() error {
	if c.Type == "" || c.Condition == "" || c.Path == "" {
		return modelError("check", fmt.Errorf("%w: type, condition and path are required", ErrMissingField))
	}
	return nil
}

// ValidateUpgrade rejects fields an upgrade command cannot carry
func (c Command) ValidateUpgrade() error {
	if c.ExitCode != "" {
		return modelError("upgrade", fmt.Errorf("exit code is not supported for upgrade commands"))
	}
	if c.Timeout != "" {
		return modelError("upgrade", fmt.Errorf("timeout is not supported for upgrade commands"))
	}
	return nil
}

// ValidateComment rejects text that cannot sit inside an XML comment
func ValidateComment(c string) error {
	if strings.Contains(c, "--") {
		return modelError("comment", fmt.Errorf(`comment %q contains "--"`, c))
	}
	return nil
}

// Validate checks package level attributes and the parts of the package
// the document format cannot represent
func (p *Package) Validate() error {
	if p.Reboot != RebootTrue && p.Reboot != RebootFalse {
		return modelError("package", fmt.Errorf("%w, got %q", ErrInvalidReboot, p.Reboot))
	}
	for _, u := range p.Upgrades {
		if err := u.ValidateUpgrade(); err != nil {
			return err
		}
	}
	for _, c := range p.Comments {
		if err := ValidateComment(c); err != nil {
			return err
		}
	}
	return nil
}

// SetComments replaces the comment list from free text where comments are
// separated by blank lines
func (p *Package) SetComments(text string) error {
	var comments []string
	for _, c := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if err := ValidateComment(c); err != nil {
			return err
		}
		comments = append(comments, c)
	}
	p.Comments = comments
	return nil
}

// CommentText joins the comments the way SetComments splits them
func (p *Package) CommentText() string {
	return strings.Join(p.Comments, "\n\n")
}
