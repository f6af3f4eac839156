package finances

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

const (
	defaultCategoryIcon  = "💼"
	defaultCategoryColor = "blue"
)

// Category classifies income or expenses.
//
// Transactions refer to categories by a free text label, deleting a category
// never touches the transactions using it.
type Category struct {
	ID    string
	Name  string
	Kind  CategoryKind
	Icon  string
	Color string
}

// NewCategory creates a category, defaulting icon and color when empty.
func NewCategory(name string, kind CategoryKind, icon, color string) Category {
	if icon == "" {
		icon = defaultCategoryIcon
	}
	if color == "" {
		color = defaultCategoryColor
	}
	return Category{
		ID:    uuid.NewString(),
		Name:  name,
		Kind:  kind,
		Icon:  icon,
		Color: color,
	}
}

func (c Category) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("id", c.ID)
	w.Append("nombre", c.Name)
	w.Append("tipo", c.Kind)
	w.Append("icono", c.Icon)
	w.Append("color", c.Color)
	return w.MarshalJSON()
}

// UnmarshalJSON requires the name and kind.
func (c *Category) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID    string        `json:"id"`
		Name  *string       `json:"nombre"`
		Kind  *CategoryKind `json:"tipo"`
		Icon  *string       `json:"icono"`
		Color *string       `json:"color"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	if temp.Name == nil {
		return errors.New("category: missing field \"nombre\"")
	}
	if temp.Kind == nil {
		return errors.New("category: missing field \"tipo\"")
	}

	*c = Category{
		ID:    temp.ID,
		Name:  *temp.Name,
		Kind:  *temp.Kind,
		Icon:  defaultCategoryIcon,
		Color: defaultCategoryColor,
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if temp.Icon != nil {
		c.Icon = *temp.Icon
	}
	if temp.Color != nil {
		c.Color = *temp.Color
	}
	return nil
}
