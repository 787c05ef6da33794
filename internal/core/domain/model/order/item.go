package order

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

// ErrItemsCorrupted is returned by DecodeItems when the stored payload cannot be
// read back. Callers treat it as "no items known".
var ErrItemsCorrupted = errors.New("order items are corrupted")

// Item is one line of a production order.
type Item struct {
	productID kernel.UUID
	name      string
	category  string
	quantity  int
	notes     *string
}

// NewItem validates a line item. Notes are optional; blank notes are dropped.
func NewItem(productID kernel.UUID, name, category string, quantity int, notes *string) (Item, error) {
	item := Item{category: category}

	if err := errors.Join(
		item.setProductID(productID),
		item.setName(name),
		item.setQuantity(quantity),
	); err != nil {
		return Item{}, err
	}

	if notes != nil && strings.TrimSpace(*notes) != "" {
		n := *notes
		item.notes = &n
	}

	return item, nil
}

func (i Item) ProductID() kernel.UUID { return i.productID }
func (i Item) Name() string           { return i.name }
func (i Item) Category() string       { return i.category }
func (i Item) Quantity() int          { return i.quantity }

// Notes returns the preparation notes or nil.
func (i Item) Notes() *string {
	if i.notes == nil {
		return nil
	}
	n := *i.notes
	return &n
}

func (i Item) IsEqual(other Item) bool {
	if !i.productID.IsEqual(other.productID) || i.name != other.name ||
		i.category != other.category || i.quantity != other.quantity {
		return false
	}
	if i.notes == nil || other.notes == nil {
		return i.notes == other.notes
	}
	return *i.notes == *other.notes
}

func (i *Item) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.productID = id
	return nil
}

func (i *Item) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	i.name = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is less than 1", quantity))
	}
	i.quantity = quantity
	return nil
}

type itemRecord struct {
	ProductID        kernel.UUID `json:"productId"`
	ProductName      string      `json:"productName"`
	ProductCategory  string      `json:"productCategory"`
	Quantity         int         `json:"quantity"`
	PreparationNotes *string     `json:"preparationNotes,omitempty"`
}

// EncodeItems serializes items for storage. The format is private to persistence.
func EncodeItems(items []Item) ([]byte, error) {
	records := make([]itemRecord, 0, len(items))
	for _, item := range items {
		records = append(records, itemRecord{
			ProductID:        item.productID,
			ProductName:      item.name,
			ProductCategory:  item.category,
			Quantity:         item.quantity,
			PreparationNotes: item.notes,
		})
	}
	return json.Marshal(records)
}

// DecodeItems is the inverse of EncodeItems. An empty payload is an empty list.
// On failure it returns an empty, non-nil list together with ErrItemsCorrupted.
func DecodeItems(data []byte) ([]Item, error) {
	if len(data) == 0 {
		return []Item{}, nil
	}

	var records []itemRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return []Item{}, fmt.Errorf("%w: %w", ErrItemsCorrupted, err)
	}

	items := make([]Item, 0, len(records))
	for idx, r := range records {
		item, err := NewItem(r.ProductID, r.ProductName, r.ProductCategory, r.Quantity, r.PreparationNotes)
		if err != nil {
			return []Item{}, fmt.Errorf("%w: item %d: %w", ErrItemsCorrupted, idx, err)
		}
		items = append(items, item)
	}
	return items, nil
}
